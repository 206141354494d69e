package benchmarks_test

import (
	"io"
	"strconv"
	"testing"

	"github.com/reoring/mapjson"
	"github.com/reoring/mapjson/source/gojson"
)

// ---- Helpers ----

func smallUser() mapjson.Value {
	return mapjson.Map{"id": mapjson.String("u_1"), "name": mapjson.String("alice"), "age": mapjson.Int(30)}
}

func hugeArray(n, extra int) mapjson.Value {
	arr := make(mapjson.Array, n)
	for i := range arr {
		m := mapjson.Map{
			"id":     mapjson.String("obj_" + strconv.Itoa(i)),
			"age":    mapjson.Int(i),
			"active": mapjson.Bool(i%2 == 0),
			"meta":   mapjson.Map{"score": mapjson.Double(float64(i) / 3)},
		}
		for k := range extra {
			m["k"+strconv.Itoa(k)] = mapjson.String("v" + strconv.Itoa(i) + "_" + strconv.Itoa(k))
		}
		arr[i] = m
	}
	return arr
}

func discard(p []byte) error {
	_, err := io.Discard.Write(p)
	return err
}

// ---- Small object ----

func BenchmarkSerialize_Small(b *testing.B) {
	v := smallUser()
	enc := mapjson.NewEncoder()
	defer enc.Close()
	b.ReportAllocs()
	for b.Loop() {
		if err := enc.Serialize(v, mapjson.DefaultFlushThreshold, discard); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshal_Small(b *testing.B) {
	v := smallUser()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := mapjson.Marshal(v); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Huge array: flush threshold and key ordering ----

func BenchmarkSerialize_HugeArray(b *testing.B) {
	v := hugeArray(10000, 8)
	size, _ := mapjson.Marshal(v)
	for _, tc := range []struct {
		name      string
		threshold int
		ordered   bool
	}{
		{"flush0", 0, false},
		{"flush4k", 4096, false},
		{"flush64k", 64 << 10, false},
		{"flush4k_ordered", 4096, true},
	} {
		b.Run(tc.name, func(b *testing.B) {
			enc := mapjson.NewEncoder(mapjson.EncodeOpt{OrderKeys: tc.ordered})
			defer enc.Close()
			b.ReportAllocs()
			b.SetBytes(int64(len(size)))
			for b.Loop() {
				if err := enc.Serialize(v, tc.threshold, discard); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkContentHash_HugeArray(b *testing.B) {
	v := hugeArray(10000, 8)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := mapjson.ContentHash(v); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Round trip through the go-json source ----

func BenchmarkDecodeEncode_HugeArray(b *testing.B) {
	data, err := mapjson.Marshal(hugeArray(10000, 8))
	if err != nil {
		b.Fatal(err)
	}
	enc := mapjson.NewEncoder()
	defer enc.Close()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		v, err := gojson.DecodeBytes(data)
		if err != nil {
			b.Fatal(err)
		}
		if err := enc.Serialize(v, mapjson.DefaultFlushThreshold, discard); err != nil {
			b.Fatal(err)
		}
	}
}
