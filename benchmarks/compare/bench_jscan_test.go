//go:build jscan

package compare_test

import (
	"testing"

	"github.com/romshark/jscan"

	"github.com/reoring/mapjson"
)

func scan(data []byte) (int, error) {
	it := jscan.Begin()
	if err := it.Feed(data); err != nil {
		return 0, err
	}
	n := 0
	for it.Next() {
		_ = it.Value()
		n++
	}
	return n, it.Err()
}

// jscan: every chunk boundary must still yield a valid token stream
func TestOutputScans_jscan(t *testing.T) {
	v := generateHugeArray(200, 4)
	want := mustMarshal(t, v)
	var out []byte
	enc := mapjson.NewEncoder()
	defer enc.Close()
	if err := enc.Serialize(v, 1, func(p []byte) error {
		out = append(out, p...)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if string(out) != string(want) {
		t.Fatalf("chunked output differs from Marshal")
	}
	if _, err := scan(out); err != nil {
		t.Fatal(err)
	}
}

func Benchmark_EncodeAndScan_jscan_HugeArray(b *testing.B) {
	v := generateHugeArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data, err := mapjson.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := scan(data); err != nil {
			b.Fatal(err)
		}
	}
}
