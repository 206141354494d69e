package compare_test

import (
	"testing"

	"github.com/valyala/fastjson"

	"github.com/reoring/mapjson"
)

// fastjson re-parses mapjson output; the element count must survive.
func TestOutputParses_fastjson(t *testing.T) {
	v := generateHugeArray(100, 2)
	for _, threshold := range []int{0, 17, mapjson.DefaultFlushThreshold} {
		enc := mapjson.NewEncoder()
		var out []byte
		err := enc.Serialize(v, threshold, func(p []byte) error {
			out = append(out, p...)
			return nil
		})
		_ = enc.Close()
		if err != nil {
			t.Fatal(err)
		}
		var p fastjson.Parser
		parsed, err := p.ParseBytes(out)
		if err != nil {
			t.Fatalf("threshold %d: %v", threshold, err)
		}
		arr, err := parsed.Array()
		if err != nil || len(arr) != 100 {
			t.Fatalf("threshold %d: expected 100 elements, got %d (%v)", threshold, len(arr), err)
		}
		if got := arr[42].GetInt("meta", "score"); got != 42 {
			t.Fatalf("threshold %d: meta.score = %d", threshold, got)
		}
	}
}

func Benchmark_EncodeAndParse_fastjson_HugeArray(b *testing.B) {
	v := generateHugeArray(cmpHugeN, cmpHugeK)
	var arena fastjson.Parser
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data, err := mapjson.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := arena.ParseBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}
