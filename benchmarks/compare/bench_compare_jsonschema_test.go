package compare_test

import (
	"bytes"
	"testing"

	jschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reoring/mapjson"
)

// Schema for one element of generateHugeArray
const jsonSchemaItems = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id": {"type": "string"},
      "age": {"type": "integer"},
      "active": {"type": "boolean"},
      "meta": {"type": "object", "properties": {"score": {"type": "integer"}}, "required": ["score"]}
    },
    "required": ["id", "age", "active", "meta"],
    "additionalProperties": {"type": "string"}
  }
}`

// validateOutput decodes the encoded bytes with the validator's own decoder
// so number and string handling are checked independently of mapjson.
func validateOutput(comp *jschema.Schema, data []byte) error {
	doc, err := jschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return comp.Validate(doc)
}

func TestOutputConformsToSchema_jsonschema_v5(t *testing.T) {
	comp := jschema.MustCompileString("mem:items", jsonSchemaItems)
	if err := validateOutput(comp, mustMarshal(t, generateHugeArray(100, 3))); err != nil {
		t.Fatal(err)
	}
	bad := mapjson.Array{mapjson.Map{"id": mapjson.Int(1)}}
	if err := validateOutput(comp, mustMarshal(t, bad)); err == nil {
		t.Fatalf("expected schema violation")
	}
}

func Benchmark_EncodeAndValidate_jsonschema_v5_Small(b *testing.B) {
	comp := jschema.MustCompileString("mem:items", jsonSchemaItems)
	v := generateHugeArray(10, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data, err := mapjson.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		if err := validateOutput(comp, data); err != nil {
			b.Fatal(err)
		}
	}
}
