// Package mapjson provides:
//
// - A closed, dynamically-typed tree model (Value: Null, Bool, Int, Double, String, Array, Map)
// - A streaming JSON encoder that hands output to a caller-supplied Sink in chunks instead of
// materializing the whole document
// - Optional deterministic key ordering for hashing, diffing and fixtures
// - A typed error model (EncodeError codes with JSON Pointer paths, SinkError for destination failures)
//
// Design policy:
// - Keep only public APIs in the root package; the token generator lives under internal/engine.
// - Input decoders live under source/, HTTP helpers under middleware/, and the CLI under cmd/mapjson.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	enc := mapjson.NewEncoder(mapjson.EncodeOpt{OrderKeys: true})
//	defer enc.Close()
//	err := enc.Serialize(v, mapjson.DefaultFlushThreshold, mapjson.WriterSink(w))
//
//	b, err := mapjson.Marshal(v)
//	h, err := mapjson.ContentHash(v)
package mapjson
