package middleware

import (
	"context"
	"io"
	"net/http"

	"github.com/reoring/mapjson"
	"github.com/reoring/mapjson/source/gojson"
)

// ctxKeyValue is the context key for a decoded request body.
type ctxKeyValue struct{}

// ContextWithValue attaches a decoded request body to the context.
func ContextWithValue(ctx context.Context, v mapjson.Value) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, v)
}

// ValueFromContext retrieves the request body stored by ContextWithValue.
func ValueFromContext(ctx context.Context) (mapjson.Value, bool) {
	v, ok := ctx.Value(ctxKeyValue{}).(mapjson.Value)
	return v, ok
}

// DefaultEncodeOpt returns a recommended default for HTTP JSON responses.
// - Keys are ordered so identical payloads produce identical bodies (ETags, caches)
func DefaultEncodeOpt() mapjson.EncodeOpt {
	return mapjson.EncodeOpt{OrderKeys: true}
}

// DefaultDecodeOpt returns a recommended default for HTTP JSON requests.
// - Duplicate keys are errors
func DefaultDecodeOpt() gojson.DecodeOpt {
	return gojson.DecodeOpt{RejectDuplicateKeys: true}
}

// DecodeBody reads exactly one JSON document from a request body.
func DecodeBody(r io.Reader, opt gojson.DecodeOpt) (mapjson.Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return gojson.DecodeBytes(b, opt)
}

// ErrorPayload shapes an encode, sink or decode failure for JSON responses.
func ErrorPayload(err error) mapjson.Value {
	if ee, ok := mapjson.AsEncodeError(err); ok {
		return mapjson.Map{"error": mapjson.Map{
			"code":    mapjson.String(ee.Code),
			"path":    mapjson.String(ee.Path),
			"message": mapjson.String(ee.Message),
		}}
	}
	return mapjson.Map{"error": mapjson.Map{
		"code":    mapjson.String("invalid_request"),
		"message": mapjson.String(err.Error()),
	}}
}

// WriteJSON streams v into w. The status line is written together with the
// first chunk, so started reports whether anything reached the client; when
// it is false the caller may still send an error response. Chunks are
// flushed to the client as they are produced when w supports http.Flusher.
func WriteJSON(w http.ResponseWriter, status int, v mapjson.Value, opt ...mapjson.EncodeOpt) (started bool, err error) {
	o := DefaultEncodeOpt()
	if len(opt) > 0 {
		o = opt[0]
	}
	enc := mapjson.NewEncoder(o)
	defer enc.Close()

	flusher, _ := w.(http.Flusher)
	err = enc.Serialize(v, mapjson.DefaultFlushThreshold, func(p []byte) error {
		if !started {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			started = true
		}
		if len(p) == 0 {
			return nil
		}
		if _, err := w.Write(p); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	return started, err
}

// WriteError writes ErrorPayload(err) with status.
func WriteError(w http.ResponseWriter, status int, err error) error {
	_, werr := WriteJSON(w, status, ErrorPayload(err))
	return werr
}
