package mapjson

import (
	"errors"
	"fmt"

	"github.com/reoring/mapjson/i18n"
)

// Error codes carried by EncodeError.Code.
const (
	CodeKeysMustBeStrings = "keys_must_be_strings"
	CodeMaxDepthExceeded  = "max_depth_exceeded"
	CodeInErrorState      = "in_error_state"
	CodeInvalidNumber     = "invalid_number"
	CodeNoBuffer          = "no_buffer"
	CodeInvalidString     = "invalid_string"
	CodeIncompatibleType  = "incompatible_type"
	CodeBufferUnavailable = "buffer_unavailable"
	// CodeUnknown covers a generator status this package does not recognise.
	CodeUnknown = "unknown"
)

// EncodeError reports why a value could not be encoded.
type EncodeError struct {
	Code    string // One of the codes listed above.
	Path    string // JSON Pointer of the failing node ("/" for the root).
	Message string
	Cause   error // Optional: underlying generator status or detail.
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("mapjson: %s at %s: %s", e.Code, e.Path, e.Message)
}

func (e *EncodeError) Unwrap() error { return e.Cause }

// Is matches any EncodeError with the same code, so the sentinels below work
// with errors.Is regardless of path.
func (e *EncodeError) Is(target error) bool {
	t, ok := target.(*EncodeError)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrKeysMustBeStrings = &EncodeError{Code: CodeKeysMustBeStrings}
	ErrMaxDepthExceeded  = &EncodeError{Code: CodeMaxDepthExceeded}
	ErrInErrorState      = &EncodeError{Code: CodeInErrorState}
	ErrInvalidNumber     = &EncodeError{Code: CodeInvalidNumber}
	ErrNoBuffer          = &EncodeError{Code: CodeNoBuffer}
	ErrInvalidString     = &EncodeError{Code: CodeInvalidString}
	ErrIncompatibleType  = &EncodeError{Code: CodeIncompatibleType}
	ErrBufferUnavailable = &EncodeError{Code: CodeBufferUnavailable}
)

var (
	// ErrEncoderBusy is returned when Serialize is re-entered (for example
	// from inside the sink) while a call on the same Encoder is in flight.
	ErrEncoderBusy = errors.New("mapjson: encoder busy: serialize re-entered during a call")
	// ErrNilSink is returned when Serialize is called without a sink.
	ErrNilSink = errors.New("mapjson: nil sink")
)

// SinkError wraps a failure returned by the caller's sink, keeping "the
// destination failed" apart from "the data could not be encoded".
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return "mapjson: sink: " + e.Err.Error() }

func (e *SinkError) Unwrap() error { return e.Err }

// AsEncodeError extracts an EncodeError using errors.As internally.
func AsEncodeError(err error) (*EncodeError, bool) {
	var ee *EncodeError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// AsSinkError extracts a SinkError using errors.As internally.
func AsSinkError(err error) (*SinkError, bool) {
	var se *SinkError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func newEncodeError(code string, cause error) *EncodeError {
	return &EncodeError{Code: code, Message: i18n.T(code, nil), Cause: cause}
}

func incompatible(v any) *EncodeError {
	typ := fmt.Sprintf("%T", v)
	return &EncodeError{
		Code:    CodeIncompatibleType,
		Message: i18n.T(CodeIncompatibleType, map[string]string{"type": typ}),
		Cause:   fmt.Errorf("unsupported value type %s", typ),
	}
}
