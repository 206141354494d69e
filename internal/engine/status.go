package engine

import "strconv"

// Status is the failure reported by a Generator operation. Operations return
// nil on success and a Status otherwise.
type Status int

const (
	// KeysMustBeStrings: a non-string value was written where a key was expected.
	KeysMustBeStrings Status = iota + 1
	// MaxDepthExceeded: opening a container would exceed Options.MaxDepth.
	MaxDepthExceeded
	// InErrorState: a previous operation failed, or a close did not match the
	// innermost open container.
	InErrorState
	// GenerationComplete: the top-level value is already complete.
	GenerationComplete
	// InvalidNumber: NaN, an infinity, or text outside the JSON number grammar.
	InvalidNumber
	// NoBuf: the buffer was freed or output goes to a print callback.
	NoBuf
	// InvalidString: the string is not valid UTF-8.
	InvalidString
)

func (s Status) Error() string {
	switch s {
	case KeysMustBeStrings:
		return "keys must be strings"
	case MaxDepthExceeded:
		return "max depth exceeded"
	case InErrorState:
		return "in error state"
	case GenerationComplete:
		return "generation complete"
	case InvalidNumber:
		return "invalid number"
	case NoBuf:
		return "no buffer"
	case InvalidString:
		return "invalid string"
	}
	return "generator status " + strconv.Itoa(int(s))
}
