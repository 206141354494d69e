package mapjson

import (
	"github.com/rs/zerolog"

	eng "github.com/reoring/mapjson/internal/engine"
)

// DefaultFlushThreshold is the buffered byte count at which Serialize hands
// output to the sink when callers have no better figure.
const DefaultFlushThreshold = 4096

// DefaultMaxDepth is the nesting limit applied when EncodeOpt.MaxDepth is zero.
const DefaultMaxDepth = eng.DefaultMaxDepth

// EncodeOpt bundles encoder options. The zero value gives compact output,
// arbitrary key order, UTF-8 validation and DefaultMaxDepth.
type EncodeOpt struct {
	// OrderKeys emits map entries sorted by byte-wise key comparison, making
	// output reproducible for hashing, diffing and fixtures.
	OrderKeys bool
	// MaxDepth bounds array/map nesting (0 = DefaultMaxDepth).
	MaxDepth int
	// Indent enables beautified output (one entry per line).
	Indent string
	// EscapeSolidus writes '/' as "\/" inside strings.
	EscapeSolidus bool
	// AllowInvalidUTF8 passes strings through without UTF-8 validation.
	AllowInvalidUTF8 bool
	// Logger receives debug events per call. Nil disables logging.
	Logger *zerolog.Logger
}

func (o EncodeOpt) engineOptions() eng.Options {
	return eng.Options{
		MaxDepth:         o.MaxDepth,
		Indent:           o.Indent,
		EscapeSolidus:    o.EscapeSolidus,
		AllowInvalidUTF8: o.AllowInvalidUTF8,
	}
}

func (o EncodeOpt) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}
