package engine

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// Generator is an incremental JSON token writer. Callers drive it with
// open/close/value operations in document order; it inserts separators,
// validates what it is given, and accumulates output in a growable buffer
// (or hands it to Options.Print when set).
//
// A Generator is not safe for concurrent use.
type Generator struct {
	opt     Options
	buf     []byte
	scratch []byte
	stack   []state
	failed  bool
	freed   bool
}

// Options controls generator behavior. The zero value produces compact output
// with UTF-8 validation and the default nesting limit.
type Options struct {
	// MaxDepth bounds the number of simultaneously open containers.
	// Zero means DefaultMaxDepth.
	MaxDepth int
	// Indent enables beautified output when non-empty: one entry per line,
	// indented by Indent per level, ": " after keys and a trailing newline.
	Indent string
	// EscapeSolidus writes '/' as "\/".
	EscapeSolidus bool
	// AllowInvalidUTF8 disables UTF-8 validation of strings.
	AllowInvalidUTF8 bool
	// Print receives output directly instead of the internal buffer. The
	// slice is only valid for the duration of the call. When set, Buf
	// reports NoBuf.
	Print func(p []byte)
}

// DefaultMaxDepth matches yajl's compile-time nesting limit.
const DefaultMaxDepth = 128

type state uint8

const (
	stateStart state = iota
	stateMapStart
	stateMapKey
	stateMapVal
	stateArrayStart
	stateInArray
	stateComplete
)

// New allocates a Generator.
func New(opt Options) *Generator {
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = DefaultMaxDepth
	}
	g := &Generator{opt: opt, stack: make([]state, 1, 16)}
	return g
}

// Depth returns the number of currently open containers.
func (g *Generator) Depth() int { return len(g.stack) - 1 }

// Len returns the number of bytes currently buffered.
func (g *Generator) Len() int { return len(g.buf) }

// Buf returns the buffered output. The slice aliases internal storage and is
// invalidated by the next operation.
func (g *Generator) Buf() ([]byte, error) {
	if g.freed || g.opt.Print != nil {
		return nil, NoBuf
	}
	return g.buf, nil
}

// Clear drops buffered output but keeps the generation state.
func (g *Generator) Clear() {
	g.buf = g.buf[:0]
}

// Reset returns the generator to its initial state so a new top-level value
// can be written. Buffered output is kept; call Clear to drop it.
func (g *Generator) Reset() {
	g.stack = g.stack[:1]
	g.stack[0] = stateStart
	g.failed = false
}

// Free releases the buffer. Every later operation reports NoBuf.
func (g *Generator) Free() {
	g.buf = nil
	g.scratch = nil
	g.freed = true
}

// MapOpen starts an object.
func (g *Generator) MapOpen() error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if g.Depth() >= g.opt.MaxDepth {
		return g.fail(MaxDepthExceeded)
	}
	g.insertSep()
	g.stack = append(g.stack, stateMapStart)
	g.commit(append(g.dst(), '{'))
	return nil
}

// MapClose ends the innermost object.
func (g *Generator) MapClose() error {
	if err := g.ensureValid(); err != nil {
		return err
	}
	s := g.top()
	if s != stateMapStart && s != stateMapKey {
		return g.fail(InErrorState)
	}
	g.closeContainer(s == stateMapStart, '}')
	return nil
}

// ArrayOpen starts an array.
func (g *Generator) ArrayOpen() error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if g.Depth() >= g.opt.MaxDepth {
		return g.fail(MaxDepthExceeded)
	}
	g.insertSep()
	g.stack = append(g.stack, stateArrayStart)
	g.commit(append(g.dst(), '['))
	return nil
}

// ArrayClose ends the innermost array.
func (g *Generator) ArrayClose() error {
	if err := g.ensureValid(); err != nil {
		return err
	}
	s := g.top()
	if s != stateArrayStart && s != stateInArray {
		return g.fail(InErrorState)
	}
	g.closeContainer(s == stateArrayStart, ']')
	return nil
}

// Null writes null.
func (g *Generator) Null() error {
	if err := g.beginValue(); err != nil {
		return err
	}
	g.insertSep()
	g.commit(append(g.dst(), "null"...))
	g.endValue()
	return nil
}

// Bool writes true or false.
func (g *Generator) Bool(b bool) error {
	if err := g.beginValue(); err != nil {
		return err
	}
	g.insertSep()
	g.commit(strconv.AppendBool(g.dst(), b))
	g.endValue()
	return nil
}

// Integer writes a decimal integer literal.
func (g *Generator) Integer(i int64) error {
	if err := g.beginValue(); err != nil {
		return err
	}
	g.insertSep()
	g.commit(strconv.AppendInt(g.dst(), i, 10))
	g.endValue()
	return nil
}

// Double writes a finite float. NaN and infinities report InvalidNumber.
func (g *Generator) Double(f float64) error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return g.fail(InvalidNumber)
	}
	g.insertSep()
	g.commit(AppendDouble(g.dst(), f))
	g.endValue()
	return nil
}

// Number writes pre-formatted number text after checking it against the
// JSON number grammar.
func (g *Generator) Number(text string) error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if !ValidNumber(text) {
		return g.fail(InvalidNumber)
	}
	g.insertSep()
	g.commit(append(g.dst(), text...))
	g.endValue()
	return nil
}

// String writes a quoted, escaped string. It is the only value accepted in
// key position.
func (g *Generator) String(s string) error {
	if err := g.ensureValid(); err != nil {
		return err
	}
	if len(s) == 0 {
		g.insertSep()
		g.commit(append(g.dst(), '"', '"'))
		g.endValue()
		return nil
	}
	if !g.opt.AllowInvalidUTF8 && !utf8.ValidString(s) {
		return g.fail(InvalidString)
	}
	g.insertSep()
	g.commit(appendQuoted(g.dst(), s, g.opt.EscapeSolidus))
	g.endValue()
	return nil
}

func (g *Generator) top() state { return g.stack[len(g.stack)-1] }

func (g *Generator) setTop(s state) { g.stack[len(g.stack)-1] = s }

func (g *Generator) ensureValid() error {
	if g.freed {
		return NoBuf
	}
	if g.failed {
		return InErrorState
	}
	if g.top() == stateComplete {
		return GenerationComplete
	}
	return nil
}

// beginValue runs the checks shared by every non-string value.
func (g *Generator) beginValue() error {
	if err := g.ensureValid(); err != nil {
		return err
	}
	if s := g.top(); s == stateMapStart || s == stateMapKey {
		return g.fail(KeysMustBeStrings)
	}
	return nil
}

// fail marks the generator as failed; a rejected value leaves the document
// without something the caller meant to write.
func (g *Generator) fail(s Status) error {
	g.failed = true
	return s
}

func (g *Generator) insertSep() {
	b := g.dst()
	switch g.top() {
	case stateMapKey, stateInArray:
		b = append(b, ',')
	case stateMapVal:
		b = append(b, ':')
		if g.opt.Indent != "" {
			b = append(b, ' ')
		}
	}
	if g.opt.Indent != "" {
		switch g.top() {
		case stateMapStart, stateMapKey, stateArrayStart, stateInArray:
			b = g.appendIndent(b, g.Depth())
		}
	}
	g.commit(b)
}

func (g *Generator) appendIndent(b []byte, depth int) []byte {
	b = append(b, '\n')
	for range depth {
		b = append(b, g.opt.Indent...)
	}
	return b
}

func (g *Generator) closeContainer(empty bool, c byte) {
	g.stack = g.stack[:len(g.stack)-1]
	b := g.dst()
	if g.opt.Indent != "" && !empty {
		b = g.appendIndent(b, g.Depth())
	}
	g.commit(append(b, c))
	g.endValue()
}

// endValue advances the enclosing state after a complete value or key.
func (g *Generator) endValue() {
	switch g.top() {
	case stateStart:
		g.setTop(stateComplete)
		if g.opt.Indent != "" {
			g.commit(append(g.dst(), '\n'))
		}
	case stateMapStart, stateMapKey:
		g.setTop(stateMapVal)
	case stateMapVal:
		g.setTop(stateMapKey)
	case stateArrayStart:
		g.setTop(stateInArray)
	}
}

// dst returns the slice new output should be appended to.
func (g *Generator) dst() []byte {
	if g.opt.Print != nil {
		return g.scratch[:0]
	}
	return g.buf
}

func (g *Generator) commit(b []byte) {
	if g.opt.Print != nil {
		g.scratch = b
		if len(b) > 0 {
			g.opt.Print(b)
		}
		return
	}
	g.buf = b
}
