package mapjson

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/rs/zerolog"

	eng "github.com/reoring/mapjson/internal/engine"
)

// Sink receives successive chunks of the encoded document, in order, with no
// gaps or overlaps. p is only valid until the sink returns. A non-nil error
// aborts the Serialize call.
type Sink func(p []byte) error

// Stats describes the most recent Serialize call.
type Stats struct {
	Bytes   int64 // bytes delivered to the sink
	Flushes int   // sink invocations
}

// Encoder streams Values as JSON. It owns one generator and its buffer and
// may be reused for any number of Serialize calls, but not concurrently; use
// one Encoder per goroutine.
type Encoder struct {
	gen       *eng.Generator
	orderKeys bool
	log       zerolog.Logger

	busy      bool
	threshold int
	sink      Sink
	stats     Stats
}

// NewEncoder returns an Encoder configured by the first opt, if any.
func NewEncoder(opt ...EncodeOpt) *Encoder {
	var o EncodeOpt
	if len(opt) > 0 {
		o = opt[0]
	}
	return &Encoder{
		gen:       eng.New(o.engineOptions()),
		orderKeys: o.OrderKeys,
		log:       o.logger(),
	}
}

// Serialize encodes v depth-first. After each node, once at least
// flushThreshold bytes are buffered they are passed to sink and the buffer
// is cleared; after the whole tree a final flush is always made, even when
// nothing is left. Negative thresholds are treated as 0.
//
// Encode failures are returned as *EncodeError, sink failures as *SinkError.
// Output delivered before a failure is not a usable document. The Encoder is
// ready for reuse after any outcome.
func (e *Encoder) Serialize(v Value, flushThreshold int, sink Sink) error {
	if e.busy {
		return ErrEncoderBusy
	}
	if sink == nil {
		return ErrNilSink
	}
	e.busy = true
	defer func() {
		e.busy = false
		e.sink = nil
	}()

	e.gen.Reset()
	e.gen.Clear()
	e.threshold = max(flushThreshold, 0)
	e.sink = sink
	e.stats = Stats{}
	start := time.Now()

	err := e.generate(v)
	if err == nil {
		err = e.flush(0)
	}
	if err != nil {
		e.gen.Clear()
		e.log.Debug().
			Err(err).
			Int64("bytes", e.stats.Bytes).
			Int("flushes", e.stats.Flushes).
			Msg("serialize aborted")
		return rooted(err)
	}
	e.log.Debug().
		Int64("bytes", e.stats.Bytes).
		Int("flushes", e.stats.Flushes).
		Bool("order_keys", e.orderKeys).
		Dur("took", time.Since(start)).
		Msg("serialize done")
	return nil
}

// LastStats reports what the most recent Serialize call delivered.
func (e *Encoder) LastStats() Stats { return e.stats }

// Close releases the generator buffer. Later Serialize calls fail with
// CodeNoBuffer.
func (e *Encoder) Close() error {
	e.gen.Free()
	return nil
}

func (e *Encoder) generate(v Value) error {
	var err error
	switch v := v.(type) {
	case Null:
		err = e.check(e.gen.Null())
	case Bool:
		err = e.check(e.gen.Bool(bool(v)))
	case Int:
		err = e.check(e.gen.Integer(int64(v)))
	case Double:
		err = e.check(e.gen.Double(float64(v)))
	case String:
		err = e.check(e.gen.String(string(v)))
	case Array:
		err = e.generateArray(v)
	case Map:
		err = e.generateMap(v)
	default:
		return incompatible(v)
	}
	if err != nil {
		return err
	}
	return e.flush(e.threshold)
}

func (e *Encoder) generateArray(a Array) error {
	if err := e.check(e.gen.ArrayOpen()); err != nil {
		return err
	}
	for i, item := range a {
		if err := e.generate(item); err != nil {
			return atIndex(err, i)
		}
	}
	return e.check(e.gen.ArrayClose())
}

func (e *Encoder) generateMap(m Map) error {
	if err := e.check(e.gen.MapOpen()); err != nil {
		return err
	}
	if e.orderKeys {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if err := e.generateEntry(k, m[k]); err != nil {
				return err
			}
		}
	} else {
		for k, v := range m {
			if err := e.generateEntry(k, v); err != nil {
				return err
			}
		}
	}
	return e.check(e.gen.MapClose())
}

func (e *Encoder) generateEntry(k string, v Value) error {
	if err := e.check(e.gen.String(k)); err != nil {
		return atField(err, k)
	}
	if err := e.generate(v); err != nil {
		return atField(err, k)
	}
	return nil
}

// check translates a generator result into the EncodeError taxonomy.
// GenerationComplete counts as success.
func (e *Encoder) check(err error) error {
	if err == nil {
		return nil
	}
	var st eng.Status
	if !errors.As(err, &st) {
		return newEncodeError(CodeUnknown, err)
	}
	var code string
	switch st {
	case eng.GenerationComplete:
		return nil
	case eng.KeysMustBeStrings:
		code = CodeKeysMustBeStrings
	case eng.MaxDepthExceeded:
		code = CodeMaxDepthExceeded
	case eng.InErrorState:
		code = CodeInErrorState
	case eng.InvalidNumber:
		code = CodeInvalidNumber
	case eng.NoBuf:
		code = CodeNoBuffer
	case eng.InvalidString:
		code = CodeInvalidString
	default:
		code = CodeUnknown
	}
	return newEncodeError(code, st)
}

// flush hands the buffer to the sink when it holds at least highwater bytes.
func (e *Encoder) flush(highwater int) error {
	buf, err := e.gen.Buf()
	if err != nil {
		return newEncodeError(CodeBufferUnavailable, err)
	}
	if len(buf) < highwater {
		return nil
	}
	if err := e.sink(buf); err != nil {
		return &SinkError{Err: err}
	}
	e.stats.Bytes += int64(len(buf))
	e.stats.Flushes++
	e.gen.Clear()
	return nil
}
