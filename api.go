package mapjson

import (
	"context"
	"io"
	"math"
)

// Marshal encodes v into a single byte slice. Use an Encoder with a sink for
// documents that should not be held in memory.
func Marshal(v Value, opt ...EncodeOpt) ([]byte, error) {
	enc := NewEncoder(opt...)
	defer enc.Close()
	var out []byte
	err := enc.Serialize(v, math.MaxInt, func(p []byte) error {
		out = append(out, p...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WriterSink adapts an io.Writer into a Sink.
func WriterSink(w io.Writer) Sink {
	return func(p []byte) error {
		_, err := w.Write(p)
		return err
	}
}

// Encode streams v to w in DefaultFlushThreshold-sized chunks. ctx is checked
// before every write; a cancelled context aborts the walk with a *SinkError
// wrapping ctx.Err().
func Encode(ctx context.Context, w io.Writer, v Value, opt ...EncodeOpt) error {
	enc := NewEncoder(opt...)
	defer enc.Close()
	write := WriterSink(w)
	return enc.Serialize(v, DefaultFlushThreshold, func(p []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return write(p)
	})
}
