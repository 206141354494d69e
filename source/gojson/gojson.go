// Package gojson decodes JSON documents into mapjson Values using goccy/go-json.
//
// Numbers are read as text: integral literals that fit int64 become mapjson.Int,
// everything else mapjson.Double. Object member order from the input is not
// retained.
package gojson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/mapjson"
)

// DefaultMaxDepth bounds container nesting when DecodeOpt.MaxDepth is zero.
const DefaultMaxDepth = 10000

// DecodeOpt configures a Decoder.
type DecodeOpt struct {
	// RejectDuplicateKeys fails a document that repeats an object member name.
	// When false the last occurrence wins.
	RejectDuplicateKeys bool
	// MaxDepth bounds container nesting (0 = DefaultMaxDepth).
	MaxDepth int
}

// Decoder reads a stream of whitespace-separated JSON documents (a single
// document, or NDJSON).
type Decoder struct {
	dec      *j.Decoder
	dupKeys  bool
	maxDepth int
	depth    int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, opt ...DecodeOpt) *Decoder {
	var o DecodeOpt
	if len(opt) > 0 {
		o = opt[0]
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec, dupKeys: o.RejectDuplicateKeys, maxDepth: o.MaxDepth}
}

// Decode reads the next document. It returns io.EOF once the input is
// exhausted.
func (d *Decoder) Decode() (mapjson.Value, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return nil, err
	}
	d.depth = 0
	return d.value(tok)
}

// DecodeBytes decodes exactly one document from b. Trailing data other than
// whitespace is an error.
func DecodeBytes(b []byte, opt ...DecodeOpt) (mapjson.Value, error) {
	d := NewDecoder(bytes.NewReader(b), opt...)
	v, err := d.Decode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if d.dec.More() {
		return nil, fmt.Errorf("gojson: trailing data after document at offset %d", d.dec.InputOffset())
	}
	return v, nil
}

func (d *Decoder) value(tok any) (mapjson.Value, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return d.object()
		case '[':
			return d.array()
		}
		return nil, fmt.Errorf("gojson: unexpected %q at offset %d", rune(v), d.dec.InputOffset())
	case string:
		return mapjson.String(v), nil
	case bool:
		return mapjson.Bool(v), nil
	case j.Number:
		return number(string(v))
	case nil:
		return mapjson.Null{}, nil
	}
	return nil, fmt.Errorf("gojson: unexpected token %T", tok)
}

func (d *Decoder) enter() error {
	d.depth++
	if d.depth > d.maxDepth {
		return fmt.Errorf("gojson: nesting exceeds %d at offset %d", d.maxDepth, d.dec.InputOffset())
	}
	return nil
}

func (d *Decoder) object() (mapjson.Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	m := mapjson.Map{}
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("gojson: object key must be a string, got %T", tok)
		}
		if d.dupKeys {
			if _, seen := m[key]; seen {
				return nil, fmt.Errorf("gojson: duplicate key %q at offset %d", key, d.dec.InputOffset())
			}
		}
		tok, err = d.dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
	// closing '}'
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	d.depth--
	return m, nil
}

func (d *Decoder) array() (mapjson.Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	arr := mapjson.Array{}
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	// closing ']'
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	d.depth--
	return arr, nil
}

func number(s string) (mapjson.Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return mapjson.Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("gojson: number %q: %w", s, err)
	}
	return mapjson.Double(f), nil
}
