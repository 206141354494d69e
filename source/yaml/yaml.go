// Package yaml decodes YAML documents into mapjson Values using gopkg.in/yaml.v3.
//
// Scalars keep their resolved YAML type (null, bool, int, float, string);
// timestamps and binary scalars are kept as their source text. Aliases and
// merge keys are expanded. Mapping keys must be scalars.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/reoring/mapjson"
)

// maxAliasDepth stops alias chains that refer back to themselves.
const maxAliasDepth = 100

// Decoder reads a stream of YAML documents.
type Decoder struct {
	dec *yamlv3.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: yamlv3.NewDecoder(r)}
}

// Decode reads the next document. It returns io.EOF once the input is
// exhausted.
func (d *Decoder) Decode() (mapjson.Value, error) {
	var n yamlv3.Node
	if err := d.dec.Decode(&n); err != nil {
		return nil, err
	}
	return convert(&n, 0)
}

// DecodeBytes decodes the first document in b. An empty input decodes to null.
func DecodeBytes(b []byte) (mapjson.Value, error) {
	v, err := NewDecoder(bytes.NewReader(b)).Decode()
	if errors.Is(err, io.EOF) {
		return mapjson.Null{}, nil
	}
	return v, err
}

func convert(n *yamlv3.Node, aliases int) (mapjson.Value, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return mapjson.Null{}, nil
		}
		return convert(n.Content[0], aliases)
	case yamlv3.AliasNode:
		if aliases >= maxAliasDepth {
			return nil, fmt.Errorf("yaml: line %d: alias chain too deep", n.Line)
		}
		return convert(n.Alias, aliases+1)
	case yamlv3.SequenceNode:
		arr := make(mapjson.Array, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := convert(c, aliases)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yamlv3.MappingNode:
		m := make(mapjson.Map, len(n.Content)/2)
		if err := mergeInto(m, n, aliases); err != nil {
			return nil, err
		}
		return m, nil
	case yamlv3.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

// mergeInto adds the entries of mapping n to m. Entries written in n win over
// entries pulled in through "<<".
func mergeInto(m mapjson.Map, n *yamlv3.Node, aliases int) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, val := n.Content[i], n.Content[i+1]
		if k.Kind == yamlv3.ScalarNode && k.ShortTag() == "!!merge" {
			if err := merge(m, val, aliases); err != nil {
				return err
			}
		}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, val := n.Content[i], n.Content[i+1]
		if k.Kind != yamlv3.ScalarNode {
			return fmt.Errorf("yaml: line %d: %w", k.Line, mapjson.ErrKeysMustBeStrings)
		}
		if k.ShortTag() == "!!merge" {
			continue
		}
		v, err := convert(val, aliases)
		if err != nil {
			return err
		}
		m[k.Value] = v
	}
	return nil
}

func merge(m mapjson.Map, src *yamlv3.Node, aliases int) error {
	for src.Kind == yamlv3.AliasNode {
		if aliases >= maxAliasDepth {
			return fmt.Errorf("yaml: line %d: alias chain too deep", src.Line)
		}
		src, aliases = src.Alias, aliases+1
	}
	switch src.Kind {
	case yamlv3.MappingNode:
		return mergeInto(m, src, aliases)
	case yamlv3.SequenceNode:
		// earlier mappings in the list take precedence
		for i := len(src.Content) - 1; i >= 0; i-- {
			if err := merge(m, src.Content[i], aliases); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("yaml: line %d: merge value must be a mapping", src.Line)
}

func scalar(n *yamlv3.Node) (mapjson.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return mapjson.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return mapjson.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return mapjson.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return mapjson.Double(float64(u)), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("yaml: line %d: integer %q out of range", n.Line, n.Value)
		}
		return mapjson.Double(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		// .nan and .inf are kept; the encoder reports them with their path
		return mapjson.Double(f), nil
	}
	return mapjson.String(n.Value), nil
}
