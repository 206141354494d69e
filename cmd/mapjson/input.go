package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/reoring/mapjson"
	"github.com/reoring/mapjson/source/gojson"
	yamlsrc "github.com/reoring/mapjson/source/yaml"
)

const (
	formatJSON   = "json"
	formatNDJSON = "ndjson"
	formatYAML   = "yaml"
)

type decoder interface {
	Decode() (mapjson.Value, error)
}

// detectFormat picks the input format from the file extension when -in is
// not given.
func detectFormat(name, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".ndjson", ".jsonl":
		return formatNDJSON
	}
	return formatJSON
}

func newDecoder(r io.Reader, format string, cfg config) decoder {
	if format == formatYAML {
		return yamlsrc.NewDecoder(r)
	}
	return gojson.NewDecoder(r, gojson.DecodeOpt{RejectDuplicateKeys: cfg.RejectDupKeys})
}

// eachDocument calls fn for every document in r. Plain JSON input must hold
// exactly one document.
func eachDocument(r io.Reader, format string, cfg config, fn func(i int, v mapjson.Value) error) error {
	dec := newDecoder(r, format, cfg)
	if format == formatJSON {
		v, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode: empty input")
		}
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		if _, err := dec.Decode(); !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode: trailing data after the document (use -in ndjson)")
		}
		return fn(0, v)
	}
	for i := 0; ; i++ {
		v, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode document %d: %w", i, err)
		}
		if err := fn(i, v); err != nil {
			return err
		}
	}
}
