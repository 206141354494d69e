package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/mapjson"
)

// config holds every setting the subcommands accept. Values come from the
// defaults, then an optional YAML file, then explicitly set flags.
type config struct {
	OrderKeys        bool   `yaml:"order_keys"`
	FlushThreshold   int    `yaml:"flush_threshold"`
	Indent           string `yaml:"indent"`
	MaxDepth         int    `yaml:"max_depth"`
	EscapeSolidus    bool   `yaml:"escape_solidus"`
	AllowInvalidUTF8 bool   `yaml:"allow_invalid_utf8"`
	RejectDupKeys    bool   `yaml:"reject_duplicate_keys"`
	Input            string `yaml:"input"`
	Lang             string `yaml:"lang"`
	Verbose          bool   `yaml:"verbose"`
}

func defaultConfig() config {
	return config{
		FlushThreshold: mapjson.DefaultFlushThreshold,
		MaxDepth:       mapjson.DefaultMaxDepth,
		Lang:           "en",
	}
}

// loadConfig decodes a YAML config file over cfg. Unknown keys are rejected.
func loadConfig(path string, cfg *config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.validate()
}

func (c config) validate() error {
	switch c.Input {
	case "", formatJSON, formatNDJSON, formatYAML:
	default:
		return fmt.Errorf("unknown input format %q (want json, ndjson or yaml)", c.Input)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	return nil
}

func (c config) encodeOpt() mapjson.EncodeOpt {
	return mapjson.EncodeOpt{
		OrderKeys:        c.OrderKeys,
		MaxDepth:         c.MaxDepth,
		Indent:           c.Indent,
		EscapeSolidus:    c.EscapeSolidus,
		AllowInvalidUTF8: c.AllowInvalidUTF8,
	}
}

// flagValues mirrors config for flag parsing; only flags the user set are
// copied over the file values.
type flagValues struct {
	configPath string
	cfg        config
}

func bindFlags(fs *flag.FlagSet, fv *flagValues) {
	d := defaultConfig()
	fs.StringVar(&fv.configPath, "config", "", "YAML config file")
	fs.BoolVar(&fv.cfg.OrderKeys, "sort", d.OrderKeys, "emit object keys in byte order")
	fs.IntVar(&fv.cfg.FlushThreshold, "flush", d.FlushThreshold, "bytes buffered before each write")
	fs.StringVar(&fv.cfg.Indent, "indent", d.Indent, "indent string; empty for compact output")
	fs.IntVar(&fv.cfg.MaxDepth, "max-depth", d.MaxDepth, "maximum container nesting")
	fs.BoolVar(&fv.cfg.EscapeSolidus, "escape-solidus", d.EscapeSolidus, `write "/" as "\/"`)
	fs.BoolVar(&fv.cfg.AllowInvalidUTF8, "allow-invalid-utf8", d.AllowInvalidUTF8, "pass strings through without UTF-8 validation")
	fs.BoolVar(&fv.cfg.RejectDupKeys, "reject-dup-keys", d.RejectDupKeys, "fail JSON input that repeats an object key")
	fs.StringVar(&fv.cfg.Input, "in", d.Input, "input format: json, ndjson or yaml (default: by file extension)")
	fs.StringVar(&fv.cfg.Lang, "lang", d.Lang, "error message language: en or ja")
	fs.BoolVar(&fv.cfg.Verbose, "v", d.Verbose, "enable debug logs")
}

// resolve merges defaults, the config file and the flags the user set.
func (fv *flagValues) resolve(fs *flag.FlagSet) (config, error) {
	cfg := defaultConfig()
	if fv.configPath != "" {
		if err := loadConfig(fv.configPath, &cfg); err != nil {
			return config{}, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sort":
			cfg.OrderKeys = fv.cfg.OrderKeys
		case "flush":
			cfg.FlushThreshold = fv.cfg.FlushThreshold
		case "indent":
			cfg.Indent = fv.cfg.Indent
		case "max-depth":
			cfg.MaxDepth = fv.cfg.MaxDepth
		case "escape-solidus":
			cfg.EscapeSolidus = fv.cfg.EscapeSolidus
		case "allow-invalid-utf8":
			cfg.AllowInvalidUTF8 = fv.cfg.AllowInvalidUTF8
		case "reject-dup-keys":
			cfg.RejectDupKeys = fv.cfg.RejectDupKeys
		case "in":
			cfg.Input = fv.cfg.Input
		case "lang":
			cfg.Lang = fv.cfg.Lang
		case "v":
			cfg.Verbose = fv.cfg.Verbose
		}
	})
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}
