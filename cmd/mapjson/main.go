package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/reoring/mapjson"
	"github.com/reoring/mapjson/i18n"
	"github.com/reoring/mapjson/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "mapjson CLI\n\nUsage:\n  mapjson encode [flags] [file ...]\n  mapjson hash [flags] [file ...]\n\nReads JSON, NDJSON or YAML (stdin when no file or \"-\" is given) and\nre-encodes each document through the streaming encoder.\nRun \"mapjson <command> -h\" for flags.")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "encode":
		return subcommand("encode", args[1:], stdin, stdout, stderr, encodeDocs)
	case "hash":
		return subcommand("hash", args[1:], stdin, stdout, stderr, hashDocs)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

// action processes every document of one input.
type action func(env *env, name string, r io.Reader) error

type env struct {
	cfg config
	log zerolog.Logger
	out *bufio.Writer
	enc *mapjson.Encoder
}

func subcommand(name string, args []string, stdin io.Reader, stdout, stderr io.Writer, act action) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var fv flagValues
	bindFlags(fs, &fv)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	cfg, err := fv.resolve(fs)
	if err != nil {
		fmt.Fprintf(stderr, "mapjson: %v\n", err)
		return 2
	}
	i18n.SetLanguage(cfg.Lang)

	log := logging.New(stderr, cfg.Verbose)
	opt := cfg.encodeOpt()
	opt.Logger = &log
	e := &env{cfg: cfg, log: log, out: bufio.NewWriter(stdout), enc: mapjson.NewEncoder(opt)}
	defer e.enc.Close()

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	code := 0
	for _, in := range inputs {
		if err := runInput(e, in, stdin, act); err != nil {
			log.Error().Err(err).Str("input", in).Msg(name + " failed")
			code = 1
			break
		}
	}
	if err := e.out.Flush(); err != nil {
		log.Error().Err(err).Msg("write output")
		return 1
	}
	return code
}

func runInput(e *env, name string, stdin io.Reader, act action) error {
	if name == "-" {
		return act(e, name, stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return act(e, name, f)
}

func encodeDocs(e *env, name string, r io.Reader) error {
	format := detectFormat(name, e.cfg.Input)
	return eachDocument(r, format, e.cfg, func(i int, v mapjson.Value) error {
		if err := e.enc.Serialize(v, e.cfg.FlushThreshold, mapjson.WriterSink(e.out)); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		// indented output already ends with a newline
		if e.cfg.Indent == "" {
			if err := e.out.WriteByte('\n'); err != nil {
				return err
			}
		}
		st := e.enc.LastStats()
		e.log.Debug().Str("input", name).Int("doc", i).Int64("bytes", st.Bytes).Int("flushes", st.Flushes).Msg("encoded")
		return nil
	})
}

func hashDocs(e *env, name string, r io.Reader) error {
	format := detectFormat(name, e.cfg.Input)
	return eachDocument(r, format, e.cfg, func(i int, v mapjson.Value) error {
		h, err := mapjson.ContentHash(v, e.cfg.encodeOpt())
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		label := name
		if i > 0 {
			label = fmt.Sprintf("%s#%d", name, i)
		}
		_, err = fmt.Fprintf(e.out, "%016x  %s\n", h, label)
		return err
	})
}
