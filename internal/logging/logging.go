// Package logging builds the console logger used by the mapjson command.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const timeFmt = "01-02 15:04:05"

// level (3) plus two separating spaces
var prefix = strings.Repeat(" ", len(timeFmt)+5)

// New returns a human-readable logger writing to out. Verbose enables debug
// events, including the per-call encoder summaries.
func New(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: timeFmt,
		FormatMessage: func(msg any) string { // pad continuation lines
			s, _ := msg.(string)
			return fmtMessage(s)
		},
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func fmtMessage(msg string) string {
	if !strings.Contains(msg, "\n") {
		return msg
	}
	return strings.ReplaceAll(msg, "\n", "\n"+prefix)
}
