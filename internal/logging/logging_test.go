package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug().Msg("hidden")
	l.Info().Int("n", 3).Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug event leaked at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "n=3") {
		t.Fatalf("missing info event: %q", out)
	}

	buf.Reset()
	l = New(&buf, true)
	l.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("verbose logger dropped debug: %q", buf.String())
	}
}

func TestFmtMessage_PadsContinuationLines(t *testing.T) {
	got := fmtMessage("first\nsecond")
	if got != "first\n"+prefix+"second" {
		t.Fatalf("got %q", got)
	}
	if fmtMessage("single") != "single" {
		t.Fatalf("single line changed")
	}
}
