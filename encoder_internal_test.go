package mapjson

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	eng "github.com/reoring/mapjson/internal/engine"
)

func TestCheck_TranslatesStatuses(t *testing.T) {
	e := NewEncoder()
	cases := []struct {
		in   error
		code string
	}{
		{eng.KeysMustBeStrings, CodeKeysMustBeStrings},
		{eng.MaxDepthExceeded, CodeMaxDepthExceeded},
		{eng.InErrorState, CodeInErrorState},
		{eng.InvalidNumber, CodeInvalidNumber},
		{eng.NoBuf, CodeNoBuffer},
		{eng.InvalidString, CodeInvalidString},
		{eng.Status(99), CodeUnknown},
		{errors.New("not a status"), CodeUnknown},
	}
	for _, tc := range cases {
		err := e.check(tc.in)
		ee, ok := err.(*EncodeError)
		if !ok || ee.Code != tc.code {
			t.Fatalf("%v: got %v want code %s", tc.in, err, tc.code)
		}
		if !errors.Is(err, tc.in) {
			t.Fatalf("%v: cause not preserved", tc.in)
		}
	}
	if err := e.check(eng.GenerationComplete); err != nil {
		t.Fatalf("GenerationComplete should be success, got %v", err)
	}
	if err := e.check(nil); err != nil {
		t.Fatalf("nil should stay nil, got %v", err)
	}
}

func TestSerialize_BufferUnavailable(t *testing.T) {
	var printed []byte
	e := &Encoder{
		gen: eng.New(eng.Options{Print: func(p []byte) { printed = append(printed, p...) }}),
		log: zerolog.Nop(),
	}
	err := e.Serialize(Int(1), 0, func([]byte) error { return nil })
	if !errors.Is(err, ErrBufferUnavailable) {
		t.Fatalf("expected ErrBufferUnavailable, got %v", err)
	}
	if string(printed) != "1" {
		t.Fatalf("print callback got %q", printed)
	}
}
