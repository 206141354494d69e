package mapjson_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reoring/mapjson"
	"github.com/reoring/mapjson/i18n"
)

func TestEncodeError_Message(t *testing.T) {
	_, err := mapjson.Marshal(mapjson.Map{"a~b": mapjson.Array{nil}})
	ee, ok := mapjson.AsEncodeError(err)
	if !ok {
		t.Fatalf("expected EncodeError, got %v", err)
	}
	if ee.Path != "/a~0b/0" {
		t.Fatalf("path: %q", ee.Path)
	}
	want := "mapjson: incompatible_type at /a~0b/0: incompatible type (<nil>)"
	if ee.Error() != want {
		t.Fatalf("got %q want %q", ee.Error(), want)
	}
	if ee.Cause == nil {
		t.Fatalf("incompatible type should carry a cause")
	}
}

func TestEncodeError_IsMatchesCodeOnly(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &mapjson.EncodeError{Code: mapjson.CodeInvalidNumber, Path: "/x"})
	if !errors.Is(err, mapjson.ErrInvalidNumber) {
		t.Fatalf("errors.Is should match by code through wrapping")
	}
	if errors.Is(err, mapjson.ErrInvalidString) {
		t.Fatalf("different codes must not match")
	}
	if errors.Is(err, mapjson.ErrEncoderBusy) {
		t.Fatalf("EncodeError must not match plain sentinels")
	}
}

func TestEncodeError_Localized(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	_, err := mapjson.Marshal(mapjson.String("\xff"))
	ee, ok := mapjson.AsEncodeError(err)
	if !ok {
		t.Fatalf("expected EncodeError, got %v", err)
	}
	if ee.Message != i18n.T(mapjson.CodeInvalidString, nil) || ee.Message == "invalid string" {
		t.Fatalf("expected localized message, got %q", ee.Message)
	}
}

func TestSinkError_Error(t *testing.T) {
	se := &mapjson.SinkError{Err: errors.New("broken pipe")}
	if se.Error() != "mapjson: sink: broken pipe" {
		t.Fatalf("got %q", se.Error())
	}
	if _, ok := mapjson.AsSinkError(fmt.Errorf("ctx: %w", se)); !ok {
		t.Fatalf("AsSinkError should see through wrapping")
	}
	if _, ok := mapjson.AsSinkError(errors.New("other")); ok {
		t.Fatalf("unexpected SinkError")
	}
}
