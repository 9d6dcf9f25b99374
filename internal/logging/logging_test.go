package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("lines below warn were written: %q", out)
	}
	if !strings.Contains(out, "WARN: warn 3") || !strings.Contains(out, "ERROR: error 4") {
		t.Fatalf("missing warn/error lines: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		" error ": LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestDiscard_WritesNothing(t *testing.T) {
	l := Discard()
	if l.Enabled(LevelError) {
		t.Fatal("discard logger should not be enabled at error")
	}
	var nilLogger *Logger
	nilLogger.Infof("no panic on nil logger")
}
