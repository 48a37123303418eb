package sink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/loghive/loghub"
)

func testEntry(level loghub.Level, msg string) loghub.Entry {
	return loghub.Entry{
		Time:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Level:   level,
		Message: msg,
	}
}

func TestConsole_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(ConsoleConfig{Writer: &buf})

	if err := c.Deliver(testEntry(loghub.LevelInfo, "hello")); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	got := buf.String()
	if got != "2026-03-14 09:26:53.000 INFO hello\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatal("expected no ANSI sequences for non-terminal writer")
	}
}

func TestConsole_OneLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(ConsoleConfig{Writer: &buf})

	for i := 0; i < 3; i++ {
		if err := c.Deliver(testEntry(loghub.LevelWarning, "w")); err != nil {
			t.Fatalf("Deliver failed: %v", err)
		}
	}

	lines := strings.Count(buf.String(), "\n")
	if lines != 3 {
		t.Fatalf("expected 3 lines, got %d", lines)
	}
}
