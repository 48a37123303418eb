package loghub

import (
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarning, "WARNING"},
		{LevelError, "ERROR"},
		{Level(99), "LEVEL(99)"},
	}
	for _, c := range cases {
		if got := c.level.String(); got != c.want {
			t.Errorf("Level(%d).String() = %q, want %q", c.level, got, c.want)
		}
	}
}

func TestEntryFormat(t *testing.T) {
	e := Entry{
		Time:    time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC),
		Level:   LevelWarning,
		Message: "disk almost full",
	}
	want := "2026-03-14 09:26:53.589 WARNING disk almost full"
	if got := e.Format(); got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}
