package loghub

import (
	"fmt"
	"time"
)

// Level tags an Entry with its severity.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the canonical upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", uint8(l))
	}
}

// Entry is a single log record handed to the worker and fanned out to sinks.
// Entries are immutable once posted; sinks receive them by value.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// Format renders the entry as a single plain-text line without a trailing
// newline. Sinks that need a different layout render from the fields instead.
func (e Entry) Format() string {
	return e.Time.Format("2006-01-02 15:04:05.000") + " " + e.Level.String() + " " + e.Message
}
