package hub

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Config tunes the hub constructed by the next Acquire. The zero value is
// fully usable.
type Config struct {
	// QueueSize is the depth of the worker's entry queue. Posting blocks once
	// the queue is full. Defaults to 512.
	QueueSize int

	// FlushInterval is how often the worker flushes buffering sinks.
	// Defaults to 2s.
	FlushInterval time.Duration

	// Clock drives entry timestamps and the flush ticker. Tests install
	// clock.NewMock() to step time manually. Defaults to the wall clock.
	Clock clock.Clock
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 512
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 2 * time.Second
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	return c
}
