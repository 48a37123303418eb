package hub

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/loghive/loghub"
	"github.com/loghive/loghub/sink"
)

// ConsoleSinks is the façade for colored terminal sinks. Any number of
// instances may be live at once.
type ConsoleSinks struct {
	f *Facade[*sink.Console]
}

// New creates a console sink under name.
func (s *ConsoleSinks) New(name string, cfg sink.ConsoleConfig) (*ConsoleHandle, error) {
	h, err := s.f.New(name, func() (*sink.Console, error) {
		return sink.NewConsole(cfg), nil
	})
	if err != nil {
		return nil, err
	}
	return &ConsoleHandle{Handle: h}, nil
}

// Open returns a fresh handle on the sink created under name.
func (s *ConsoleSinks) Open(name string) (*ConsoleHandle, error) {
	h, err := s.f.Open(name)
	if err != nil {
		return nil, err
	}
	return &ConsoleHandle{Handle: h}, nil
}

// Retire removes the sink's registry bookkeeping and frees its name.
func (s *ConsoleSinks) Retire(name string) error {
	return s.f.Retire(name)
}

// Len returns the number of live console sinks.
func (s *ConsoleSinks) Len() int {
	return s.f.Len()
}

// ConsoleHandle provides console-specific operations on top of the generic
// handle.
type ConsoleHandle struct {
	*Handle[*sink.Console]
}

// SetStyle overrides the lipgloss style used for one level.
func (h *ConsoleHandle) SetStyle(level loghub.Level, style lipgloss.Style) error {
	return h.With(func(s *sink.Console) error {
		s.SetStyle(level, style)
		return nil
	})
}
