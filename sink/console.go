package sink

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/loghive/loghub"
)

// ConsoleConfig configures a Console sink.
type ConsoleConfig struct {
	Writer     io.Writer // defaults to os.Stdout
	ForceColor bool      // render styles even when Writer is not a terminal
}

// Console renders entries to a terminal with a per-level color style. Styling
// is dropped automatically when the writer is not a TTY so redirected output
// stays clean.
type Console struct {
	w      io.Writer
	color  bool
	styles map[loghub.Level]lipgloss.Style
}

// NewConsole creates the sink.
func NewConsole(cfg ConsoleConfig) *Console {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	color := cfg.ForceColor
	if !color {
		if f, ok := w.(*os.File); ok {
			color = term.IsTerminal(int(f.Fd()))
		}
	}

	return &Console{
		w:     w,
		color: color,
		styles: map[loghub.Level]lipgloss.Style{
			loghub.LevelDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
			loghub.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
			loghub.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
			loghub.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		},
	}
}

// SetStyle overrides the style used for one level.
func (c *Console) SetStyle(level loghub.Level, style lipgloss.Style) {
	c.styles[level] = style
}

// Deliver writes one rendered line.
func (c *Console) Deliver(e loghub.Entry) error {
	line := e.Format()
	if c.color {
		line = c.styles[e.Level].Render(line)
	}
	_, err := io.WriteString(c.w, line+"\n")
	return err
}
