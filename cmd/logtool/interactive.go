package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loghive/loghub/hub"
	"github.com/loghive/loghub/sink"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	ref      *hub.Ref
	result   string
	actions  []actionInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type actionInfo struct {
	name   string
	params []paramInfo
	do     func(h *hub.Hub, args []string) (string, error)
}

type paramInfo struct {
	name string
	hint string
}

type modelState int

const (
	stateSelectAction modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel() *interactiveModel {
	return &interactiveModel{
		actions: actions(),
		state:   stateSelectAction,
	}
}

func actions() []actionInfo {
	return []actionInfo{
		{
			name: "post",
			params: []paramInfo{
				{name: "level", hint: "debug|info|warning|error"},
				{name: "message", hint: "text"},
			},
			do: func(h *hub.Hub, args []string) (string, error) {
				lvl, err := parseLevel(args[0])
				if err != nil {
					return "", err
				}
				h.Post(lvl, args[1])
				return "posted", nil
			},
		},
		{
			name: "new-file-sink",
			params: []paramInfo{
				{name: "sink", hint: "registry name"},
				{name: "directory", hint: "path"},
				{name: "base", hint: "log file base name"},
			},
			do: func(h *hub.Hub, args []string) (string, error) {
				handle, err := h.Rotate.New(args[0], sink.RotateConfig{Directory: args[1], Name: args[2]})
				if err != nil {
					return "", err
				}
				file, err := handle.LogFileName()
				// The sink stays installed after the handle is gone; the
				// model's own reference keeps the hub alive.
				handle.Close()
				if err != nil {
					return "", err
				}
				return "writing to " + file, nil
			},
		},
		{
			name: "new-syslog-sink",
			params: []paramInfo{
				{name: "sink", hint: "registry name"},
				{name: "identity", hint: "syslog ident"},
			},
			do: func(h *hub.Hub, args []string) (string, error) {
				handle, err := h.Syslog.New(args[0], sink.SyslogConfig{Identity: args[1]})
				if err != nil {
					return "", err
				}
				handle.Close()
				return "syslog sink installed", nil
			},
		},
		{
			name: "new-console-sink",
			params: []paramInfo{
				{name: "sink", hint: "registry name"},
			},
			do: func(h *hub.Hub, args []string) (string, error) {
				handle, err := h.Console.New(args[0], sink.ConsoleConfig{Writer: os.Stderr})
				if err != nil {
					return "", err
				}
				handle.Close()
				return "console sink installed (stderr)", nil
			},
		},
		{
			name: "change-log-file",
			params: []paramInfo{
				{name: "sink", hint: "registry name"},
				{name: "directory", hint: "path"},
			},
			do: func(h *hub.Hub, args []string) (string, error) {
				handle, err := h.Rotate.Open(args[0])
				if err != nil {
					return "", err
				}
				defer handle.Close()
				path, err := handle.ChangeLogFile(args[1], "")
				if err != nil {
					return "", err
				}
				return "now writing to " + path, nil
			},
		},
		{
			name: "retire-file-sink",
			params: []paramInfo{
				{name: "sink", hint: "registry name"},
			},
			do: func(h *hub.Hub, args []string) (string, error) {
				if err := h.Rotate.Retire(args[0]); err != nil {
					return "", err
				}
				return "retired", nil
			},
		},
		{
			name: "list",
			do: func(h *hub.Hub, _ []string) (string, error) {
				return fmt.Sprintf("console=%d file=%d syslog=%d",
					h.Console.Len(), h.Rotate.Len(), h.Syslog.Len()), nil
			},
		},
	}
}

type acquiredMsg struct {
	err error
	ref *hub.Ref
}

type actionResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.acquire
}

func (m *interactiveModel) acquire() tea.Msg {
	ref, err := hub.Acquire(true)
	if err != nil {
		return acquiredMsg{err: err}
	}
	return acquiredMsg{ref: ref}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.ref != nil {
				m.ref.Close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectAction && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectAction && m.selected < len(m.actions)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectAction:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.runAction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.runAction

			case stateShowResult:
				m.state = stateSelectAction
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectAction
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectAction
				m.result = ""
				m.err = nil
			}
		}

	case acquiredMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ref = msg.ref

	case actionResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	a := m.actions[m.selected]
	m.inputs = make([]textinput.Model, len(a.params))
	for i, p := range a.params {
		ti := textinput.New()
		ti.Placeholder = p.hint
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) runAction() tea.Msg {
	if m.ref == nil {
		return actionResultMsg{err: fmt.Errorf("hub not acquired")}
	}

	a := m.actions[m.selected]
	args := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		args[i] = input.Value()
	}

	result, err := a.do(m.ref.Hub(), args)
	if err != nil {
		return actionResultMsg{err: err}
	}
	return actionResultMsg{result: result}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.ref == nil {
		return "Starting hub..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("loghub"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectAction:
		b.WriteString("Select an action:\n\n")
		for i, a := range m.actions {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatAction(a)))
			} else {
				b.WriteString(cursor + m.formatAction(a))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateInputArgs:
		a := m.actions[m.selected]
		b.WriteString(fmt.Sprintf("Running %s\n\n", actionStyle.Render(a.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(hintStyle.Render(a.params[i].hint))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • esc back"))

	case stateShowResult:
		a := m.actions[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", actionStyle.Render(a.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatAction(a actionInfo) string {
	var params []string
	for _, p := range a.params {
		params = append(params, p.name+": "+hintStyle.Render(p.hint))
	}
	return actionStyle.Render(a.name) + "(" + strings.Join(params, ", ") + ")"
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
