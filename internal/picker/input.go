package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModel reads one line of text
type InputModel struct {
	question string
	def      string
	input    textinput.Model
	done     bool
	quitting bool
}

// NewInput creates an input model. An empty answer yields def.
func NewInput(question, def string) InputModel {
	ti := textinput.New()
	ti.Placeholder = def
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	return InputModel{question: question, def: def, input: ti}
}

// Value returns the trimmed answer, or the default when empty or cancelled
func (m InputModel) Value() string {
	if m.quitting {
		return m.def
	}
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	return m.def
}

// Init implements tea.Model
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m InputModel) View() string {
	if m.done || m.quitting {
		return ""
	}
	return titleStyle.Render(m.question) + "\n\n" + m.input.View() + "\n\n" +
		faintStyle.Render("enter: confirm • esc: use default")
}

// RunInput asks question and returns the answer
func RunInput(question, def string, opts ...tea.ProgramOption) (string, error) {
	final, err := tea.NewProgram(NewInput(question, def), opts...).Run()
	if err != nil {
		return "", err
	}
	return final.(InputModel).Value(), nil
}
