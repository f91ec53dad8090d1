package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel asks a yes/no question
type ConfirmModel struct {
	question string
	value    bool
	done     bool
	quitting bool
}

// NewConfirm creates a confirm model preset to def
func NewConfirm(question string, def bool) ConfirmModel {
	return ConfirmModel{question: question, value: def}
}

// Value returns the answer. A cancelled prompt answers no.
func (m ConfirmModel) Value() bool {
	return m.value && !m.quitting
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m ConfirmModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	yes, no := "Yes", "No"
	if m.value {
		yes = selectedStyle.Render("> Yes")
		no = faintStyle.Render("  No")
	} else {
		yes = faintStyle.Render("  Yes")
		no = selectedStyle.Render("> No")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.question))
	b.WriteString("\n\n")
	b.WriteString(yes + "   " + no)
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render("y/n • ←/→: switch • enter: confirm"))
	return b.String()
}

// RunConfirm asks question and returns the answer
func RunConfirm(question string, def bool, opts ...tea.ProgramOption) (bool, error) {
	final, err := tea.NewProgram(NewConfirm(question, def), opts...).Run()
	if err != nil {
		return false, err
	}
	return final.(ConfirmModel).Value(), nil
}
