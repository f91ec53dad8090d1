// Package picker holds the Bubble Tea models behind harukit's interactive
// prompts: a filterable multi-select, a yes/no confirm and a text input.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

const maxVisibleItems = 12

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// Item is one selectable row
type Item struct {
	ID          string
	Label       string
	Description string
	Selected    bool
}

// Model is a multi-select list with a fuzzy filter
type Model struct {
	title    string
	items    []Item
	selected map[string]bool
	visible  []int // indexes into items after filtering
	cursor   int   // index into visible
	offset   int
	filter   textinput.Model
	editing  bool
	done     bool
	quitting bool
}

// New creates a multi-select model
func New(title string, items []Item) Model {
	selected := make(map[string]bool)
	for _, item := range items {
		if item.Selected {
			selected[item.ID] = true
		}
	}

	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 50
	ti.Width = 40

	m := Model{
		title:    title,
		items:    items,
		selected: selected,
		filter:   ti,
	}
	m.refilter()
	return m
}

// Selected returns the IDs of selected items in their original order
func (m Model) Selected() []string {
	result := []string{}
	for _, item := range m.items {
		if m.selected[item.ID] {
			result = append(result, item.ID)
		}
	}
	return result
}

// IsQuitting reports whether the user cancelled
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// refilter recomputes the visible rows, best fuzzy match first
func (m *Model) refilter() {
	m.cursor = 0
	m.offset = 0

	query := m.filter.Value()
	if query == "" {
		m.visible = make([]int, len(m.items))
		for i := range m.items {
			m.visible[i] = i
		}
		return
	}

	labels := make([]string, len(m.items))
	for i, item := range m.items {
		labels[i] = item.Label + " " + item.Description
	}
	m.visible = nil
	for _, match := range fuzzy.Find(query, labels) {
		m.visible = append(m.visible, match.Index)
	}
}

func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxVisibleItems {
		m.offset = m.cursor - maxVisibleItems + 1
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch keyMsg.String() {
		case "esc":
			m.editing = false
			m.filter.SetValue("")
			m.filter.Blur()
			m.refilter()
			return m, nil
		case "enter":
			m.editing = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(keyMsg)
		m.refilter()
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Filter):
		m.editing = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scroll()
		}

	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.scroll()
		}

	case key.Matches(keyMsg, keys.Toggle):
		if len(m.visible) > 0 {
			id := m.items[m.visible[m.cursor]].ID
			m.selected[id] = !m.selected[id]
		}

	case key.Matches(keyMsg, keys.All):
		// Toggle every visible row
		all := true
		for _, i := range m.visible {
			if !m.selected[m.items[i].ID] {
				all = false
				break
			}
		}
		for _, i := range m.visible {
			m.selected[m.items[i].ID] = !all
		}

	case key.Matches(keyMsg, keys.Confirm):
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.done || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	if m.editing {
		b.WriteString("\n/ ")
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	} else if m.filter.Value() != "" {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("Filter: " + m.filter.Value() + " (/ to edit, esc to clear)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(faintStyle.Render("  (no matching components)"))
		b.WriteString("\n")
	}

	if m.offset > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  ↑ %d more", m.offset)))
		b.WriteString("\n")
	}

	end := min(m.offset+maxVisibleItems, len(m.visible))
	for row := m.offset; row < end; row++ {
		item := m.items[m.visible[row]]

		cursor := "  "
		if row == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		checked := "[ ]"
		if m.selected[item.ID] {
			checked = selectedStyle.Render("[x]")
		}

		b.WriteString(fmt.Sprintf("%s%s %s", cursor, checked, item.Label))
		if item.Description != "" {
			b.WriteString(faintStyle.Render(" - " + item.Description))
		}
		b.WriteString("\n")
	}

	if rest := len(m.visible) - end; rest > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  ↓ %d more", rest)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("space: toggle • a: all/none • /: filter • enter: confirm • q: quit"))

	return b.String()
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	Filter  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Toggle:  key.NewBinding(key.WithKeys(" ")),
	All:     key.NewBinding(key.WithKeys("a")),
	Filter:  key.NewBinding(key.WithKeys("/")),
	Confirm: key.NewBinding(key.WithKeys("enter")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

// Run shows the multi-select and returns the chosen IDs. A cancelled
// picker returns nil.
func Run(title string, items []Item, opts ...tea.ProgramOption) ([]string, error) {
	final, err := tea.NewProgram(New(title, items), opts...).Run()
	if err != nil {
		return nil, err
	}

	fm := final.(Model)
	if fm.IsQuitting() {
		return nil, nil
	}
	return fm.Selected(), nil
}
