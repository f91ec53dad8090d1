// Package prompt is the single capability through which harukit asks the
// user anything. Commands and the installer depend on Prompter only.
package prompt

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	herrors "github.com/harukit/harukit/internal/errors"
	"github.com/harukit/harukit/internal/picker"
)

// Option is one choice offered by Select
type Option struct {
	Value       string
	Description string
	Selected    bool
}

// Prompter asks questions and blocks until answered
type Prompter interface {
	// Select returns the chosen option values. An empty result means the
	// user chose nothing or cancelled.
	Select(title string, options []Option) ([]string, error)
	Confirm(question string, def bool) (bool, error)
	Input(question, def string) (string, error)
}

// Terminal prompts on a TTY with Bubble Tea
type Terminal struct {
	in  *os.File
	out io.Writer
}

// NewTerminal creates a prompter reading from in and drawing to out
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Interactive reports whether in is a terminal
func (t *Terminal) Interactive() bool {
	fd := t.in.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (t *Terminal) options() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(t.in), tea.WithOutput(t.out)}
}

// Select implements Prompter
func (t *Terminal) Select(title string, options []Option) ([]string, error) {
	if !t.Interactive() {
		return nil, herrors.ErrNotInteractive
	}

	items := make([]picker.Item, len(options))
	for i, o := range options {
		items[i] = picker.Item{ID: o.Value, Label: o.Value, Description: o.Description, Selected: o.Selected}
	}
	return picker.Run(title, items, t.options()...)
}

// Confirm implements Prompter
func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	if !t.Interactive() {
		return false, herrors.ErrNotInteractive
	}
	return picker.RunConfirm(question, def, t.options()...)
}

// Input implements Prompter
func (t *Terminal) Input(question, def string) (string, error) {
	if !t.Interactive() {
		return "", herrors.ErrNotInteractive
	}
	return picker.RunInput(question, def, t.options()...)
}

// Defaults answers every question with its default. It backs --yes and
// non-interactive runs.
type Defaults struct{}

// Select implements Prompter. There is no default selection.
func (Defaults) Select(string, []Option) ([]string, error) {
	return nil, herrors.ErrNotInteractive
}

// Confirm implements Prompter
func (Defaults) Confirm(_ string, def bool) (bool, error) {
	return def, nil
}

// Input implements Prompter
func (Defaults) Input(_ string, def string) (string, error) {
	return def, nil
}
