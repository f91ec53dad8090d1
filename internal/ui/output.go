// Package ui formats user-facing console output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	faintStyle   = lipgloss.NewStyle().Faint(true)

	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// Printer writes status lines to one writer
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer for out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Println writes a plain line
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Print writes text without a newline
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.out, a...)
}

// Printf writes formatted text
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Heading writes a bold section title followed by a divider
func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.out, headingStyle.Render(title))
	fmt.Fprintln(p.out, faintStyle.Render(strings.Repeat("─", 50)))
}

// Success writes a ✓ line
func (p *Printer) Success(format string, a ...any) {
	fmt.Fprintf(p.out, "%s %s\n", green("✓"), fmt.Sprintf(format, a...))
}

// Warn writes a ⚠ line
func (p *Printer) Warn(format string, a ...any) {
	fmt.Fprintf(p.out, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, a...))
}

// Fail writes a ✗ line
func (p *Printer) Fail(format string, a ...any) {
	fmt.Fprintf(p.out, "%s %s\n", red("✗"), fmt.Sprintf(format, a...))
}

// Bullet writes an indented list item
func (p *Printer) Bullet(format string, a ...any) {
	fmt.Fprintf(p.out, "  • %s\n", fmt.Sprintf(format, a...))
}

// List writes items as bullets, or "None" when empty
func (p *Printer) List(items []string) {
	if len(items) == 0 {
		p.Bullet("None")
		return
	}
	for _, item := range items {
		p.Bullet("%s", item)
	}
}

// Faint renders secondary text
func Faint(s string) string {
	return faintStyle.Render(s)
}

// Name highlights a component or package name
func Name(s string) string {
	return cyan(s)
}

// Check renders an installed marker
func Check(installed bool) string {
	if installed {
		return green("✓")
	}
	return Faint("○")
}
