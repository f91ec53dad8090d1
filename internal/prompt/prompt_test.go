package prompt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/harukit/harukit/internal/errors"
)

func TestScripted(t *testing.T) {
	s := &Scripted{
		Selections: [][]string{{"button", "card"}},
		Confirms:   []bool{false},
		Inputs:     []string{"@/ui"},
	}

	sel, err := s.Select("Which components?", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "card"}, sel)

	ok, err := s.Confirm("Continue?", true)
	require.NoError(t, err)
	assert.False(t, ok)

	// Exhausted queue falls back to the default
	ok, err = s.Confirm("Again?", true)
	require.NoError(t, err)
	assert.True(t, ok)

	in, err := s.Input("Alias?", "@/components")
	require.NoError(t, err)
	assert.Equal(t, "@/ui", in)

	in, err = s.Input("Alias?", "@/components")
	require.NoError(t, err)
	assert.Equal(t, "@/components", in)

	assert.Equal(t, []string{"Which components?", "Continue?", "Again?", "Alias?", "Alias?"}, s.Asked)
}

func TestDefaults(t *testing.T) {
	var p Prompter = Defaults{}

	ok, err := p.Confirm("Continue?", true)
	require.NoError(t, err)
	assert.True(t, ok)

	in, err := p.Input("Alias?", "@/components")
	require.NoError(t, err)
	assert.Equal(t, "@/components", in)

	_, err = p.Select("Pick", []Option{{Value: "button"}})
	assert.ErrorIs(t, err, herrors.ErrNotInteractive)
}

func TestTerminalNotInteractive(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	defer f.Close()

	term := NewTerminal(f, &bytes.Buffer{})
	assert.False(t, term.Interactive())

	_, err = term.Select("Pick", nil)
	assert.ErrorIs(t, err, herrors.ErrNotInteractive)
	_, err = term.Confirm("Continue?", true)
	assert.ErrorIs(t, err, herrors.ErrNotInteractive)
	_, err = term.Input("Alias?", "")
	assert.ErrorIs(t, err, herrors.ErrNotInteractive)
}
