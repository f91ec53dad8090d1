package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/harukit/harukit/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	paths, err := ResolvePaths(t.TempDir())
	require.NoError(t, err)

	store := NewStore(paths)
	require.NoError(t, store.Create(NewProjectConfig(nil, Preferences{TypeScript: true, Tailwind: true}), false))
	return store
}

func readConfigFile(t *testing.T, store *Store) map[string]any {
	t.Helper()
	data, err := os.ReadFile(store.Paths().ConfigFile)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestLoad_NotFound(t *testing.T) {
	paths, err := ResolvePaths(t.TempDir())
	require.NoError(t, err)

	_, err = NewStore(paths).Load()
	assert.ErrorIs(t, err, herrors.ErrConfigNotFound)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{`},
		{"unknown key", `{"style":"default","aliases":{"components":"@/components"},"registry":{"url":"builtin","ttl":60},"colour":"red"}`},
		{"wrong type", `{"style":"default","components":"button"}`},
		{"missing style", `{"aliases":{"components":"@/components"},"registry":{"url":"builtin","ttl":60}}`},
		{"zero ttl", `{"style":"default","aliases":{"components":"@/components"},"registry":{"url":"builtin","ttl":0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := ResolvePaths(t.TempDir())
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(paths.ConfigFile, []byte(tt.content), 0644))

			_, err = NewStore(paths).Load()
			assert.ErrorIs(t, err, herrors.ErrConfigInvalid)
		})
	}
}

func TestCreate_WritesEmptyLists(t *testing.T) {
	store := newTestStore(t)

	m := readConfigFile(t, store)
	assert.Equal(t, []any{}, m["components"])
	assert.Equal(t, []any{}, m["dependencies"])
	assert.Equal(t, []any{}, m["devDependencies"])
	assert.Equal(t, SchemaURL, m["$schema"])
}

func TestCreate_RefusesExisting(t *testing.T) {
	store := newTestStore(t)

	err := store.Create(NewProjectConfig(nil, Preferences{}), false)
	assert.ErrorIs(t, err, herrors.ErrConfigExists)

	assert.NoError(t, store.Create(NewProjectConfig(nil, Preferences{}), true))
}

func TestAddComponent_Idempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddComponent("button"))
	require.NoError(t, store.AddComponent("button"))
	require.NoError(t, store.AddComponent("card"))

	assert.Equal(t, []string{"button", "card"}, store.Config().Components)

	reloaded := NewStore(store.Paths())
	cfg, err := reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "card"}, cfg.Components)
}

func TestRemoveComponent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddComponent("button"))
	require.NoError(t, store.AddComponent("card"))

	require.NoError(t, store.RemoveComponent("button"))
	assert.Equal(t, []string{"card"}, store.Config().Components)

	// absent name is not an error
	require.NoError(t, store.RemoveComponent("tooltip"))
	assert.Equal(t, []string{"card"}, store.Config().Components)
}

func TestAddDependency(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddDependency("clsx", false))
	require.NoError(t, store.AddDependency("clsx", false))
	require.NoError(t, store.AddDependency("clsx", true))
	require.NoError(t, store.AddDependencies([]string{"tailwind-merge", "clsx", ""}, false))

	cfg := store.Config()
	assert.Equal(t, []string{"clsx", "tailwind-merge"}, cfg.Dependencies)
	assert.Equal(t, []string{"clsx"}, cfg.DevDependencies)
	assert.True(t, cfg.HasDependency("tailwind-merge", false))
	assert.False(t, cfg.HasDependency("tailwind-merge", true))
}

func TestLoad_DedupesComponents(t *testing.T) {
	paths, err := ResolvePaths(t.TempDir())
	require.NoError(t, err)
	content := `{"style":"default","aliases":{"components":"@/components"},"registry":{"url":"builtin","ttl":60},"components":["button","button","card"]}`
	require.NoError(t, os.WriteFile(paths.ConfigFile, []byte(content), 0644))

	cfg, err := NewStore(paths).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "card"}, cfg.Components)
}

func TestUpdate_DeepMerge(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddComponent("button"))

	err := store.Update(map[string]any{
		"style":    "new-york",
		"registry": map[string]any{"url": "builtin"},
		"tailwind": map[string]any{"prefix": "hk-"},
	})
	require.NoError(t, err)

	cfg := store.Config()
	assert.Equal(t, "new-york", cfg.Style)
	assert.Equal(t, "builtin", cfg.Registry.URL)
	assert.Equal(t, DefaultCacheTTL, cfg.Registry.TTL, "sibling keys survive a nested merge")
	assert.True(t, cfg.Registry.Cache)
	assert.Equal(t, "hk-", cfg.Tailwind.Prefix)
	assert.Equal(t, "slate", cfg.Tailwind.BaseColor)
	assert.Equal(t, []string{"button"}, cfg.Components)

	m := readConfigFile(t, store)
	assert.Equal(t, "new-york", m["style"])
}

func TestUpdate_InvalidLeavesFileUntouched(t *testing.T) {
	store := newTestStore(t)
	before, err := os.ReadFile(store.Paths().ConfigFile)
	require.NoError(t, err)

	err = store.Update(map[string]any{"registry": map[string]any{"ttl": -1}})
	assert.ErrorIs(t, err, herrors.ErrConfigInvalid)

	err = store.Update(map[string]any{"unknown": true})
	assert.ErrorIs(t, err, herrors.ErrConfigInvalid)

	after, err := os.ReadFile(store.Paths().ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, DefaultCacheTTL, store.Config().Registry.TTL)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddComponent("button"))

	entries, err := os.ReadDir(store.Paths().Root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestMutationWithoutConfig(t *testing.T) {
	paths, err := ResolvePaths(t.TempDir())
	require.NoError(t, err)

	err = NewStore(paths).AddComponent("button")
	assert.ErrorIs(t, err, herrors.ErrConfigNotFound)
}

func TestLock(t *testing.T) {
	store := newTestStore(t)

	unlock, err := store.Lock()
	require.NoError(t, err)

	_, err = NewStore(store.Paths()).Lock()
	assert.ErrorIs(t, err, herrors.ErrProjectLocked)

	unlock()

	unlock2, err := NewStore(store.Paths()).Lock()
	require.NoError(t, err)
	unlock2()

	assert.FileExists(t, filepath.Join(store.Paths().StateDir, "harukit.lock"))
}
