package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukit/harukit/internal/config"
	herrors "github.com/harukit/harukit/internal/errors"
	"github.com/harukit/harukit/internal/prompt"
	"github.com/harukit/harukit/internal/registry"
)

type pmCall struct {
	pkgs  []string
	isDev bool
}

type fakePM struct {
	calls []pmCall
	err   error
}

func (f *fakePM) Install(_ context.Context, pkgs []string, isDev bool) error {
	f.calls = append(f.calls, pmCall{append([]string{}, pkgs...), isDev})
	return f.err
}

type fixture struct {
	root     string
	store    *config.Store
	client   registry.Client
	pm       *fakePM
	prompter *prompt.Scripted
	hook     *test.Hook
	inst     *Installer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	paths, err := config.ResolvePaths(root)
	require.NoError(t, err)

	store := config.NewStore(paths)
	cfg := config.NewProjectConfig(nil, config.Preferences{TypeScript: true, Tailwind: true})
	require.NoError(t, store.Create(cfg, false))

	client, err := registry.Builtin()
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	f := &fixture{
		root:     root,
		store:    store,
		client:   client,
		pm:       &fakePM{},
		prompter: &prompt.Scripted{},
		hook:     hook,
	}
	f.inst = New(store, client, f.pm, f.prompter, WithLogger(logger))
	return f
}

func (f *fixture) get(t *testing.T, name string) *registry.ComponentRecord {
	t.Helper()
	rec, err := f.client.GetComponent(context.Background(), name)
	require.NoError(t, err)
	return rec
}

func (f *fixture) reload(t *testing.T) *config.ProjectConfig {
	t.Helper()
	cfg, err := config.NewStore(f.store.Paths()).Load()
	require.NoError(t, err)
	return cfg
}

func TestInstallButtonEndToEnd(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, f.reload(t).Components)

	button := f.get(t, "button")
	res, err := f.inst.InstallComponent(context.Background(), button, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join("components", "button.tsx")}, res.Written)
	assert.Equal(t, []string{"clsx", "tailwind-merge"}, res.Dependencies)

	data, err := os.ReadFile(filepath.Join(f.root, "components", "button.tsx"))
	require.NoError(t, err)
	assert.Equal(t, button.Files[0].Content, string(data))

	require.Len(t, f.pm.calls, 1)
	assert.Equal(t, pmCall{[]string{"clsx", "tailwind-merge"}, false}, f.pm.calls[0])

	cfg := f.reload(t)
	assert.Equal(t, []string{"button"}, cfg.Components)
	assert.Equal(t, []string{"clsx", "tailwind-merge"}, cfg.Dependencies)
}

func TestInstallSrcDirLayout(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(f.root, "src"), 0755))

	_, err := f.inst.InstallComponent(context.Background(), f.get(t, "input"), Options{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(f.root, "src", "components", "input.tsx"))
}

func TestOverwritePolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	button := f.get(t, "button")

	dest := filepath.Join(f.root, "components", "button.tsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	local := []byte("// my local edits\n")
	require.NoError(t, os.WriteFile(dest, local, 0644))

	res, err := f.inst.InstallComponent(ctx, button, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("components", "button.tsx")}, res.Skipped)
	assert.Empty(t, res.Written)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, local, data)
	assert.Equal(t, []string{"button"}, f.reload(t).Components)

	res, err = f.inst.InstallComponent(ctx, button, Options{Overwrite: true})
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)

	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, button.Files[0].Content, string(data))
	assert.Equal(t, []string{"button"}, f.reload(t).Components)
}

func TestRecordedDependenciesAreNotReinstalled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inst.InstallComponent(ctx, f.get(t, "button"), Options{})
	require.NoError(t, err)

	// card only needs clsx, which button already brought in
	res, err := f.inst.InstallComponent(ctx, f.get(t, "card"), Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Dependencies)
	assert.Len(t, f.pm.calls, 1)
}

func TestDevDependenciesUseSeparateInvocation(t *testing.T) {
	f := newFixture(t)

	rec := &registry.ComponentRecord{
		Name:            "chart",
		Version:         "1.0.0",
		Dependencies:    []string{"recharts", "recharts"},
		DevDependencies: []string{"@types/d3"},
		Files:           []registry.FileEntry{{Name: "chart.tsx", Type: registry.FileComponent, Content: "export {}\n"}},
	}
	res, err := f.inst.InstallComponent(context.Background(), rec, Options{})
	require.NoError(t, err)

	assert.Equal(t, []pmCall{
		{[]string{"recharts"}, false},
		{[]string{"@types/d3"}, true},
	}, f.pm.calls)
	assert.Equal(t, []string{"@types/d3"}, res.DevDependencies)
	assert.Equal(t, []string{"@types/d3"}, f.reload(t).DevDependencies)
}

func TestDependencyFailure(t *testing.T) {
	pmErr := &herrors.PackageManagerError{Manager: "npm", Args: []string{"install", "clsx"}, ExitCode: 1}

	t.Run("continue without dependencies", func(t *testing.T) {
		f := newFixture(t)
		f.pm.err = pmErr
		f.prompter.Confirms = []bool{true}

		res, err := f.inst.InstallComponent(context.Background(), f.get(t, "button"), Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"clsx", "tailwind-merge"}, res.Unresolved)

		cfg := f.reload(t)
		assert.Equal(t, []string{"button"}, cfg.Components)
		assert.Empty(t, cfg.Dependencies)
		assert.Equal(t, []string{"Continue without these dependencies?"}, f.prompter.Asked)
	})

	t.Run("decline", func(t *testing.T) {
		f := newFixture(t)
		f.pm.err = pmErr
		f.prompter.Confirms = []bool{false}

		_, err := f.inst.InstallComponent(context.Background(), f.get(t, "button"), Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, herrors.ErrPackageManagerFailed)

		assert.Empty(t, f.reload(t).Components)
		assert.NoFileExists(t, filepath.Join(f.root, "components", "button.tsx"))
	})
}

func TestWriteFailureIsReported(t *testing.T) {
	f := newFixture(t)

	// A regular file where the components directory should be
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "components"), nil, 0644))

	_, err := f.inst.InstallComponent(context.Background(), f.get(t, "input"), Options{})
	require.Error(t, err)

	var compErr *herrors.ComponentError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "input", compErr.Name)

	assert.Empty(t, f.reload(t).Components)
	require.NotNil(t, f.hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, f.hook.LastEntry().Level)
}

func TestUtilityAndOverrideDestinations(t *testing.T) {
	f := newFixture(t)

	rec := &registry.ComponentRecord{
		Name:    "form",
		Version: "1.0.0",
		Files: []registry.FileEntry{
			{Name: "form.tsx", Type: registry.FileComponent, Content: "form"},
			{Name: "form-helpers.ts", Type: registry.FileUtility, Content: "helpers"},
		},
	}

	_, err := f.inst.InstallComponent(context.Background(), rec, Options{})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.root, "components", "form.tsx"))
	assert.FileExists(t, filepath.Join(f.root, "lib", "form-helpers.ts"))

	_, err = f.inst.InstallComponent(context.Background(), rec, Options{Path: "app/ui"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.root, "app", "ui", "form.tsx"))
	assert.FileExists(t, filepath.Join(f.root, "app", "ui", "form-helpers.ts"))
}

func TestUpdateComponent(t *testing.T) {
	f := newFixture(t)
	card := f.get(t, "card")

	dest := filepath.Join(f.root, "components", "card.tsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0644))

	res, err := f.inst.UpdateComponent(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("components", "card.tsx")}, res.Written)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, card.Files[0].Content, string(data))
	assert.Equal(t, []string{"card"}, f.reload(t).Components)
}

func TestAddThenRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"button", "card"} {
		_, err := f.inst.InstallComponent(ctx, f.get(t, name), Options{})
		require.NoError(t, err)
	}

	res, err := f.inst.RemoveComponent(ctx, "button")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("components", "button.tsx")}, res.Removed)

	assert.NoFileExists(t, filepath.Join(f.root, "components", "button.tsx"))
	assert.FileExists(t, filepath.Join(f.root, "components", "card.tsx"))
	assert.Equal(t, []string{"card"}, f.reload(t).Components)

	// Removing again is not an error
	res, err = f.inst.RemoveComponent(ctx, "button")
	require.NoError(t, err)
	assert.Empty(t, res.Removed)
}

func TestRemoveFallsBackToConventionalNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dest := filepath.Join(f.root, "components", "custom.jsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0644))
	require.NoError(t, f.store.AddComponent("custom"))

	res, err := f.inst.RemoveComponent(ctx, "custom")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("components", "custom.jsx")}, res.Removed)
	assert.NoFileExists(t, dest)
	assert.Empty(t, f.reload(t).Components)
}
