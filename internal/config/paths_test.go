package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()

	paths, err := ResolvePaths(root)
	if err != nil {
		t.Fatalf("ResolvePaths() error: %v", err)
	}

	if paths.ConfigFile != filepath.Join(root, "harukit.json") {
		t.Errorf("ConfigFile = %q", paths.ConfigFile)
	}
	if paths.CacheDir != filepath.Join(root, ".harukit", "cache") {
		t.Errorf("CacheDir = %q", paths.CacheDir)
	}
	if paths.LockFile != filepath.Join(root, ".harukit", "harukit.lock") {
		t.Errorf("LockFile = %q", paths.LockFile)
	}
}

func TestResolveAlias(t *testing.T) {
	root := t.TempDir()
	paths, err := ResolvePaths(root)
	require.NoError(t, err)

	tests := []struct {
		alias string
		want  string
	}{
		{"@/components", filepath.Join(root, "components")},
		{"@/components/ui", filepath.Join(root, "components", "ui")},
		{"./app/ui", filepath.Join(root, "app", "ui")},
		{"app/ui", filepath.Join(root, "app", "ui")},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ResolveAlias(tt.alias))
		})
	}
}

func TestResolveAlias_SrcDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0755))
	paths, err := ResolvePaths(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "src", "components"), paths.ResolveAlias("@/components"))
	assert.Equal(t, filepath.Join(root, "components"), paths.ResolveAlias("components"))
}

func TestComponentsAndUtilsDirs(t *testing.T) {
	root := t.TempDir()
	paths, err := ResolvePaths(root)
	require.NoError(t, err)
	cfg := NewProjectConfig(nil, Preferences{TypeScript: true})

	assert.Equal(t, filepath.Join(root, "components"), paths.ComponentsDir(cfg, ""))
	assert.Equal(t, filepath.Join(root, "ui", "custom"), paths.ComponentsDir(cfg, "ui/custom"))
	assert.Equal(t, filepath.Join(root, "lib"), paths.UtilsDir(cfg))
	assert.Equal(t, filepath.Join(root, "lib", "utils.ts"), paths.UtilsFile(cfg))

	cfg.TSX = false
	assert.Equal(t, filepath.Join(root, "lib", "utils.js"), paths.UtilsFile(cfg))
}
