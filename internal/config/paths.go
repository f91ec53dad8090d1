package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigFileName is the per-project config file
	ConfigFileName = "harukit.json"

	// StateDirName holds the cache and lock file
	StateDirName = ".harukit"
)

// Paths holds all resolved paths for one project
type Paths struct {
	Root       string // project root
	ConfigFile string // <root>/harukit.json
	StateDir   string // <root>/.harukit
	CacheDir   string // <root>/.harukit/cache
	LockFile   string // <root>/.harukit/harukit.lock
}

// ResolvePaths resolves project paths relative to root. An empty root means
// the working directory.
func ResolvePaths(root string) (*Paths, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	stateDir := filepath.Join(abs, StateDirName)
	return &Paths{
		Root:       abs,
		ConfigFile: filepath.Join(abs, ConfigFileName),
		StateDir:   stateDir,
		CacheDir:   filepath.Join(stateDir, "cache"),
		LockFile:   filepath.Join(stateDir, "harukit.lock"),
	}, nil
}

// HasSrcDir checks if the project keeps its sources under src/
func (p *Paths) HasSrcDir() bool {
	info, err := os.Stat(filepath.Join(p.Root, "src"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ResolveAlias maps an import alias to a directory on disk.
// "@/x" resolves to src/x when the project has a src directory, otherwise x.
// Other values are project-relative paths.
func (p *Paths) ResolveAlias(alias string) string {
	if rest, ok := strings.CutPrefix(alias, "@/"); ok {
		if p.HasSrcDir() {
			return filepath.Join(p.Root, "src", filepath.FromSlash(rest))
		}
		return filepath.Join(p.Root, filepath.FromSlash(rest))
	}
	if filepath.IsAbs(alias) {
		return alias
	}
	return filepath.Join(p.Root, filepath.FromSlash(strings.TrimPrefix(alias, "./")))
}

// ComponentsDir returns where component files are written. A non-empty
// override wins over the configured alias.
func (p *Paths) ComponentsDir(cfg *ProjectConfig, override string) string {
	if override != "" {
		return p.ResolveAlias(override)
	}
	return p.ResolveAlias(cfg.Aliases.Components)
}

// UtilsDir returns the directory holding the utils module. The utils alias
// names a module ("@/lib/utils"), so its parent is the directory.
func (p *Paths) UtilsDir(cfg *ProjectConfig) string {
	utils := cfg.Aliases.Utils
	if utils == "" {
		utils = "@/lib/utils"
	}
	return filepath.Dir(p.ResolveAlias(utils))
}

// UtilsFile returns the path of the cn helper for the configured language
func (p *Paths) UtilsFile(cfg *ProjectConfig) string {
	utils := cfg.Aliases.Utils
	if utils == "" {
		utils = "@/lib/utils"
	}
	ext := ".js"
	if cfg.TSX {
		ext = ".ts"
	}
	return p.ResolveAlias(utils) + ext
}

// Rel returns path relative to the project root for display
func (p *Paths) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return rel
}
