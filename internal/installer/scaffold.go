package installer

import (
	"embed"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/harukit/harukit/internal/config"
	herrors "github.com/harukit/harukit/internal/errors"
)

//go:embed templates
var templates embed.FS

// baseDependencies are the packages every harukit project needs
var baseDependencies = []string{
	"clsx",
	"tailwind-merge",
	"class-variance-authority",
	"@radix-ui/react-slot",
	"lucide-react",
}

// BaseDependencies returns the packages init asks the user to install
func BaseDependencies(typescript bool) []string {
	deps := append([]string{}, baseDependencies...)
	if typescript {
		deps = append(deps, "@types/node")
	}
	return deps
}

// ScaffoldResult lists what Scaffold created and what it left alone
type ScaffoldResult struct {
	Dirs    []string
	Written []string
	Skipped []string
}

// Scaffold prepares a freshly initialized project: the components and
// utils directories, the cn helper and, with Tailwind, the globals CSS.
// Existing files are never overwritten.
func Scaffold(paths *config.Paths, cfg *config.ProjectConfig, tailwind bool) (*ScaffoldResult, error) {
	res := &ScaffoldResult{}

	for _, dir := range []string{paths.ComponentsDir(cfg, ""), paths.UtilsDir(cfg)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return res, herrors.NewPathError(paths.Rel(dir), "create directory", err)
		}
		res.Dirs = append(res.Dirs, paths.Rel(dir))
	}

	utilsTemplate := "templates/utils.js"
	if cfg.TSX {
		utilsTemplate = "templates/utils.ts"
	}
	files := map[string]string{paths.UtilsFile(cfg): utilsTemplate}
	if tailwind && cfg.Tailwind.CSS != "" {
		files[filepath.Join(paths.Root, filepath.FromSlash(cfg.Tailwind.CSS))] = "templates/globals.css"
	}

	for _, dest := range slices.Sorted(maps.Keys(files)) {
		rel := paths.Rel(dest)
		if _, err := os.Stat(dest); err == nil {
			res.Skipped = append(res.Skipped, rel)
			continue
		}

		content, err := templates.ReadFile(files[dest])
		if err != nil {
			return res, err
		}
		if err := writeFile(dest, string(content)); err != nil {
			return res, herrors.NewPathError(rel, "write", err)
		}
		res.Written = append(res.Written, rel)
	}

	return res, nil
}
