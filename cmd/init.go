package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/config"
	herrors "github.com/harukit/harukit/internal/errors"
	"github.com/harukit/harukit/internal/installer"
	"github.com/harukit/harukit/internal/ui"
)

var (
	initYes         bool
	initTypeScript  bool
	initTailwind    bool
	initSrcDir      bool
	initImportAlias string
	initForce       bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Harukit in the current project",
	Long: `Create harukit.json and prepare the project for Harukit components.

This command:
1. Asks a few questions (skip them with --yes)
2. Writes harukit.json
3. Creates the components and utils directories with the cn() helper
4. Adds the Tailwind globals CSS when Tailwind is enabled

Defaults for the questions come from ~/.config/harukit/config.toml when present.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Skip prompts and use defaults")
	initCmd.Flags().BoolVar(&initTypeScript, "typescript", true, "Use TypeScript")
	initCmd.Flags().BoolVar(&initTailwind, "tailwind", true, "Use Tailwind CSS")
	initCmd.Flags().BoolVar(&initSrcDir, "src-dir", false, "Keep sources under src/")
	initCmd.Flags().StringVar(&initImportAlias, "import-alias", "", "Import alias for components (default \"@/components\")")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing harukit.json")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if a.store.Exists() && !initForce {
		return fmt.Errorf("%w in %s\n\nUse --force to overwrite it", herrors.ErrConfigExists, a.paths.Root)
	}

	unlock, err := a.lock()
	if err != nil {
		return err
	}
	defer unlock()

	defaults := loadUserDefaults(a)
	prefs, err := collectPreferences(cmd, a, defaults)
	if err != nil {
		return err
	}

	if prefs.SrcDir {
		if err := os.MkdirAll(filepath.Join(a.paths.Root, "src"), 0755); err != nil {
			return herrors.NewPathError("src", "create directory", err)
		}
	}

	cfg := config.NewProjectConfig(defaults, prefs)
	if err := a.store.Create(cfg, initForce); err != nil {
		return err
	}

	scaffold, err := installer.Scaffold(a.paths, cfg, prefs.Tailwind)
	if err != nil {
		return err
	}

	p := a.printer
	p.Success("Created %s", config.ConfigFileName)
	for _, f := range scaffold.Written {
		p.Success("Created %s", f)
	}
	for _, f := range scaffold.Skipped {
		p.Warn("Kept existing %s", f)
	}

	pm, err := a.packageManager(cmd)
	if err != nil {
		return err
	}

	p.Println()
	p.Println("Install the base dependencies with:")
	p.Printf("  %s\n", ui.Name(pm.Command(installer.BaseDependencies(prefs.TypeScript), false)))
	p.Println()
	p.Println("Next steps:")
	p.Println("  1. Install dependencies (see command above)")
	p.Println("  2. Add components with: harukit add <component>")
	p.Println("  3. Start building your UI!")

	return nil
}

func loadUserDefaults(a *app) *config.UserDefaults {
	dir, err := config.UserConfigDir()
	if err != nil {
		a.logger.WithError(err).Debug("no user config dir")
		return config.DefaultUserDefaults()
	}

	defaults, err := config.LoadUserDefaults(dir)
	if err != nil {
		a.logger.WithError(err).Warn("Ignoring unreadable user defaults")
		return config.DefaultUserDefaults()
	}
	return defaults
}

// collectPreferences merges user defaults, project detection, explicit
// flags and (unless --yes) interactive answers, in that order
func collectPreferences(cmd *cobra.Command, a *app, defaults *config.UserDefaults) (config.Preferences, error) {
	prefs := config.Preferences{
		TypeScript:  defaults.TypeScript,
		Tailwind:    true,
		SrcDir:      a.paths.HasSrcDir(),
		RSC:         hasNextConfig(a.paths.Root),
		ImportAlias: defaults.ImportAlias,
	}

	flags := cmd.Flags()
	if flags.Changed("typescript") {
		prefs.TypeScript = initTypeScript
	}
	if flags.Changed("tailwind") {
		prefs.Tailwind = initTailwind
	}
	if flags.Changed("src-dir") {
		prefs.SrcDir = initSrcDir
	}
	if flags.Changed("import-alias") {
		prefs.ImportAlias = initImportAlias
	}

	if initYes {
		return prefs, nil
	}

	questions := []struct {
		flag     string
		question string
		value    *bool
	}{
		{"typescript", "Would you like to use TypeScript?", &prefs.TypeScript},
		{"tailwind", "Would you like to use Tailwind CSS?", &prefs.Tailwind},
		{"src-dir", "Would you like to use a src directory?", &prefs.SrcDir},
	}
	for _, q := range questions {
		if flags.Changed(q.flag) {
			continue
		}
		answer, err := a.prompter.Confirm(q.question, *q.value)
		if err != nil {
			return prefs, err
		}
		*q.value = answer
	}

	if !flags.Changed("import-alias") {
		alias, err := a.prompter.Input("What import alias would you like to use?", prefs.ImportAlias)
		if err != nil {
			return prefs, err
		}
		prefs.ImportAlias = alias
	}

	return prefs, nil
}

func hasNextConfig(root string) bool {
	for _, name := range []string{"next.config.js", "next.config.mjs", "next.config.ts"} {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}
