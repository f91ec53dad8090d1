package cmd

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/config"
	"github.com/harukit/harukit/internal/installer"
	"github.com/harukit/harukit/internal/logging"
	"github.com/harukit/harukit/internal/pkgmgr"
	"github.com/harukit/harukit/internal/prompt"
	"github.com/harukit/harukit/internal/registry"
	"github.com/harukit/harukit/internal/ui"
)

// Replaced in tests
var (
	newRunner = func(cmd *cobra.Command) pkgmgr.Runner {
		return pkgmgr.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	}

	newPrompter = func(cmd *cobra.Command) prompt.Prompter {
		term := prompt.NewTerminal(os.Stdin, cmd.OutOrStdout())
		if !term.Interactive() {
			return prompt.Defaults{}
		}
		return term
	}
)

// app is the per-invocation wiring shared by every command
type app struct {
	paths    *config.Paths
	store    *config.Store
	env      config.Env
	logger   *logrus.Logger
	printer  *ui.Printer
	prompter prompt.Prompter
}

func newApp(cmd *cobra.Command) (*app, error) {
	paths, err := config.ResolvePaths(rootCwd)
	if err != nil {
		return nil, err
	}

	env := config.LoadEnv(paths.Root)
	logger := logging.New(cmd.ErrOrStderr(), env.LogLevel, rootVerbose)
	logger.WithField("root", paths.Root).Debug("resolved project")

	return &app{
		paths:    paths,
		store:    config.NewStore(paths),
		env:      env,
		logger:   logger,
		printer:  ui.NewPrinter(cmd.OutOrStdout()),
		prompter: newPrompter(cmd),
	}, nil
}

// load reads harukit.json
func (a *app) load() (*config.ProjectConfig, error) {
	return a.store.Load()
}

// lock takes the project lock for a mutating command
func (a *app) lock() (func(), error) {
	return a.store.Lock()
}

// lockAndLoad takes the project lock and then reads harukit.json, so the
// config a mutating command starts from cannot be replaced under it. A
// missing config fails before the state directory is created.
func (a *app) lockAndLoad() (*config.ProjectConfig, func(), error) {
	if !a.store.Exists() {
		_, err := a.load()
		return nil, nil, err
	}

	unlock, err := a.lock()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := a.load()
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return cfg, unlock, nil
}

func (a *app) registry(cfg *config.ProjectConfig) (registry.Client, error) {
	opts := registry.Options{
		URL:      a.env.EffectiveRegistryURL(cfg),
		CacheDir: a.paths.CacheDir,
		Cache:    cfg.Registry.Cache,
		TTL:      cfg.Registry.TTL,
		Version:  Version,
		Logger:   a.logger,
	}
	if a.env.RateLimit != "" {
		if rps, err := strconv.ParseFloat(a.env.RateLimit, 64); err == nil && rps > 0 {
			opts.RateLimit = rps
		} else {
			a.logger.WithField("value", a.env.RateLimit).Warn("Ignoring invalid " + config.EnvRateLimit)
		}
	}

	a.logger.WithField("url", opts.URL).Debug("using registry")
	return registry.New(opts)
}

func (a *app) packageManager(cmd *cobra.Command) (*pkgmgr.Manager, error) {
	return pkgmgr.New(pkgmgr.Options{
		Root:     a.paths.Root,
		Override: a.env.PackageManager,
		Runner:   newRunner(cmd),
		Logger:   a.logger,
	})
}

// installer wires the registry, package manager and prompter for cfg
func (a *app) installer(cmd *cobra.Command, cfg *config.ProjectConfig) (*installer.Installer, registry.Client, error) {
	client, err := a.registry(cfg)
	if err != nil {
		return nil, nil, err
	}
	pm, err := a.packageManager(cmd)
	if err != nil {
		return nil, nil, err
	}

	inst := installer.New(a.store, client, pm, a.prompter,
		installer.WithLogger(a.logger),
		installer.WithPrinter(a.printer),
	)
	return inst, client, nil
}
