// Package installer copies registry components into a project and keeps
// harukit.json in step with what is on disk.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/harukit/harukit/internal/config"
	herrors "github.com/harukit/harukit/internal/errors"
	"github.com/harukit/harukit/internal/prompt"
	"github.com/harukit/harukit/internal/registry"
	"github.com/harukit/harukit/internal/ui"
)

// PackageManager installs npm packages for the project
type PackageManager interface {
	Install(ctx context.Context, pkgs []string, isDev bool) error
}

// Options controls a single install
type Options struct {
	Overwrite bool
	Path      string // components directory override, as an alias or project path
}

// Result reports what one install, update or remove did. Paths are
// relative to the project root.
type Result struct {
	Name            string
	Written         []string
	Skipped         []string
	Removed         []string
	Dependencies    []string // newly installed runtime dependencies
	DevDependencies []string // newly installed dev dependencies
	Unresolved      []string // dependencies the user chose to continue without
}

// Installer applies component records to one project
type Installer struct {
	store    *config.Store
	client   registry.Client
	pm       PackageManager
	prompter prompt.Prompter
	printer  *ui.Printer
	logger   logrus.FieldLogger
}

// Option configures an Installer
type Option func(*Installer)

// WithLogger sets the diagnostic logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(i *Installer) { i.logger = logger }
}

// WithPrinter sets where batch failures are reported
func WithPrinter(p *ui.Printer) Option {
	return func(i *Installer) { i.printer = p }
}

// New creates an installer
func New(store *config.Store, client registry.Client, pm PackageManager, prompter prompt.Prompter, opts ...Option) *Installer {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	i := &Installer{
		store:    store,
		client:   client,
		pm:       pm,
		prompter: prompter,
		printer:  ui.NewPrinter(io.Discard),
		logger:   discard,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// InstallComponent installs the component's dependencies, writes its files
// and records it as installed. Existing files are skipped unless
// opts.Overwrite is set.
func (i *Installer) InstallComponent(ctx context.Context, rec *registry.ComponentRecord, opts Options) (*Result, error) {
	cfg, err := i.config()
	if err != nil {
		return nil, err
	}

	res := &Result{Name: rec.Name}
	if err := i.coordinateDependencies(ctx, rec, res); err != nil {
		return res, err
	}

	var errs []error
	for _, file := range rec.Files {
		dest := i.Destination(cfg, file, opts.Path)
		rel := i.store.Paths().Rel(dest)

		if !opts.Overwrite {
			if _, err := os.Stat(dest); err == nil {
				i.logger.WithField("file", rel).Debug("destination exists, skipping")
				res.Skipped = append(res.Skipped, rel)
				continue
			}
		}

		if err := writeFile(dest, file.Content); err != nil {
			i.logger.WithError(err).WithField("file", rel).Warn("Failed to write component file")
			errs = append(errs, herrors.NewPathError(rel, "write", err))
			continue
		}
		res.Written = append(res.Written, rel)
	}

	if len(errs) > 0 {
		return res, herrors.NewComponentError(rec.Name, "write files", errors.Join(errs...))
	}

	if err := i.store.AddComponent(rec.Name); err != nil {
		return res, err
	}
	return res, nil
}

// UpdateComponent rewrites every file of the component from rec. The
// component does not need to be installed already.
func (i *Installer) UpdateComponent(ctx context.Context, rec *registry.ComponentRecord) (*Result, error) {
	return i.InstallComponent(ctx, rec, Options{Overwrite: true})
}

// RemoveComponent deletes the component's files and forgets it. File
// locations come from the registry record; when the record cannot be
// fetched the conventional <name>.tsx and <name>.jsx are tried instead.
func (i *Installer) RemoveComponent(ctx context.Context, name string) (*Result, error) {
	cfg, err := i.config()
	if err != nil {
		return nil, err
	}

	var targets []string
	rec, err := i.client.GetComponent(ctx, name)
	if err != nil {
		i.logger.WithError(err).WithField("component", name).Debug("record unavailable, using fallback file names")
		dir := i.store.Paths().ComponentsDir(cfg, "")
		targets = []string{
			filepath.Join(dir, name+".tsx"),
			filepath.Join(dir, name+".jsx"),
		}
	} else {
		for _, file := range rec.Files {
			targets = append(targets, i.Destination(cfg, file, ""))
		}
	}

	res := &Result{Name: name}
	var errs []error
	for _, target := range targets {
		rel := i.store.Paths().Rel(target)
		err := os.Remove(target)
		switch {
		case err == nil:
			res.Removed = append(res.Removed, rel)
		case os.IsNotExist(err):
			// Already gone
		default:
			errs = append(errs, herrors.NewPathError(rel, "remove", err))
		}
	}

	if len(errs) > 0 {
		return res, herrors.NewComponentError(name, "remove files", errors.Join(errs...))
	}

	if err := i.store.RemoveComponent(name); err != nil {
		return res, err
	}
	return res, nil
}

// Destination returns where file is written. Utility files go next to the
// utils module; everything else goes to the components directory.
func (i *Installer) Destination(cfg *config.ProjectConfig, file registry.FileEntry, override string) string {
	paths := i.store.Paths()
	name := filepath.Base(filepath.FromSlash(file.Name))
	if file.Type == registry.FileUtility && override == "" {
		return filepath.Join(paths.UtilsDir(cfg), name)
	}
	return filepath.Join(paths.ComponentsDir(cfg, override), name)
}

// coordinateDependencies installs declared packages that harukit.json does
// not yet record, one invocation per list, and records them on success
func (i *Installer) coordinateDependencies(ctx context.Context, rec *registry.ComponentRecord, res *Result) error {
	groups := []struct {
		names []string
		dev   bool
		into  *[]string
	}{
		{rec.Dependencies, false, &res.Dependencies},
		{rec.DevDependencies, true, &res.DevDependencies},
	}

	for _, g := range groups {
		cfg := i.store.Config()

		var missing []string
		for _, dep := range g.names {
			if dep != "" && !cfg.HasDependency(dep, g.dev) && !slices.Contains(missing, dep) {
				missing = append(missing, dep)
			}
		}
		if len(missing) == 0 {
			continue
		}

		i.logger.WithFields(logrus.Fields{"component": rec.Name, "packages": missing, "dev": g.dev}).Info("installing dependencies")

		if err := i.pm.Install(ctx, missing, g.dev); err != nil {
			if ctx.Err() != nil {
				return herrors.NewComponentError(rec.Name, "install dependencies", err)
			}

			i.printer.Warn("Failed to install %s: %v", strings.Join(missing, ", "), err)
			ok, perr := i.prompter.Confirm("Continue without these dependencies?", true)
			if perr != nil || !ok {
				return herrors.NewComponentError(rec.Name, "install dependencies", err)
			}
			res.Unresolved = append(res.Unresolved, missing...)
			continue
		}

		if err := i.store.AddDependencies(missing, g.dev); err != nil {
			return err
		}
		*g.into = append(*g.into, missing...)
	}
	return nil
}

func (i *Installer) config() (*config.ProjectConfig, error) {
	if cfg := i.store.Config(); cfg != nil {
		return cfg, nil
	}
	return i.store.Load()
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}
