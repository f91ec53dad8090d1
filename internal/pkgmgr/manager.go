package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/sirupsen/logrus"

	herrors "github.com/harukit/harukit/internal/errors"
)

type verbs struct {
	add, remove, dev string
}

var argTable = map[Kind]verbs{
	NPM:  {add: "install", remove: "uninstall", dev: "--save-dev"},
	Yarn: {add: "add", remove: "remove", dev: "--dev"},
	PNPM: {add: "add", remove: "remove", dev: "--save-dev"},
	Bun:  {add: "add", remove: "remove", dev: "--dev"},
}

// Runner runs one external process in dir and waits for it.
//
// Implementations return an error matching ErrPackageManagerNotFound when
// the binary cannot be started and a *PackageManagerError on a non-zero
// exit.
type Runner interface {
	Run(ctx context.Context, dir, name string, args []string) error
}

// ExecRunner runs processes with os/exec, streaming their output
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner
func (r ExecRunner) Run(ctx context.Context, dir, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &herrors.PackageManagerError{Manager: name, Args: args, ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("%w: %s: %v", herrors.ErrPackageManagerNotFound, name, err)
}

// Manager issues install and remove commands for one project
type Manager struct {
	kind   Kind
	extra  []string
	root   string
	runner Runner
	logger logrus.FieldLogger
}

// Options configures New
type Options struct {
	Root     string
	Override string // HARUKIT_PACKAGE_MANAGER, e.g. "pnpm --filter web"
	Runner   Runner
	Logger   logrus.FieldLogger
}

// New detects the manager for opts.Root unless opts.Override names one
func New(opts Options) (*Manager, error) {
	m := &Manager{
		root:   opts.Root,
		runner: opts.Runner,
		logger: opts.Logger,
	}
	if m.runner == nil {
		m.runner = ExecRunner{}
	}
	if m.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		m.logger = l
	}

	if opts.Override == "" {
		kind, signal := DetectWithSignal(opts.Root)
		m.kind = kind
		m.logger.WithFields(logrus.Fields{"manager": kind, "signal": signal}).Debug("detected package manager")
		return m, nil
	}

	words, err := shlex.Split(opts.Override)
	if err != nil {
		return nil, fmt.Errorf("parse package manager override %q: %w", opts.Override, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty package manager override")
	}
	kind, ok := ParseKind(words[0])
	if !ok {
		return nil, fmt.Errorf("unsupported package manager %q (supported: npm, yarn, pnpm, bun)", words[0])
	}
	m.kind = kind
	m.extra = words[1:]
	return m, nil
}

// Kind returns the selected manager
func (m *Manager) Kind() Kind {
	return m.kind
}

// InstallArgs returns the argv (without the binary) that installs pkgs
func (m *Manager) InstallArgs(pkgs []string, isDev bool) []string {
	v := argTable[m.kind]
	args := append([]string{}, m.extra...)
	args = append(args, v.add)
	if isDev {
		args = append(args, v.dev)
	}
	return append(args, pkgs...)
}

// RemoveArgs returns the argv (without the binary) that removes pkg.
// isDev is ignored: no supported manager takes a dev flag on remove.
func (m *Manager) RemoveArgs(pkg string, _ bool) []string {
	args := append([]string{}, m.extra...)
	return append(args, argTable[m.kind].remove, pkg)
}

// Command renders the install command for display
func (m *Manager) Command(pkgs []string, isDev bool) string {
	return commandLine(string(m.kind), m.InstallArgs(pkgs, isDev))
}

// Install adds every package in pkgs in one invocation
func (m *Manager) Install(ctx context.Context, pkgs []string, isDev bool) error {
	if len(pkgs) == 0 {
		return nil
	}
	return m.run(ctx, m.InstallArgs(pkgs, isDev))
}

// Add adds a single package
func (m *Manager) Add(ctx context.Context, pkg string, isDev bool) error {
	return m.Install(ctx, []string{pkg}, isDev)
}

// Remove removes a single package
func (m *Manager) Remove(ctx context.Context, pkg string, isDev bool) error {
	return m.run(ctx, m.RemoveArgs(pkg, isDev))
}

func (m *Manager) run(ctx context.Context, args []string) error {
	m.logger.WithField("cmd", commandLine(string(m.kind), args)).Debug("running package manager")
	return m.runner.Run(ctx, m.root, string(m.kind), args)
}

func commandLine(name string, args []string) string {
	line := name
	for _, a := range args {
		line += " " + a
	}
	return line
}
