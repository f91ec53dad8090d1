package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	ErrConfigNotFound         = errors.New("harukit.json not found: run 'harukit init' first")
	ErrConfigInvalid          = errors.New("invalid harukit.json")
	ErrConfigExists           = errors.New("harukit.json already exists")
	ErrRegistryUnavailable    = errors.New("registry unavailable")
	ErrRegistryDecode         = errors.New("malformed registry response")
	ErrComponentNotFound      = errors.New("component not found")
	ErrPackageManagerFailed   = errors.New("package manager failed")
	ErrPackageManagerNotFound = errors.New("package manager not found")
	ErrProjectLocked          = errors.New("another harukit process is modifying this project")
	ErrNotInteractive         = errors.New("interactive input requires a terminal")
)

// ConfigError wraps errors with config file context
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigInvalid creates a ConfigError that matches ErrConfigInvalid
func NewConfigInvalid(path string, reason error) *ConfigError {
	return &ConfigError{Path: path, Err: fmt.Errorf("%w: %v", ErrConfigInvalid, reason)}
}

// RegistryError is returned when the registry cannot be reached or answers
// with a non-success status. Status is 0 for transport failures.
type RegistryError struct {
	Op      string
	Status  int
	Message string
}

func (e *RegistryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: registry returned status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RegistryError) Is(target error) bool {
	return target == ErrRegistryUnavailable
}

// DecodeError is returned when a registry response body cannot be decoded
// or fails validation.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrRegistryDecode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrRegistryDecode
}

// ComponentError wraps errors with component context
type ComponentError struct {
	Name string
	Op   string
	Err  error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %s: %s: %v", e.Name, e.Op, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// NewComponentError creates a new component error
func NewComponentError(name, op string, err error) *ComponentError {
	return &ComponentError{Name: name, Op: op, Err: err}
}

// NotFound returns the error reported for an unknown component name
func NotFound(name string) *ComponentError {
	return &ComponentError{Name: name, Op: "get", Err: ErrComponentNotFound}
}

// PackageManagerError reports a package manager process that exited non-zero
type PackageManagerError struct {
	Manager  string
	Args     []string
	ExitCode int
}

func (e *PackageManagerError) Error() string {
	return fmt.Sprintf("%s %s failed with exit code %d", e.Manager, strings.Join(e.Args, " "), e.ExitCode)
}

func (e *PackageManagerError) Is(target error) bool {
	return target == ErrPackageManagerFailed
}

// PathError wraps errors with path context
type PathError struct {
	Path string
	Op   string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a new path error
func NewPathError(path, op string, err error) *PathError {
	return &PathError{Path: path, Op: op, Err: err}
}
