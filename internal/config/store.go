package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gofrs/flock"

	herrors "github.com/harukit/harukit/internal/errors"
)

// Store loads and persists harukit.json for one project. It is the single
// source of truth for which components are installed.
type Store struct {
	paths *Paths
	cfg   *ProjectConfig
}

// NewStore creates a store for the project described by paths
func NewStore(paths *Paths) *Store {
	return &Store{paths: paths}
}

// Paths returns the project paths this store operates on
func (s *Store) Paths() *Paths {
	return s.paths
}

// Config returns the loaded config. Callers must not mutate it directly.
func (s *Store) Config() *ProjectConfig {
	return s.cfg
}

// Exists checks if harukit.json is present
func (s *Store) Exists() bool {
	_, err := os.Stat(s.paths.ConfigFile)
	return err == nil
}

// Load reads and validates harukit.json
func (s *Store) Load() (*ProjectConfig, error) {
	data, err := os.ReadFile(s.paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &herrors.ConfigError{Path: s.paths.ConfigFile, Err: herrors.ErrConfigNotFound}
		}
		return nil, &herrors.ConfigError{Path: s.paths.ConfigFile, Err: err}
	}

	cfg, err := decodeStrict(data)
	if err != nil {
		return nil, herrors.NewConfigInvalid(s.paths.ConfigFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, herrors.NewConfigInvalid(s.paths.ConfigFile, err)
	}

	cfg.normalize()
	s.cfg = cfg
	return cfg, nil
}

// Create writes a new harukit.json. An existing file is only replaced when
// force is set.
func (s *Store) Create(cfg *ProjectConfig, force bool) error {
	if s.Exists() && !force {
		return &herrors.ConfigError{Path: s.paths.ConfigFile, Err: herrors.ErrConfigExists}
	}
	if err := cfg.Validate(); err != nil {
		return herrors.NewConfigInvalid(s.paths.ConfigFile, err)
	}

	cfg = cfg.clone()
	cfg.normalize()
	if err := s.save(cfg); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// Update deep-merges patch into the config and persists the result. Nested
// objects merge key by key; any other value replaces the current one. The
// in-memory config only changes when the write succeeds.
func (s *Store) Update(patch map[string]any) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	current, err := toMap(s.cfg)
	if err != nil {
		return err
	}
	mergeMaps(current, patch)

	data, err := json.Marshal(current)
	if err != nil {
		return herrors.NewConfigInvalid(s.paths.ConfigFile, err)
	}
	next, err := decodeStrict(data)
	if err != nil {
		return herrors.NewConfigInvalid(s.paths.ConfigFile, err)
	}
	if err := next.Validate(); err != nil {
		return herrors.NewConfigInvalid(s.paths.ConfigFile, err)
	}

	next.normalize()
	if err := s.save(next); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// AddComponent records name as installed. Adding a present name is a no-op.
func (s *Store) AddComponent(name string) error {
	return s.mutate(func(cfg *ProjectConfig) bool {
		if slices.Contains(cfg.Components, name) {
			return false
		}
		cfg.Components = append(cfg.Components, name)
		return true
	})
}

// RemoveComponent forgets name. Removing an absent name is a no-op.
func (s *Store) RemoveComponent(name string) error {
	return s.mutate(func(cfg *ProjectConfig) bool {
		i := slices.Index(cfg.Components, name)
		if i < 0 {
			return false
		}
		cfg.Components = slices.Delete(cfg.Components, i, i+1)
		return true
	})
}

// AddDependency appends name to the runtime or dev dependency list unless
// it is already there
func (s *Store) AddDependency(name string, isDev bool) error {
	return s.AddDependencies([]string{name}, isDev)
}

// AddDependencies records several dependency names with a single write
func (s *Store) AddDependencies(names []string, isDev bool) error {
	return s.mutate(func(cfg *ProjectConfig) bool {
		list := &cfg.Dependencies
		if isDev {
			list = &cfg.DevDependencies
		}
		changed := false
		for _, name := range names {
			if name == "" || slices.Contains(*list, name) {
				continue
			}
			*list = append(*list, name)
			changed = true
		}
		return changed
	})
}

// Lock takes the advisory project lock held by commands that mutate the
// project. It fails fast with ErrProjectLocked when another process holds it.
func (s *Store) Lock() (func(), error) {
	if err := os.MkdirAll(s.paths.StateDir, 0755); err != nil {
		return nil, herrors.NewPathError(s.paths.StateDir, "create state dir", err)
	}

	fileLock := flock.New(s.paths.LockFile)
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire project lock: %w", err)
	}
	if !locked {
		return nil, herrors.ErrProjectLocked
	}

	return func() { _ = fileLock.Unlock() }, nil
}

// mutate applies fn to a copy of the config and persists it when fn reports
// a change
func (s *Store) mutate(fn func(cfg *ProjectConfig) bool) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	next := s.cfg.clone()
	if !fn(next) {
		return nil
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

func (s *Store) ensureLoaded() error {
	if s.cfg != nil {
		return nil
	}
	_, err := s.Load()
	return err
}

func (s *Store) save(cfg *ProjectConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.paths.ConfigFile, data, 0644); err != nil {
		return herrors.NewPathError(s.paths.ConfigFile, "write config", err)
	}
	return nil
}

func decodeStrict(data []byte) (*ProjectConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg ProjectConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func toMap(cfg *ProjectConfig) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeMaps(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

// writeFileAtomic writes data to a file using temp file + rename for atomicity
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".harukit-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := tmpFile.Chmod(perm); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
