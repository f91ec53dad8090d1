// Package registry resolves Harukit component names to component records.
// Records come from a remote HTTP registry (with an on-disk TTL cache) or
// from the catalog compiled into the binary.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"
)

// FileType classifies a component file
type FileType string

const (
	FileComponent FileType = "component"
	FileUtility   FileType = "utility"
	FileStyle     FileType = "style"
	FileConfig    FileType = "config"
)

// Valid reports whether t is a known file type
func (t FileType) Valid() bool {
	switch t {
	case FileComponent, FileUtility, FileStyle, FileConfig:
		return true
	}
	return false
}

// FileEntry is one file shipped by a component
type FileEntry struct {
	Name    string   `json:"name" yaml:"name"`
	Path    string   `json:"path" yaml:"path"` // path in the registry source tree
	Type    FileType `json:"type" yaml:"type"`
	Content string   `json:"content" yaml:"content"`
}

// ComponentRecord describes one installable component. Name is the
// identity key within a registry.
type ComponentRecord struct {
	Name            string      `json:"name" yaml:"name"`
	Description     string      `json:"description" yaml:"description"`
	Version         string      `json:"version" yaml:"version"`
	Dependencies    []string    `json:"dependencies" yaml:"dependencies"`
	DevDependencies []string    `json:"devDependencies" yaml:"devDependencies"`
	Files           []FileEntry `json:"files" yaml:"files"`
	Tags            []string    `json:"tags" yaml:"tags"`
	Category        string      `json:"category" yaml:"category"`
	Author          string      `json:"author" yaml:"author"`
	License         string      `json:"license" yaml:"license"`
	Repository      string      `json:"repository,omitempty" yaml:"repository,omitempty"`
	Documentation   string      `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// ListResponse is one page of registry metadata
type ListResponse struct {
	Components []ComponentRecord `json:"components"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// Validate rejects records that would leave the installer with partial data
func (r *ComponentRecord) Validate() error {
	if r.Name == "" {
		return errors.New("record has no name")
	}
	if _, err := semver.NewVersion(r.Version); err != nil {
		return fmt.Errorf("record %s: invalid version %q: %w", r.Name, r.Version, err)
	}
	for i, f := range r.Files {
		if f.Name == "" {
			return fmt.Errorf("record %s: file %d has no name", r.Name, i)
		}
		if !f.Type.Valid() {
			return fmt.Errorf("record %s: file %s has unknown type %q", r.Name, f.Name, f.Type)
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with r
func (r ComponentRecord) Clone() ComponentRecord {
	r.Dependencies = slices.Clone(r.Dependencies)
	r.DevDependencies = slices.Clone(r.DevDependencies)
	r.Files = slices.Clone(r.Files)
	r.Tags = slices.Clone(r.Tags)
	return r
}

func validateAll(records []ComponentRecord) error {
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
