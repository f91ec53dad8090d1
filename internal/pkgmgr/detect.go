// Package pkgmgr drives the project's JavaScript package manager. Every
// invocation is a single argv run to completion with no shell in between.
package pkgmgr

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Kind names a supported package manager
type Kind string

const (
	NPM  Kind = "npm"
	Yarn Kind = "yarn"
	PNPM Kind = "pnpm"
	Bun  Kind = "bun"
)

// Default is used when no signal is found in the project
const Default = NPM

// Kinds lists every supported manager
var Kinds = []Kind{NPM, Yarn, PNPM, Bun}

// ParseKind returns the Kind named s
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

type detector struct {
	signal string
	probe  func(root string) (Kind, bool)
}

// detectors are evaluated in order; the first match wins
var detectors = []detector{
	{"bun.lockb", lockfile(Bun, "bun.lockb", "bun.lock")},
	{"pnpm-lock.yaml", lockfile(PNPM, "pnpm-lock.yaml")},
	{"yarn.lock", lockfile(Yarn, "yarn.lock")},
	{"package-lock.json", lockfile(NPM, "package-lock.json")},
	{"package.json#packageManager", corepack},
}

// Detect picks the manager for the project at root
func Detect(root string) Kind {
	kind, _ := DetectWithSignal(root)
	return kind
}

// DetectWithSignal is Detect plus the name of the signal that decided it.
// The signal is empty when the default was used.
func DetectWithSignal(root string) (Kind, string) {
	for _, d := range detectors {
		if kind, ok := d.probe(root); ok {
			return kind, d.signal
		}
	}
	return Default, ""
}

func lockfile(kind Kind, names ...string) func(string) (Kind, bool) {
	return func(root string) (Kind, bool) {
		for _, name := range names {
			if _, err := os.Stat(filepath.Join(root, name)); err == nil {
				return kind, true
			}
		}
		return "", false
	}
}

// corepack reads the "packageManager" field, e.g. "pnpm@9.1.0"
func corepack(root string) (Kind, bool) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return "", false
	}

	var manifest struct {
		PackageManager string `json:"packageManager"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", false
	}

	name, _, _ := strings.Cut(manifest.PackageManager, "@")
	return ParseKind(name)
}
