package config

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// SchemaURL is written to new harukit.json files
	SchemaURL = "https://harukit.com/schema.json"

	// DefaultRegistryURL is the hosted component registry
	DefaultRegistryURL = "https://harukit.com"

	// BuiltinRegistry selects the catalog compiled into the binary
	BuiltinRegistry = "builtin"

	// DefaultCacheTTL is the registry cache lifetime in seconds
	DefaultCacheTTL = 3600
)

// ProjectConfig represents the harukit.json file
type ProjectConfig struct {
	Schema   string         `json:"$schema,omitempty"`
	Style    string         `json:"style"`
	RSC      bool           `json:"rsc"`
	TSX      bool           `json:"tsx"`
	Tailwind TailwindConfig `json:"tailwind"`
	Aliases  AliasConfig    `json:"aliases"`
	Registry RegistryConfig `json:"registry"`

	// Installed component names, in install order
	Components      []string `json:"components"`
	Dependencies    []string `json:"dependencies"`
	DevDependencies []string `json:"devDependencies"`
}

// TailwindConfig holds Tailwind-specific settings
type TailwindConfig struct {
	Config       string `json:"config"`
	CSS          string `json:"css"`
	BaseColor    string `json:"baseColor"`
	CSSVariables bool   `json:"cssVariables"`
	Prefix       string `json:"prefix"`
}

// AliasConfig holds import aliases for generated files
type AliasConfig struct {
	Components string `json:"components"`
	Utils      string `json:"utils"`
}

// RegistryConfig holds registry endpoint and cache settings
type RegistryConfig struct {
	URL   string `json:"url"`
	Cache bool   `json:"cache"`
	TTL   int    `json:"ttl"` // seconds
}

// Preferences are the answers collected by init
type Preferences struct {
	TypeScript  bool
	Tailwind    bool
	SrcDir      bool
	RSC         bool
	ImportAlias string
}

// NewProjectConfig builds a fresh config from user defaults and init answers
func NewProjectConfig(defaults *UserDefaults, prefs Preferences) *ProjectConfig {
	if defaults == nil {
		defaults = DefaultUserDefaults()
	}

	alias := prefs.ImportAlias
	if alias == "" {
		alias = defaults.ImportAlias
	}

	css := "app/globals.css"
	if prefs.SrcDir {
		css = "src/app/globals.css"
	}

	ttl := defaults.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &ProjectConfig{
		Schema: SchemaURL,
		Style:  defaults.Style,
		RSC:    prefs.RSC,
		TSX:    prefs.TypeScript,
		Tailwind: TailwindConfig{
			Config:       "tailwind.config.js",
			CSS:          css,
			BaseColor:    defaults.BaseColor,
			CSSVariables: prefs.Tailwind,
			Prefix:       "",
		},
		Aliases: AliasConfig{
			Components: alias,
			Utils:      "@/lib/utils",
		},
		Registry: RegistryConfig{
			URL:   defaults.RegistryURL,
			Cache: defaults.Cache,
			TTL:   ttl,
		},
		Components:      []string{},
		Dependencies:    []string{},
		DevDependencies: []string{},
	}
}

// Validate checks the fields every command relies on
func (c *ProjectConfig) Validate() error {
	var errs []error
	if c.Style == "" {
		errs = append(errs, errors.New("style is required"))
	}
	if c.Aliases.Components == "" {
		errs = append(errs, errors.New("aliases.components is required"))
	}
	if c.Registry.URL == "" {
		errs = append(errs, errors.New("registry.url is required"))
	}
	if c.Registry.TTL <= 0 {
		errs = append(errs, fmt.Errorf("registry.ttl must be positive, got %d", c.Registry.TTL))
	}
	return errors.Join(errs...)
}

// HasComponent reports whether name is recorded as installed
func (c *ProjectConfig) HasComponent(name string) bool {
	return slices.Contains(c.Components, name)
}

// HasDependency reports whether name is recorded in the runtime or dev list
func (c *ProjectConfig) HasDependency(name string, isDev bool) bool {
	if isDev {
		return slices.Contains(c.DevDependencies, name)
	}
	return slices.Contains(c.Dependencies, name)
}

// normalize replaces nil lists with empty ones and drops duplicates so the
// file always carries arrays and keeps set semantics
func (c *ProjectConfig) normalize() {
	c.Components = dedupe(c.Components)
	c.Dependencies = dedupe(c.Dependencies)
	c.DevDependencies = dedupe(c.DevDependencies)
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (c *ProjectConfig) clone() *ProjectConfig {
	cp := *c
	cp.Components = slices.Clone(c.Components)
	cp.Dependencies = slices.Clone(c.Dependencies)
	cp.DevDependencies = slices.Clone(c.DevDependencies)
	return &cp
}
