package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// UserDefaults represents ~/.config/harukit/config.toml, the per-user
// defaults used when initializing a project
type UserDefaults struct {
	// Registry URL, or "builtin" for the catalog shipped with the binary
	RegistryURL string `toml:"registry_url"`

	// Style variant written to new configs
	Style string `toml:"style"`

	// Tailwind base colour
	BaseColor string `toml:"base_color"`

	// Registry cache settings
	Cache bool `toml:"cache"`
	TTL   int  `toml:"ttl"`

	// Default answers for init prompts
	TypeScript  bool   `toml:"typescript"`
	ImportAlias string `toml:"import_alias"`
}

// DefaultUserDefaults returns built-in defaults
func DefaultUserDefaults() *UserDefaults {
	return &UserDefaults{
		RegistryURL: DefaultRegistryURL,
		Style:       "default",
		BaseColor:   "slate",
		Cache:       true,
		TTL:         DefaultCacheTTL,
		TypeScript:  true,
		ImportAlias: "@/components",
	}
}

// UserConfigDir returns the directory holding config.toml.
// HARUKIT_CONFIG_HOME overrides the platform default.
func UserConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "harukit"), nil
}

// LoadUserDefaults loads config.toml from dir. Keys missing from the file
// keep their built-in values.
func LoadUserDefaults(dir string) (*UserDefaults, error) {
	configPath := filepath.Join(dir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultUserDefaults(), nil
		}
		return nil, err
	}

	d := DefaultUserDefaults()
	if err := toml.Unmarshal(data, d); err != nil {
		return nil, err
	}

	return d, nil
}

// Save writes config.toml to dir
func (d *UserDefaults) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(d)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.toml"), data, 0644)
}
