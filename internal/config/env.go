package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables read by harukit
const (
	EnvRegistryURL    = "HARUKIT_REGISTRY_URL"
	EnvLogLevel       = "HARUKIT_LOG_LEVEL"
	EnvPackageManager = "HARUKIT_PACKAGE_MANAGER"
	EnvRateLimit      = "HARUKIT_RATE_LIMIT"
	EnvConfigHome     = "HARUKIT_CONFIG_HOME"
)

var envKeys = []string{EnvRegistryURL, EnvLogLevel, EnvPackageManager, EnvRateLimit}

// Env holds HARUKIT_* overrides for one invocation. Nothing here is
// persisted to harukit.json.
type Env struct {
	RegistryURL    string
	LogLevel       string
	PackageManager string
	RateLimit      string
}

// LoadEnv reads HARUKIT_* keys from the project's .env file and the process
// environment. The process environment wins.
func LoadEnv(root string) Env {
	values := make(map[string]string)

	if fileValues, err := godotenv.Read(filepath.Join(root, ".env")); err == nil {
		for _, k := range envKeys {
			if v, ok := fileValues[k]; ok {
				values[k] = v
			}
		}
	}

	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			values[k] = v
		}
	}

	return Env{
		RegistryURL:    values[EnvRegistryURL],
		LogLevel:       values[EnvLogLevel],
		PackageManager: values[EnvPackageManager],
		RateLimit:      values[EnvRateLimit],
	}
}

// EffectiveRegistryURL returns the registry URL for this invocation
func (e Env) EffectiveRegistryURL(cfg *ProjectConfig) string {
	if e.RegistryURL != "" {
		return e.RegistryURL
	}
	return cfg.Registry.URL
}
