package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/config"
	"github.com/harukit/harukit/internal/registry"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the registry response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached registry response",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

type cacheClearer interface {
	ClearCache() error
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	// Entries may predate a switch to the builtin catalog, so the cache
	// directory is cleared even when the current backend does not cache
	clearFn := registry.NewCache(a.paths.CacheDir, config.DefaultCacheTTL).Clear
	if cfg, err := a.load(); err == nil {
		client, err := a.registry(cfg)
		if err != nil {
			return err
		}
		if c, ok := client.(cacheClearer); ok && cfg.Registry.Cache {
			clearFn = c.ClearCache
		}
	}

	if err := clearFn(); err != nil {
		return err
	}
	a.printer.Success("Cleared registry cache (%s)", a.paths.Rel(a.paths.CacheDir))
	return nil
}
