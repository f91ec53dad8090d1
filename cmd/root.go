package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	rootCwd     string
	rootVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "harukit",
	Short: "Add Harukit UI components to your project",
	Long: `harukit copies ready-made React components from the Harukit registry
straight into your project. You own the code: components are plain source
files under your components directory, tracked in harukit.json.

Get started with:
  harukit init
  harukit add button`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&rootCwd, "cwd", "", "Project root (defaults to the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Show debug logging")
}
