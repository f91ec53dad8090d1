package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/config"
	herrors "github.com/harukit/harukit/internal/errors"
	"github.com/harukit/harukit/internal/installer"
	"github.com/harukit/harukit/internal/prompt"
	"github.com/harukit/harukit/internal/registry"
	"github.com/harukit/harukit/internal/ui"
)

var (
	addOverwrite bool
	addPath      string
)

var addCmd = &cobra.Command{
	Use:   "add [components...]",
	Short: "Add components to your project",
	Long: `Copy components from the registry into your project and install the npm
packages they need.

Without arguments an interactive picker lists every registry component.

Examples:
  harukit add button
  harukit add button card tooltip
  harukit add card --path src/ui --overwrite`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&addOverwrite, "overwrite", "o", false, "Overwrite existing files")
	addCmd.Flags().StringVarP(&addPath, "path", "p", "", "Directory to write components to")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, unlock, err := a.lockAndLoad()
	if err != nil {
		return err
	}
	defer unlock()

	inst, client, err := a.installer(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	names := args
	if len(names) == 0 {
		names, err = pickFromRegistry(ctx, a.prompter, client, cfg)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			a.printer.Println("No components selected")
			return nil
		}
	}

	p := a.printer
	res := inst.RunBatch(ctx, names, func(ctx context.Context, name string) error {
		rec, err := client.GetComponent(ctx, name)
		if err != nil {
			return withSuggestions(ctx, client, name, err)
		}

		out, err := inst.InstallComponent(ctx, rec, installer.Options{Overwrite: addOverwrite, Path: addPath})
		if err != nil {
			return err
		}

		p.Success("Added %s %s", ui.Name(rec.Name), ui.Faint("v"+rec.Version))
		printResult(p, out)
		return nil
	})

	return batchError("add", names, res)
}

// pickFromRegistry offers every registry component in a multi-select
func pickFromRegistry(ctx context.Context, prompter prompt.Prompter, client registry.Client, cfg *config.ProjectConfig) ([]string, error) {
	records, err := registry.ListAll(ctx, client)
	if err != nil {
		return nil, err
	}

	options := make([]prompt.Option, 0, len(records))
	for _, r := range records {
		desc := r.Description
		if cfg.HasComponent(r.Name) {
			desc = "(installed) " + desc
		}
		options = append(options, prompt.Option{Value: r.Name, Description: desc})
	}

	names, err := prompter.Select("Which components would you like to add?", options)
	if errors.Is(err, herrors.ErrNotInteractive) {
		return nil, fmt.Errorf("%w: pass component names as arguments", err)
	}
	return names, err
}

func withSuggestions(ctx context.Context, client registry.Client, name string, err error) error {
	if !errors.Is(err, herrors.ErrComponentNotFound) {
		return err
	}
	if similar := registry.Suggest(ctx, client, name); len(similar) > 0 {
		return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(similar, ", "))
	}
	return err
}

func printResult(p *ui.Printer, res *installer.Result) {
	for _, f := range res.Written {
		p.Bullet("%s", f)
	}
	for _, f := range res.Skipped {
		p.Bullet("%s %s", f, ui.Faint("(exists, use --overwrite to replace)"))
	}
	for _, f := range res.Removed {
		p.Bullet("removed %s", f)
	}
	if deps := append(append([]string{}, res.Dependencies...), res.DevDependencies...); len(deps) > 0 {
		p.Bullet("installed %s", strings.Join(deps, ", "))
	}
	if len(res.Unresolved) > 0 {
		p.Warn("Continued without %s", strings.Join(res.Unresolved, ", "))
	}
}

// batchError turns a batch summary into the command's exit status
func batchError(verb string, names []string, res *installer.BatchResult) error {
	if res.OK() {
		return nil
	}
	if res.Aborted {
		return fmt.Errorf("%s aborted: %d of %d components completed", verb, len(res.Succeeded), len(names))
	}
	failed := make([]string, len(res.Failed))
	for i, f := range res.Failed {
		failed[i] = f.Name
	}
	return fmt.Errorf("failed to %s %s", verb, strings.Join(failed, ", "))
}
