package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update [components...]",
	Short: "Update components to the latest registry version",
	Long: `Re-fetch components from the registry and overwrite their files.

Without arguments every installed component is updated. Local edits to
component files are replaced.`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, unlock, err := a.lockAndLoad()
	if err != nil {
		return err
	}
	defer unlock()

	names := args
	if len(names) == 0 {
		if len(cfg.Components) == 0 {
			a.printer.Println("No components installed to update")
			return nil
		}
		names = append([]string{}, cfg.Components...)
	}

	inst, client, err := a.installer(cmd, cfg)
	if err != nil {
		return err
	}

	p := a.printer
	res := inst.RunBatch(cmd.Context(), names, func(ctx context.Context, name string) error {
		rec, err := client.GetComponent(ctx, name)
		if err != nil {
			return withSuggestions(ctx, client, name, err)
		}

		out, err := inst.UpdateComponent(ctx, rec)
		if err != nil {
			return err
		}

		p.Success("Updated %s to %s", ui.Name(rec.Name), ui.Faint("v"+rec.Version))
		printResult(p, out)
		return nil
	})

	return batchError("update", names, res)
}
