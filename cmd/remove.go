package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	herrors "github.com/harukit/harukit/internal/errors"
	"github.com/harukit/harukit/internal/prompt"
	"github.com/harukit/harukit/internal/ui"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:     "remove [components...]",
	Aliases: []string{"rm"},
	Short:   "Remove components from your project",
	Long: `Delete a component's files and forget it in harukit.json.

npm packages installed for the component are left in place.`,
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, unlock, err := a.lockAndLoad()
	if err != nil {
		return err
	}
	defer unlock()

	p := a.printer
	names := args
	if len(names) == 0 {
		if len(cfg.Components) == 0 {
			p.Println("No components installed")
			return nil
		}

		options := make([]prompt.Option, len(cfg.Components))
		for i, name := range cfg.Components {
			options[i] = prompt.Option{Value: name}
		}
		names, err = a.prompter.Select("Which components would you like to remove?", options)
		if errors.Is(err, herrors.ErrNotInteractive) {
			return fmt.Errorf("%w: pass component names as arguments", err)
		}
		if err != nil {
			return err
		}
		if len(names) == 0 {
			p.Println("No components selected")
			return nil
		}
	}

	if !removeYes {
		ok, err := a.prompter.Confirm(fmt.Sprintf("Remove %d component(s)?", len(names)), true)
		if err != nil {
			return err
		}
		if !ok {
			p.Println("Cancelled")
			return nil
		}
	}

	inst, _, err := a.installer(cmd, cfg)
	if err != nil {
		return err
	}

	res := inst.RunBatch(cmd.Context(), names, func(ctx context.Context, name string) error {
		if !cfg.HasComponent(name) {
			p.Warn("%s is not recorded as installed", name)
		}

		out, err := inst.RemoveComponent(ctx, name)
		if err != nil {
			return err
		}

		p.Success("Removed %s", ui.Name(name))
		printResult(p, out)
		return nil
	})

	return batchError("remove", names, res)
}
