package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/config"
	"github.com/harukit/harukit/internal/registry"
	"github.com/harukit/harukit/internal/ui"
)

var (
	listInstalled bool
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available or installed components",
	Long: `List every component in the registry, marking the ones already installed.

With --installed only the components recorded in harukit.json are shown.
If the registry cannot be reached the installed list is shown instead.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listInstalled, "installed", "i", false, "Only show installed components")
	listCmd.Flags().BoolVarP(&listJSON, "json", "j", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, err := a.load()
	if err != nil {
		return err
	}

	if listInstalled {
		return printInstalled(cmd, a, cfg)
	}

	client, err := a.registry(cfg)
	if err != nil {
		return err
	}
	records, err := registry.ListAll(cmd.Context(), client)
	if err != nil {
		a.printer.Fail("Failed to fetch components from registry: %v", err)
		a.printer.Warn("Showing installed components only")
		a.printer.Println()
		return printInstalled(cmd, a, cfg)
	}

	if listJSON {
		type componentJSON struct {
			Name        string `json:"name"`
			Version     string `json:"version"`
			Category    string `json:"category"`
			Description string `json:"description"`
			Installed   bool   `json:"installed"`
		}
		out := make([]componentJSON, 0, len(records))
		for _, r := range records {
			out = append(out, componentJSON{r.Name, r.Version, r.Category, r.Description, cfg.HasComponent(r.Name)})
		}
		return writeJSON(cmd, out)
	}

	p := a.printer
	p.Heading("Available Components")
	for _, r := range records {
		p.Printf("  %s %s - %s\n", ui.Check(cfg.HasComponent(r.Name)), ui.Name(r.Name), r.Description)
		p.Printf("    %s\n", ui.Faint(fmt.Sprintf("Version: %s | Category: %s", r.Version, r.Category)))
		if len(r.Tags) > 0 {
			p.Printf("    %s\n", ui.Faint("Tags: "+strings.Join(r.Tags, ", ")))
		}
	}
	p.Println()
	p.Println(ui.Faint(fmt.Sprintf("Total: %d components available", len(records))))
	p.Println("Run \"harukit add <component>\" to install a component")
	return nil
}

func printInstalled(cmd *cobra.Command, a *app, cfg *config.ProjectConfig) error {
	if listJSON {
		return writeJSON(cmd, cfg.Components)
	}

	p := a.printer
	p.Heading("Installed Components")
	if len(cfg.Components) == 0 {
		p.Println("No components installed yet.")
		p.Println(ui.Faint("Run \"harukit add <component>\" to install components."))
		return nil
	}
	for _, name := range cfg.Components {
		p.Bullet("%s", ui.Name(name))
	}
	p.Println()
	p.Println(ui.Faint(fmt.Sprintf("Total: %d components", len(cfg.Components))))
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
