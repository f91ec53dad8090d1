package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/config"
	"github.com/harukit/harukit/internal/pkgmgr"
	"github.com/harukit/harukit/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info [component]",
	Short: "Show component or project information",
	Long: `Show details for one registry component, or for the current project
when no component is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, err := a.load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		showProjectInfo(a, cfg)
		return nil
	}

	client, err := a.registry(cfg)
	if err != nil {
		return err
	}
	rec, err := client.GetComponent(cmd.Context(), args[0])
	if err != nil {
		return withSuggestions(cmd.Context(), client, args[0], err)
	}

	p := a.printer
	p.Heading(rec.Name)
	p.Printf("Description: %s\n", rec.Description)
	p.Printf("Version: %s\n", ui.Name(rec.Version))
	p.Printf("Category: %s\n", rec.Category)
	p.Printf("Author: %s\n", rec.Author)
	p.Printf("License: %s\n", rec.License)
	if rec.Repository != "" {
		p.Printf("Repository: %s\n", rec.Repository)
	}
	if rec.Documentation != "" {
		p.Printf("Documentation: %s\n", rec.Documentation)
	}

	p.Println("\nDependencies:")
	p.List(rec.Dependencies)
	p.Println("\nDev Dependencies:")
	p.List(rec.DevDependencies)

	p.Println("\nTags:")
	if len(rec.Tags) > 0 {
		p.Printf("  %s\n", strings.Join(rec.Tags, ", "))
	} else {
		p.List(nil)
	}

	p.Println("\nFiles:")
	for _, f := range rec.Files {
		p.Bullet("%s (%s)", f.Name, f.Type)
	}

	status := ui.Faint("Not installed")
	if cfg.HasComponent(rec.Name) {
		status = ui.Check(true) + " Installed"
	}
	p.Printf("\nStatus: %s\n", status)
	return nil
}

func showProjectInfo(a *app, cfg *config.ProjectConfig) {
	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}

	p := a.printer
	p.Heading("Project Information")
	p.Printf("Style: %s\n", cfg.Style)
	p.Printf("TypeScript: %s\n", yesNo(cfg.TSX))
	p.Printf("React Server Components: %s\n", yesNo(cfg.RSC))
	p.Printf("Tailwind: %s\n", yesNo(cfg.Tailwind.CSSVariables))
	p.Printf("Components Path: %s\n", cfg.Aliases.Components)
	p.Printf("Utils Path: %s\n", cfg.Aliases.Utils)
	p.Printf("Registry URL: %s\n", a.env.EffectiveRegistryURL(cfg))
	p.Printf("Package Manager: %s\n", pkgmgr.Detect(a.paths.Root))

	p.Println("\nInstalled Components:")
	p.List(cfg.Components)
	p.Println("\nDependencies:")
	p.List(cfg.Dependencies)
	p.Println("\nDev Dependencies:")
	p.List(cfg.DevDependencies)
}
