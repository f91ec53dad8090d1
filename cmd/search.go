package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/registry"
	"github.com/harukit/harukit/internal/ui"
)

var (
	searchCategory   string
	searchCategories bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the component registry",
	Long: `Search components by name, description, tag or category.

Examples:
  harukit search date           # Match "date" anywhere
  harukit search --category form
  harukit search --categories   # List categories`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "Only show components in this category")
	searchCmd.Flags().BoolVar(&searchCategories, "categories", false, "List registry categories")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && searchCategory == "" && !searchCategories {
		return fmt.Errorf("a query, --category or --categories is required")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, err := a.load()
	if err != nil {
		return err
	}
	client, err := a.registry(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p := a.printer

	if searchCategories {
		cats, err := client.GetCategories(ctx)
		if err != nil {
			return err
		}
		p.Heading("Categories")
		p.List(cats)
		return nil
	}

	var records []registry.ComponentRecord
	query := strings.Join(args, " ")
	switch {
	case searchCategory != "":
		records, err = client.ComponentsByCategory(ctx, searchCategory)
		if err == nil && query != "" {
			filtered := records[:0]
			for i := range records {
				if registry.Matches(&records[i], query) {
					filtered = append(filtered, records[i])
				}
			}
			records = filtered
		}
	default:
		records, err = client.SearchComponents(ctx, query)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		p.Printf("No components found for %q\n", strings.TrimSpace(query+" "+searchCategory))
		return nil
	}

	for _, r := range records {
		p.Printf("  %s %s - %s %s\n", ui.Check(cfg.HasComponent(r.Name)), ui.Name(r.Name), r.Description, ui.Faint("["+r.Category+"]"))
	}
	p.Println()
	p.Println(ui.Faint(fmt.Sprintf("%d result(s)", len(records))))
	return nil
}
