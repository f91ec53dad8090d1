package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/registry"
)

func init() {
	addCmd.ValidArgsFunction = completeRegistryComponents
	infoCmd.ValidArgsFunction = completeRegistryComponents
	removeCmd.ValidArgsFunction = completeInstalledComponents
	updateCmd.ValidArgsFunction = completeInstalledComponents
}

// completeInstalledComponents lists components recorded in harukit.json
func completeInstalledComponents(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := a.load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return without(cfg.Components, args), cobra.ShellCompDirectiveNoFileComp
}

// completeRegistryComponents lists registry component names with their descriptions
func completeRegistryComponents(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if cmd == infoCmd && len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	a, err := newApp(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := a.load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	client, err := a.registry(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	records, err := registry.ListAll(cmd.Context(), client)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, r := range records {
		if !slices.Contains(args, r.Name) {
			names = append(names, r.Name+"\t"+r.Description)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func without(names, exclude []string) []string {
	var out []string
	for _, n := range names {
		if !slices.Contains(exclude, n) {
			out = append(out, n)
		}
	}
	return out
}
