package cmd

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/harukit/harukit/internal/pkgmgr"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common project issues",
	Long: `Check the current project for common harukit issues.

Checks:
- Does harukit.json load and validate?
- Is the registry reachable?
- Is the package manager installed?
- Does the cn() utils helper exist?
- Are the files of installed components present?`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	p := a.printer
	p.Heading("Harukit Doctor")

	issues := 0

	p.Printf("Checking %s... ", a.paths.Rel(a.paths.ConfigFile))
	cfg, err := a.load()
	if err != nil {
		p.Println("FAIL")
		p.Printf("  → %v\n", err)
		return nil
	}
	p.Println("OK")

	ctx := cmd.Context()
	inst, client, err := a.installer(cmd, cfg)
	if err != nil {
		return err
	}

	p.Printf("Checking registry %s... ", a.env.EffectiveRegistryURL(cfg))
	registryOK := true
	if list, err := client.ListComponents(ctx, 1, 1); err != nil {
		p.Println("FAIL")
		p.Printf("  → %v\n", err)
		registryOK = false
		issues++
	} else {
		p.Printf("OK (%d components)\n", list.Total)
	}

	p.Print("Checking package manager... ")
	pm, err := a.packageManager(cmd)
	if err != nil {
		return err
	}
	_, signal := pkgmgr.DetectWithSignal(a.paths.Root)
	if a.env.PackageManager != "" {
		signal = "HARUKIT_PACKAGE_MANAGER"
	}
	if _, err := exec.LookPath(string(pm.Kind())); err != nil {
		p.Println("FAIL")
		p.Printf("  → %s (%s) is not on PATH\n", pm.Kind(), signal)
		issues++
	} else {
		p.Printf("OK → %s (%s)\n", pm.Kind(), signal)
	}

	p.Print("Checking utils helper... ")
	utils := a.paths.UtilsFile(cfg)
	if _, err := os.Stat(utils); err != nil {
		p.Println("WARN")
		p.Printf("  → %s is missing\n", a.paths.Rel(utils))
		p.Println("  → Run 'harukit init --force' to recreate it")
	} else {
		p.Println("OK")
	}

	p.Print("Checking installed components... ")
	switch {
	case len(cfg.Components) == 0:
		p.Println("OK (none installed)")
	case !registryOK:
		p.Println("SKIP (registry unavailable)")
	default:
		var missing []string
		for _, name := range cfg.Components {
			rec, err := client.GetComponent(ctx, name)
			if err != nil {
				missing = append(missing, name+": "+err.Error())
				continue
			}
			for _, f := range rec.Files {
				dest := inst.Destination(cfg, f, "")
				if _, err := os.Stat(dest); err != nil {
					missing = append(missing, a.paths.Rel(dest))
				}
			}
		}
		if len(missing) > 0 {
			p.Printf("WARN (%d missing)\n", len(missing))
			for _, m := range missing[:min(5, len(missing))] {
				p.Printf("  → %s\n", m)
			}
			if len(missing) > 5 {
				p.Printf("  → ... and %d more\n", len(missing)-5)
			}
			p.Println("  → Run 'harukit update' to restore them")
			issues += len(missing)
		} else {
			p.Printf("OK (%d)\n", len(cfg.Components))
		}
	}

	p.Println()
	if issues == 0 {
		p.Println("All checks passed!")
	} else {
		p.Printf("Found %d issue(s)\n", issues)
	}
	return nil
}
