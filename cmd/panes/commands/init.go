package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agiangrant/panes"
	"github.com/agiangrant/panes/persist"
	"github.com/agiangrant/panes/retained"
)

// Init implements the 'panes init' command.
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Parse(args)

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	return initProject(dir, *force)
}

func initProject(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	configPath := filepath.Join(dir, panes.ConfigFileName)
	layoutPath := filepath.Join(dir, demoLayoutName)

	if !force {
		for _, p := range []string{configPath, layoutPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	cfg := panes.DefaultConfig()
	cfg.Layout = demoLayoutName
	cfg.Width, cfg.Height = 80, 24
	if err := panes.SaveConfig(configPath, cfg); err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", configPath)

	g := retained.New(cfg.GUI)
	buildDemo(g)
	if err := persist.SaveFile(layoutPath, g.Container()); err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", layoutPath)

	fmt.Println("\nRun it with: panes run")
	return nil
}
