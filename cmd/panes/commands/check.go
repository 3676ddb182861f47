package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/agiangrant/panes/retained"
)

// Check implements the 'panes check' command: every document is decoded,
// built into a widget tree and checked for layout cycles.
func Check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := configFlag(fs)
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	files := fs.Args()
	if len(files) == 0 && cfg.Layout != "" {
		files = []string{cfg.Layout}
	}
	if len(files) == 0 {
		return errors.New("usage: panes check <layout>...")
	}

	logger := newLogger(cfg)
	var failed int
	for _, path := range files {
		g, err := openLayout(cfg, path, logger)
		if err != nil {
			fmt.Printf("  ✗ %v\n", err)
			failed++
			continue
		}
		fmt.Printf("  ✓ %s (%d widgets)\n", path, countWidgets(g.Container()))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	return nil
}

// countWidgets counts the widgets of a container and every nested one.
func countWidgets(c *retained.Container) int {
	n := 0
	for _, w := range c.GetAll() {
		n++
		if comp, ok := w.(retained.Composite); ok {
			n += countWidgets(comp.Contents())
		}
	}
	return n
}
