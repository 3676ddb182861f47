package commands

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/agiangrant/panes"
	"github.com/agiangrant/panes/persist"
	"github.com/agiangrant/panes/retained"
)

// Version is the CLI version.
const Version = "0.3.0"

// DocumentVersion is the layout document version this build writes.
func DocumentVersion() string { return persist.CurrentVersion }

// configFlag registers the --config flag shared by every command.
func configFlag(fs *flag.FlagSet) *string {
	return fs.String("config", "", "Path to panes.toml (default: search upwards from the working directory)")
}

// loadConfig reads the explicit config file, or the nearest panes.toml, or
// falls back to the defaults.
func loadConfig(path string) (panes.Config, error) {
	if path == "" {
		found, err := panes.FindConfig(".")
		if err != nil {
			return panes.DefaultConfig(), err
		}
		if found == "" {
			return panes.DefaultConfig(), nil
		}
		path = found
	} else if _, err := os.Stat(path); err != nil {
		return panes.DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	return panes.LoadConfig(path)
}

// newLogger logs to stderr at the configured level.
func newLogger(cfg panes.Config) *slog.Logger {
	return cfg.NewLogger(os.Stderr)
}

// openLayout builds a Gui for one layout document, or for the configured one
// when path is empty.
func openLayout(cfg panes.Config, path string, logger *slog.Logger) (*retained.Gui, error) {
	if path != "" {
		cfg.Layout = path
	}
	if cfg.Layout == "" {
		return nil, fmt.Errorf("no layout document given and none configured in %s", panes.ConfigFileName)
	}
	return panes.NewGui(cfg, logger)
}
