package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/panes/internal/termsurface"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/retained"
)

// Dump implements the 'panes dump' command: it draws the layout once and
// prints either the recorded draw commands as YAML or the terminal cell grid.
func Dump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	configPath := configFlag(fs)
	format := fs.String("format", "yaml", "Output: yaml (draw commands) or text (cell grid)")
	width := fs.Float64("width", 0, "Root width (default: from panes.toml)")
	height := fs.Float64("height", 0, "Root height (default: from panes.toml)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *width > 0 {
		cfg.Width = float32(*width)
	}
	if *height > 0 {
		cfg.Height = float32(*height)
	}

	var path string
	switch fs.NArg() {
	case 0:
	case 1:
		path = fs.Arg(0)
	default:
		return errors.New("usage: panes dump [--format yaml|text] [layout]")
	}

	g, err := openLayout(cfg, path, newLogger(cfg))
	if err != nil {
		return err
	}

	switch *format {
	case "yaml":
		rec := render.NewRecorder()
		g.Draw(rec)
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(rec.Commands()); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		fmt.Println(drawCells(g).String())
		return nil
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

// drawCells draws g onto a cell grid the size of its root area, switching it
// to the terminal font and theme first.
func drawCells(g *retained.Gui) *termsurface.Surface {
	useTerminal(g)
	size := g.Size()
	s := termsurface.New(int(math32.Ceil(size.X)), int(math32.Ceil(size.Y)))
	g.Draw(s)
	return s
}

// useTerminal measures text in cells and drops padding. A theme loaded from
// panes.toml is kept. Setting the font refits auto-sized widgets, so the
// theme goes first.
func useTerminal(g *retained.Gui) {
	if g.Theme().Name == "default" {
		g.SetTheme(termsurface.Theme())
	}
	g.SetGlobalFont(termsurface.Face{})
	g.SetSize(g.Size())
}
