package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agiangrant/panes/persist"
	"github.com/agiangrant/panes/retained"
)

// Convert implements the 'panes convert' command. The document is built into
// a widget tree before it is written, so the output only ever contains
// widgets and properties this build understands.
func Convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	output := fs.String("o", "", "Output file; the extension selects the format (default: stdout)")
	to := fs.String("to", "", "Output format when writing to stdout: toml or yaml")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: panes convert [-o out.yaml | -to yaml] <layout>")
	}
	in := fs.Arg(0)

	var format persist.Format
	var err error
	switch {
	case *output != "":
		format, err = persist.FormatForPath(*output)
	case *to != "":
		format, err = persist.ParseFormat(*to)
	default:
		return errors.New("either -o or -to is required")
	}
	if err != nil {
		return err
	}

	root, err := persist.ReadFile(in)
	if err != nil {
		return err
	}
	g := retained.New(retained.DefaultConfig())
	if err := g.Container().Load(root); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	var buf bytes.Buffer
	if err := persist.Encode(&buf, g.Container().Save(), format); err != nil {
		return err
	}
	if *output == "" {
		_, err := io.Copy(os.Stdout, &buf)
		return err
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}
	fmt.Printf("  ✓ Wrote %s\n", *output)
	return nil
}
