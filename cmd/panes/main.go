package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/panes/cmd/panes/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = commands.Run(args)
	case "check":
		err = commands.Check(args)
	case "convert":
		err = commands.Convert(args)
	case "dump":
		err = commands.Dump(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("panes version %s (layout documents %s)\n", commands.Version, commands.DocumentVersion())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`panes - retained widget toolkit CLI

Usage: panes <command> [options]

Commands:
  run       Show a layout document in the terminal
  check     Validate layout documents
  convert   Convert a layout document between TOML and YAML
  dump      Print the draw commands or the cell grid of a layout
  init      Create panes.toml and a sample layout
  version   Print version information
  help      Show this help message

Examples:
  panes init                          Create panes.toml and login.toml
  panes run                           Run the layout named in panes.toml
  panes run --watch login.toml        Reload login.toml whenever it changes
  panes check login.toml form.yaml    Validate two documents
  panes convert -o login.yaml login.toml
  panes dump --format text login.toml

Configuration:
  Commands read panes.toml from the working directory or its parents.
  Use --config to point at another file.`)
}
