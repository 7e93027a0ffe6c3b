package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/riolet/sadl/dsl"
	"github.com/riolet/sadl/visualization"
)

func render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	output := fs.String("output", "", "Output SVG file (required)")
	view := fs.String("view", "schema", "Diagram view: schema or instances")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sadl render <file.sadl> [options]

Generate an SVG diagram of the architecture. The schema view shows node
classes and link classes; the instances view shows deployed instances,
NATs and connections.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Class-level schema
  sadl render network.sadl --output schema.svg

  # Deployed instances
  sadl render network.sadl --view instances --output instances.svg
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("architecture file required")
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	ast, err := parseFile(fs.Arg(0))
	if err != nil {
		return err
	}
	svg, err := renderView(ast, *view)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write SVG: %w", err)
	}

	fmt.Printf("✓ Diagram saved to %s\n", *output)
	return nil
}

func renderView(ast *dsl.AST, view string) (string, error) {
	switch view {
	case "schema":
		return visualization.RenderSchemaSVG(ast, nil), nil
	case "instances":
		return visualization.RenderInstancesSVG(ast, nil), nil
	default:
		return "", fmt.Errorf("unknown view %q (want schema or instances)", view)
	}
}
