package main

import (
	"flag"
	"fmt"
	"os"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sadl validate <file.sadl>

Parse an architecture file and report the first lexical or structural
error with its line and column. Includes are resolved relative to the
file's directory.

Examples:
  sadl validate network.sadl
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("architecture file required")
	}

	file := fs.Arg(0)
	ast, err := parseFile(file)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s is valid\n", file)
	fmt.Printf("  Node classes: %d\n", len(ast.NodeClasses))
	fmt.Printf("  Link classes: %d\n", len(ast.LinkClasses))
	fmt.Printf("  Instance groups: %d\n", len(ast.Instances))
	fmt.Printf("  NATs: %d\n", len(ast.NATs))
	fmt.Printf("  Connections: %d\n", len(ast.Connections))
	return nil
}
