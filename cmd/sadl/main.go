package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "render":
		if err := render(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "summary":
		if err := summary(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "docs":
		if err := docs(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("sadl version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sadl - system architecture description language tool

Usage:
  sadl <command> [options]

Commands:
  validate   Parse an architecture file and report errors
  render     Generate an SVG diagram from an architecture file
  summary    Display quick summary of an architecture file
  docs       Manage architecture documents in a SQLite store
  help       Show this help message
  version    Show version information

Examples:
  # Check a file parses
  sadl validate network.sadl

  # Render the class-level schema
  sadl render network.sadl --output schema.svg

  # Render the deployed instances and NATs
  sadl render network.sadl --view instances --output instances.svg

  # Store a document and render it later by name
  sadl docs save network network.sadl --db arch.db
  sadl docs render network --output schema.svg --db arch.db

For command-specific help, run:
  sadl <command> --help`)
}
