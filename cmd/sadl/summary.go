package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/riolet/sadl/dsl"
)

func summary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sadl summary <file.sadl>

Display the declared classes, instances, NATs and connections of an
architecture file.

Examples:
  sadl summary network.sadl
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("architecture file required")
	}

	ast, err := parseFile(fs.Arg(0))
	if err != nil {
		return err
	}
	printSummary(ast)
	return nil
}

func printSummary(ast *dsl.AST) {
	fmt.Println("=== Architecture Summary ===")

	if len(ast.Includes) > 0 {
		fmt.Printf("Includes (%d):\n", len(ast.Includes))
		for _, inc := range ast.Includes {
			fmt.Printf("  %s\n", inc.Path)
		}
		fmt.Println()
	}

	fmt.Printf("Node classes (%d):\n", len(ast.NodeClasses))
	for _, nc := range ast.NodeClasses {
		fmt.Printf("  %s\n", nc.Name)
		for _, conn := range nc.Connectors {
			role := "server"
			if conn.Role == dsl.RoleClient {
				role = "client"
			}
			fmt.Printf("    %-6s %s%s\n", role, conn.Name, formatPorts(conn.Ports))
		}
	}
	fmt.Println()

	fmt.Printf("Link classes (%d):\n", len(ast.LinkClasses))
	for _, lc := range ast.LinkClasses {
		fmt.Printf("  %s.%s -> %s.%s\n",
			lc.From.NodeClass, lc.From.Connector, lc.To.NodeClass, lc.To.Connector)
	}
	fmt.Println()

	fmt.Printf("Instances (%d groups):\n", len(ast.Instances))
	for _, inst := range ast.Instances {
		for _, e := range inst.Entries {
			if e.IP != "" {
				fmt.Printf("  %s %s (%s)\n", inst.NodeClass, e.Name, e.IP)
			} else {
				fmt.Printf("  %s %s\n", inst.NodeClass, e.Name)
			}
		}
	}
	fmt.Println()

	fmt.Printf("NATs (%d):\n", len(ast.NATs))
	for _, nat := range ast.NATs {
		fmt.Printf("  %s: %s -> %s\n", nat.Name, nat.ExternalIP, nat.InternalIP)
	}
	fmt.Println()

	fmt.Printf("Connections (%d):\n", len(ast.Connections))
	for _, c := range ast.Connections {
		fmt.Printf("  %s -> %s\n", c.From, c.To)
	}
}

func formatPorts(ports []dsl.PortSpec) string {
	if len(ports) == 0 {
		return ""
	}
	out := " ("
	for i, p := range ports {
		if i > 0 {
			out += ", "
		}
		var body string
		if p.Range != nil {
			body = fmt.Sprintf("%d-%d", p.Range.Start, p.Range.End)
		} else {
			body = fmt.Sprintf("%d", p.Port)
		}
		if p.Protocol == dsl.ProtocolUDP {
			body = "UDP(" + body + ")"
		}
		out += body
	}
	return out + ")"
}
