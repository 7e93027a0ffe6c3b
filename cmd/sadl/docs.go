package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/riolet/sadl/store"
)

// docs groups the document store subcommands. Stored documents can
// include each other by name, so a shared schema library saved once can
// be referenced from every architecture that needs it.
func docs(args []string) error {
	if len(args) < 1 {
		printDocsUsage()
		return fmt.Errorf("docs subcommand required")
	}

	sub := args[0]
	rest := args[1:]

	switch sub {
	case "save":
		return docsSave(rest)
	case "list":
		return docsList(rest)
	case "show":
		return docsShow(rest)
	case "render":
		return docsRender(rest)
	case "delete":
		return docsDelete(rest)
	case "help", "-h", "--help":
		printDocsUsage()
		return nil
	default:
		printDocsUsage()
		return fmt.Errorf("unknown docs subcommand: %s", sub)
	}
}

func printDocsUsage() {
	fmt.Println(`Usage: sadl docs <subcommand> [options]

Subcommands:
  save <name> <file.sadl>   Store or update a document under a name
  list                      List stored documents
  show <name>               Print a document's source
  render <name>             Render a stored document to SVG
  delete <name>             Remove a document

All subcommands accept --db <path> (default arch.db).`)
}

func openDocsStore(fs *flag.FlagSet) (*store.Store, error) {
	db := fs.Lookup("db").Value.String()
	return store.Open(db)
}

func dbFlag(fs *flag.FlagSet) {
	fs.String("db", "arch.db", "SQLite database file")
}

func docsSave(args []string) error {
	fs := flag.NewFlagSet("docs save", flag.ExitOnError)
	dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: sadl docs save <name> <file.sadl> [--db path]")
	}

	name := fs.Arg(0)
	data, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}

	s, err := openDocsStore(fs)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.Save(name, string(data))
	if err != nil {
		return err
	}
	fmt.Printf("✓ Saved %s (%s)\n", doc.Name, doc.ID)
	return nil
}

func docsList(args []string) error {
	fs := flag.NewFlagSet("docs list", flag.ExitOnError)
	dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openDocsStore(fs)
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No documents stored.")
		return nil
	}
	for _, doc := range list {
		fmt.Printf("%-20s %s  updated %s\n",
			doc.Name, doc.ID, doc.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func docsShow(args []string) error {
	fs := flag.NewFlagSet("docs show", flag.ExitOnError)
	dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: sadl docs show <name> [--db path]")
	}

	s, err := openDocsStore(fs)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.GetByName(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Print(doc.Source)
	return nil
}

func docsRender(args []string) error {
	fs := flag.NewFlagSet("docs render", flag.ExitOnError)
	dbFlag(fs)
	output := fs.String("output", "", "Output SVG file (required)")
	view := fs.String("view", "schema", "Diagram view: schema or instances")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: sadl docs render <name> --output out.svg [--db path]")
	}
	if *output == "" {
		return fmt.Errorf("--output required")
	}

	s, err := openDocsStore(fs)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.GetByName(fs.Arg(0))
	if err != nil {
		return err
	}
	ast, err := s.AST(doc.ID)
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

func docsDelete(args []string) error {
	fs := flag.NewFlagSet("docs delete", flag.ExitOnError)
	dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: sadl docs delete <name> [--db path]")
	}

	s, err := openDocsStore(fs)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.GetByName(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := s.Delete(doc.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted %s\n", doc.Name)
	return nil
}
