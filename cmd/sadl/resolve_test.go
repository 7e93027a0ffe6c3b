package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseFile_NestedIncludeAcrossDirectories(t *testing.T) {
	// util.sadl sits next to mid.sadl, not next to main.sadl and not in
	// the process working directory; it must resolve against the file
	// that includes it.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.sadl"), `include "lib/mid.sadl"
#nodeclass
app:: *db_connector
`)
	writeFile(t, filepath.Join(dir, "lib", "mid.sadl"), `include "util.sadl"
#nodeclass
mid_service:: mid_listener (8080)
`)
	writeFile(t, filepath.Join(dir, "lib", "util.sadl"), `#nodeclass
shared_db:: db_listener (5432)
`)

	ast, err := parseFile(filepath.Join(dir, "main.sadl"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	names := make([]string, 0, len(ast.NodeClasses))
	for _, nc := range ast.NodeClasses {
		names = append(names, nc.Name)
	}
	want := []string{"shared_db", "mid_service", "app"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestParseFile_SiblingInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.sadl"), `include "lib.sadl"`)
	writeFile(t, filepath.Join(dir, "lib.sadl"), `#nodeclass
shared:: listener (80)
`)

	ast, err := parseFile(filepath.Join(dir, "main.sadl"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ast.NodeClasses) != 1 || ast.NodeClasses[0].Name != "shared" {
		t.Errorf("expected merged shared class, got %+v", ast.NodeClasses)
	}
}
