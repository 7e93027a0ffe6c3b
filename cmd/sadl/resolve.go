package main

import (
	"os"
	"path/filepath"

	"github.com/riolet/sadl/dsl"
)

// newFileResolver returns a resolver reading include paths from disk.
// Relative paths resolve against the directory of the including file. The
// parser identifies files by their literal include strings, so the
// resolver remembers where each one was actually read; nested includes
// then resolve against that location rather than the process directory.
func newFileResolver(rootPath string) dsl.Resolver {
	resolved := map[string]string{rootPath: rootPath}
	return func(path, fromPath string) (string, error) {
		full := path
		if !filepath.IsAbs(full) && fromPath != "" {
			from, ok := resolved[fromPath]
			if !ok {
				from = fromPath
			}
			full = filepath.Join(filepath.Dir(from), full)
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return "", err
		}
		resolved[path] = full
		return string(data), nil
	}
}

// parseFile loads and parses an architecture file with filesystem include
// resolution.
func parseFile(path string) (*dsl.AST, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dsl.ParseWithOptions(string(data), &dsl.Options{
		Resolver: newFileResolver(path),
		Path:     path,
	})
}
