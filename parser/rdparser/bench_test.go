// Copyright © 2024 The gmlfmt authors

package rdparser_test

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/luthersystems/gmlfmt/gmltest"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
	"golang.org/x/tools/txtar"
)

const fixtureDir = "../../formatter/testdata"

func BenchmarkParser(b *testing.B) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.txtar"))
	if err != nil {
		b.Fatalf("Failed to list test fixtures: %v", err)
	}
	sort.Strings(files) // should be redundant
	for _, path := range files {
		archive, err := txtar.ParseFile(path)
		if err != nil {
			b.Fatalf("Unable to read fixture %v: %v", path, err)
		}
		for _, f := range archive.Files {
			if !strings.HasSuffix(f.Name, ".gml") {
				continue
			}
			name := filepath.Base(path) + "/" + f.Name
			b.Run(name, gmltest.BenchmarkSource(f.Data, func(src []byte) error {
				_, _, err := rdparser.Parse(name, src)
				return err
			}))
		}
	}
}
