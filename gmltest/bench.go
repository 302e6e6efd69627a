// Copyright © 2024 The gmlfmt authors

// Package gmltest holds helpers shared by the gmlfmt test suites.
package gmltest

import (
	"os"
	"testing"
)

// BenchmarkSource returns a benchmark which calls fn on src b.N times.
func BenchmarkSource(src []byte, fn func([]byte) error) func(*testing.B) {
	return func(b *testing.B) {
		b.SetBytes(int64(len(src)))
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if err := fn(src); err != nil {
				b.Fatalf("benchmark failure: %v", err)
			}
		}
	}
}

// BenchmarkFile is BenchmarkSource for the contents of the file at path.
func BenchmarkFile(path string, fn func([]byte) error) func(*testing.B) {
	return func(b *testing.B) {
		src, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		BenchmarkSource(src, fn)(b)
	}
}
