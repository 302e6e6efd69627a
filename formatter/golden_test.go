// Copyright © 2024 The gmlfmt authors

package formatter

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/luthersystems/gmlfmt/gmltest"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

var update = flag.Bool("update", false, "rewrite the output section of golden files")

// goldenConfig reads "key: value" lines from the archive comment.  Lines
// without a colon are free text.
func goldenConfig(t testing.TB, comment []byte) *Config {
	t.Helper()
	cfg := DefaultConfig()
	for _, line := range strings.Split(string(comment), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		var err error
		switch strings.TrimSpace(key) {
		case "print_width":
			cfg.PrintWidth, err = strconv.Atoi(value)
		case "tab_width":
			cfg.TabWidth, err = strconv.Atoi(value)
		case "use_tabs":
			cfg.UseTabs, err = strconv.ParseBool(value)
		case "brace_style":
			cfg.BraceStyle, err = ParseBraceStyle(value)
		}
		require.NoError(t, err, "bad golden option %q", line)
	}
	return cfg
}

func archiveFile(a *txtar.Archive, name string) []byte {
	for _, f := range a.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)
			cfg := goldenConfig(t, archive.Comment)
			cfg.Logger = gmltest.NewLogrus(t)
			input := archiveFile(archive, "input.gml")
			require.NotNil(t, input, "missing input.gml")

			got, err := FormatFile(input, filepath.Base(path), cfg)
			require.NoError(t, err)

			if *update {
				files := []txtar.File{{Name: "input.gml", Data: input}, {Name: "output.gml", Data: got}}
				archive.Files = files
				require.NoError(t, os.WriteFile(path, txtar.Format(archive), 0o644)) //nolint:gosec // test fixture
				return
			}

			assertLayoutProperties(t, cfg, input, got)

			want := archiveFile(archive, "output.gml")
			if diff := cmp.Diff(string(want), string(got)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}

			again, err := FormatFile(got, filepath.Base(path), cfg)
			require.NoError(t, err)
			if !bytes.Equal(got, again) {
				t.Errorf("not idempotent:\n%s", cmp.Diff(string(got), string(again)))
			}
		})
	}
}

func BenchmarkGolden(b *testing.B) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(b, err)

	for _, path := range paths {
		archive, err := txtar.ParseFile(path)
		require.NoError(b, err)
		cfg := goldenConfig(b, archive.Comment)
		name := filepath.Base(path)
		b.Run(strings.TrimSuffix(name, ".txtar"), gmltest.BenchmarkSource(archiveFile(archive, "input.gml"), func(src []byte) error {
			_, err := FormatFile(src, name, cfg)
			return err
		}))
	}
}
