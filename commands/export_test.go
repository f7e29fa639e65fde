package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/jskos/export"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		location string
		format   export.Format
		want     string
	}{
		{
			name:     "json file",
			location: "colors.json",
			format:   export.FormatTurtle,
			want:     "colors.ttl",
		},
		{
			name:     "compressed file",
			location: "colors.json.xz",
			format:   export.FormatTurtle,
			want:     "colors.ttl",
		},
		{
			name:     "nested path ntriples",
			location: "vocab/nested/tea.json",
			format:   export.FormatNTriples,
			want:     "tea.nt",
		},
		{
			name:     "url with path",
			location: "https://example.org/voc/colors.json",
			format:   export.FormatTurtle,
			want:     "colors.ttl",
		},
		{
			name:     "url without path",
			location: "https://example.org/",
			format:   export.FormatTurtle,
			want:     "export.ttl",
		},
		{
			name:     "bare name",
			location: "colors",
			format:   export.FormatNTriples,
			want:     "colors.nt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutputPath(tt.location, tt.format); got != tt.want {
				t.Errorf("defaultOutputPath(%q, %v) = %q, want %q", tt.location, tt.format, got, tt.want)
			}
		})
	}
}

func TestExportCmd_WritesFile(t *testing.T) {
	app := testApp(t)
	dir := t.TempDir()
	file := writeDoc(t, dir, "colors.json", colorsDoc)
	out := filepath.Join(dir, "colors.nt")

	output, err := runCommand(NewExportCmd(app), file,
		"--prefix", "ex=http://example.org/", "--format", "ntriples", "--out", out)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if !strings.Contains(output, "Wrote "+out) {
		t.Errorf("confirmation missing output path:\n%s", output)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := `<http://example.org/colors/red> <http://www.w3.org/2004/02/skos/core#prefLabel> "red"@en .`
	if !strings.Contains(string(data), want) {
		t.Errorf("written RDF missing %q:\n%s", want, data)
	}
}

func TestExportCmd_StrictFailureWritesNothing(t *testing.T) {
	app := testApp(t)
	dir := t.TempDir()
	file := writeDoc(t, dir, "opaque.json", opaqueDoc)
	out := filepath.Join(dir, "opaque.ttl")

	if _, err := runCommand(NewExportCmd(app), file, "--out", out); err == nil {
		t.Fatal("export accepted an unresolvable URI in strict mode")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("failed export left an output file behind")
	}
}
