package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/config"
	"github.com/c360studio/jskos/model"
)

// colorsDoc is a small vocabulary with URIs under example.org, which
// resolves only when an ex prefix is bound.
const colorsDoc = `{
  "id": "http://example.org/kos/colors",
  "type": "http://www.w3.org/2004/02/skos/core#ConceptScheme",
  "title": {"en": "Colors"},
  "description": {"en": "A small color vocabulary"},
  "hasTopConcept": [
    {"uri": "http://example.org/colors/red", "notation": ["R"], "prefLabel": {"en": "red"}},
    {"uri": "http://example.org/colors/blue", "prefLabel": {"en": "blue"}}
  ]
}`

// opaqueDoc references a host no prefix covers.
const opaqueDoc = `{
  "id": "http://example.org/kos/opaque",
  "type": "http://www.w3.org/2004/02/skos/core#ConceptScheme",
  "title": {"en": "Opaque"},
  "description": {"en": "URIs outside every registered namespace"},
  "hasTopConcept": [
    {"uri": "https://unregistered.test/thing", "prefLabel": {"en": "thing"}}
  ]
}`

func testApp(t *testing.T) *App {
	t.Helper()
	return &App{
		cfg:    config.DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// runCommand executes a command with captured output.
func runCommand(cmd *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestParsePrefixFlags(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:   "empty list",
			values: nil,
			want:   nil,
		},
		{
			name:   "single binding",
			values: []string{"ex=http://example.org/"},
			want:   map[string]string{"ex": "http://example.org/"},
		},
		{
			name:   "multiple bindings",
			values: []string{"ex=http://example.org/", "voc=http://voc.test/"},
			want: map[string]string{
				"ex":  "http://example.org/",
				"voc": "http://voc.test/",
			},
		},
		{
			name:   "namespace containing equals",
			values: []string{"q=http://example.org/?id="},
			want:   map[string]string{"q": "http://example.org/?id="},
		},
		{
			name:    "missing separator",
			values:  []string{"ex"},
			wantErr: true,
		},
		{
			name:    "empty name",
			values:  []string{"=http://example.org/"},
			wantErr: true,
		},
		{
			name:    "empty namespace",
			values:  []string{"ex="},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrefixFlags(tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePrefixFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parsePrefixFlags() = %v, want %v", got, tt.want)
			}
			for name, ns := range tt.want {
				if got[name] != ns {
					t.Errorf("parsePrefixFlags()[%q] = %q, want %q", name, got[name], ns)
				}
			}
		})
	}
}

func TestResolveStrict(t *testing.T) {
	lenient := false

	tests := []struct {
		name        string
		cfgStrict   *bool
		strictFlag  bool
		lenientFlag bool
		want        bool
	}{
		{name: "default is strict", want: true},
		{name: "lenient flag", lenientFlag: true, want: false},
		{name: "strict flag", strictFlag: true, want: true},
		{name: "lenient wins over strict", strictFlag: true, lenientFlag: true, want: false},
		{name: "config lenient", cfgStrict: &lenient, want: false},
		{name: "strict flag over config", cfgStrict: &lenient, strictFlag: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			if tt.cfgStrict != nil {
				app.cfg.Process.Strict = tt.cfgStrict
			}
			if got := app.resolveStrict(tt.strictFlag, tt.lenientFlag); got != tt.want {
				t.Errorf("resolveStrict(%v, %v) = %v, want %v", tt.strictFlag, tt.lenientFlag, got, tt.want)
			}
		})
	}
}

func TestNewEngine(t *testing.T) {
	app := testApp(t)
	app.cfg.Prefixes = map[string]string{"example": "http://example.org/"}

	engine, err := app.newEngine(map[string]string{"example": "http://other.test/"}, false)
	if err != nil {
		t.Fatalf("newEngine() error = %v", err)
	}

	if engine.Strict() {
		t.Error("newEngine(strict=false) built a strict engine")
	}

	// Extra bindings win over configured ones.
	if ns, ok := engine.Converter().Namespace("example"); !ok || ns != "http://other.test/" {
		t.Errorf("Namespace(example) = %q, %v, want http://other.test/", ns, ok)
	}

	// Built-ins survive the merge.
	if _, ok := engine.Converter().Namespace("skos"); !ok {
		t.Error("built-in skos prefix missing after merge")
	}
}

func TestNewEngine_InvalidPrefix(t *testing.T) {
	app := testApp(t)
	if _, err := app.newEngine(map[string]string{"bad": "not-absolute"}, true); err == nil {
		t.Error("newEngine() accepted a non-absolute namespace")
	}
}

func TestDisplayLang(t *testing.T) {
	tests := []struct {
		name string
		m    model.LanguageMap
		want string
	}{
		{name: "empty", m: nil, want: ""},
		{name: "english preferred", m: model.LanguageMap{"de": "Farben", "en": "Colors"}, want: "Colors"},
		{name: "first sorted without english", m: model.LanguageMap{"fr": "Couleurs", "de": "Farben"}, want: "Farben"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayLang(tt.m); got != tt.want {
				t.Errorf("displayLang() = %q, want %q", got, tt.want)
			}
		})
	}
}
