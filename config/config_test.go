package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.StrictMode() {
		t.Error("expected strict processing by default")
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("expected default timeout 5s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxBody != 32<<20 {
		t.Errorf("expected default max_body 32MB, got %d", cfg.HTTP.MaxBody)
	}
	if len(cfg.Sources.Include) == 0 {
		t.Error("expected default include patterns")
	}
	if cfg.Export.Format != "turtle" {
		t.Errorf("expected default format turtle, got %s", cfg.Export.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "custom prefixes",
			modify:  func(c *Config) { c.Prefixes = map[string]string{"ddc": "http://dewey.info/class/"} },
			wantErr: false,
		},
		{
			name:    "prefix with colon",
			modify:  func(c *Config) { c.Prefixes = map[string]string{"a:b": "http://example.org/"} },
			wantErr: true,
		},
		{
			name:    "empty namespace",
			modify:  func(c *Config) { c.Prefixes = map[string]string{"ex": ""} },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.HTTP.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative max_body",
			modify:  func(c *Config) { c.HTTP.MaxBody = -1 },
			wantErr: true,
		},
		{
			name:    "watch without dir",
			modify:  func(c *Config) { c.Sources.Watch = true },
			wantErr: true,
		},
		{
			name:    "unknown export format",
			modify:  func(c *Config) { c.Export.Format = "rdfxml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
prefixes:
  ddc: "http://dewey.info/class/"
  wd: "http://www.wikidata.org/entity/"
process:
  strict: false
sources:
  dir: "/var/vocabularies"
  include:
    - "**/*.json"
  watch: true
http:
  timeout: 10s
  max_body: 1048576
nats:
  url: "nats://test:4222"
catalog:
  path: "/var/lib/jskos/catalog.db"
export:
  format: ntriples
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.StrictMode() {
		t.Error("expected lenient mode from file")
	}
	if cfg.Prefixes["ddc"] != "http://dewey.info/class/" {
		t.Errorf("expected ddc prefix, got %q", cfg.Prefixes["ddc"])
	}
	if cfg.Sources.Dir != "/var/vocabularies" {
		t.Errorf("expected sources dir /var/vocabularies, got %s", cfg.Sources.Dir)
	}
	if !cfg.Sources.Watch {
		t.Error("expected watch enabled")
	}
	if cfg.HTTP.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxBody != 1048576 {
		t.Errorf("expected max_body 1048576, got %d", cfg.HTTP.MaxBody)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.Catalog.Path != "/var/lib/jskos/catalog.db" {
		t.Errorf("expected catalog path, got %s", cfg.Catalog.Path)
	}
	if cfg.Export.Format != "ntriples" {
		t.Errorf("expected format ntriples, got %s", cfg.Export.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config does not validate: %v", err)
	}
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
nats:
  url: "nats://only:4222"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.NATS.URL != "nats://only:4222" {
		t.Errorf("expected overridden NATS URL, got %s", cfg.NATS.URL)
	}
	// Untouched sections keep their defaults
	if !cfg.StrictMode() {
		t.Error("expected strict default to survive")
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.HTTP.Timeout)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("JSKOS_TEST_URL", "nats://envhost:4222")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
nats:
  url: "${JSKOS_TEST_URL}"
catalog:
  path: "${JSKOS_TEST_UNSET}"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.NATS.URL != "nats://envhost:4222" {
		t.Errorf("expected env-substituted URL, got %s", cfg.NATS.URL)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("expected unset variable to expand empty, got %q", cfg.Catalog.Path)
	}
}

func TestConfigMerge(t *testing.T) {
	lenient := false
	base := DefaultConfig()
	override := &Config{
		Prefixes: map[string]string{"ddc": "http://dewey.info/class/"},
		Process:  ProcessConfig{Strict: &lenient},
		Catalog:  CatalogConfig{Path: "/override/catalog.db"},
	}

	base.Merge(override)

	if base.StrictMode() {
		t.Error("expected lenient mode after merge")
	}
	if base.Prefixes["ddc"] != "http://dewey.info/class/" {
		t.Errorf("expected merged prefix, got %q", base.Prefixes["ddc"])
	}
	if base.Catalog.Path != "/override/catalog.db" {
		t.Errorf("expected catalog path override, got %s", base.Catalog.Path)
	}
	// NATS should remain from base since override didn't set it
	if base.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected NATS URL to remain default, got %s", base.NATS.URL)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Catalog.Path = "/saved/catalog.db"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Catalog.Path != "/saved/catalog.db" {
		t.Errorf("expected catalog path /saved/catalog.db, got %s", loaded.Catalog.Path)
	}
}
