// Package config provides configuration loading and management for jskos.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/jskos/export"
	"github.com/c360studio/jskos/source"
)

// Config represents the complete jskos configuration
type Config struct {
	Prefixes map[string]string `yaml:"prefixes"`
	Process  ProcessConfig     `yaml:"process"`
	Sources  SourcesConfig     `yaml:"sources"`
	HTTP     HTTPConfig        `yaml:"http"`
	NATS     NATSConfig        `yaml:"nats"`
	Catalog  CatalogConfig     `yaml:"catalog"`
	Export   ExportConfig      `yaml:"export"`
}

// ProcessConfig configures the processing engine
type ProcessConfig struct {
	// Strict aborts processing at the first URI no registered prefix
	// covers. Defaults to true; set false to keep such URIs opaque.
	Strict *bool `yaml:"strict"`
}

// SourcesConfig configures local document discovery
type SourcesConfig struct {
	// Dir is the directory holding vocabulary documents
	Dir string `yaml:"dir"`
	// Include lists glob patterns selecting documents under Dir
	Include []string `yaml:"include"`
	// Watch enables filesystem watching of Dir
	Watch bool `yaml:"watch"`
}

// HTTPConfig configures remote document retrieval
type HTTPConfig struct {
	// Timeout bounds a single document retrieval
	Timeout time.Duration `yaml:"timeout"`
	// MaxBody caps HTTP response bodies in bytes
	MaxBody int64 `yaml:"max_body"`
	// AllowPrivate permits retrieval from private networks
	AllowPrivate bool `yaml:"allow_private"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
}

// CatalogConfig configures the SQLite concept catalog
type CatalogConfig struct {
	// Path is the catalog database file (empty = catalog disabled)
	Path string `yaml:"path"`
}

// ExportConfig configures RDF serialization
type ExportConfig struct {
	// Format is the default serialization (turtle or ntriples)
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	strict := true
	return &Config{
		Prefixes: nil, // merged over the built-in registry by consumers
		Process:  ProcessConfig{Strict: &strict},
		Sources: SourcesConfig{
			Include: []string{"**/*.json", "**/*.json.xz"},
		},
		HTTP: HTTPConfig{
			Timeout: source.DefaultTimeout,
			MaxBody: source.DefaultMaxSize,
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		Catalog: CatalogConfig{
			Path: "jskos.db",
		},
		Export: ExportConfig{
			Format: "turtle",
		},
	}
}

// StrictMode reports the effective processing mode.
func (c *Config) StrictMode() bool {
	if c.Process.Strict == nil {
		return true
	}
	return *c.Process.Strict
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	for prefix, ns := range c.Prefixes {
		if prefix == "" || strings.Contains(prefix, ":") {
			return fmt.Errorf("prefixes: invalid prefix %q", prefix)
		}
		if ns == "" {
			return fmt.Errorf("prefixes: empty namespace for prefix %q", prefix)
		}
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if c.HTTP.MaxBody <= 0 {
		return fmt.Errorf("http.max_body must be positive")
	}
	if c.Sources.Watch && c.Sources.Dir == "" {
		return fmt.Errorf("sources.watch requires sources.dir")
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	return nil
}

// envPattern matches ${VAR} references in config files.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv substitutes ${VAR} references with environment values.
// Unset variables expand to the empty string.
func expandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		name := string(m[2 : len(m)-1])
		return []byte(os.Getenv(name))
	})
}

// LoadFromFile loads configuration from a YAML file with environment
// variable substitution
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(expandEnv(data), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for set values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Prefixes) > 0 {
		if c.Prefixes == nil {
			c.Prefixes = make(map[string]string, len(other.Prefixes))
		}
		for prefix, ns := range other.Prefixes {
			c.Prefixes[prefix] = ns
		}
	}

	if other.Process.Strict != nil {
		c.Process.Strict = other.Process.Strict
	}

	if other.Sources.Dir != "" {
		c.Sources.Dir = other.Sources.Dir
	}
	if len(other.Sources.Include) > 0 {
		c.Sources.Include = other.Sources.Include
	}
	if other.Sources.Watch {
		c.Sources.Watch = true
	}

	if other.HTTP.Timeout != 0 {
		c.HTTP.Timeout = other.HTTP.Timeout
	}
	if other.HTTP.MaxBody != 0 {
		c.HTTP.MaxBody = other.HTTP.MaxBody
	}
	if other.HTTP.AllowPrivate {
		c.HTTP.AllowPrivate = true
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}

	if other.Catalog.Path != "" {
		c.Catalog.Path = other.Catalog.Path
	}

	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
}
