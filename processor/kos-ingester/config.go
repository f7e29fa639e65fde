package kosingester

import (
	"fmt"
	"reflect"
	"time"

	"github.com/c360studio/semstreams/component"

	"github.com/c360studio/jskos/processor"
	"github.com/c360studio/jskos/source"
)

// kosIngesterSchema defines the configuration schema.
var kosIngesterSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the kos-ingester component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// StreamName is the JetStream stream for pipeline messages.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream name,category:basic,default:KOS"`

	// ConsumerName is the durable consumer name.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name,category:basic,default:kos-ingester"`

	// SourcesDir is the base directory for vocabulary documents.
	SourcesDir string `json:"sources_dir" schema:"type:string,description:Base directory for vocabulary documents,category:basic"`

	// Include lists glob patterns selecting documents under SourcesDir.
	Include []string `json:"include" schema:"type:array,description:Glob patterns selecting documents to watch,category:advanced,default:[**/*.json,**/*.json.xz]"`

	// Watch enables filesystem watching of SourcesDir.
	Watch bool `json:"watch" schema:"type:bool,description:Watch the sources directory for changed documents,category:advanced,default:false"`

	// DebounceDelay is how long to wait for more changes before reading.
	DebounceDelay string `json:"debounce_delay" schema:"type:string,description:Debounce delay before reading changed files,category:advanced,default:500ms"`

	// HTTPTimeout bounds remote document retrieval.
	HTTPTimeout string `json:"http_timeout" schema:"type:string,description:Timeout for remote document retrieval,category:advanced,default:5s"`

	// MaxBody caps remote response bodies in bytes. Zero means the
	// built-in limit.
	MaxBody int64 `json:"max_body" schema:"type:int,description:Maximum remote response size in bytes,category:advanced"`

	// AllowPrivate permits retrieval from private and loopback hosts.
	AllowPrivate bool `json:"allow_private" schema:"type:bool,description:Allow retrieval from private and loopback hosts,category:advanced,default:false"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.Watch && c.SourcesDir == "" {
		return fmt.Errorf("watch requires sources_dir")
	}
	if c.DebounceDelay != "" {
		if _, err := time.ParseDuration(c.DebounceDelay); err != nil {
			return fmt.Errorf("invalid debounce_delay format: %w", err)
		}
	}
	if c.HTTPTimeout != "" {
		if _, err := time.ParseDuration(c.HTTPTimeout); err != nil {
			return fmt.Errorf("invalid http_timeout format: %w", err)
		}
	}
	if c.MaxBody < 0 {
		return fmt.Errorf("max_body must not be negative")
	}
	return nil
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *Config) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// GetHTTPTimeout returns the retrieval timeout as a duration.
func (c *Config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout == "" {
		return source.DefaultTimeout
	}
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return source.DefaultTimeout
	}
	return d
}

// sourceOptions maps the retrieval settings onto source options.
func (c *Config) sourceOptions() []source.Option {
	opts := []source.Option{source.WithTimeout(c.GetHTTPTimeout())}
	if c.MaxBody > 0 {
		opts = append(opts, source.WithMaxSize(c.MaxBody))
	}
	if c.AllowPrivate {
		opts = append(opts, source.AllowPrivateHosts())
	}
	return opts
}

// DefaultConfig returns default configuration for the kos-ingester.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "requests.in",
					Type:        "jetstream",
					Subject:     processor.IngestSubject,
					StreamName:  processor.StreamName,
					Required:    true,
					Description: "Document ingest requests",
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "documents.out",
					Type:        "jetstream",
					Subject:     processor.RawSubject,
					StreamName:  processor.StreamName,
					Required:    true,
					Description: "Validated raw documents for processing",
				},
			},
		},
		StreamName:    processor.StreamName,
		ConsumerName:  "kos-ingester",
		Include:       []string{"**/*.json", "**/*.json.xz"},
		DebounceDelay: "500ms",
		HTTPTimeout:   "5s",
		MaxBody:       source.DefaultMaxSize,
	}
}
