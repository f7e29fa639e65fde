package rdfexport

import (
	"fmt"
	"reflect"

	"github.com/c360studio/semstreams/component"

	"github.com/c360studio/jskos/export"
	"github.com/c360studio/jskos/processor"
)

// rdfExportSchema defines the configuration schema.
var rdfExportSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the rdf-export output component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// StreamName is the JetStream stream for pipeline messages.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream name,category:basic,default:KOS"`

	// ConsumerName is the durable consumer name.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name,category:basic,default:rdf-export"`

	// Format selects the RDF serialization, turtle or ntriples.
	Format string `json:"format" schema:"type:string,description:RDF serialization format (turtle/ntriples),category:basic,default:turtle"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.Format != "" {
		if _, err := export.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	return nil
}

// GetFormat returns the configured export.Format.
func (c *Config) GetFormat() export.Format {
	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return export.FormatTurtle
	}
	return f
}

// DefaultConfig returns the default configuration for rdf-export.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "processed.in",
					Type:        "jetstream",
					Subject:     processor.ProcessedSubject,
					StreamName:  processor.StreamName,
					Required:    true,
					Description: "Processed documents from the kos-processor",
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "rdf.out",
					Type:        "jetstream",
					Subject:     processor.ExportSubject,
					StreamName:  processor.StreamName,
					Required:    true,
					Description: "Serialized RDF output for downstream consumers",
				},
			},
		},
		StreamName:   processor.StreamName,
		ConsumerName: "rdf-export",
		Format:       "turtle",
	}
}
