package kosprocessor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/c360studio/semstreams/component"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/graph"
	"github.com/c360studio/jskos/processor"
	"github.com/c360studio/jskos/vocabulary/jskos"
)

// kosProcessorSchema defines the configuration schema.
var kosProcessorSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the kos-processor component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// StreamName is the JetStream stream for pipeline messages.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream name,category:basic,default:KOS"`

	// ConsumerName is the durable consumer name.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name,category:basic,default:kos-processor"`

	// Prefixes maps additional prefix names to namespace URIs, layered
	// over the built-in vocabulary table.
	Prefixes map[string]string `json:"prefixes" schema:"type:object,description:Prefix to namespace bindings layered over the built-in table,category:basic"`

	// Strict aborts processing on unresolvable URIs. Lenient mode keeps
	// them as opaque references instead.
	Strict bool `json:"strict" schema:"type:bool,description:Abort on unresolvable URIs instead of keeping them opaque,category:basic,default:true"`

	// PublishGraph publishes concept entities to the graph ingest
	// subject.
	PublishGraph bool `json:"publish_graph" schema:"type:bool,description:Publish concept entities to the knowledge graph,category:advanced,default:true"`

	// Persist stores document and concept records in the KV buckets.
	Persist bool `json:"persist" schema:"type:bool,description:Store document and concept records in the KV buckets,category:advanced,default:false"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	for prefix, namespace := range c.Prefixes {
		if prefix == "" {
			return fmt.Errorf("prefixes: empty prefix name")
		}
		if strings.Contains(prefix, ":") {
			return fmt.Errorf("prefixes: prefix %q must not contain a colon", prefix)
		}
		if namespace == "" {
			return fmt.Errorf("prefixes: prefix %q has an empty namespace", prefix)
		}
	}
	return nil
}

// converter builds the resolution table: configured prefixes layered
// over the built-in vocabulary table, configured bindings winning.
func (c *Config) converter() (*curie.Converter, error) {
	table := jskos.DefaultPrefixes()
	for prefix, namespace := range c.Prefixes {
		table[prefix] = namespace
	}
	return curie.NewConverter(table)
}

// DefaultConfig returns default configuration for the kos-processor.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "documents.in",
					Type:        "jetstream",
					Subject:     processor.RawSubject,
					StreamName:  processor.StreamName,
					Required:    true,
					Description: "Validated raw documents from the ingester",
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "processed.out",
					Type:        "jetstream",
					Subject:     processor.ProcessedSubject,
					StreamName:  processor.StreamName,
					Required:    true,
					Description: "Processed documents for export",
				},
				{
					Name:        "graph.out",
					Type:        "jetstream",
					Subject:     graph.IngestSubject,
					StreamName:  "GRAPH",
					Required:    false,
					Description: "Concept entity updates for graph ingestion",
				},
			},
		},
		StreamName:   processor.StreamName,
		ConsumerName: "kos-processor",
		Strict:       true,
		PublishGraph: true,
	}
}
