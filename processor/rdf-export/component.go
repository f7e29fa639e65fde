// Package rdfexport provides the pipeline output component that
// serializes processed JSKOS documents to RDF and publishes the result
// on the export subject.
package rdfexport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/export"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/process"
	"github.com/c360studio/jskos/processor"
	kosprocessor "github.com/c360studio/jskos/processor/kos-processor"
)

// Component implements the rdf-export output processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	format export.Format

	// Resolved subjects from port config
	inputSubject  string
	inputStream   string
	outputSubject string

	// Lifecycle
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	documentsExported atomic.Int64
	exportErrors      atomic.Int64
	lastActivityMu    sync.RWMutex
	lastActivity      time.Time

	exportedCounter prometheus.Counter
	errorCounter    prometheus.Counter
}

// NewComponent creates a new rdf-export output component.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.Ports == nil {
		config = DefaultConfig()
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("unmarshal config with defaults: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Resolve subjects from port definitions
	inputSubject := processor.ProcessedSubject
	inputStream := processor.StreamName
	outputSubject := processor.ExportSubject

	if config.Ports != nil {
		if len(config.Ports.Inputs) > 0 {
			inputSubject = config.Ports.Inputs[0].Subject
			inputStream = config.Ports.Inputs[0].StreamName
		}
		if len(config.Ports.Outputs) > 0 {
			outputSubject = config.Ports.Outputs[0].Subject
		}
	}

	c := &Component{
		name:          "rdf-export",
		config:        config,
		natsClient:    deps.NATSClient,
		logger:        deps.GetLogger(),
		format:        config.GetFormat(),
		inputSubject:  inputSubject,
		inputStream:   inputStream,
		outputSubject: outputSubject,
	}

	if deps.MetricsRegistry != nil {
		c.exportedCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jskos_export_documents_total",
			Help: "Documents serialized to RDF and published to the export subject",
		})
		c.errorCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jskos_export_errors_total",
			Help: "Documents that failed to serialize or publish",
		})
		if err := deps.MetricsRegistry.RegisterCounter(c.name, "jskos_export_documents_total", c.exportedCounter); err != nil {
			c.logger.Warn("Failed to register metric",
				"metric", "jskos_export_documents_total",
				"error", err)
		}
		if err := deps.MetricsRegistry.RegisterCounter(c.name, "jskos_export_errors_total", c.errorCounter); err != nil {
			c.logger.Warn("Failed to register metric",
				"metric", "jskos_export_errors_total",
				"error", err)
		}
	}

	return c, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins consuming processed documents and producing RDF output.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}

	c.running = true
	c.startTime = time.Now()

	consumeCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	consumerCfg := natsclient.StreamConsumerConfig{
		StreamName:    c.inputStream,
		ConsumerName:  c.config.ConsumerName,
		FilterSubject: c.inputSubject,
		DeliverPolicy: "new",
		AckPolicy:     "explicit",
		MaxDeliver:    3,
		AckWait:       30 * time.Second,
	}

	err := c.natsClient.ConsumeStreamWithConfig(consumeCtx, consumerCfg, c.handleMessage)
	if err != nil {
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("start consumer: %w", err)
	}

	c.logger.Info("rdf-export started",
		"format", c.format,
		"stream", c.inputStream,
		"input", c.inputSubject,
		"output", c.outputSubject)

	return nil
}

// handleMessage serializes a single processed document.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.updateLastActivity()

	var baseMsg message.BaseMessage
	if err := json.Unmarshal(msg.Data(), &baseMsg); err != nil {
		c.logger.Warn("Failed to unmarshal base message",
			"error", err,
			"subject", msg.Subject())
		c.countError()
		_ = msg.Nak()
		return
	}

	payload, ok := baseMsg.Payload().(*kosprocessor.ProcessedPayload)
	if !ok {
		c.logger.Warn("Payload is not a processed document",
			"type", baseMsg.Type(),
			"subject", msg.Subject())
		c.countError()
		_ = msg.Nak()
		return
	}

	content, statements, err := c.serialize(payload)
	if err != nil {
		c.logger.Warn("Failed to serialize document",
			"document_id", payload.DocumentID,
			"format", c.format,
			"error", err)
		c.countError()
		_ = msg.Nak()
		return
	}

	out := &ExportPayload{
		DocumentID: payload.DocumentID,
		Format:     string(c.format),
		Content:    content,
		Statements: statements,
	}
	outMsg := message.NewBaseMessage(ExportType, out, "jskos")
	data, err := json.Marshal(outMsg)
	if err != nil {
		c.logger.Warn("Failed to marshal export message",
			"document_id", payload.DocumentID,
			"error", err)
		c.countError()
		_ = msg.Nak()
		return
	}
	if err := c.natsClient.PublishToStream(ctx, c.outputSubject, data); err != nil {
		c.logger.Warn("Failed to publish RDF output",
			"document_id", payload.DocumentID,
			"subject", c.outputSubject,
			"error", err)
		c.countError()
		_ = msg.Nak()
		return
	}

	c.documentsExported.Add(1)
	if c.exportedCounter != nil {
		c.exportedCounter.Inc()
	}
	_ = msg.Ack()

	c.logger.Debug("Exported document to RDF",
		"document_id", payload.DocumentID,
		"format", c.format,
		"statements", statements,
		"output_bytes", len(content))
}

// serialize re-derives the processed form from the payload's document
// and resolution context, then renders it in the configured format.
func (c *Component) serialize(payload *kosprocessor.ProcessedPayload) (string, int, error) {
	conv, err := curie.NewConverter(payload.Prefixes)
	if err != nil {
		return "", 0, fmt.Errorf("build converter: %w", err)
	}

	var doc model.KOS
	if err := json.Unmarshal(payload.Document, &doc); err != nil {
		return "", 0, fmt.Errorf("decode document: %w", err)
	}

	var opts []process.Option
	if !payload.Strict {
		opts = append(opts, process.Lenient())
	}
	result, err := process.New(conv, opts...).KOS(&doc)
	if err != nil {
		return "", 0, fmt.Errorf("process document: %w", err)
	}

	exporter := export.New(conv)
	exporter.AddKOS(result)
	content, err := exporter.Export(c.format)
	if err != nil {
		return "", 0, err
	}
	return content, exporter.Statements(), nil
}

func (c *Component) countError() {
	c.exportErrors.Add(1)
	if c.errorCounter != nil {
		c.errorCounter.Inc()
	}
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	c.running = false
	c.logger.Info("rdf-export stopped",
		"documents_exported", c.documentsExported.Load(),
		"errors", c.exportErrors.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "rdf-export",
		Type:        "output",
		Description: "Serializes processed JSKOS documents to RDF (Turtle, N-Triples)",
		Version:     "1.0.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition, using
// JetStreamPort for jetstream-type ports and NATSPort for core NATS
// ports.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: portDef.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return rdfExportSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.exportErrors.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
