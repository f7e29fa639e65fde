// Package kosprocessor provides the pipeline component that turns raw
// JSKOS documents into their processed form. URIs are resolved to
// CURIEs through the configured prefix table, processed documents are
// published for export, concept entities go to the knowledge graph, and
// records are optionally persisted to the KV buckets.
package kosprocessor

import (
	"context"
	"encoding/json"
	"errors"
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

	"github.com/c360studio/jskos/graph"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/process"
	"github.com/c360studio/jskos/processor"
	kosingester "github.com/c360studio/jskos/processor/kos-ingester"
	"github.com/c360studio/jskos/storage"
)

// Component implements the kos-processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	engine     *process.Engine

	// Resolved subjects from port config
	inputSubject  string
	inputStream   string
	outputSubject string

	// KV stores, set up in Start when persistence is enabled
	docStore     *storage.DocumentStore
	conceptStore *storage.ConceptStore

	// Lifecycle
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	documentsProcessed atomic.Int64
	processErrors      atomic.Int64
	lastActivityMu     sync.RWMutex
	lastActivity       time.Time

	processedCounter prometheus.Counter
	errorCounter     prometheus.Counter
}

// NewComponent creates a new kos-processor component.
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

	conv, err := config.converter()
	if err != nil {
		return nil, fmt.Errorf("build converter: %w", err)
	}
	var opts []process.Option
	if !config.Strict {
		opts = append(opts, process.Lenient())
	}

	// Resolve subjects from port definitions
	inputSubject := processor.RawSubject
	inputStream := processor.StreamName
	outputSubject := processor.ProcessedSubject

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
		name:          "kos-processor",
		config:        config,
		natsClient:    deps.NATSClient,
		logger:        deps.GetLogger(),
		engine:        process.New(conv, opts...),
		inputSubject:  inputSubject,
		inputStream:   inputStream,
		outputSubject: outputSubject,
	}

	if deps.MetricsRegistry != nil {
		c.processedCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jskos_processor_documents_total",
			Help: "Documents processed and published to the processed subject",
		})
		c.errorCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jskos_processor_errors_total",
			Help: "Documents that failed to decode, process, publish, or persist",
		})
		if err := deps.MetricsRegistry.RegisterCounter(c.name, "jskos_processor_documents_total", c.processedCounter); err != nil {
			c.logger.Warn("Failed to register metric",
				"metric", "jskos_processor_documents_total",
				"error", err)
		}
		if err := deps.MetricsRegistry.RegisterCounter(c.name, "jskos_processor_errors_total", c.errorCounter); err != nil {
			c.logger.Warn("Failed to register metric",
				"metric", "jskos_processor_errors_total",
				"error", err)
		}
	}

	return c, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins consuming raw documents.
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

	rollback := func() {
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()
		cancel()
	}

	// Stores must exist before the consumer delivers the first message.
	if c.config.Persist {
		js, err := c.natsClient.JetStream()
		if err != nil {
			rollback()
			return fmt.Errorf("get JetStream: %w", err)
		}
		docStore, err := storage.NewDocumentStore(consumeCtx, js)
		if err != nil {
			rollback()
			return fmt.Errorf("create document store: %w", err)
		}
		conceptStore, err := storage.NewConceptStore(consumeCtx, js)
		if err != nil {
			rollback()
			return fmt.Errorf("create concept store: %w", err)
		}
		c.docStore = docStore
		c.conceptStore = conceptStore
	}

	consumerCfg := natsclient.StreamConsumerConfig{
		StreamName:    c.inputStream,
		ConsumerName:  c.config.ConsumerName,
		FilterSubject: c.inputSubject,
		DeliverPolicy: "new",
		AckPolicy:     "explicit",
		MaxDeliver:    3,
		AckWait:       30 * time.Second,
	}

	if err := c.natsClient.ConsumeStreamWithConfig(consumeCtx, consumerCfg, c.handleMessage); err != nil {
		rollback()
		return fmt.Errorf("start consumer: %w", err)
	}

	c.logger.Info("kos-processor started",
		"stream", c.inputStream,
		"input", c.inputSubject,
		"output", c.outputSubject,
		"strict", c.engine.Strict(),
		"prefixes", c.engine.Converter().Len(),
		"persist", c.config.Persist)

	return nil
}

// handleMessage processes a single raw document message.
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

	payload, ok := baseMsg.Payload().(*kosingester.DocumentPayload)
	if !ok {
		c.logger.Warn("Payload is not a document payload",
			"type", baseMsg.Type(),
			"subject", msg.Subject())
		c.countError()
		_ = msg.Nak()
		return
	}

	var doc model.KOS
	if err := json.Unmarshal(payload.Document, &doc); err != nil {
		c.logger.Warn("Failed to decode document",
			"document_id", payload.DocumentID,
			"error", err)
		c.countError()
		_ = msg.Nak()
		return
	}

	result, err := c.engine.KOS(&doc)
	if err != nil {
		c.logProcessingFailure(payload.DocumentID, err)
		c.countError()
		_ = msg.Nak()
		return
	}

	records := storage.RecordKOS(result, payload.DocumentID)

	if err := c.publishProcessed(ctx, payload, len(records)); err != nil {
		c.logger.Warn("Failed to publish processed document",
			"document_id", payload.DocumentID,
			"error", err)
		c.countError()
		_ = msg.Nak()
		return
	}

	if c.config.PublishGraph {
		if err := graph.PublishKOS(ctx, c.natsClient, result, payload.DocumentID); err != nil {
			c.logger.Warn("Failed to publish concept entities",
				"document_id", payload.DocumentID,
				"error", err)
			c.countError()
			_ = msg.Nak()
			return
		}
		if err := graph.PublishDocument(ctx, c.natsClient, payload.DocumentID, payload.Location, payload.ContentHash, len(records)); err != nil {
			c.logger.Warn("Failed to publish document entity",
				"document_id", payload.DocumentID,
				"error", err)
			c.countError()
			_ = msg.Nak()
			return
		}
	}

	if c.docStore != nil {
		if err := c.persist(ctx, payload, records); err != nil {
			c.logger.Warn("Failed to persist records",
				"document_id", payload.DocumentID,
				"error", err)
			c.countError()
			// All pipeline writes are upserts, so redelivery after a
			// partial failure converges.
			_ = msg.Nak()
			return
		}
	}

	c.countProcessed()
	_ = msg.Ack()

	c.logger.Info("Document processed",
		"document_id", payload.DocumentID,
		"concepts", len(records))
}

// logProcessingFailure reports a processing error with the field path
// and offending value when the failure carries them.
func (c *Component) logProcessingFailure(documentID string, err error) {
	var fieldErr *process.FieldError
	if errors.As(err, &fieldErr) {
		c.logger.Error("Processing failed",
			"document_id", documentID,
			"path", fieldErr.Path,
			"value", fieldErr.Value,
			"error", fieldErr.Err)
		return
	}
	c.logger.Error("Processing failed",
		"document_id", documentID,
		"error", err)
}

// publishProcessed wraps the document in a ProcessedPayload and
// publishes it to the processed subject.
func (c *Component) publishProcessed(ctx context.Context, in *kosingester.DocumentPayload, concepts int) error {
	payload := &ProcessedPayload{
		DocumentID:  in.DocumentID,
		Location:    in.Location,
		ContentHash: in.ContentHash,
		Document:    in.Document,
		Prefixes:    c.engine.Converter().Prefixes(),
		Strict:      c.engine.Strict(),
		Concepts:    concepts,
	}

	msg := message.NewBaseMessage(ProcessedType, payload, "jskos")
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal processed message: %w", err)
	}
	if err := c.natsClient.PublishToStream(ctx, c.outputSubject, data); err != nil {
		return fmt.Errorf("publish processed document: %w", err)
	}
	return nil
}

// persist stores the document record and the flattened concept records.
func (c *Component) persist(ctx context.Context, in *kosingester.DocumentPayload, records []*storage.ConceptRecord) error {
	rec := &storage.DocumentRecord{
		ID:          in.DocumentID,
		Location:    in.Location,
		ContentHash: in.ContentHash,
		Document:    in.Document,
		Concepts:    len(records),
		IngestedAt:  time.Now(),
	}
	if err := c.docStore.Put(ctx, rec); err != nil {
		return err
	}
	for _, r := range records {
		if err := c.conceptStore.Put(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (c *Component) countProcessed() {
	c.documentsProcessed.Add(1)
	if c.processedCounter != nil {
		c.processedCounter.Inc()
	}
}

func (c *Component) countError() {
	c.processErrors.Add(1)
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
	c.logger.Info("kos-processor stopped",
		"documents_processed", c.documentsProcessed.Load(),
		"errors", c.processErrors.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "kos-processor",
		Type:        "processor",
		Description: "Resolves URIs to CURIEs and turns raw JSKOS documents into their processed form",
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
	return kosProcessorSchema
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
		ErrorCount: int(c.processErrors.Load()),
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
