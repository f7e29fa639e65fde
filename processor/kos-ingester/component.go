// Package kosingester provides the pipeline entry component. It reads
// JSKOS documents from the filesystem or over HTTP on request, validates
// them, and publishes them for processing. It can also watch a sources
// directory and ingest documents as they change.
package kosingester

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/jskos/processor"
	"github.com/c360studio/jskos/source"
)

// Component implements the kos-ingester processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	// Resolved subjects from port config
	inputSubject  string
	inputStream   string
	outputSubject string

	watcher *Watcher

	// Lifecycle
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	documentsIngested atomic.Int64
	ingestErrors      atomic.Int64
	lastActivityMu    sync.RWMutex
	lastActivity      time.Time

	ingestedCounter prometheus.Counter
	errorCounter    prometheus.Counter
}

// NewComponent creates a new kos-ingester processor component.
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
	inputSubject := processor.IngestSubject
	inputStream := processor.StreamName
	outputSubject := processor.RawSubject

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
		name:          "kos-ingester",
		config:        config,
		natsClient:    deps.NATSClient,
		logger:        deps.GetLogger(),
		inputSubject:  inputSubject,
		inputStream:   inputStream,
		outputSubject: outputSubject,
	}

	if deps.MetricsRegistry != nil {
		c.ingestedCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jskos_ingester_documents_total",
			Help: "Documents read, validated, and published to the raw subject",
		})
		c.errorCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jskos_ingester_errors_total",
			Help: "Ingest attempts that failed to read, validate, or publish",
		})
		if err := deps.MetricsRegistry.RegisterCounter(c.name, "jskos_ingester_documents_total", c.ingestedCounter); err != nil {
			c.logger.Warn("Failed to register metric",
				"metric", "jskos_ingester_documents_total",
				"error", err)
		}
		if err := deps.MetricsRegistry.RegisterCounter(c.name, "jskos_ingester_errors_total", c.errorCounter); err != nil {
			c.logger.Warn("Failed to register metric",
				"metric", "jskos_ingester_errors_total",
				"error", err)
		}
	}

	return c, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins consuming ingest requests and, when configured, watching
// the sources directory.
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

	if c.config.Watch {
		watcher, err := NewWatcher(c.config.SourcesDir, c.config.Include, c.config.GetDebounceDelay(), c.logger)
		if err != nil {
			c.logger.Error("Failed to create sources watcher", "error", err)
		} else {
			c.watcher = watcher
			if err := watcher.Start(consumeCtx); err != nil {
				c.logger.Error("Failed to start sources watcher", "error", err)
			} else {
				go c.processWatchEvents(consumeCtx)
			}
		}
	}

	c.logger.Info("kos-ingester started",
		"stream", c.inputStream,
		"input", c.inputSubject,
		"output", c.outputSubject,
		"watching", c.config.Watch)

	return nil
}

// handleMessage processes a single ingest request.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.updateLastActivity()

	var req IngestRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		c.logger.Warn("Failed to parse ingest request",
			"error", err,
			"subject", msg.Subject())
		c.countError()
		_ = msg.Nak()
		return
	}
	if req.Location == "" {
		c.logger.Warn("Ingest request without location")
		c.countError()
		_ = msg.Nak()
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	c.logger.Info("Processing ingest request",
		"location", req.Location,
		"request_id", req.RequestID)

	if err := c.ingest(ctx, req.Location); err != nil {
		c.logger.Error("Failed to ingest document",
			"location", req.Location,
			"request_id", req.RequestID,
			"error", err)
		c.countError()
		_ = msg.Nak()
		return
	}

	c.countIngested()
	_ = msg.Ack()
}

// ingest reads, validates, and publishes one document.
func (c *Component) ingest(ctx context.Context, location string) error {
	data, err := source.Fetch(ctx, location, c.config.sourceOptions()...)
	if err != nil {
		return err
	}
	doc, err := source.Parse(data)
	if err != nil {
		return err
	}
	return c.publishDocument(ctx, doc.ID, location, data)
}

// publishDocument wraps the document in a DocumentPayload and publishes
// it to the raw subject.
func (c *Component) publishDocument(ctx context.Context, documentID, location string, data []byte) error {
	payload := &DocumentPayload{
		DocumentID:  documentID,
		Location:    location,
		ContentHash: source.ContentHash(data),
		Document:    json.RawMessage(data),
	}

	msg := message.NewBaseMessage(DocumentType, payload, "jskos")
	out, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal document message: %w", err)
	}
	if err := c.natsClient.PublishToStream(ctx, c.outputSubject, out); err != nil {
		return fmt.Errorf("publish document: %w", err)
	}

	c.logger.Debug("Published document",
		"document_id", documentID,
		"location", location,
		"bytes", len(data))
	return nil
}

// processWatchEvents handles file watch events and triggers ingestion.
func (c *Component) processWatchEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-c.watcher.Events():
			if !ok {
				return
			}
			c.handleWatchEvent(ctx, event)
		}
	}
}

// handleWatchEvent ingests a single changed document.
func (c *Component) handleWatchEvent(ctx context.Context, event Event) {
	c.updateLastActivity()

	c.logger.Info("Document file changed, ingesting", "path", event.Path)

	if err := c.ingest(ctx, event.AbsPath); err != nil {
		c.logger.Error("Failed to ingest watched document",
			"path", event.Path,
			"error", err)
		c.countError()
		return
	}

	c.countIngested()
}

func (c *Component) countIngested() {
	c.documentsIngested.Add(1)
	if c.ingestedCounter != nil {
		c.ingestedCounter.Inc()
	}
}

func (c *Component) countError() {
	c.ingestErrors.Add(1)
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

	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			c.logger.Error("Failed to stop sources watcher", "error", err)
		}
	}

	c.running = false
	c.logger.Info("kos-ingester stopped",
		"documents_ingested", c.documentsIngested.Load(),
		"errors", c.ingestErrors.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "kos-ingester",
		Type:        "processor",
		Description: "Reads and validates JSKOS documents from disk or HTTP and publishes them for processing",
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
	return kosIngesterSchema
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
		ErrorCount: int(c.ingestErrors.Load()),
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
