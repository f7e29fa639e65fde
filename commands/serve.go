package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/componentregistry"
	"github.com/c360studio/semstreams/config"
	"github.com/c360studio/semstreams/metric"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/c360studio/semstreams/service"
	"github.com/c360studio/semstreams/types"
	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/graph"
	"github.com/c360studio/jskos/processor"
	kosingester "github.com/c360studio/jskos/processor/kos-ingester"
	kosprocessor "github.com/c360studio/jskos/processor/kos-processor"
	rdfexport "github.com/c360studio/jskos/processor/rdf-export"
)

// NewServeCmd returns the serve command, which runs the NATS pipeline
// until interrupted.
func NewServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the NATS processing pipeline",
		Long: `Serve connects to NATS, ensures the pipeline streams exist, and runs
the kos-ingester, kos-processor, and rdf-export components until
interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(app)
		},
	}
}

func runServe(app *App) error {
	logger := app.Logger()
	cfg := app.buildServeConfig()

	ctx := context.Background()
	natsClient, err := connectNATS(ctx, app.natsURL(), logger)
	if err != nil {
		return err
	}
	defer natsClient.Close(ctx)

	if err := ensureStreams(ctx, cfg, natsClient, logger); err != nil {
		return err
	}

	metricsRegistry := metric.NewMetricsRegistry()
	platform := types.PlatformMeta{
		Org:      cfg.Platform.Org,
		Platform: cfg.Platform.ID,
	}

	// Config manager backs component config access for the
	// component-manager service.
	configManager, err := config.NewConfigManager(cfg, natsClient, logger)
	if err != nil {
		return fmt.Errorf("create config manager: %w", err)
	}
	if err := configManager.Start(ctx); err != nil {
		return fmt.Errorf("start config manager: %w", err)
	}
	defer configManager.Stop(5 * time.Second)

	componentRegistry := component.NewRegistry()
	if err := componentregistry.Register(componentRegistry); err != nil {
		return fmt.Errorf("register semstreams components: %w", err)
	}
	if err := kosingester.Register(componentRegistry); err != nil {
		return fmt.Errorf("register kos-ingester: %w", err)
	}
	if err := kosprocessor.Register(componentRegistry); err != nil {
		return fmt.Errorf("register kos-processor: %w", err)
	}
	if err := rdfexport.Register(componentRegistry); err != nil {
		return fmt.Errorf("register rdf-export: %w", err)
	}
	logger.Info("Component factories registered", "count", len(componentRegistry.ListFactories()))

	serviceRegistry := service.NewServiceRegistry()
	if err := service.RegisterAll(serviceRegistry); err != nil {
		return fmt.Errorf("register services: %w", err)
	}
	manager := service.NewServiceManager(serviceRegistry)
	ensureServiceManagerConfig(cfg)

	svcDeps := &service.Dependencies{
		NATSClient:        natsClient,
		MetricsRegistry:   metricsRegistry,
		Logger:            logger,
		Platform:          platform,
		Manager:           configManager,
		ComponentRegistry: componentRegistry,
	}

	if err := configureAndCreateServices(cfg, manager, svcDeps); err != nil {
		return err
	}

	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	logger.Info("Starting all services")
	if err := manager.StartAll(signalCtx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	logger.Info("Pipeline running", "nats", app.natsURL())

	<-signalCtx.Done()
	logger.Info("Received shutdown signal")

	if err := manager.StopAll(30 * time.Second); err != nil {
		logger.Error("Error stopping services", "error", err)
	}

	logger.Info("Shutdown complete")
	return nil
}

// natsURL resolves the NATS server URL. Environment variables take
// precedence over the configuration file.
func (a *App) natsURL() string {
	if env := os.Getenv("NATS_URL"); env != "" {
		return env
	}
	if env := os.Getenv("JSKOS_NATS_URL"); env != "" {
		return env
	}
	return a.cfg.NATS.URL
}

// buildServeConfig maps the jskos configuration onto the semstreams
// platform config consumed by the service manager.
func (a *App) buildServeConfig() *config.Config {
	ingesterJSON, _ := json.Marshal(map[string]any{
		"sources_dir":   a.cfg.Sources.Dir,
		"include":       a.cfg.Sources.Include,
		"watch":         a.cfg.Sources.Watch,
		"http_timeout":  a.cfg.HTTP.Timeout.String(),
		"max_body":      a.cfg.HTTP.MaxBody,
		"allow_private": a.cfg.HTTP.AllowPrivate,
	})
	processorJSON, _ := json.Marshal(map[string]any{
		"strict":   a.cfg.StrictMode(),
		"prefixes": a.cfg.Prefixes,
	})
	exportJSON, _ := json.Marshal(map[string]any{
		"format": a.cfg.Export.Format,
	})

	return &config.Config{
		Version: "1.0.0",
		Platform: config.PlatformConfig{
			Org:         "c360",
			ID:          "jskos-local",
			Environment: "dev",
		},
		NATS: config.NATSConfig{
			URLs:          []string{a.cfg.NATS.URL},
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
			JetStream: config.JetStreamConfig{
				Enabled: true,
			},
		},
		Services: types.ServiceConfigs{},
		Components: config.ComponentConfigs{
			"kos-ingester": types.ComponentConfig{
				Name:    "kos-ingester",
				Type:    types.ComponentTypeProcessor,
				Enabled: true,
				Config:  ingesterJSON,
			},
			"kos-processor": types.ComponentConfig{
				Name:    "kos-processor",
				Type:    types.ComponentTypeProcessor,
				Enabled: true,
				Config:  processorJSON,
			},
			"rdf-export": types.ComponentConfig{
				Name:    "rdf-export",
				Type:    types.ComponentTypeOutput,
				Enabled: true,
				Config:  exportJSON,
			},
		},
		Streams: config.StreamConfigs{
			processor.StreamName: config.StreamConfig{
				Subjects: []string{processor.StreamSubjects},
				MaxAge:   "24h",
				Storage:  "file",
				Replicas: 1,
			},
			"GRAPH": config.StreamConfig{
				Subjects: []string{
					graph.IngestSubject,
					"graph.export.>",
				},
				MaxAge:   "24h",
				Storage:  "memory",
				Replicas: 1,
			},
		},
	}
}

func connectNATS(ctx context.Context, url string, logger *slog.Logger) (*natsclient.Client, error) {
	logger.Info("Connecting to NATS", "url", url)

	client, err := natsclient.NewClient(url,
		natsclient.WithName("jskos"),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithCircuitBreakerThreshold(20),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, url)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, url)
	}

	logger.Info("Connected to NATS", "url", url)
	return client, nil
}

// wrapNATSError adds guidance when the NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

Start one with:
  docker run -p 4222:4222 nats:latest -js

Or set NATS_URL to point at your server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}

func ensureStreams(ctx context.Context, cfg *config.Config, natsClient *natsclient.Client, logger *slog.Logger) error {
	logger.Debug("Creating JetStream streams")
	streamsManager := config.NewStreamsManager(natsClient, logger)

	if err := streamsManager.EnsureStreams(ctx, cfg); err != nil {
		return fmt.Errorf("ensure streams: %w", err)
	}

	logger.Debug("JetStream streams ready")
	return nil
}

// ensureServiceManagerConfig fills in the service-manager entry when
// the config does not carry one.
func ensureServiceManagerConfig(cfg *config.Config) {
	if cfg.Services == nil {
		cfg.Services = make(types.ServiceConfigs)
	}

	if _, exists := cfg.Services["service-manager"]; !exists {
		defaultConfig := map[string]any{
			"http_port":  8080,
			"swagger_ui": false,
			"server_info": map[string]string{
				"title":       "jskos API",
				"description": "JSKOS vocabulary pipeline",
				"version":     Version,
			},
		}
		defaultConfigJSON, _ := json.Marshal(defaultConfig)
		cfg.Services["service-manager"] = types.ServiceConfig{
			Name:    "service-manager",
			Enabled: true,
			Config:  defaultConfigJSON,
		}
	}
}

// configureAndCreateServices configures the manager and creates the
// enabled services.
func configureAndCreateServices(cfg *config.Config, manager *service.Manager, svcDeps *service.Dependencies) error {
	if err := manager.ConfigureFromServices(cfg.Services, svcDeps); err != nil {
		return fmt.Errorf("configure service manager: %w", err)
	}

	for name, svcConfig := range cfg.Services {
		if name == "service-manager" {
			// Configured directly above.
			continue
		}
		if err := createServiceIfEnabled(manager, name, svcConfig, svcDeps); err != nil {
			return err
		}
	}

	return nil
}

func createServiceIfEnabled(manager *service.Manager, name string, svcConfig types.ServiceConfig, svcDeps *service.Dependencies) error {
	if !svcConfig.Enabled {
		slog.Info("Service disabled in config", "name", name)
		return nil
	}

	if !manager.HasConstructor(name) {
		slog.Warn("Service configured but not registered", "name", name)
		return nil
	}

	if _, err := manager.CreateService(name, svcConfig.Config, svcDeps); err != nil {
		return fmt.Errorf("create service %s: %w", name, err)
	}

	slog.Info("Created service", "name", name)
	return nil
}
