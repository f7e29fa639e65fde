// Package commands provides the jskos command-line commands.
// Each constructor returns a cobra command wired to the shared App,
// which carries the configuration and logger loaded at startup.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/c360studio/jskos/config"
	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/process"
	"github.com/c360studio/jskos/processed"
	"github.com/c360studio/jskos/source"
	"github.com/c360studio/jskos/vocabulary/jskos"
)

// App carries the state shared by all commands. The root command binds
// its persistent flags to the exported fields; Setup reads them once
// before any subcommand runs.
type App struct {
	// ConfigPath is an explicit config file path. Empty means layered
	// discovery: user config, then the nearest jskos.yaml.
	ConfigPath string

	// LogLevel selects the slog level (debug, info, warn, error).
	LogLevel string

	cfg    *config.Config
	logger *slog.Logger
}

// NewApp returns an App with defaults suitable for flag binding.
func NewApp() *App {
	return &App{LogLevel: "info"}
}

// Setup configures logging and loads the configuration.
func (a *App) Setup() error {
	level := slog.LevelInfo
	switch strings.ToLower(a.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	a.logger = logger

	var (
		cfg *config.Config
		err error
	)
	if a.ConfigPath != "" {
		cfg, err = config.LoadFromFile(a.ConfigPath)
	} else {
		cfg, err = config.NewLoader(logger).Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// newEngine builds a processing engine over the configured prefix
// table with extra bindings layered on top, extras winning.
func (a *App) newEngine(extra map[string]string, strict bool) (*process.Engine, error) {
	table := jskos.MergePrefixes(a.cfg.Prefixes)
	for name, ns := range extra {
		table[name] = ns
	}
	conv, err := curie.NewConverter(table)
	if err != nil {
		return nil, fmt.Errorf("build prefix table: %w", err)
	}
	var opts []process.Option
	if !strict {
		opts = append(opts, process.Lenient())
	}
	return process.New(conv, opts...), nil
}

// readAndProcess runs the read and resolve pipeline shared by the
// process and export commands.
func (a *App) readAndProcess(ctx context.Context, location string, extra map[string]string, strict bool) (*processed.KOS, *process.Engine, error) {
	engine, err := a.newEngine(extra, strict)
	if err != nil {
		return nil, nil, err
	}
	raw, err := source.Read(ctx, location, a.sourceOptions()...)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", location, err)
	}
	doc, err := engine.KOS(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("process %s: %w", location, err)
	}
	return doc, engine, nil
}

// sourceOptions maps the retrieval settings onto source options.
func (a *App) sourceOptions() []source.Option {
	opts := []source.Option{source.WithTimeout(a.cfg.HTTP.Timeout)}
	if a.cfg.HTTP.MaxBody > 0 {
		opts = append(opts, source.WithMaxSize(a.cfg.HTTP.MaxBody))
	}
	if a.cfg.HTTP.AllowPrivate {
		opts = append(opts, source.AllowPrivateHosts())
	}
	return opts
}

// resolveStrict applies the strict and lenient flags over the
// configured processing mode. Lenient wins when both are set.
func (a *App) resolveStrict(strictFlag, lenientFlag bool) bool {
	strict := a.cfg.StrictMode()
	if strictFlag {
		strict = true
	}
	if lenientFlag {
		strict = false
	}
	return strict
}

// displayLang picks one value from a language map: English when
// present, otherwise the first language in sorted order.
func displayLang(m model.LanguageMap) string {
	if v, ok := m["en"]; ok {
		return v
	}
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	if len(langs) == 0 {
		return ""
	}
	return m[langs[0]]
}

// parsePrefixFlags turns repeated name=namespace flag values into a
// map, rejecting malformed entries.
func parsePrefixFlags(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, v := range values {
		name, ns, ok := strings.Cut(v, "=")
		if !ok || name == "" || ns == "" {
			return nil, fmt.Errorf("invalid prefix %q, expected name=namespace", v)
		}
		out[name] = ns
	}
	return out, nil
}
