// Package main provides the jskos binary entry point.
// Jskos processes JSKOS vocabulary documents: it resolves URIs to
// CURIEs, serializes RDF, maintains a concept catalog, and runs the
// NATS processing pipeline.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/commands"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	app := commands.NewApp()

	cmd := &cobra.Command{
		Use:   "jskos",
		Short: "JSKOS vocabulary processing",
		Long: `Jskos reads JSKOS vocabulary documents, resolves every URI against a
prefix table, and serializes the result as RDF.

It provides:
- One-shot processing of local and remote documents
- A SQLite concept catalog for indexing and lookups
- A NATS pipeline running the ingest, process, and export stages`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Version works without a loadable config.
			if cmd.Name() == "version" {
				return nil
			}
			return app.Setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		commands.NewProcessCmd(app),
		commands.NewFetchCmd(app),
		commands.NewExportCmd(app),
		commands.NewIndexCmd(app),
		commands.NewLookupCmd(app),
		commands.NewServeCmd(app),
		commands.NewVersionCmd(),
	)

	return cmd
}
