package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/catalog"
	"github.com/c360studio/jskos/source"
)

// NewIndexCmd returns the index command. It discovers vocabulary
// documents under a directory, processes each, and upserts the
// concepts into the catalog.
func NewIndexCmd(app *App) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "index <dir>",
		Short: "Index vocabulary documents into the concept catalog",
		Long: `Index discovers JSKOS documents under a directory using the configured
include patterns, processes each one, and upserts the concepts into
the SQLite catalog. Documents that fail are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config()
			if dbPath == "" {
				dbPath = cfg.Catalog.Path
			}
			if dbPath == "" {
				return fmt.Errorf("no catalog path configured")
			}

			files, err := source.Discover(args[0], cfg.Sources.Include)
			if err != nil {
				return fmt.Errorf("discover documents: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no documents under %s match %v", args[0], cfg.Sources.Include)
			}

			cat, err := catalog.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer cat.Close()

			ctx := cmd.Context()
			if err := cat.Init(ctx); err != nil {
				return fmt.Errorf("init catalog: %w", err)
			}

			engine, err := app.newEngine(nil, cfg.StrictMode())
			if err != nil {
				return err
			}

			logger := app.Logger()
			var indexed, concepts int
			for _, file := range files {
				documentID := file
				if rel, err := filepath.Rel(args[0], file); err == nil {
					documentID = rel
				}

				raw, err := source.Read(ctx, file)
				if err != nil {
					logger.Warn("Skipping document", "file", documentID, "error", err)
					continue
				}
				doc, err := engine.KOS(raw)
				if err != nil {
					logger.Warn("Skipping document", "file", documentID, "error", err)
					continue
				}
				n, err := cat.UpsertKOS(ctx, doc, documentID)
				if err != nil {
					return fmt.Errorf("index %s: %w", documentID, err)
				}
				logger.Debug("Indexed document", "file", documentID, "concepts", n)
				indexed++
				concepts += n
			}

			if indexed == 0 {
				return fmt.Errorf("all %d documents failed", len(files))
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Indexed %d of %d documents (%d concepts) into %s\n",
				indexed, len(files), concepts, dbPath)
			if stats, err := cat.Stats(ctx); err == nil {
				fmt.Fprintf(w, "Catalog now holds %d concepts in %d schemes from %d documents\n",
					stats.Concepts, stats.Schemes, stats.Documents)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Catalog database path (default from config)")

	return cmd
}
