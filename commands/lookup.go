package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/catalog"
	"github.com/c360studio/jskos/storage"
)

// NewLookupCmd returns the lookup command. It queries the concept
// catalog by CURIE, falling back to a substring search for
// suggestions when the exact key is absent.
func NewLookupCmd(app *App) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "lookup <curie>",
		Short: "Look up a concept in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = app.Config().Catalog.Path
			}
			if dbPath == "" {
				return fmt.Errorf("no catalog path configured")
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

			rec, err := cat.Lookup(ctx, args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				if hits, serr := cat.Search(ctx, args[0], 5); serr == nil && len(hits) > 0 {
					w := cmd.OutOrStdout()
					fmt.Fprintf(w, "No concept %s. Similar:\n", args[0])
					for _, h := range hits {
						fmt.Fprintf(w, "  %s", h.CURIE)
						if h.PrefLabel != "" {
							fmt.Fprintf(w, "  %s", h.PrefLabel)
						}
						fmt.Fprintln(w)
					}
				}
				return fmt.Errorf("concept %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("lookup %s: %w", args[0], err)
			}

			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Catalog database path (default from config)")

	return cmd
}

// printRecord writes one concept record in a label: value layout.
func printRecord(w io.Writer, rec *storage.ConceptRecord) {
	fmt.Fprintf(w, "CURIE:      %s\n", rec.CURIE)
	if rec.URI != "" {
		fmt.Fprintf(w, "URI:        %s\n", rec.URI)
	}
	if len(rec.Notation) > 0 {
		fmt.Fprintf(w, "Notation:   %s\n", strings.Join(rec.Notation, ", "))
	}
	for _, lang := range sortedLangs(rec.PrefLabel) {
		fmt.Fprintf(w, "Label [%s]: %s\n", lang, rec.PrefLabel[lang])
	}
	for _, lang := range sortedLangs(rec.AltLabel) {
		fmt.Fprintf(w, "Alt [%s]:   %s\n", lang, strings.Join(rec.AltLabel[lang], ", "))
	}
	if rec.Deprecated != nil && *rec.Deprecated {
		fmt.Fprintf(w, "Deprecated: true\n")
	}
	printEdges(w, "Broader", rec.Broader)
	printEdges(w, "Narrower", rec.Narrower)
	printEdges(w, "Related", rec.Related)
	printEdges(w, "In scheme", rec.InScheme)
	printEdges(w, "Top of", rec.TopConceptOf)
	if rec.Document != "" {
		fmt.Fprintf(w, "Document:   %s\n", rec.Document)
	}
}

func printEdges(w io.Writer, label string, curies []string) {
	if len(curies) == 0 {
		return
	}
	fmt.Fprintf(w, "%-11s %s\n", label+":", strings.Join(curies, ", "))
}

func sortedLangs[M ~map[string]V, V any](m M) []string {
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
