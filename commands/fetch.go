package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/source"
)

// NewFetchCmd returns the fetch command. It retrieves and validates a
// document without processing it, then reports what it found.
func NewFetchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <location>",
		Short: "Fetch and validate a JSKOS document",
		Long: `Fetch retrieves a JSKOS document from a file or URL, checks that it
parses and validates, and reports its size, content hash, and shape.
No URI resolution happens; use process for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := source.Fetch(cmd.Context(), args[0], app.sourceOptions()...)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}
			doc, err := source.Parse(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Location:     %s\n", args[0])
			fmt.Fprintf(w, "Size:         %d bytes\n", len(data))
			fmt.Fprintf(w, "Hash:         %s\n", source.ContentHash(data))
			fmt.Fprintf(w, "ID:           %s\n", doc.ID)
			fmt.Fprintf(w, "Type:         %s\n", doc.Type)
			if title := displayLang(doc.Title); title != "" {
				fmt.Fprintf(w, "Title:        %s\n", title)
			}
			fmt.Fprintf(w, "Top concepts: %d\n", len(doc.HasTopConcept))
			return nil
		},
	}
}
