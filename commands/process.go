package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/export"
	"github.com/c360studio/jskos/processed"
)

// NewProcessCmd returns the process command. It reads one document,
// resolves it against the prefix table, and prints the serialized RDF
// or a summary.
func NewProcessCmd(app *App) *cobra.Command {
	var (
		strictFlag  bool
		lenientFlag bool
		prefixes    []string
		format      string
		summary     bool
	)

	cmd := &cobra.Command{
		Use:   "process <location>",
		Short: "Process a JSKOS document and print RDF",
		Long: `Process reads a JSKOS document from a file or URL, resolves every URI
against the prefix table, and prints the result as RDF.

Strict mode aborts at the first URI no registered prefix covers.
Lenient mode keeps such URIs opaque instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parsePrefixFlags(prefixes)
			if err != nil {
				return err
			}
			if format == "" {
				format = app.Config().Export.Format
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			strict := app.resolveStrict(strictFlag, lenientFlag)
			doc, engine, err := app.readAndProcess(cmd.Context(), args[0], extra, strict)
			if err != nil {
				return err
			}

			exp := export.New(engine.Converter())
			exp.AddKOS(doc)

			if summary {
				concepts := 0
				doc.EachConcept(func(*processed.Concept) { concepts++ })
				mode := "strict"
				if !strict {
					mode = "lenient"
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Document:   %s\n", doc.ID)
				fmt.Fprintf(w, "Type:       %s\n", doc.Type)
				if title := displayLang(doc.Title); title != "" {
					fmt.Fprintf(w, "Title:      %s\n", title)
				}
				fmt.Fprintf(w, "Mode:       %s\n", mode)
				fmt.Fprintf(w, "Concepts:   %d\n", concepts)
				fmt.Fprintf(w, "Statements: %d\n", exp.Statements())
				return nil
			}

			out, err := exp.Export(f)
			if err != nil {
				return fmt.Errorf("serialize %s: %w", args[0], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Abort on unresolvable URIs")
	cmd.Flags().BoolVar(&lenientFlag, "lenient", false, "Keep unresolvable URIs opaque")
	cmd.Flags().StringArrayVar(&prefixes, "prefix", nil, "Extra prefix binding as name=namespace (repeatable)")
	cmd.Flags().StringVar(&format, "format", "", "RDF format: turtle or ntriples (default from config)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print document statistics instead of RDF")

	return cmd
}
