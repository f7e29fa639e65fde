package commands

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/export"
	"github.com/c360studio/jskos/source"
)

// NewExportCmd returns the export command. It processes a document and
// writes the serialized RDF to a file.
func NewExportCmd(app *App) *cobra.Command {
	var (
		strictFlag  bool
		lenientFlag bool
		prefixes    []string
		format      string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "export <location>",
		Short: "Process a JSKOS document and write an RDF file",
		Long: `Export reads a JSKOS document from a file or URL, resolves it against
the prefix table, and writes the serialized RDF to a file. The output
path defaults to the document basename with the format extension.`,
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
			serialized, err := exp.Export(f)
			if err != nil {
				return fmt.Errorf("serialize %s: %w", args[0], err)
			}

			if out == "" {
				out = defaultOutputPath(args[0], f)
			}
			if err := os.WriteFile(out, []byte(serialized), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d statements)\n", out, exp.Statements())
			return nil
		},
	}

	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Abort on unresolvable URIs")
	cmd.Flags().BoolVar(&lenientFlag, "lenient", false, "Keep unresolvable URIs opaque")
	cmd.Flags().StringArrayVar(&prefixes, "prefix", nil, "Extra prefix binding as name=namespace (repeatable)")
	cmd.Flags().StringVar(&format, "format", "", "RDF format: turtle or ntriples (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file path (default derived from the location)")

	return cmd
}

// defaultOutputPath derives the output file from the source location:
// the basename with compression and .json suffixes stripped, plus the
// format extension.
func defaultOutputPath(location string, f export.Format) string {
	base := filepath.Base(location)
	if source.IsURL(location) {
		base = "export"
		if u, err := url.Parse(location); err == nil && u.Path != "" && u.Path != "/" {
			base = path.Base(u.Path)
		}
	}
	base = strings.TrimSuffix(base, ".xz")
	base = strings.TrimSuffix(base, ".json")
	if base == "" || base == "." {
		base = "export"
	}
	return base + f.Extension()
}
