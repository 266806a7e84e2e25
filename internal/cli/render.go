package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texforge/pkg/docfile"
	"github.com/matzehuels/texforge/pkg/errors"
	"github.com/matzehuels/texforge/pkg/latex"
	"github.com/matzehuels/texforge/pkg/observability"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // file to write; stdout when empty
}

// renderCommand creates the render command, which prints the LaTeX source of
// a TOML description without touching the TeX toolchain.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [doc.toml]",
		Short: "Print the LaTeX source of a document description",
		Long: `Render converts a TOML document description to LaTeX source.

The source is written to stdout unless --output names a file.`,
		Example: `  texforge render report.toml
  texforge render report.toml -o report.tex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), newStatus(cmd.ErrOrStderr()), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runRender loads input and writes its LaTeX source to opts.output or w.
// Status lines go to st so that w stays clean for piping.
func runRender(ctx context.Context, w io.Writer, st *status, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := docfile.Load(input)
	if err != nil {
		return err
	}
	src := renderDocument(ctx, doc)

	if opts.output == "" {
		_, err := io.WriteString(w, src)
		return err
	}

	// WriteTeX appends the extension itself and writes atomically.
	if filepath.Ext(opts.output) == latex.TeXExtension {
		if err := doc.WriteTeX(basePath(opts.output, doc.Filename)); err != nil {
			return err
		}
	} else if err := os.WriteFile(opts.output, []byte(src), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", opts.output)
	}
	logger.Debug("Wrote LaTeX source", "path", opts.output, "bytes", len(src))
	st.success("Rendered %s", input)
	st.file(opts.output, false)
	return nil
}

// renderDocument renders doc and reports the render through the hooks.
func renderDocument(ctx context.Context, doc *latex.Document) string {
	start := time.Now()
	src := doc.Render()
	observability.Render().OnRender(ctx, filepath.Base(doc.Filename), len(src), time.Since(start))
	return src
}
