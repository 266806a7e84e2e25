package cli

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texforge/pkg/compile"
	"github.com/matzehuels/texforge/pkg/docfile"
	"github.com/matzehuels/texforge/pkg/errors"
	"github.com/matzehuels/texforge/pkg/latex"
	"github.com/matzehuels/texforge/pkg/observability"
)

// defaultArtifactTTL is how long compiled PDFs stay in the cache.
const defaultArtifactTTL = 7 * 24 * time.Hour

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output    string // base path without extension
	pdf       bool   // compile to PDF after writing the source
	noClean   bool   // keep .aux, .log and .tex after compiling
	engine    string // TeX engine binary
	useCache  bool   // reuse PDFs compiled from identical inputs
	redisAddr string // use a Redis artifact cache instead of the local one
}

// buildCommand creates the build command, which writes the .tex file and
// optionally runs the TeX engine on it.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{engine: compile.DefaultBinary}

	cmd := &cobra.Command{
		Use:   "build [doc.toml]",
		Short: "Write the .tex file and optionally compile it to PDF",
		Long: `Build writes the LaTeX source of a TOML document description to disk.

With --pdf the source is compiled by the TeX engine (pdflatex by default).
Intermediate files (.aux, .log, .tex) are removed afterwards unless
--no-clean is given; a failed compile keeps them for inspection.

With --cache (or --redis) compiled PDFs are reused when the source, the engine
arguments and every file read through \input, \include, \includegraphics or
a bibliography command are unchanged. Files reached any other way, such as
packages or fonts, are not tracked.`,
		Example: `  texforge build report.toml
  texforge build report.toml --pdf
  texforge build report.toml --pdf -o out/report --no-clean
  texforge build report.toml --pdf --cache
  texforge build report.toml --pdf --engine lualatex --redis localhost:6379`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), newStatus(cmd.ErrOrStderr()), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: from the description)")
	cmd.Flags().BoolVar(&opts.pdf, "pdf", false, "compile the document to PDF")
	cmd.Flags().BoolVar(&opts.noClean, "no-clean", false, "keep intermediate files after compiling")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "TeX engine binary")
	cmd.Flags().BoolVar(&opts.useCache, "cache", false, "reuse PDFs compiled from identical source, arguments and inputs")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the artifact cache")

	return cmd
}

// runBuild loads input, writes its source and compiles it when asked.
func runBuild(ctx context.Context, st *status, input string, opts buildOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := docfile.Load(input)
	if err != nil {
		return err
	}
	doc.Filename = basePath(opts.output, doc.Filename)
	src := renderDocument(ctx, doc)
	logger.Debug("Loaded description", "input", input, "packages", len(doc.CollectPackages()), "bytes", len(src))

	if !opts.pdf {
		if err := doc.GenerateTeX(); err != nil {
			return err
		}
		st.success("Wrote %s", doc.Filename+latex.TeXExtension)
		return nil
	}

	c, err := newCache(ctx, !opts.useCache && opts.redisAddr == "", opts.redisAddr)
	if err != nil {
		return err
	}
	defer c.Close()

	hits := &hitCounter{CacheHooks: observability.Cache()}
	observability.SetCacheHooks(hits)
	defer observability.SetCacheHooks(hits.CacheHooks)

	engine := compile.New(
		compile.WithBinary(opts.engine),
		compile.WithCache(c),
		compile.WithTTL(defaultArtifactTTL),
		compile.WithLogger(logger),
	)

	spinner := newSpinner(ctx, st.w, "Compiling "+doc.Filename+latex.TeXExtension+" with "+engine.Name()+"...")
	spinner.Start()
	err = doc.GeneratePDF(ctx, engine, !opts.noClean)
	spinner.Stop()
	if err != nil {
		st.failure("%s", errors.UserMessage(err))
		var cerr *errors.CompilationError
		if stderrors.As(err, &cerr) && cerr.Output != "" {
			st.detail("%s", cerr.Output)
		}
		return err
	}

	prog.done("Compiled "+doc.Filename+compile.PDFExtension, "engine", engine.Name(), "cached", hits.hit)
	st.success("Built %s", input)
	st.file(doc.Filename+compile.PDFExtension, hits.hit)
	if opts.noClean {
		st.detail("Kept %s, .aux and .log", doc.Filename+latex.TeXExtension)
	}
	return nil
}

// hitCounter remembers whether the artifact came from the cache and
// forwards every event to the hooks it replaced.
type hitCounter struct {
	observability.CacheHooks
	hit bool
}

func (h *hitCounter) OnCacheHit(ctx context.Context, keyType string) {
	h.hit = true
	h.CacheHooks.OnCacheHit(ctx, keyType)
}
