package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texforge/internal/server"
	"github.com/matzehuels/texforge/pkg/compile"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	engine    string
	workDir   string
	noCache   bool
	redisAddr string
}

// serveCommand creates the serve command, which runs the HTTP service until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", engine: compile.DefaultBinary}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render and compile API over HTTP",
		Long: `Serve runs an HTTP server that renders and compiles TOML document descriptions.

Routes:
  GET  /healthz      liveness probe
  POST /v1/render    description in, LaTeX source out
  POST /v1/compile   description in, PDF out`,
		Example: `  texforge serve
  texforge serve --addr :9000 --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "TeX engine binary")
	cmd.Flags().StringVar(&opts.workDir, "workdir", "", "parent directory for scratch dirs (default: system temp)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the artifact cache")

	return cmd
}

// runServe wires the cache and logger into a server and blocks until ctx ends.
func runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := newCache(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := server.New(server.Config{
		Engine:  opts.engine,
		Cache:   c,
		Logger:  logger,
		WorkDir: opts.workDir,
	})
	return srv.ListenAndServe(ctx, opts.addr)
}
