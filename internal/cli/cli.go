package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/texforge/pkg/buildinfo"
	"github.com/matzehuels/texforge/pkg/cache"
	"github.com/matzehuels/texforge/pkg/compile"
	"github.com/matzehuels/texforge/pkg/errors"
	"github.com/matzehuels/texforge/pkg/latex"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "texforge"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "texforge builds LaTeX documents from TOML descriptions",
		Long:         `texforge assembles LaTeX documents from TOML descriptions, writes the .tex source and optionally compiles it to PDF with pdflatex.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			registerLogHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache picks the artifact cache backend for a command.
// Redis wins over the local directory when an address is given.
func newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "artifact cache unavailable")
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		loggerFromContext(ctx).Warn("Artifact cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCache, err, "open artifact cache %s", dir)
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/texforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the output base path (no extension) for a document.
// An explicit output wins; a .tex or .pdf extension on it is stripped.
// Otherwise the document's own filename is kept.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	switch ext := filepath.Ext(output); ext {
	case latex.TeXExtension, compile.PDFExtension:
		return strings.TrimSuffix(output, ext)
	}
	return output
}
