package compile

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/texforge/pkg/cache"
	"github.com/matzehuels/texforge/pkg/errors"
	"github.com/matzehuels/texforge/pkg/latex"
	"github.com/matzehuels/texforge/pkg/observability"
)

const (
	// DefaultBinary is the engine used when none is configured.
	DefaultBinary = "pdflatex"

	// PDFExtension is the extension of the derived artifact.
	PDFExtension = ".pdf"

	// outputTailLines is how much engine output is kept on failure.
	outputTailLines = 20
)

// DefaultArgs make the engine fail fast instead of waiting for terminal input.
var DefaultArgs = []string{"-interaction=nonstopmode", "-halt-on-error"}

// Option configures an Engine.
type Option func(*Engine)

// WithBinary sets the engine binary, e.g. "xelatex" or an absolute path.
func WithBinary(binary string) Option {
	return func(e *Engine) { e.binary = binary }
}

// WithArgs replaces DefaultArgs. The job name and source file are always
// appended.
func WithArgs(args ...string) Option {
	return func(e *Engine) { e.args = args }
}

// WithCache stores compiled PDFs in c.
func WithCache(c cache.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithTTL sets the expiry of cached PDFs. Zero keeps them indefinitely.
func WithTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine runs a TeX engine over basePath+".tex" to produce basePath+".pdf".
type Engine struct {
	binary string
	args   []string
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// New creates an engine. Without options it runs pdflatex with no cache.
func New(opts ...Option) *Engine {
	e := &Engine{
		binary: DefaultBinary,
		args:   DefaultArgs,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = cache.NewNullCache()
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return e
}

// Name returns the engine binary name without directories.
func (e *Engine) Name() string {
	return filepath.Base(e.binary)
}

// Compile produces basePath+".pdf" from basePath+".tex".
func (e *Engine) Compile(ctx context.Context, basePath string) error {
	texPath := basePath + latex.TeXExtension
	pdfPath := basePath + PDFExtension
	job := filepath.Base(basePath)

	source, err := os.ReadFile(texPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", texPath)
		}
		return errors.Wrap(errors.ErrCodeIO, err, "read %s", texPath)
	}

	inputs := append([]string{"args=" + strings.Join(e.args, " ")}, inputDigests(filepath.Dir(basePath), source)...)
	key := cache.ArtifactKey(e.Name(), "pdf", source, inputs...)
	if pdf, ok := e.lookup(ctx, key); ok {
		if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s", pdfPath)
		}
		e.logger.Debug("Reused cached PDF", "job", job, "bytes", len(pdf))
		return nil
	}

	bin, err := exec.LookPath(e.binary)
	if err != nil {
		return errors.Wrap(errors.ErrCodeToolNotFound, err,
			"%s not found. Install a TeX distribution:\n  macOS:  brew install --cask mactex-no-gui\n  Linux:  apt install texlive-latex-base", e.binary)
	}
	if abs, err := filepath.Abs(bin); err == nil {
		bin = abs
	}

	observability.Compile().OnCompileStart(ctx, e.Name(), job)
	start := time.Now()
	err = e.run(ctx, bin, filepath.Dir(basePath), job)
	observability.Compile().OnCompileComplete(ctx, e.Name(), job, time.Since(start), err)
	if err != nil {
		return err
	}
	e.logger.Debug("Compiled", "engine", e.Name(), "job", job, "elapsed", time.Since(start).Round(time.Millisecond))

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "%s reported success but %s is unreadable", e.Name(), pdfPath)
	}
	e.store(ctx, key, pdf)
	return nil
}

// run shells out to bin in dir. bin is the LookPath result, so a relative
// binary still resolves against the caller's working directory.
func (e *Engine) run(ctx context.Context, bin, dir, job string) error {
	args := append(append([]string(nil), e.args...), "-jobname="+job, job+latex.TeXExtension)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", e.Name(), job, ctxErr)
		}
		cerr := &errors.CompilationError{
			Engine:   e.Name(),
			ExitCode: -1,
			Output:   tail(out.String(), outputTailLines),
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		return errors.Wrap(errors.ErrCodeCompilation, cerr, "compile %s", job+latex.TeXExtension)
	}
	return nil
}

// lookup consults the cache. Cache failures degrade to a miss.
func (e *Engine) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("Artifact cache read failed", "err", err)
		return nil, false
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")
	return nil, false
}

// store writes to the cache. Failures are logged, not returned: the PDF
// is already on disk.
func (e *Engine) store(ctx context.Context, key string, pdf []byte) {
	if err := e.cache.Set(ctx, key, pdf, e.ttl); err != nil {
		e.logger.Warn("Artifact cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(pdf))
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

var _ latex.Engine = (*Engine)(nil)
