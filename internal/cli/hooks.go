package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/texforge/pkg/observability"
)

// logHooks reports library events through the CLI logger at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes render, compile and cache events to l.
func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetCompileHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnRender(_ context.Context, job string, bytes int, d time.Duration) {
	h.logger.Debug("Rendered", "job", job, "bytes", bytes, "elapsed", d.Round(time.Microsecond))
}

func (h *logHooks) OnCompileStart(_ context.Context, engine, job string) {
	h.logger.Debug("Engine started", "engine", engine, "job", job)
}

func (h *logHooks) OnCompileComplete(_ context.Context, engine, job string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Engine failed", "engine", engine, "job", job, "elapsed", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("Engine finished", "engine", engine, "job", job, "elapsed", d.Round(time.Millisecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("Cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("Cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("Cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.RenderHooks  = (*logHooks)(nil)
	_ observability.CompileHooks = (*logHooks)(nil)
	_ observability.CacheHooks   = (*logHooks)(nil)
)
