// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: the library emits events through registered
// hooks and ships no-op defaults, so importing texforge does not pull in an
// observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCompileHooks(&myCompileHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Compile().OnCompileStart(ctx, "pdflatex", job)
//	// ... run engine ...
//	observability.Compile().OnCompileComplete(ctx, "pdflatex", job, duration, err)
//
// The latex package never calls hooks: rendering is pure. Callers that
// render report it through [Render].
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events about rendered documents.
type RenderHooks interface {
	// OnRender records a document render with the size of the output.
	OnRender(ctx context.Context, job string, bytes int, duration time.Duration)
}

// CompileHooks receives events from external engine runs.
type CompileHooks interface {
	OnCompileStart(ctx context.Context, engine, job string)
	OnCompileComplete(ctx context.Context, engine, job string, duration time.Duration, err error)
}

// CacheHooks receives events from artifact cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRender(context.Context, string, int, time.Duration) {}

// NoopCompileHooks is a no-op implementation of CompileHooks.
type NoopCompileHooks struct{}

func (NoopCompileHooks) OnCompileStart(context.Context, string, string) {}
func (NoopCompileHooks) OnCompileComplete(context.Context, string, string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	renderHooks  RenderHooks  = NoopRenderHooks{}
	compileHooks CompileHooks = NoopCompileHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetRenderHooks registers custom render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCompileHooks registers custom compile hooks. Nil is ignored.
func SetCompileHooks(h CompileHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compileHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Compile returns the registered compile hooks.
func Compile() CompileHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compileHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	compileHooks = NoopCompileHooks{}
	cacheHooks = NoopCacheHooks{}
}
