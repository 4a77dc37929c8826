// Package observability provides hooks for instrumenting diagram rendering.
//
// This package enables optional instrumentation without adding hard
// dependencies on a logging or metrics backend. The CLI registers a hook
// that writes debug logs; library code only calls the hooks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, format, path)
//	// ... render and write ...
//	observability.Render().OnRenderComplete(ctx, format, path, size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the rendering pipeline.
type RenderHooks interface {
	// OnRenderStart is called before a diagram is rendered to path.
	OnRenderStart(ctx context.Context, format, path string, nodes, edges int)

	// OnRenderComplete is called once the file is written or rendering
	// failed. size is the number of bytes written.
	OnRenderComplete(ctx context.Context, format, path string, size int, duration time.Duration, err error)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, string, int, int) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, string, int, time.Duration, error) {
}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks. A nil h is ignored.
// This should be called once at application startup.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores the no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
}
