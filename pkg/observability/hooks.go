// Package observability provides hooks for metrics, tracing, and logging.
//
// The editing core has no dependency on any observability backend. Consumers
// register hooks at startup and receive events about history transactions,
// exports, background loading, and cache traffic.
//
// # Architecture
//
// Each event category has a hook interface with a no-op default. Libraries
// always call the current hooks; main decides what they do.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHistoryHooks(&myHistoryHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, "svg", rooms, seats)
//	// ... render ...
//	observability.Export().OnExportComplete(ctx, "svg", len(out), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from the undo/redo history.
type HistoryHooks interface {
	// OnExecute records a new transaction pushed onto the undo stack.
	OnExecute(description string, undoDepth int)

	// OnUndo and OnRedo record a transaction moving between stacks.
	OnUndo(description string, undoDepth, redoDepth int)
	OnRedo(description string, undoDepth, redoDepth int)

	// OnFailure records a panic recovered from an undo or redo action.
	OnFailure(op, description string, err error)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from SVG and PNG export.
type ExportHooks interface {
	OnExportStart(ctx context.Context, format string, rooms, seats int)
	OnExportComplete(ctx context.Context, format string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// Background Hooks
// =============================================================================

// BackgroundHooks receives events from background image probing.
type BackgroundHooks interface {
	OnBackgroundLoad(ctx context.Context, path, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnExecute(string, int)           {}
func (NoopHistoryHooks) OnUndo(string, int, int)         {}
func (NoopHistoryHooks) OnRedo(string, int, int)         {}
func (NoopHistoryHooks) OnFailure(string, string, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, int, int) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {
}

// NoopBackgroundHooks is a no-op implementation of BackgroundHooks.
type NoopBackgroundHooks struct{}

func (NoopBackgroundHooks) OnBackgroundLoad(context.Context, string, string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	historyHooks    HistoryHooks    = NoopHistoryHooks{}
	exportHooks     ExportHooks     = NoopExportHooks{}
	backgroundHooks BackgroundHooks = NoopBackgroundHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetHistoryHooks registers custom history hooks.
// This should be called once at application startup before any editing.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetBackgroundHooks registers custom background hooks.
func SetBackgroundHooks(h BackgroundHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		backgroundHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Background returns the registered background hooks.
func Background() BackgroundHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return backgroundHooks
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
	historyHooks = NoopHistoryHooks{}
	exportHooks = NoopExportHooks{}
	backgroundHooks = NoopBackgroundHooks{}
	cacheHooks = NoopCacheHooks{}
}
