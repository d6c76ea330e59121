package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/observability"
)

// debugHooks logs core events at debug level. They are installed when the
// CLI runs with --verbose.
type debugHooks struct {
	logger *log.Logger
}

func installDebugHooks(l *log.Logger) {
	h := debugHooks{logger: l}
	observability.SetHistoryHooks(h)
	observability.SetExportHooks(h)
	observability.SetBackgroundHooks(h)
	observability.SetCacheHooks(h)
}

func (h debugHooks) OnExecute(description string, undoDepth int) {
	h.logger.Debug("execute", "what", description, "undo", undoDepth)
}

func (h debugHooks) OnUndo(description string, undoDepth, redoDepth int) {
	h.logger.Debug("undo", "what", description, "undo", undoDepth, "redo", redoDepth)
}

func (h debugHooks) OnRedo(description string, undoDepth, redoDepth int) {
	h.logger.Debug("redo", "what", description, "undo", undoDepth, "redo", redoDepth)
}

func (h debugHooks) OnFailure(op, description string, err error) {
	h.logger.Debug("transaction failed", "op", op, "what", description, "err", err)
}

func (h debugHooks) OnExportStart(_ context.Context, format string, rooms, seats int) {
	h.logger.Debug("export start", "format", format, "rooms", rooms, "seats", seats)
}

func (h debugHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("export done", "format", format, "bytes", size, "took", d.Round(time.Microsecond), "err", err)
}

func (h debugHooks) OnBackgroundLoad(_ context.Context, path, format string, d time.Duration, err error) {
	h.logger.Debug("background", "path", path, "format", format, "took", d.Round(time.Microsecond), "err", err)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
