package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archdiagram/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level along with the elapsed time since progress
// was created, rounded to the millisecond.
// Example output: "Rendered png (412ms)"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Debug(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}

// logHooks reports render events through the CLI logger.
type logHooks struct {
	logger *log.Logger
}

var _ observability.RenderHooks = logHooks{}

func (h logHooks) OnRenderStart(_ context.Context, format, path string, nodes, edges int) {
	h.logger.Debug("Rendering", "format", format, "path", path, "nodes", nodes, "edges", edges)
}

func (h logHooks) OnRenderComplete(_ context.Context, format, path string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Render failed", "format", format, "path", path, "error", err)
		return
	}
	h.logger.Debug("Rendered", "format", format, "path", path, "bytes", size, "elapsed", d.Round(time.Millisecond))
}
