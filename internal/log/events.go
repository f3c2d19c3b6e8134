package log

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HTTPResult describes a finished request for LogHTTPEnd.
type HTTPResult struct {
	Status   int
	Bytes    int64
	Duration time.Duration
	ClientIP string
}

// StructuredLogger writes the dashboard's recurring events with a fixed set
// of fields. It prefers the request-scoped logger found in ctx.
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

func (sl *StructuredLogger) from(ctx context.Context, component string) *Logger {
	logger, ok := ctx.Value(LoggerContextKey).(*Logger)
	if !ok {
		logger = sl.logger
	}
	return logger.WithComponent(component)
}

// LogHTTPStart logs the start of an HTTP request at debug level.
func (sl *StructuredLogger) LogHTTPStart(ctx context.Context, r *http.Request, clientIP string) {
	fields := NewFields().
		Request(r.Method, r.URL.Path, r.URL.RawQuery).
		Client(clientIP, r.Header.Get("User-Agent"), r.Header.Get("Referer"))

	sl.from(ctx, ComponentHTTP).LogAttrs(ctx, slog.LevelDebug, "HTTP request started", fields...)
}

// LogHTTPEnd logs a completed request: info for 1xx-3xx, warn for 4xx,
// error for 5xx.
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, res HTTPResult) {
	level := slog.LevelInfo
	switch {
	case res.Status >= 500:
		level = slog.LevelError
	case res.Status >= 400:
		level = slog.LevelWarn
	}

	fields := NewFields().
		Request(r.Method, r.URL.Path, r.URL.RawQuery).
		Response(res.Status, res.Bytes, res.Duration).
		Client(res.ClientIP, "", "")

	sl.from(ctx, ComponentHTTP).LogAttrs(ctx, level, "HTTP request completed", fields...)
}

// LogDashboardRendered logs a rendered dashboard view
func (sl *StructuredLogger) LogDashboardRendered(ctx context.Context, category, goalID string, visibleGoals int, cacheHit bool) {
	fields := NewFields().
		Operation(OpRender).
		Selection(category, goalID).
		Add(slog.Int(FieldGoalCount, visibleGoals), slog.Bool(FieldCacheHit, cacheHit))

	sl.from(ctx, ComponentDashboard).LogAttrs(ctx, slog.LevelDebug, "Dashboard rendered", fields...)
}

// LogError logs err at error level with the failing operation. extra may be nil.
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component, operation string, extra Fields) {
	fields := NewFields().Operation(operation).Error(err).Add(extra...)
	sl.from(ctx, component).LogAttrs(ctx, slog.LevelError, msg, fields...)
}
