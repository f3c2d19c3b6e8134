package log

import (
	"log/slog"
	"time"
)

// Field names shared by every component.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldBytes      = "bytes"
	FieldUserAgent  = "user_agent"
	FieldReferer    = "referer"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCategory   = "category"
	FieldGoalID     = "goal_id"
	FieldGoalCount  = "goal_count"
	FieldCacheHit   = "cache_hit"
	FieldBackend    = "backend"
	FieldTemplate   = "template"
)

// Component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentDashboard = "dashboard"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentBackend   = "backend"
	ComponentTemplate  = "template"
)

// Operation names.
const (
	OpList       = "list"
	OpRender     = "render"
	OpInvalidate = "invalidate"
	OpPing       = "ping"
	OpShutdown   = "shutdown"
	OpStartup    = "startup"
)

// Fields collects attributes in the order they are added.
type Fields []slog.Attr

// NewFields returns an empty field list.
func NewFields() Fields {
	return make(Fields, 0, 8)
}

// Add appends attrs as given.
func (f Fields) Add(attrs ...slog.Attr) Fields {
	return append(f, attrs...)
}

// Error adds the error message. A nil error adds nothing.
func (f Fields) Error(err error) Fields {
	if err == nil {
		return f
	}
	return append(f, slog.String(FieldError, err.Error()))
}

func (f Fields) Operation(op string) Fields {
	return append(f, slog.String(FieldOperation, op))
}

// Selection adds the dashboard selection. Empty values are omitted.
func (f Fields) Selection(category, goalID string) Fields {
	if category != "" {
		f = append(f, slog.String(FieldCategory, category))
	}
	if goalID != "" {
		f = append(f, slog.String(FieldGoalID, goalID))
	}
	return f
}

func (f Fields) Template(name string) Fields {
	return append(f, slog.String(FieldTemplate, name))
}

func (f Fields) Request(method, path, query string) Fields {
	f = append(f, slog.String(FieldMethod, method), slog.String(FieldPath, path))
	if query != "" {
		f = append(f, slog.String(FieldQuery, query))
	}
	return f
}

// Client adds who made the request. Empty values are omitted.
func (f Fields) Client(ip, userAgent, referer string) Fields {
	for _, a := range []slog.Attr{
		slog.String(FieldClientIP, ip),
		slog.String(FieldUserAgent, userAgent),
		slog.String(FieldReferer, referer),
	} {
		if a.Value.String() != "" {
			f = append(f, a)
		}
	}
	return f
}

func (f Fields) Response(statusCode int, bytes int64, d time.Duration) Fields {
	return append(f,
		slog.Int(FieldStatusCode, statusCode),
		slog.Int64(FieldBytes, bytes),
		slog.Int64(FieldDuration, d.Milliseconds()))
}
