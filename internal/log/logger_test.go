package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Component: ComponentApp, Output: &buf}), &buf
}

func TestLoggerTagsComponent(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l.WithComponent(ComponentCache).Info("cleared", "entries", 3)

	out := buf.String()
	if !strings.Contains(out, "component=cache") || !strings.Contains(out, "entries=3") {
		t.Fatalf("unexpected log line: %s", out)
	}
	if strings.Count(out, "component=") != 1 {
		t.Fatalf("component logged more than once: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %v, got %v (err=%v)", in, want, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestContextLogger(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	ctx := NewContext(context.Background(), l.With(FieldRequestID, "req_1"))

	FromContext(ctx).WithComponent(ComponentDashboard).InfoContext(ctx, "inside")
	out := buf.String()
	if !strings.Contains(out, "request_id=req_1") || !strings.Contains(out, "component=dashboard") {
		t.Fatalf("request id or component missing: %s", out)
	}
	if strings.Count(out, "component=") != 1 {
		t.Fatalf("component logged more than once: %s", out)
	}

	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatal("expected fallback logger")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentAMQP, JSON: true, Output: &buf})
	l.Info("consumed", FieldOperation, OpInvalidate)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not a JSON line: %v (%s)", err, buf.String())
	}
	if rec[FieldComponent] != ComponentAMQP || rec[FieldOperation] != OpInvalidate {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestFieldsKeepOrderAndSkipEmpty(t *testing.T) {
	f := NewFields().Request("GET", "/", "").Client("10.0.0.1", "", "").Error(nil)
	var keys []string
	for _, a := range f {
		keys = append(keys, a.Key)
	}
	if got := strings.Join(keys, ","); got != "method,path,client_ip" {
		t.Fatalf("unexpected keys: %s", got)
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	sl := NewStructuredLogger(l)
	req := httptest.NewRequest(http.MethodGet, "/?category=career", nil)

	sl.LogHTTPEnd(context.Background(), req, HTTPResult{Status: 503, Duration: 12 * time.Millisecond, ClientIP: "127.0.0.1"})
	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Fatalf("expected error level for 5xx: %s", buf.String())
	}

	buf.Reset()
	sl.LogDashboardRendered(context.Background(), "career", "", 2, true)
	out := buf.String()
	if !strings.Contains(out, "category=career") || strings.Contains(out, "goal_id") {
		t.Fatalf("unexpected render log: %s", out)
	}

	buf.Reset()
	sl.LogError(context.Background(), "load failed", errors.New("boom"), ComponentStorage, OpList, nil)
	if !strings.Contains(buf.String(), "error=boom") {
		t.Fatalf("missing error field: %s", buf.String())
	}
}

func TestStructuredLoggerUsesRequestLogger(t *testing.T) {
	base, baseBuf := newBufferLogger(slog.LevelDebug)
	scoped, scopedBuf := newBufferLogger(slog.LevelDebug)
	sl := NewStructuredLogger(base)

	ctx := context.WithValue(context.Background(), LoggerContextKey, scoped.With(FieldRequestID, "req_2"))
	sl.LogHTTPEnd(ctx, httptest.NewRequest(http.MethodGet, "/", nil), HTTPResult{Status: 200, Bytes: 5, ClientIP: "10.0.0.1"})

	if baseBuf.Len() != 0 {
		t.Fatalf("base logger should stay silent: %s", baseBuf.String())
	}
	if !strings.Contains(scopedBuf.String(), "request_id=req_2") {
		t.Fatalf("request id missing: %s", scopedBuf.String())
	}
}
