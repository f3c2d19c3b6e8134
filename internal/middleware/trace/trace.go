// Package trace assigns request IDs and writes access logs.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	applog "lifegoals/internal/log"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 64

type contextKey struct{}

var requestIDKey contextKey

// Middleware tags each request with an ID and logs it on the way in and out.
type Middleware struct {
	logger    *applog.Logger
	access    *applog.StructuredLogger
	extractIP func(*http.Request) string
	total     atomic.Int64
	seq       atomic.Uint64
}

// NewMiddleware creates a new trace middleware. extractIP may be nil.
func NewMiddleware(logger *applog.Logger, extractIP func(*http.Request) string) *Middleware {
	return &Middleware{
		logger:    logger,
		access:    applog.NewStructuredLogger(logger),
		extractIP: extractIP,
	}
}

// Middleware wraps next. Handlers find the request-scoped logger with
// applog.FromContext and the ID with GetRequestID.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.total.Add(1)

		var clientIP string
		if m.extractIP != nil {
			clientIP = m.extractIP(r)
		}

		id := r.Header.Get(HeaderRequestID)
		if !validRequestID(id) {
			id = m.newRequestID()
		}
		w.Header().Set(HeaderRequestID, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		ctx = applog.NewContext(ctx, m.logger.With(applog.FieldRequestID, id))
		r = r.WithContext(ctx)

		m.access.LogHTTPStart(ctx, r, clientIP)
		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.access.LogHTTPEnd(ctx, r, applog.HTTPResult{
			Status:   rec.status,
			Bytes:    rec.written,
			Duration: time.Since(start),
			ClientIP: clientIP,
		})
	})
}

// TotalRequests returns how many requests passed through the middleware.
func (m *Middleware) TotalRequests() int64 {
	return m.total.Load()
}

// newRequestID returns "req_" and 16 random hex digits. If the random
// source fails a process-local sequence number is used instead.
func (m *Middleware) newRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "req_seq" + strconv.FormatUint(m.seq.Add(1), 10)
	}
	return "req_" + hex.EncodeToString(b[:])
}

// GetRequestID returns the ID assigned to the request carrying ctx.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// validRequestID accepts short printable ASCII IDs from an upstream proxy.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// recorder captures the status code and body size.
type recorder struct {
	http.ResponseWriter
	status      int
	written     int64
	wroteHeader bool
}

func (r *recorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(p []byte) (int, error) {
	r.wroteHeader = true
	n, err := r.ResponseWriter.Write(p)
	r.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
