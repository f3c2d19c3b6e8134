// Package http serves the goal dashboard.
package http

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"lifegoals/internal/cache"
	"lifegoals/internal/core"
	"lifegoals/internal/dashboard"
	"lifegoals/internal/goals"
	applog "lifegoals/internal/log"
	"lifegoals/internal/middleware/ratelimit"
	"lifegoals/internal/middleware/security"
	"lifegoals/internal/middleware/trace"
	appweb "lifegoals/web"
)

const (
	goalsCacheKey   = "goals"
	loadTimeout     = 7 * time.Second
	pingTimeout     = 3 * time.Second
	cleanupInterval = 10 * time.Minute
	staticMaxAge    = 3600
)

// Options configures a Server.
type Options struct {
	Addr   string
	Lister goals.Lister
	Locale dashboard.Locale
	// CacheTTL bounds how long a loaded goal list is reused. Zero disables caching.
	CacheTTL time.Duration
	// RateLimitPerMinute caps page requests per client. Zero disables limiting.
	RateLimitPerMinute int
	// TrustedProxies are CIDRs whose X-Forwarded-For is believed, in
	// addition to loopback and private networks.
	TrustedProxies []string
	Logger         *applog.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	lister    goals.Lister
	locale    dashboard.Locale
	logger    *applog.Logger
	events    *applog.StructuredLogger
	detector  *security.Detector
	limiter   *ratelimit.Limiter

	goalLoader *cache.Loader[[]core.Goal]
	caches     *cache.Manager

	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and wires routes and middleware.
func NewServer(opts Options) (*Server, error) {
	if opts.Lister == nil {
		return nil, fmt.Errorf("goal lister is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	t, err := template.New("").Funcs(dashboard.FuncMap("/")).ParseFS(appweb.Templates(), appweb.TemplatePattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: t,
		lister:    opts.Lister,
		locale:    opts.Locale,
		logger:    logger,
		events:    applog.NewStructuredLogger(logger),
		detector:  security.NewDetector(),
	}
	for _, cidr := range opts.TrustedProxies {
		if err := s.detector.AddTrustedProxy(cidr); err != nil {
			return nil, err
		}
	}
	if s.locale.Code == "" {
		s.locale, _ = dashboard.LookupLocale(dashboard.DefaultLocale)
	}

	if opts.CacheTTL > 0 {
		goalCache := cache.NewLRUCache[[]core.Goal](1, opts.CacheTTL)
		s.goalLoader = cache.NewLoader(goalCache)
		s.caches = cache.NewManager(logger)
		s.caches.Register(goalsCacheKey, goalCache)
		s.caches.StartCleanup(cleanupInterval)
	}

	mux := http.NewServeMux()

	static := http.StripPrefix("/static/", http.FileServer(http.FS(appweb.Static())))
	mux.Handle("/static/", security.StaticAssetMiddleware(staticMaxAge)(static))

	pages := http.NewServeMux()
	pages.HandleFunc("/", s.handleDashboard)
	pages.HandleFunc(dashboard.PartialPath, s.handleGoalList)

	var pageHandler http.Handler = pages
	if opts.RateLimitPerMinute > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{Limit: opts.RateLimitPerMinute, Window: time.Minute})
		pageHandler = s.limiter.Middleware(s.detector.ClientIP, s.handleRateLimited)(pages)
	}
	mux.Handle("/", pageHandler)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(logger, s.detector.ClientIP)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           tracer.Middleware(headers.Middleware(s.flagSuspicious(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// flagSuspicious logs scanner-like requests. They are still served normally.
func (s *Server) flagSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.Suspicious(r) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request",
				applog.FieldPath, r.URL.Path,
				applog.FieldClientIP, s.detector.ClientIP(r),
				applog.FieldUserAgent, r.Header.Get("User-Agent"))
		}
		next.ServeHTTP(w, r)
	})
}

// loadGoals returns the current goal list, served from cache when possible.
func (s *Server) loadGoals(ctx context.Context) ([]core.Goal, bool, error) {
	if s.goalLoader == nil {
		gs, err := s.fetchGoals(ctx)
		return gs, false, err
	}
	return s.goalLoader.Load(ctx, goalsCacheKey, s.fetchGoals)
}

func (s *Server) fetchGoals(ctx context.Context) ([]core.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	gs, err := s.lister.ListGoals(ctx)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateGoals(gs); err != nil {
		return nil, fmt.Errorf("goal source returned invalid data: %w", err)
	}
	return gs, nil
}

// InvalidateGoals drops the cached goal list so the next page load re-reads
// the source.
func (s *Server) InvalidateGoals() {
	if s.goalLoader == nil {
		return
	}
	c := s.goalLoader.Cache()
	stats := c.Stats()
	c.Clear()
	s.logger.WithComponent(applog.ComponentCache).Info("Goal cache invalidated",
		applog.FieldOperation, applog.OpInvalidate,
		"hits", stats.Hits,
		"misses", stats.Misses)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.caches != nil {
			s.caches.Stop()
		}
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
