package http

import (
	"bytes"
	"context"
	"net/http"

	"lifegoals/internal/dashboard"
	"lifegoals/internal/goals"
	applog "lifegoals/internal/log"
)

const (
	templateDashboard   = "dashboard_page"
	templateGoalList    = "goal_list"
	templateErrorPage   = "error_page"
	templateUnavailable = "unavailable"
)

type errorPage struct {
	Code    string
	Title   string
	Message string
}

// handleDashboard renders the full page for the selection in the query string.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowRead(w, r) {
		return
	}

	view, err := s.buildView(r)
	if err != nil {
		s.renderUnavailable(w, r, templateErrorPage)
		return
	}
	s.render(w, r, http.StatusOK, templateDashboard, view)
}

// handleGoalList renders only the goal list section.
func (s *Server) handleGoalList(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	view, err := s.buildView(r)
	if err != nil {
		s.renderUnavailable(w, r, templateUnavailable)
		return
	}
	s.render(w, r, http.StatusOK, templateGoalList, view)
}

func (s *Server) buildView(r *http.Request) (dashboard.View, error) {
	ctx := r.Context()

	sel, err := dashboard.ParseSelection(r.URL.Query())
	if err != nil {
		applog.FromContext(ctx).WithComponent(applog.ComponentDashboard).WarnContext(ctx, "Ignoring unknown category",
			applog.FieldCategory, r.URL.Query().Get(dashboard.ParamCategory),
			applog.FieldError, err)
	}

	gs, cacheHit, err := s.loadGoals(ctx)
	if err != nil {
		s.events.LogError(ctx, "Failed to load goals", err, applog.ComponentDashboard, applog.OpList, nil)
		return dashboard.View{}, err
	}

	view := dashboard.New(gs, s.locale).View(sel)
	category := ""
	if view.Selection.HasCategory() {
		category = view.Selection.Category.String()
	}
	s.events.LogDashboardRendered(ctx, category, view.Selection.GoalID, len(view.Cards), cacheHit)
	return view, nil
}

func (s *Server) renderUnavailable(w http.ResponseWriter, r *http.Request, name string) {
	w.Header().Set("Retry-After", "30")
	s.render(w, r, http.StatusServiceUnavailable, name, errorPage{
		Code:    s.locale.Code,
		Title:   s.locale.Title,
		Message: s.locale.Unavailable,
	})
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusTooManyRequests, templateErrorPage, errorPage{
		Code:    s.locale.Code,
		Title:   s.locale.Title,
		Message: s.locale.RateLimited,
	})
}

// render executes a template into a buffer so a failing template never
// leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.events.LogError(r.Context(), "Template execution failed", err, applog.ComponentTemplate, applog.OpRender,
			applog.NewFields().Template(name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady pings the goal source when it supports it.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.lister.(goals.Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.events.LogError(ctx, "Readiness check failed", err, applog.ComponentBackend, applog.OpPing, nil)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
