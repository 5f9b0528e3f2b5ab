package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"

	"rangecal/internal/calendar"
	"rangecal/internal/config"
	"rangecal/internal/locale"
	appLog "rangecal/internal/log"
	"rangecal/internal/picker"
)

// Server serves date pickers over a JSON API and a server-rendered page.
// Every picker lives in memory for as long as it is used.
type Server struct {
	cfg      *config.Config
	router   chi.Router
	sessions *sessionStore

	now    func() time.Time
	getenv func(string) string
}

// Option customizes a Server, mainly for tests.
type Option func(*Server)

// WithClock replaces time.Now for "today" tagging and session ageing.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithGetenv replaces os.Getenv for ambient locale lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(s *Server) { s.getenv = getenv }
}

// NewServer constructs a new Server. A nil cfg means config.DefaultConfig.
func NewServer(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		cfg:    cfg,
		now:    time.Now,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = newSessionStore(s.now)
	s.router = s.routes()
	return s
}

// Handler returns the root http.Handler, wrapped in basic auth when configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.router)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="rangecal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api/pickers", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Post("/import", s.handleImport)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/click", s.handleClick)
			r.Post("/hover", s.handleHover)
			r.Post("/leave", s.handleLeave)
			r.Post("/navigate", s.handleNavigate)
			r.Put("/anchor", s.handleAnchor)
			r.Get("/selection.ics", s.handleExport)
		})
	})

	r.Get("/", s.handleIndex)
	r.Route("/picker/{id}", func(r chi.Router) {
		r.Get("/", s.handlePage)
		r.Post("/click", s.handlePageClick)
		r.Post("/navigate", s.handlePageNavigate)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		appLog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// pickerRequest carries the collaborator inputs of a new picker.
type pickerRequest struct {
	Locale        string   `json:"locale"`
	Month         string   `json:"month"`
	WeekdayLabels []string `json:"weekday_labels"`
}

// newPicker builds and registers a picker. The locale comes from the request,
// then the config, then Accept-Language, then the environment.
func (s *Server) newPicker(r *http.Request, req pickerRequest) (string, error) {
	amb := locale.Ambient{
		Override:       req.Locale,
		AcceptLanguage: r.Header.Get("Accept-Language"),
		Getenv:         s.getenv,
	}
	if amb.Override == "" {
		amb.Override = s.cfg.Locale
	}

	id := newSessionID()
	opts := []picker.Option{
		picker.WithClock(s.now),
		picker.WithLocale(amb.Locale()),
		picker.WithOnDateClicked(func(d calendar.Date) {
			appLog.Debug("date clicked", "picker", id, "date", d.String())
		}),
	}

	if req.Month != "" {
		m, err := calendar.ParseMonth(req.Month)
		if err != nil {
			return "", err
		}
		opts = append(opts, picker.WithAnchor(m))
	}

	switch {
	case len(req.WeekdayLabels) == 7:
		var labels [7]string
		copy(labels[:], req.WeekdayLabels)
		opts = append(opts, picker.WithWeekdayLabels(labels))
	case len(req.WeekdayLabels) > 0:
		return "", errors.New("weekday_labels must have exactly 7 entries")
	default:
		if labels, ok := s.cfg.Labels(); ok {
			opts = append(opts, picker.WithWeekdayLabels(labels))
		}
	}

	p := picker.New(opts...)
	s.sessions.put(id, p)
	appLog.Info("picker created",
		"picker", id,
		"locale", p.Locale(),
		"week_start", p.WeekStart().String(),
		"month", p.Month().MonthString(),
	)
	return id, nil
}

// Serve runs the HTTP server on ln and the idle-session sweeper until ctx is
// canceled, then shuts both down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	sweeper := cron.New()
	idle := s.cfg.SessionIdle()
	if _, err := sweeper.AddFunc(s.cfg.SessionSweep, func() {
		if n := s.sessions.sweep(idle); n > 0 {
			appLog.Info("idle pickers evicted", "count", n, "remaining", s.sessions.len())
		}
	}); err != nil {
		return err
	}
	sweeper.Start()
	defer func() { <-sweeper.Stop().Done() }()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(appLog.Logger().Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartServer listens on cfg.Listen and serves until ctx is canceled.
func StartServer(ctx context.Context, cfg *config.Config) error {
	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	appLog.Info("starting HTTP server", "listen", "http://"+ln.Addr().String())
	return NewServer(cfg).Serve(ctx, ln)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
