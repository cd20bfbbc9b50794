// Package httpapi is the transport and presentation layer: it carries the
// session token in a signed cookie, renders the feed pages and exposes a
// small JSON API. All domain decisions live behind the control object; this
// package only extracts tokens, invokes the entry points and renders
// results.
package httpapi

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/chronofeed/internal/logging"
	"github.com/dmitrijs2005/chronofeed/internal/server/config"
	"github.com/dmitrijs2005/chronofeed/internal/server/control"
)

type Server struct {
	address         string
	logger          logging.Logger
	ctl             *control.Control
	jwtSecret       []byte
	sessionValidity time.Duration
	pageSize        int
	templates       *template.Template
	validate        *validator.Validate
}

func NewServer(cfg *config.Config, l logging.Logger, ctl *control.Control) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{
		address:         cfg.EndpointAddr,
		logger:          l.With("module", "http_server"),
		ctl:             ctl,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		pageSize:        cfg.PageSize,
		templates:       tmpl,
		validate:        validator.New(),
	}, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(s.metricsMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Get("/api/feed", s.handleAPIFeed)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
