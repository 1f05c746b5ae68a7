// Package server exposes treegraph charts over HTTP.
//
// Two kinds of endpoints exist. Chart endpoints keep a live series in a
// session so clients can toggle and resize without resending data:
//
//	POST   /charts                     create a chart, returns its id and pass
//	GET    /charts/{id}                current pass as JSON
//	GET    /charts/{id}/svg            current pass as SVG
//	POST   /charts/{id}/toggle/{node}  toggle a node's collapsed state
//	POST   /charts/{id}/resize         change the plot size
//	DELETE /charts/{id}                drop the chart
//
// The render endpoint is stateless and goes through the cached pipeline:
//
//	POST /render?format=svg|json|dot|dot-svg
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/erfan1375er/highcharts/internal/config"
	"github.com/erfan1375er/highcharts/pkg/pipeline"
	"github.com/erfan1375er/highcharts/pkg/session"
)

// Server routes chart and render requests.
type Server struct {
	cfg      *config.Config
	runner   *pipeline.Runner
	sessions session.Store
	logger   *log.Logger
	router   chi.Router
}

// New wires the routes. A nil store gets a memory store and a nil logger
// discards output.
func New(cfg *config.Config, runner *pipeline.Runner, store session.Store, logger *log.Logger) *Server {
	if store == nil {
		store = session.NewMemoryStore()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{cfg: cfg, runner: runner, sessions: store, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/render", s.handleRender)
	r.Route("/charts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Get("/svg", s.handleSVG)
			r.Post("/toggle/{node}", s.handleToggle)
			r.Post("/resize", s.handleResize)
			r.Delete("/", s.handleDelete)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept once a minute.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
