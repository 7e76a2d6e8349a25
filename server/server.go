package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"github.com/yashsinghal2004/plinko-rgs/cache"
	"github.com/yashsinghal2004/plinko-rgs/config"
	"github.com/yashsinghal2004/plinko-rgs/round"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	rounds   *round.Service
	outcomes cache.Outcomes
	hub      *Hub
	validate *validator.Validate
	checks   map[string]HealthCheck
}

type Option func(*Server)

// WithHealthCheck adds a named dependency check to GET /health.
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(s *Server) { s.checks[name] = check }
}

func New(cfg *config.Config, log *slog.Logger, rounds *round.Service, outcomes cache.Outcomes, hub *Hub, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		rounds:   rounds,
		outcomes: outcomes,
		hub:      hub,
		validate: validator.New(),
		checks:   make(map[string]HealthCheck),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/health", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/rounds/commit", s.handleCommit)
		r.Get("/rounds/{id}", s.handleGetRound)
		r.Post("/rounds/{id}/start", s.handleStart)
		r.Post("/rounds/{id}/reveal", s.handleReveal)
		r.Get("/verify", s.handleVerify)
		r.Post("/verify/batch", s.handleVerifyBatch)
		r.Get("/payouts", s.handlePayouts)
	})
	if s.hub != nil {
		r.Get("/ws/rounds", s.hub.ServeWS)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Port
	if port <= 0 {
		port = 8081
	}
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("RGS listening", slog.String("addr", srv.Addr), slog.String("env", s.cfg.Env))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.hub != nil {
		s.hub.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) cors(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path, status and latency for each request (no body or secrets).
func (s *Server) requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		h.ServeHTTP(ww, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "service": "rgs"}
	code := http.StatusOK
	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			resp[name] = "error: " + err.Error()
			resp["status"] = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp[name] = "ok"
	}
	render.Status(r, code)
	render.JSON(w, r, resp)
}
