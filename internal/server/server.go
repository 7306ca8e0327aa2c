// Package server wires the HTTP surface the dashboard talks to: the two
// range queries, health, metrics, and the static shell.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Ronin1351/Insider/internal/cache"
	"github.com/Ronin1351/Insider/internal/metrics"
	"github.com/Ronin1351/Insider/internal/models"
)

// InsiderSource produces the merged insider-trade list for a range.
type InsiderSource interface {
	FetchAll(ctx context.Context, from, to string) ([]models.TransactionRecord, error)
}

// EarningsSource produces the earnings calendar for a range.
type EarningsSource interface {
	Fetch(ctx context.Context, from, to string) ([]models.EarningsEvent, error)
}

// Config holds server tunables.
type Config struct {
	Addr         string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Minimum spacing between requests from one IP to one API path.
	// Zero disables the limiter (tests).
	RateLimitInterval time.Duration
}

// Deps are the collaborators the handlers use.
type Deps struct {
	Insider  InsiderSource
	Earnings EarningsSource
	Cache    *cache.Cache
	Metrics  *metrics.Registry
	Log      zerolog.Logger
	// Now is the injected clock used for range defaulting and response
	// timestamps.
	Now func() time.Time
}

type Server struct {
	cfg     Config
	deps    Deps
	router  *mux.Router
	http    *http.Server
	limiter *rateLimiter
	started time.Time
}

func New(cfg Config, deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		// Write timeout must outlive a full cold fan-out.
		cfg.WriteTimeout = 60 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	s := &Server{
		cfg:     cfg,
		deps:    deps,
		router:  mux.NewRouter(),
		started: deps.Now(),
	}
	if cfg.RateLimitInterval > 0 {
		s.limiter = newRateLimiter(cfg.RateLimitInterval)
	}
	s.routes()
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.accessLogMiddleware)
	s.router.Use(securityHeaders)
	s.router.Use(corsMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/insider-trades", s.handleInsiderTrades).Methods(http.MethodGet)
	api.HandleFunc("/earnings", s.handleEarnings).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	if s.deps.Metrics != nil {
		s.router.Handle("/metrics", s.deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	s.router.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	s.router.PathPrefix("/static/").HandlerFunc(s.serveStatic).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.deps.Log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and clears the cache.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.deps.Cache != nil {
		s.deps.Cache.Close()
	}
	return err
}
