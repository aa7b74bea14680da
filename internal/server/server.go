// Package server exposes the parser over gRPC (ghll.v1.ParseService plus
// the standard health service) and over HTTP (a WebSocket endpoint and a
// JSON health report).
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/internal/history"
	"github.com/msto63/ghll/pkg/core/cache"
	"github.com/msto63/ghll/pkg/core/config"
	coregrpc "github.com/msto63/ghll/pkg/core/grpc"
	"github.com/msto63/ghll/pkg/core/health"
	"github.com/msto63/ghll/pkg/core/logging"
	"github.com/msto63/ghll/pkg/core/version"
)

// probeLine is parsed by the engine health check
const probeLine = "1 + 2 - 3"

// Config holds server configuration
type Config struct {
	GRPC            coregrpc.ServerConfig
	Cache           cache.Config
	HTTPHost        string
	HTTPPort        int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		GRPC:            coregrpc.DefaultServerConfig(),
		Cache:           cache.DefaultConfig(),
		HTTPHost:        "127.0.0.1",
		HTTPPort:        9471,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ConfigFrom derives the server configuration from the application config
func ConfigFrom(cfg *config.Config) Config {
	c := DefaultConfig()
	c.GRPC.Host = cfg.Server.GRPCHost
	c.GRPC.Port = cfg.Server.GRPCPort
	c.HTTPHost = cfg.Server.HTTPHost
	c.HTTPPort = cfg.Server.HTTPPort
	if cfg.Server.ShutdownTimeout.Duration > 0 {
		c.ShutdownTimeout = cfg.Server.ShutdownTimeout.Duration
	}
	return c
}

// Server runs the gRPC and HTTP listeners
type Server struct {
	grpc       *coregrpc.Server
	results    *cache.Cache[*ghll.Result]
	httpServer *http.Server
	logger     *logging.Logger
	config     Config
}

// New creates a new server; store may be nil
func New(cfg Config, engine *ghll.Engine, store *history.Store) *Server {
	logger := logging.New("ghll-server")

	results := cache.New[*ghll.Result](cfg.Cache)

	grpcServer := coregrpc.NewServer(cfg.GRPC)
	RegisterParseServer(grpcServer.GRPCServer(), NewParseService(engine, results, store))
	grpcServer.SetServing(ServiceName, true)

	registry := health.NewRegistry("ghll", version.Server)
	registry.Register("engine", engineCheck(engine))
	registry.Register("cache", cacheCheck(results))
	if store != nil {
		registry.Register("history", historyCheck(store))
	}
	logger.Debug("Health checks registered", "checks", registry.Names())

	mux := http.NewServeMux()
	mux.Handle("/ws", NewWebSocketHandler(engine, results, store))
	mux.Handle("/healthz", registry.Handler(5*time.Second))

	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort),
		Handler:     loggingMiddleware(logger, mux),
		ReadTimeout: cfg.ReadTimeout,
		// WriteTimeout is not applied to hijacked WebSocket connections
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		grpc:       grpcServer,
		results:    results,
		httpServer: httpServer,
		logger:     logger,
		config:     cfg,
	}
}

func engineCheck(engine *ghll.Engine) health.CheckFunc {
	return func(ctx context.Context) health.CheckResult {
		res, err := engine.Process(ctx, probeLine)
		if err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		if !res.Complete() {
			return health.CheckResult{
				Status:  health.StatusUnhealthy,
				Message: "probe line did not parse completely",
				Details: map[string]interface{}{"expression": res.Expression()},
			}
		}
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Message: "probe parsed",
			Details: map[string]interface{}{"expression": res.Expression()},
		}
	}
}

func historyCheck(store *history.Store) health.CheckFunc {
	return func(ctx context.Context) health.CheckResult {
		count, err := store.Count(ctx)
		if err != nil {
			// parsing still works without the journal
			return health.CheckResult{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Message: "history reachable",
			Details: map[string]interface{}{"entries": count},
		}
	}
}

func cacheCheck(results *cache.Cache[*ghll.Result]) health.CheckFunc {
	return func(ctx context.Context) health.CheckResult {
		hits, misses, rate := results.Stats()
		return health.CheckResult{
			Status: health.StatusHealthy,
			Details: map[string]interface{}{
				"size":     results.Size(),
				"hits":     hits,
				"misses":   misses,
				"hit_rate": rate,
			},
		}
	}
}

// Handler returns the HTTP handler with all routes
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}


// GRPC returns the gRPC server
func (s *Server) GRPC() *coregrpc.Server {
	return s.grpc
}

// Run serves gRPC and HTTP until ctx is done or a listener fails, then
// shuts both down within the shutdown timeout
func (s *Server) Run(ctx context.Context) error {
	if err := s.grpc.Listen(); err != nil {
		return err
	}
	httpListener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.grpc.Stop()
		return mdwerror.Wrap(err, "failed to listen").
			WithCode(mdwerror.CodeNetworkError).
			WithOperation("server.run").
			WithDetail("address", s.httpServer.Addr)
	}

	s.logger.Info("Starting ghll server",
		"version", version.Info(),
		"grpc", s.grpc.Address(),
		"http", httpListener.Addr().String(),
	)

	errCh := make(chan error, 2)
	go func() {
		errCh <- s.grpc.Start()
	}()
	go func() {
		if err := s.httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.Shutdown(shutdownCtx)

	if runErr != nil {
		return mdwerror.Wrap(runErr, "server stopped").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("server.run")
	}
	return nil
}

// Shutdown stops both listeners gracefully
func (s *Server) Shutdown(ctx context.Context) {
	s.logger.Info("Shutting down ghll server")
	s.grpc.StopWithTimeout(ctx)
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	s.results.Close()
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// Unwrap exposes the inner writer to http.ResponseController
func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
