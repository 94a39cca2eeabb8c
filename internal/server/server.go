// Package server exposes transliteration over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/FocuswithJustin/yosina/core/cache"
	"github.com/FocuswithJustin/yosina/internal/logging"
)

// Server serves the transliteration API. Compiled chains are shared by
// all connections through a ChainCache.
type Server struct {
	cfg     Config
	chains  *cache.ChainCache
	hub     *Hub
	limiter *RateLimiter
	started time.Time

	startOnce sync.Once
	cancel    context.CancelFunc
}

// New creates a server for cfg. Zero-valued limits fall back to
// DefaultConfig.
func New(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.WebSocket.MaxMessageRate <= 0 {
		cfg.WebSocket.MaxMessageRate = def.WebSocket.MaxMessageRate
	}
	if cfg.WebSocket.MaxMessageSize <= 0 {
		cfg.WebSocket.MaxMessageSize = def.WebSocket.MaxMessageSize
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.MaxSize = cfg.CacheSize

	chains := cache.NewChainCache(cacheCfg).OnBuild(func(source, fingerprint string, stages int) {
		logging.PipelineBuilt(source, fingerprint, stages)
	})

	s := &Server{
		cfg:     cfg,
		chains:  chains,
		hub:     NewHub(),
		started: time.Now(),
	}
	if cfg.RateLimitRequests > 0 {
		s.limiter = NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimitRequests,
			BurstSize:         cfg.RateLimitBurst,
		})
	}
	return s
}

// Chains returns the server's chain cache.
func (s *Server) Chains() *cache.ChainCache {
	return s.chains
}

func (s *Server) start() {
	s.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go s.hub.Run(ctx)
	})
}

// Close disconnects every WebSocket client and stops background work.
func (s *Server) Close() {
	s.start()
	s.cancel()
	if s.limiter != nil {
		s.limiter.Close()
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/stages", s.handleStages)
	mux.HandleFunc("POST /api/transliterate", s.handleTransliterate)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// Handler returns the full middleware chain around the API routes.
func (s *Server) Handler() http.Handler {
	s.start()

	var handler http.Handler = s.routes()
	handler = SecurityHeaders(APICSPConfig(), handler)
	if s.limiter != nil {
		handler = s.limiter.Middleware(handler)
	}
	handler = CORSMiddleware(CORSConfig{AllowedOrigins: s.cfg.AllowedOrigins}, handler)
	return logging.CombinedMiddleware(handler)
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	defer s.Close()

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logging.ServerStartup("http", s.cfg.Addr,
		"version", s.cfg.Version,
		"rate_limit", s.cfg.RateLimitRequests,
		"cache_size", s.cfg.CacheSize)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Info("server shutting down", "addr", s.cfg.Addr)
		return srv.Shutdown(shutdownCtx)
	}
}
