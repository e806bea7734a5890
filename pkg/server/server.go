// Package server exposes the rule engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/bbcode/facade"
	"github.com/yaklabco/gobbcode/pkg/cache"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/container"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 10 * time.Second

// maxRequestBytes bounds request bodies.
const maxRequestBytes = 1 << 20

// Options configures a Server.
type Options struct {
	// Container holds the shared parser under facade.Accessor.
	// Defaults to container.Default.
	Container *container.Container

	// Config supplies the server section and the output defaults.
	// Defaults to config.NewConfig().
	Config *config.Config

	// Logger defaults to logging.Default().
	Logger *log.Logger

	// Cache overrides the cache built from Config.Server.
	Cache cache.Cache
}

// Server is the HTTP API.
type Server struct {
	parser  *bbcode.Parser
	rules   string // digest of the parser's table and active set
	cfg     *config.Config
	logger  *log.Logger
	cache   cache.Cache
	limiter *RateLimiter
	router  *chi.Mux
}

// New resolves the shared parser and builds the router.
func New(opts Options) (*Server, error) {
	if opts.Container == nil {
		opts.Container = container.Default
	}
	if opts.Config == nil {
		opts.Config = config.NewConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	parser, err := facade.Resolve(opts.Container)
	if err != nil {
		return nil, fmt.Errorf("resolve parser: %w", err)
	}

	renderCache := opts.Cache
	if renderCache == nil {
		renderCache, err = cache.New(opts.Config.Server)
		if err != nil {
			return nil, err
		}
	}

	limiter, err := RateLimit(RateLimitConfig{
		RequestLimit:   opts.Config.Server.RateLimitRequests,
		WindowDuration: opts.Config.Server.RateLimitWindow,
		RedisURL:       opts.Config.Server.RedisURL,
		PrefixKey:      opts.Config.Server.CachePrefix + "ratelimit",
	})
	if err != nil {
		_ = renderCache.Close()
		return nil, fmt.Errorf("create rate limiter: %w", err)
	}

	s := &Server{
		parser:  parser,
		rules:   rulesDigest(parser),
		cfg:     opts.Config,
		logger:  opts.Logger,
		cache:   renderCache,
		limiter: limiter,
	}
	s.router = s.routes()

	return s, nil
}

// rulesDigest identifies a parser's full table and active set, so servers
// with different rule configurations sharing one cache keep apart.
func rulesDigest(parser *bbcode.Parser) string {
	var parts []string
	parser.Rules().Each(func(name string, rule bbcode.Rule) {
		parts = append(parts, name, rule.Pattern(), rule.Replace(), rule.Content())
	})
	parts = append(parts, "active")
	parts = append(parts, parser.ActiveRules().Names()...)
	return cache.Key(parts...)
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Handler)
		}
		r.Post("/render", s.handleRender)
		r.Post("/strip", s.handleStrip)
		r.Get("/rules", s.handleRules)
	})

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is done, then shuts down gracefully.
// An empty addr uses the configured one.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = s.cfg.Server.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		ErrorLog:          logging.StdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", logging.FieldAddr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// Close releases the cache and rate limiter connections.
func (s *Server) Close() error {
	var errs []error
	if s.limiter != nil {
		errs = append(errs, s.limiter.Close())
	}
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	return errors.Join(errs...)
}
