package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	httprateredis "github.com/go-chi/httprate-redis"
	"github.com/redis/go-redis/v9"

	"github.com/yaklabco/gobbcode/internal/logging"
)

// RequestLogger logs each request once it completes and stores a
// request-scoped logger in the context for handlers.
func RequestLogger(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx, reqLog := logging.With(logging.WithLogger(r.Context(), logger),
				logging.FieldRequestID, chimiddleware.GetReqID(r.Context()),
				logging.FieldMethod, r.Method,
				logging.FieldPath, r.URL.Path,
				logging.FieldRemote, r.RemoteAddr,
			)

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []any{logging.FieldStatus, status, logging.FieldDuration, time.Since(start)}
			switch {
			case status >= http.StatusInternalServerError:
				reqLog.Error("request", fields...)
			case status >= http.StatusBadRequest:
				reqLog.Warn("request", fields...)
			default:
				reqLog.Info("request", fields...)
			}
		})
	}
}

// RateLimitConfig holds configuration for the rate limiter.
type RateLimitConfig struct {
	RequestLimit   int
	WindowDuration time.Duration

	// RedisURL selects a counter shared between instances.
	RedisURL  string
	PrefixKey string
}

// RateLimiter wraps the rate limiting middleware with its Redis client.
type RateLimiter struct {
	Handler     func(next http.Handler) http.Handler
	redisClient *redis.Client
}

// RateLimit returns a per-IP rate limiter, or nil when RequestLimit is 0.
func RateLimit(cfg RateLimitConfig) (*RateLimiter, error) {
	if cfg.RequestLimit <= 0 || cfg.WindowDuration <= 0 {
		return nil, nil //nolint:nilnil // rate limiting disabled
	}

	options := []httprate.Option{
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			sendError(w, "rate limit exceeded", http.StatusTooManyRequests)
		}),
		httprate.WithKeyByRealIP(),
	}

	var client *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opts)

		options = append(options, httprateredis.WithRedisLimitCounter(&httprateredis.Config{
			Client:    client,
			PrefixKey: cfg.PrefixKey,
		}))
	}

	limiter := httprate.NewRateLimiter(cfg.RequestLimit, cfg.WindowDuration, options...)

	return &RateLimiter{
		Handler:     limiter.Handler,
		redisClient: client,
	}, nil
}

// Close releases the Redis connection, if any.
func (rl *RateLimiter) Close() error {
	if rl == nil || rl.redisClient == nil {
		return nil
	}
	return rl.redisClient.Close()
}
