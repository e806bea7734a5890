package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/configloader"
	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/internal/telemetry"
	"github.com/yaklabco/gobbcode/pkg/bbcode/facade"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/container"
	"github.com/yaklabco/gobbcode/pkg/server"
)

// shutdownTimeout bounds the final trace flush.
const shutdownTimeout = 5 * time.Second

type serveFlags struct {
	addr     string
	redisURL string
}

func newServeCommand(info BuildInfo) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rule engine over HTTP",
		Long: `Run an HTTP service exposing the configured parser.

Endpoints:
  GET /health       Liveness probe
  POST /v1/render   {"source": "...", "only": [...], "format": "markdown"}
  POST /v1/strip    {"source": "..."}
  GET /v1/rules     Active rules

Results are cached in memory, or in Redis when --redis-url (or
server.redis_url) is set; Redis also shares the rate limit between
instances. Traces are exported when GOBBCODE_OTEL_ENDPOINT names an
OTLP/HTTP collector.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags, info)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "Redis URL for the shared cache and rate limit")

	return cmd
}

func runServe(cmd *cobra.Command, flags *serveFlags, info BuildInfo) (err error) {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, _, err := loadConfig(cmd, &config.Config{
		Server: config.ServerConfig{Addr: flags.addr, RedisURL: flags.redisURL},
	})
	if ctx.Err() != nil {
		// Interrupted before the server started.
		return nil
	}
	if err != nil {
		return err
	}

	level := "info"
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	logger := logging.NewServer(cmd.ErrOrStderr(), level)

	shutdown, err := telemetry.Setup(ctx, info.Version)
	if err != nil {
		return fmt.Errorf("set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if shutdownErr := shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("flush traces", logging.FieldError, shutdownErr)
		}
	}()

	c := container.New()
	facade.Register(c, configloader.Setup(cfg))

	srv, err := server.New(server.Options{
		Container: c,
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer func() {
		err = errors.Join(err, srv.Close())
	}()

	return srv.Run(ctx, cfg.Server.Addr)
}
