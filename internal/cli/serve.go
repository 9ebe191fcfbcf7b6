package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-questions/api"
	"github.com/gcbaptista/go-questions/internal/analytics"
	"github.com/gcbaptista/go-questions/internal/cache"
	"github.com/gcbaptista/go-questions/internal/logging"
	"github.com/gcbaptista/go-questions/internal/metrics"
	"github.com/gcbaptista/go-questions/services"
)

func newServeCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <corpus>",
		Short: "Serve queries over HTTP",
		Long: `Indexes the corpus once and answers POST /query requests until interrupted.
Also exposes /health, /corpus, /analytics and /metrics.`,
		Args:          exactCorpusArg(serveUsage),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts, args[0])
		},
	}
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts *options, dir string) error {
	env, err := prepare(ctx, cmd, opts, dir)
	if err != nil {
		return err
	}
	logger := logging.Component(env.logger, "server")

	router, cleanup, err := newRouter(env)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", env.cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  env.cfg.Server.ReadTimeout,
		WriteTimeout: env.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newRouter assembles the cache, analytics, metrics and HTTP routes around the engine.
// The returned cleanup releases the cache backend.
func newRouter(env *environment) (*gin.Engine, func(), error) {
	cfg := env.cfg
	logger := env.logger

	cacheLogger := logging.Component(logger, "cache")
	store, err := cache.NewStore(cfg.Cache, cacheLogger)
	if err != nil {
		return nil, nil, err
	}

	var answerer services.Answerer = env.engine
	cleanup := func() {}
	if store != nil {
		answerCache := cache.New(env.engine, store, cacheLogger)
		answerer = answerCache
		cleanup = func() {
			if err := answerCache.Close(); err != nil {
				logger.WithError(err).Warn("closing cache")
			}
		}
	}

	m := metrics.New()
	info := env.engine.CorpusInfo()
	m.SetCorpus(info.Documents, info.Vocabulary)

	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		api.RequestIDMiddleware(),
		api.LoggingMiddleware(logging.Component(logger, "http")),
		api.MetricsMiddleware(m),
		api.CORSMiddleware(),
		api.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes),
	)

	api.SetupRoutes(router, api.Dependencies{
		Answerer:  answerer,
		Corpus:    env.engine,
		Analytics: analytics.NewService(),
		Metrics:   m,
		Defaults:  env.engine.Settings(),
		Logger:    logging.Component(logger, "api"),
	})

	return router, cleanup, nil
}
