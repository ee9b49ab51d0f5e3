package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/okian/cambios/internal/adapters/http/api"
	"github.com/okian/cambios/internal/adapters/http/swagger"
	service "github.com/okian/cambios/internal/app"
	"github.com/okian/cambios/pkg/logger"
	"github.com/spf13/cobra"
)

// HTTP server timeout constants.
const (
	readTimeout            = 30 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 15 * time.Second
)

func (a *app) newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the analysis API, the API reference at /api-docs and Prometheus metrics at
/metrics. Sessions live in memory and expire after session_ttl_seconds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")
	return cmd
}

// newHandler wires the docs and business routes on a fresh mux.
func (a *app) newHandler(ctx context.Context, svc *service.Service) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc,
		api.WithLogger(logger.Get().Named("api")),
		api.WithMaxUploadBytes(a.cfg.MaxUploadBytes),
		api.WithRateLimit(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst),
	).Register(ctx, mux)
	return mux
}

func (a *app) serve(ctx context.Context) error {
	svc := a.newService()
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.newHandler(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "starting HTTP server", logger.String("addr", a.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.log.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	a.log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	a.log.Info(ctx, "server stopped")
	return nil
}

// startServiceMetricsUpdater refreshes the sessions gauge so expiries show up without
// traffic.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
