// Package studyhallservice assembles and runs the study-hall HTTP
// service: config, store, AI provider, router, health checkers and
// graceful shutdown.
package studyhallservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/studyhall/studyhall-server/internal/ai"
	"github.com/studyhall/studyhall-server/internal/api"
	"github.com/studyhall/studyhall-server/internal/config"
	"github.com/studyhall/studyhall-server/internal/factory"
	"github.com/studyhall/studyhall-server/internal/health"
	"github.com/studyhall/studyhall-server/internal/logger"
	"github.com/studyhall/studyhall-server/internal/store"
)

// Run starts the study-hall HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("studyhall-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("http_port", cfg.HTTPPort).
		Str("upload_dir", cfg.UploadDir).
		Bool("seed_demo_data", cfg.SeedDemoData).
		Msg("Study hall service starting")

	ctx, stop := newServerContext()
	defer stop()

	st, provider := initDependencies(cfg, log)

	svcHealth := startHealthCheckers(ctx, cfg, log, st)

	router := buildRouter(st, provider, cfg, svcHealth, log)

	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs the store and AI provider. Neither can
// fail hard: the store is in-process and a provider without keys just
// reports itself unavailable.
func initDependencies(cfg *config.Config, log zerolog.Logger) (store.Store, *ai.Provider) {
	st := factory.NewStore(cfg, log)
	provider := factory.NewCompletionProvider(cfg, log)
	return st, provider
}

func buildRouter(st store.Store, provider *ai.Provider, cfg *config.Config, svcHealth *health.ServiceHealthChecker, log zerolog.Logger) *mux.Router {
	return api.NewRouter(api.Deps{
		Store:       st,
		Completions: provider,
		UploadDir:   cfg.UploadDir,
		IsHealthy:   svcHealth.IsHealthy,
		Log:         log,
	})
}

// startHealthCheckers starts the store checker and the service-level
// aggregator. The AI provider is deliberately not probed: its keys are
// optional and probing would spend real API quota.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	probe := func(ctx context.Context) error { return ctx.Err() }
	if p, ok := st.(health.HealthPinger); ok {
		probe = p.HealthPing
	}
	storeChecker := health.NewProbeChecker("store", probe, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// waitUntilHealthy blocks until service health is healthy or the
// startup window expires. Checkers start unhealthy and need one probe
// cycle to flip.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := cfg.HealthIntervalSeconds * 2
	if timeoutSeconds < 60 {
		timeoutSeconds = 60
	}
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a context cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
