package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/postgres"
	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/postgres/lookup"
	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/provider/tezaurs"
	"github.com/heartmarshall/tezaurs-gateway/internal/auth"
	"github.com/heartmarshall/tezaurs-gateway/internal/config"
	"github.com/heartmarshall/tezaurs-gateway/internal/service/morphology"
	"github.com/heartmarshall/tezaurs-gateway/internal/transport/middleware"
	"github.com/heartmarshall/tezaurs-gateway/internal/transport/rest"
)

const rateLimitCleanupInterval = time.Minute

// Run is the application entry point. It loads configuration, initializes
// the logger, wires the gateway and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("tezaurs_url", cfg.Tezaurs.BaseURL),
		slog.Bool("journal", cfg.JournalActive()),
		slog.Bool("auth", cfg.Auth.AuthEnabled()),
	)

	gw, err := newGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer gw.Close()

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	return serve(ctx, gw.server(cfg.Server, logger), ln, cfg.Server.ShutdownTimeout, logger)
}

// gateway holds the wired handler tree and the resources it owns.
type gateway struct {
	handler http.Handler
	pool    *pgxpool.Pool
	limiter *middleware.RateLimiter
}

func newGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gateway, error) {
	gw := &gateway{}

	tezaursCfg := cfg.Tezaurs
	if tezaursCfg.UserAgent == "" {
		tezaursCfg.UserAgent = UserAgent()
	}
	provider := tezaurs.NewProvider(tezaursCfg, logger)

	health := rest.NewHealthHandler(nil, BuildVersion())
	svc := morphology.NewService(logger, provider, nil, cfg.Journal.RecentLimit)

	if cfg.JournalActive() {
		pool, err := openJournal(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		gw.pool = pool
		health = rest.NewHealthHandler(pool, BuildVersion())
		svc = morphology.NewService(logger, provider, lookup.New(pool), cfg.Journal.RecentLimit)
	} else {
		logger.Warn("lookup journal disabled")
	}

	deps := routerDeps{
		Logger:     logger,
		Morphology: rest.NewMorphologyHandler(svc, logger),
		Health:     health,
		CORS:       cfg.CORS,
		RateLimit:  cfg.Server.RateLimitPerMinute,
	}
	if cfg.Auth.AuthEnabled() {
		deps.Auth = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	} else {
		logger.Warn("authentication disabled: API is open to anonymous callers")
	}
	if cfg.Server.RateLimitPerMinute > 0 {
		gw.limiter = middleware.NewRateLimiter(rateLimitCleanupInterval)
		deps.Limiter = gw.limiter
	}

	gw.handler = newRouter(deps)
	return gw, nil
}

func openJournal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("journal database: %w", err)
	}
	if cfg.Journal.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("journal migrations: %w", err)
		}
	}
	return pool, nil
}

func (gw *gateway) server(cfg config.ServerConfig, logger *slog.Logger) *http.Server {
	return &http.Server{
		Handler:           gw.handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// Close releases the gateway's resources. It is safe on a partially built gateway.
func (gw *gateway) Close() {
	if gw.limiter != nil {
		gw.limiter.Stop()
	}
	if gw.pool != nil {
		gw.pool.Close()
	}
}

// serve runs srv on ln until ctx is done, then drains in-flight requests for
// at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
