package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/core/services"
	"github.com/ganpathioverseas/erp_finance/internal/middleware"
	"github.com/ganpathioverseas/erp_finance/internal/platform/config"
	"github.com/ganpathioverseas/erp_finance/internal/platform/policy"
	"github.com/ganpathioverseas/erp_finance/internal/repositories/cache"
	"github.com/ganpathioverseas/erp_finance/internal/repositories/database/pgsql"
	"github.com/ganpathioverseas/erp_finance/pkg/database"
)

// app is the wiring a command needs to reach the services.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *portssvc.ServiceContainer
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newLogger writes text logs to stderr so stdout stays machine readable.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// openApp loads the configuration and connects the services the same way the server does,
// minus the HTTP layer. The returned context carries the command logger.
func openApp(ctx context.Context) (*app, context.Context, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, ctx, fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger()
	ctx = middleware.WithLogger(ctx, logger)
	a := &app{cfg: cfg, logger: logger}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, ctx, fmt.Errorf("connecting to database: %w", err)
	}
	a.closers = append(a.closers, func() { database.ClosePgxPool(pool) })

	financePolicy, err := policy.Load(cfg.FinancePolicyFile)
	if err != nil {
		a.Close()
		return nil, ctx, err
	}

	var reportCache portsrepo.ReportCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			// Writes must still bump the cache version, so a configured but unreachable redis is fatal
			a.Close()
			return nil, ctx, fmt.Errorf("connecting to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		reportCache = cache.NewReportCache(client, cfg.ReportCacheTTL)
	}

	a.services = services.NewServiceContainer(pgsql.NewRepositoryProvider(pool), services.Dependencies{
		Cache:  reportCache,
		Policy: financePolicy,
	})
	return a, ctx, nil
}
