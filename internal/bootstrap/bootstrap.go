// Package bootstrap arma el grafo de dependencias compartido por la API y la CLI.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/branch-analytics/internal/application/analytics"
	"github.com/jhoicas/branch-analytics/internal/application/ports"
	"github.com/jhoicas/branch-analytics/internal/infrastructure/cache"
	"github.com/jhoicas/branch-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/branch-analytics/pkg/config"
	"github.com/jhoicas/branch-analytics/pkg/logger"
)

// Services casos de uso listos para usar.
type Services struct {
	Dashboard   *appanalytics.DashboardUseCase
	Risk        *appanalytics.RiskUseCase
	Opportunity *appanalytics.OpportunityUseCase
	Comparison  *appanalytics.ComparisonUseCase
	Forecast    *appanalytics.ForecastUseCase
	Scenario    *appanalytics.ScenarioUseCase
	Branches    *appanalytics.BranchUseCase

	pool  *pgxpool.Pool
	cache ports.ResponseCache
}

// New conecta PostgreSQL y, si está habilitada, la caché Redis. Si Redis no
// responde se continúa sin caché.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	responseCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("caché deshabilitada")
		responseCache = cache.Noop{}
	}

	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	districtRepo := postgres.NewDistrictRepository(pool)

	a := cfg.Analytics
	now := appanalytics.Clock(time.Now)
	return &Services{
		Dashboard:   appanalytics.NewDashboardUseCase(analyticsRepo, responseCache, log, now),
		Risk:        appanalytics.NewRiskUseCase(analyticsRepo, a.RiskStrategy, a.Workers, log),
		Opportunity: appanalytics.NewOpportunityUseCase(districtRepo, analyticsRepo, a.RegionName, log, now),
		Comparison:  appanalytics.NewComparisonUseCase(branchRepo, analyticsRepo, a.Workers, log, now),
		Forecast:    appanalytics.NewForecastUseCase(branchRepo, analyticsRepo, a.ForecastHorizon, log, now),
		Scenario:    appanalytics.NewScenarioUseCase(branchRepo, analyticsRepo, log, now),
		Branches:    appanalytics.NewBranchUseCase(branchRepo, analyticsRepo, now),
		pool:        pool,
		cache:       responseCache,
	}, nil
}

// Close libera la caché y el pool.
func (s *Services) Close() {
	if c, ok := s.cache.(io.Closer); ok {
		_ = c.Close()
	}
	s.pool.Close()
}
