package http

import (
	"context"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// Contratos que los handlers necesitan de la capa de aplicación. Los implementan
// los casos de uso de internal/application/analytics.

type DashboardService interface {
	GetKPIs(ctx context.Context, year int, f analytics.Filter) (*dto.KPIResponse, error)
	GetMonthlyTrend(ctx context.Context, year int, f analytics.Filter) (*dto.MonthlyTrendResponse, error)
	GetRevenueVsExpense(ctx context.Context, year int, f analytics.Filter) (*dto.RevenueExpenseResponse, error)
	GetBranchMargins(ctx context.Context, year int, district string) (*dto.BranchMarginsResponse, error)
	GetCategoryBreakdown(ctx context.Context, year int, branchID int64) (*dto.CategoryBreakdownResponse, error)
}

type RiskService interface {
	Analyze(ctx context.Context, strategy string, year int) (*analytics.RiskAnalysis, error)
}

type OpportunityService interface {
	Analyze(ctx context.Context, year int) (*dto.OpportunityResponse, error)
}

type ComparisonService interface {
	Compare(ctx context.Context, ids []int64, year int) (*dto.ComparisonResponse, error)
}

type ForecastService interface {
	ForecastBranch(ctx context.Context, branchID int64, months int) (*dto.ForecastResponse, error)
	CompareGrowth(ctx context.Context, year int) (*dto.GrowthComparisonResponse, error)
}

type ScenarioService interface {
	Presets() (*dto.ScenarioPresetsResponse, error)
	Simulate(ctx context.Context, req dto.ScenarioRequest) (*dto.ScenarioResponse, error)
}

type BranchService interface {
	ListActive(ctx context.Context) ([]dto.BranchDTO, error)
	ListDistricts(ctx context.Context) (*dto.DistrictsResponse, error)
	GetDetail(ctx context.Context, id int64, year int) (*dto.BranchDetailDTO, error)
}
