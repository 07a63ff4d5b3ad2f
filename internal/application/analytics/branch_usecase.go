package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// BranchUseCase datos de referencia de sucursales.
type BranchUseCase struct {
	branchRepo    repository.BranchRepository
	analyticsRepo repository.AnalyticsRepository
	now           Clock
}

func NewBranchUseCase(branchRepo repository.BranchRepository, analyticsRepo repository.AnalyticsRepository, now Clock) *BranchUseCase {
	if now == nil {
		now = time.Now
	}
	return &BranchUseCase{branchRepo: branchRepo, analyticsRepo: analyticsRepo, now: now}
}

// ListActive sucursales activas ordenadas por nombre.
func (uc *BranchUseCase) ListActive(ctx context.Context) ([]dto.BranchDTO, error) {
	branches, err := uc.branchRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("sucursales: %w", err)
	}
	out := make([]dto.BranchDTO, len(branches))
	for i, b := range branches {
		out[i] = dto.BranchFromEntity(b)
	}
	return out, nil
}

// ListDistricts distritos con al menos una sucursal activa.
func (uc *BranchUseCase) ListDistricts(ctx context.Context) (*dto.DistrictsResponse, error) {
	districts, err := uc.branchRepo.ListDistricts(ctx)
	if err != nil {
		return nil, fmt.Errorf("distritos: %w", err)
	}
	if districts == nil {
		districts = []string{}
	}
	return &dto.DistrictsResponse{Districts: districts}, nil
}

// GetDetail sucursal con ingresos, gastos y unidades del año (0 = año en curso).
func (uc *BranchUseCase) GetDetail(ctx context.Context, id int64, year int) (*dto.BranchDetailDTO, error) {
	if id <= 0 {
		return nil, fmt.Errorf("sucursal %d: %w", id, domain.ErrInvalidInput)
	}
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("sucursal %d: %w", id, err)
	}

	branch, err := uc.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f := engine.Filter{BranchID: id}
	g, gctx := errgroup.WithContext(ctx)
	var revenue, quantity, expenses decimal.Decimal
	g.Go(func() error {
		var err error
		revenue, quantity, err = uc.analyticsRepo.GetSalesTotals(gctx, year, f)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = uc.analyticsRepo.GetExpenseTotal(gctx, year, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sucursal %d: totales: %w", id, err)
	}

	return &dto.BranchDetailDTO{
		BranchDTO: dto.BranchFromEntity(branch),
		Year:      year,
		Revenue:   revenue,
		Expenses:  expenses,
		Profit:    revenue.Sub(expenses),
		Quantity:  quantity,
	}, nil
}
