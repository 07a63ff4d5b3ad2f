package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/domain/entity"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
	"github.com/jhoicas/branch-analytics/pkg/logger"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// OpportunityUseCase potencial de expansión por distrito.
type OpportunityUseCase struct {
	districtRepo  repository.DistrictRepository
	analyticsRepo repository.AnalyticsRepository
	region        string
	log           *logger.Logger
	now           Clock
}

// NewOpportunityUseCase construye el caso de uso; region es el nombre usado en el resumen.
func NewOpportunityUseCase(
	districtRepo repository.DistrictRepository,
	analyticsRepo repository.AnalyticsRepository,
	region string,
	log *logger.Logger,
	now Clock,
) *OpportunityUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &OpportunityUseCase{
		districtRepo:  districtRepo,
		analyticsRepo: analyticsRepo,
		region:        region,
		log:           log.Component("opportunity"),
		now:           now,
	}
}

// Analyze cruza los datos demográficos con las sucursales activas y el
// beneficio medio del año de cada distrito.
func (uc *OpportunityUseCase) Analyze(ctx context.Context, year int) (*dto.OpportunityResponse, error) {
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("oportunidad: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	var (
		districts []*entity.District
		stats     []repository.DistrictStatsRow
	)
	g.Go(func() error {
		list, err := uc.districtRepo.List(gctx)
		districts = list
		return err
	})
	g.Go(func() error {
		rows, err := uc.analyticsRepo.GetDistrictStats(gctx, year)
		stats = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("oportunidad: %w", err)
	}

	byDistrict := make(map[string]repository.DistrictStatsRow, len(stats))
	for _, s := range stats {
		byDistrict[s.District] = s
	}

	inputs := make([]engine.DistrictInput, 0, len(districts))
	for _, d := range districts {
		s := byDistrict[d.Name]
		inputs = append(inputs, engine.DistrictInput{
			District:        d.Name,
			Population:      d.Population,
			Density:         d.Density,
			AreaKm2:         d.AreaKm2,
			Latitude:        d.Latitude,
			Longitude:       d.Longitude,
			BranchCount:     s.BranchCount,
			AvgBranchProfit: toFloat(s.AvgProfit),
		})
	}

	analysis := engine.ComputeOpportunityAnalysis(inputs, engine.WithRegion(uc.region))
	logSkipped(uc.log, "opportunity", analysis.Skipped)

	region := uc.region
	if region == "" {
		region = engine.DefaultRegionName
	}
	return &dto.OpportunityResponse{Year: year, Region: region, OpportunityAnalysis: analysis}, nil
}
