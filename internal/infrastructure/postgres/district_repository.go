package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/branch-analytics/internal/domain/entity"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
)

var _ repository.DistrictRepository = (*DistrictRepo)(nil)

// DistrictRepo lectura de population_districts.
type DistrictRepo struct {
	pool *pgxpool.Pool
}

// NewDistrictRepository construye el adaptador de distritos.
func NewDistrictRepository(pool *pgxpool.Pool) *DistrictRepo {
	return &DistrictRepo{pool: pool}
}

// List distritos ordenados por densidad descendente.
func (r *DistrictRepo) List(ctx context.Context) ([]*entity.District, error) {
	const query = `
		SELECT district, population, density,
		       COALESCE(area_km2, 0), COALESCE(latitude, 0), COALESCE(longitude, 0)
		FROM population_districts
		ORDER BY density DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer rows.Close()

	var list []*entity.District
	for rows.Next() {
		var d entity.District
		if err := rows.Scan(&d.Name, &d.Population, &d.Density, &d.AreaKm2, &d.Latitude, &d.Longitude); err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
