package repository

import (
	"context"

	"github.com/jhoicas/branch-analytics/internal/domain/entity"
)

// BranchRepository catálogo de sucursales (solo lectura).
type BranchRepository interface {
	ListActive(ctx context.Context) ([]*entity.Branch, error)
	ListDistricts(ctx context.Context) ([]string, error)
	// GetByID devuelve domain.ErrNotFound si la sucursal no existe.
	GetByID(ctx context.Context, id int64) (*entity.Branch, error)
}

// DistrictRepository datos demográficos de referencia.
type DistrictRepository interface {
	// List ordenado por densidad descendente.
	List(ctx context.Context) ([]*entity.District, error)
}
