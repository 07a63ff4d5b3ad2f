package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/branch-analytics/internal/domain/entity"
)

// BranchDTO datos de referencia de una sucursal.
type BranchDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	District  string     `json:"district"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Status    string     `json:"status"`
	OpenedAt  *time.Time `json:"opened_at,omitempty"`
}

// BranchFromEntity convierte la entidad a DTO.
func BranchFromEntity(b *entity.Branch) BranchDTO {
	if b == nil {
		return BranchDTO{}
	}
	return BranchDTO{
		ID:        b.ID,
		Name:      b.Name,
		District:  b.District,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		Status:    b.Status,
		OpenedAt:  b.OpenedAt,
	}
}

// BranchDetailDTO sucursal con totales del año (YTD).
type BranchDetailDTO struct {
	BranchDTO
	Year     int             `json:"year"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	Quantity decimal.Decimal `json:"quantity"`
}

// DistrictsResponse distritos con sucursales.
type DistrictsResponse struct {
	Districts []string `json:"districts"`
}
