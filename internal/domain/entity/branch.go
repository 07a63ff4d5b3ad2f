package entity

import "time"

// Estados de una sucursal.
const (
	BranchActive   = "Active"
	BranchInactive = "Inactive"
)

// Branch representa una sucursal (şube) de la cadena. Datos de referencia de solo lectura.
type Branch struct {
	ID        int64
	Name      string
	District  string
	Latitude  float64
	Longitude float64
	Status    string // Active, Inactive
	OpenedAt  *time.Time
}

// IsActive indica si la sucursal participa en los análisis de riesgo.
func (b Branch) IsActive() bool {
	return b.Status == BranchActive
}
