package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// yearCond condición de año sobre una columna de fecha; el parámetro 0 desactiva el filtro.
func yearCond(column string, placeholder int) string {
	return fmt.Sprintf("($%[1]d::int = 0 OR EXTRACT(YEAR FROM %[2]s)::int = $%[1]d::int)", placeholder, column)
}

// filterClause traduce un analytics.Filter a condiciones AND sobre el alias de
// sucursal "b" y, con withCategory, sobre el de ventas "s". Los placeholders
// continúan la numeración de args.
func filterClause(f analytics.Filter, args []any, withCategory bool) (string, []any) {
	var sb strings.Builder
	if f.HasDistrict() {
		args = append(args, f.District)
		fmt.Fprintf(&sb, " AND b.district = $%d", len(args))
	}
	if f.HasBranch() {
		args = append(args, f.BranchID)
		fmt.Fprintf(&sb, " AND b.id = $%d", len(args))
	}
	if withCategory && f.HasCategory() {
		args = append(args, f.Category)
		fmt.Fprintf(&sb, " AND s.category = $%d", len(args))
	}
	return sb.String(), args
}
