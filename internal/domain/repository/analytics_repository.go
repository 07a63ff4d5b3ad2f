package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// BranchTotalsRow ventas y gastos agregados de una sucursal activa.
// Lo produce la DB; el caso de uso lo convierte a la entrada del motor.
type BranchTotalsRow struct {
	BranchID int64
	Name     string
	District string
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Quantity decimal.Decimal
}

// MonthlyAmountRow importe agregado de un mes calendario (1–12).
type MonthlyAmountRow struct {
	Month  int
	Amount decimal.Decimal
}

// MonthlyFinancialRow ingresos y gastos de un mes "YYYY-MM".
type MonthlyFinancialRow struct {
	Month    string
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
}

// ExpenseTypeRow gasto total de un tipo (Rent, Salary, ...).
type ExpenseTypeRow struct {
	BranchID    int64
	ExpenseType string
	Amount      decimal.Decimal
}

// CategoryRow ventas de una categoría y cuántas sucursales la venden.
type CategoryRow struct {
	Category    string
	Revenue     decimal.Decimal
	Quantity    decimal.Decimal
	BranchCount int
}

// MonthRevenueRow ingreso de un mes "YYYY-MM".
type MonthRevenueRow struct {
	Month   string
	Revenue decimal.Decimal
}

// DistrictStatsRow sucursales activas de un distrito y su beneficio medio.
type DistrictStatsRow struct {
	District    string
	BranchCount int
	AvgProfit   decimal.Decimal
}

// AnalyticsRepository agregados de solo lectura sobre ventas y gastos.
// year = 0 en los métodos que lo admiten significa todo el histórico.
type AnalyticsRepository interface {
	// GetSalesTotals ingresos y unidades del año con el filtro aplicado.
	GetSalesTotals(ctx context.Context, year int, f analytics.Filter) (revenue, quantity decimal.Decimal, err error)

	// GetExpenseTotal gastos del año. El filtro de categoría no aplica a gastos.
	GetExpenseTotal(ctx context.Context, year int, f analytics.Filter) (decimal.Decimal, error)

	// GetBranchTotals totales por sucursal activa, opcionalmente de un distrito.
	GetBranchTotals(ctx context.Context, year int, district string) ([]BranchTotalsRow, error)

	// GetMonthlyRevenue / GetMonthlyExpenses series por mes calendario del año.
	GetMonthlyRevenue(ctx context.Context, year int, f analytics.Filter) ([]MonthlyAmountRow, error)
	GetMonthlyExpenses(ctx context.Context, year int, f analytics.Filter) ([]MonthlyAmountRow, error)

	// GetCategoryTotals ventas por categoría; branchID = 0 agrega todas las sucursales.
	GetCategoryTotals(ctx context.Context, year int, branchID int64) ([]CategoryRow, error)

	// GetExpensesByType gastos por tipo y sucursal; branchID = 0 devuelve todas.
	GetExpensesByType(ctx context.Context, year int, branchID int64) ([]ExpenseTypeRow, error)

	// GetMonthlyFinancials los últimos `limit` meses de la sucursal en orden ascendente.
	GetMonthlyFinancials(ctx context.Context, branchID int64, limit int) ([]MonthlyFinancialRow, error)

	// GetMonthlyBranchRevenue ingreso mensual de una sucursal en el año.
	GetMonthlyBranchRevenue(ctx context.Context, year int, branchID int64) ([]MonthRevenueRow, error)

	// GetDistrictStats número de sucursales activas y beneficio medio por distrito.
	GetDistrictStats(ctx context.Context, year int) ([]DistrictStatsRow, error)
}
