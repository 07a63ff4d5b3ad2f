package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados de solo lectura sobre sales, expenses y branches.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesTotals suma ingresos y unidades. COALESCE devuelve cero sin ventas.
func (r *AnalyticsRepo) GetSalesTotals(
	ctx context.Context,
	year int,
	f analytics.Filter,
) (revenue, quantity decimal.Decimal, err error) {
	clause, args := filterClause(f, []any{year}, true)
	query := `
	SELECT
	    COALESCE(SUM(s.revenue),  0)::numeric AS revenue,
	    COALESCE(SUM(s.quantity), 0)::numeric AS quantity
	FROM sales s
	JOIN branches b ON b.id = s.branch_id
	WHERE ` + yearCond("s.date", 1) + clause

	if err = r.pool.QueryRow(ctx, query, args...).Scan(&revenue, &quantity); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetSalesTotals: %w", err)
	}
	return revenue, quantity, nil
}

// GetExpenseTotal suma los gastos del período.
func (r *AnalyticsRepo) GetExpenseTotal(ctx context.Context, year int, f analytics.Filter) (decimal.Decimal, error) {
	clause, args := filterClause(f, []any{year}, false)
	query := `
	SELECT COALESCE(SUM(e.amount), 0)::numeric AS expenses
	FROM expenses e
	JOIN branches b ON b.id = e.branch_id
	WHERE ` + yearCond("e.date", 1) + clause

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetExpenseTotal: %w", err)
	}
	return total, nil
}

// GetBranchTotals ingresos, gastos y unidades de cada sucursal activa.
// Ventas y gastos se agregan por separado para no multiplicar filas en el JOIN.
func (r *AnalyticsRepo) GetBranchTotals(
	ctx context.Context,
	year int,
	district string,
) ([]repository.BranchTotalsRow, error) {
	query := `
	SELECT
	    b.id,
	    b.name,
	    b.district,
	    COALESCE(s.revenue,  0)::numeric AS revenue,
	    COALESCE(e.expenses, 0)::numeric AS expenses,
	    COALESCE(s.quantity, 0)::numeric AS quantity
	FROM branches b
	LEFT JOIN (
	    SELECT branch_id, SUM(revenue) AS revenue, SUM(quantity) AS quantity
	    FROM sales
	    WHERE ` + yearCond("date", 1) + `
	    GROUP BY branch_id
	) s ON s.branch_id = b.id
	LEFT JOIN (
	    SELECT branch_id, SUM(amount) AS expenses
	    FROM expenses
	    WHERE ` + yearCond("date", 1) + `
	    GROUP BY branch_id
	) e ON e.branch_id = b.id
	WHERE b.status = 'Active'
	  AND ($2::text = '' OR b.district = $2::text)
	ORDER BY b.id`

	rows, err := r.pool.Query(ctx, query, year, district)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetBranchTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.BranchTotalsRow
	for rows.Next() {
		var row repository.BranchTotalsRow
		if err := rows.Scan(
			&row.BranchID,
			&row.Name,
			&row.District,
			&row.Revenue,
			&row.Expenses,
			&row.Quantity,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetBranchTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyRevenue ingresos por mes calendario.
func (r *AnalyticsRepo) GetMonthlyRevenue(
	ctx context.Context,
	year int,
	f analytics.Filter,
) ([]repository.MonthlyAmountRow, error) {
	clause, args := filterClause(f, []any{year}, true)
	query := `
	SELECT
	    EXTRACT(MONTH FROM s.date)::int AS month_num,
	    SUM(s.revenue)::numeric         AS amount
	FROM sales s
	JOIN branches b ON b.id = s.branch_id
	WHERE EXTRACT(YEAR FROM s.date)::int = $1` + clause + `
	GROUP BY month_num
	ORDER BY month_num`

	return r.monthlyAmounts(ctx, "analytics.GetMonthlyRevenue", query, args)
}

// GetMonthlyExpenses gastos por mes calendario.
func (r *AnalyticsRepo) GetMonthlyExpenses(
	ctx context.Context,
	year int,
	f analytics.Filter,
) ([]repository.MonthlyAmountRow, error) {
	clause, args := filterClause(f, []any{year}, false)
	query := `
	SELECT
	    EXTRACT(MONTH FROM e.date)::int AS month_num,
	    SUM(e.amount)::numeric          AS amount
	FROM expenses e
	JOIN branches b ON b.id = e.branch_id
	WHERE EXTRACT(YEAR FROM e.date)::int = $1` + clause + `
	GROUP BY month_num
	ORDER BY month_num`

	return r.monthlyAmounts(ctx, "analytics.GetMonthlyExpenses", query, args)
}

func (r *AnalyticsRepo) monthlyAmounts(ctx context.Context, op, query string, args []any) ([]repository.MonthlyAmountRow, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.MonthlyAmountRow, error) {
		var m repository.MonthlyAmountRow
		err := row.Scan(&m.Month, &m.Amount)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", op, err)
	}
	return results, nil
}

// GetCategoryTotals ventas por categoría ordenadas por ingreso.
func (r *AnalyticsRepo) GetCategoryTotals(
	ctx context.Context,
	year int,
	branchID int64,
) ([]repository.CategoryRow, error) {
	const query = `
	SELECT
	    s.category,
	    SUM(s.revenue)::numeric           AS revenue,
	    SUM(s.quantity)::numeric          AS quantity,
	    COUNT(DISTINCT s.branch_id)::int  AS branch_count
	FROM sales s
	WHERE EXTRACT(YEAR FROM s.date)::int = $1
	  AND ($2::bigint = 0 OR s.branch_id = $2)
	GROUP BY s.category
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, year, branchID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCategoryTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryRow
	for rows.Next() {
		var row repository.CategoryRow
		if err := rows.Scan(&row.Category, &row.Revenue, &row.Quantity, &row.BranchCount); err != nil {
			return nil, fmt.Errorf("analytics.GetCategoryTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetExpensesByType gastos agrupados por sucursal y tipo.
func (r *AnalyticsRepo) GetExpensesByType(
	ctx context.Context,
	year int,
	branchID int64,
) ([]repository.ExpenseTypeRow, error) {
	query := `
	SELECT
	    e.branch_id,
	    e.expense_type,
	    SUM(e.amount)::numeric AS amount
	FROM expenses e
	WHERE ` + yearCond("e.date", 1) + `
	  AND ($2::bigint = 0 OR e.branch_id = $2)
	GROUP BY e.branch_id, e.expense_type
	ORDER BY e.branch_id, e.expense_type`

	rows, err := r.pool.Query(ctx, query, year, branchID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetExpensesByType: %w", err)
	}
	defer rows.Close()

	var results []repository.ExpenseTypeRow
	for rows.Next() {
		var row repository.ExpenseTypeRow
		if err := rows.Scan(&row.BranchID, &row.ExpenseType, &row.Amount); err != nil {
			return nil, fmt.Errorf("analytics.GetExpensesByType scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyFinancials últimos meses con ventas de la sucursal; los gastos de
// un mes sin registros se devuelven en cero.
func (r *AnalyticsRepo) GetMonthlyFinancials(
	ctx context.Context,
	branchID int64,
	limit int,
) ([]repository.MonthlyFinancialRow, error) {
	const query = `
	WITH rev AS (
	    SELECT to_char(date, 'YYYY-MM') AS month, SUM(revenue) AS revenue
	    FROM sales
	    WHERE branch_id = $1
	    GROUP BY 1
	), exp AS (
	    SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount) AS expenses
	    FROM expenses
	    WHERE branch_id = $1
	    GROUP BY 1
	)
	SELECT month, revenue, expenses
	FROM (
	    SELECT r.month,
	           r.revenue::numeric                 AS revenue,
	           COALESCE(x.expenses, 0)::numeric   AS expenses
	    FROM rev r
	    LEFT JOIN exp x ON x.month = r.month
	    ORDER BY r.month DESC
	    LIMIT $2
	) last_months
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, branchID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyFinancials: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyFinancialRow
	for rows.Next() {
		var row repository.MonthlyFinancialRow
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Expenses); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyFinancials scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyBranchRevenue ingreso mensual "YYYY-MM" de la sucursal en el año.
func (r *AnalyticsRepo) GetMonthlyBranchRevenue(
	ctx context.Context,
	year int,
	branchID int64,
) ([]repository.MonthRevenueRow, error) {
	const query = `
	SELECT to_char(date, 'YYYY-MM') AS month, SUM(revenue)::numeric AS revenue
	FROM sales
	WHERE branch_id = $1
	  AND EXTRACT(YEAR FROM date)::int = $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, branchID, year)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyBranchRevenue: %w", err)
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByPos[repository.MonthRevenueRow])
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyBranchRevenue scan: %w", err)
	}
	return results, nil
}

// GetDistrictStats sucursales activas por distrito y beneficio medio del año.
func (r *AnalyticsRepo) GetDistrictStats(ctx context.Context, year int) ([]repository.DistrictStatsRow, error) {
	query := `
	SELECT
	    b.district,
	    COUNT(*)::int                                                      AS branch_count,
	    COALESCE(AVG(COALESCE(s.revenue, 0) - COALESCE(e.expenses, 0)), 0)::numeric AS avg_profit
	FROM branches b
	LEFT JOIN (
	    SELECT branch_id, SUM(revenue) AS revenue
	    FROM sales
	    WHERE ` + yearCond("date", 1) + `
	    GROUP BY branch_id
	) s ON s.branch_id = b.id
	LEFT JOIN (
	    SELECT branch_id, SUM(amount) AS expenses
	    FROM expenses
	    WHERE ` + yearCond("date", 1) + `
	    GROUP BY branch_id
	) e ON e.branch_id = b.id
	WHERE b.status = 'Active'
	GROUP BY b.district
	ORDER BY b.district`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDistrictStats: %w", err)
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByPos[repository.DistrictStatsRow])
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDistrictStats scan: %w", err)
	}
	return results, nil
}
