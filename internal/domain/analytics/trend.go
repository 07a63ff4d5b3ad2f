package analytics

import (
	"fmt"
	"sort"
)

// MonthlyFinancial ingresos y gastos de un mes "YYYY-MM".
type MonthlyFinancial struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// Profit ingresos − gastos.
func (m MonthlyFinancial) Profit() float64 {
	return m.Revenue - m.Expenses
}

// MonthlyAmount importe agregado por número de mes (1–12) de un año.
type MonthlyAmount struct {
	Month  int
	Amount float64
}

// TrendPoint punto mensual de la serie de tendencia.
type TrendPoint struct {
	Month         string   `json:"month"` // YYYY-MM
	MonthNum      int      `json:"month_num"`
	Revenue       float64  `json:"revenue"`
	Expenses      float64  `json:"expenses"`
	Profit        float64  `json:"profit"`
	MovingAverage *float64 `json:"moving_average"` // nil antes del tercer punto
}

const movingAverageWindow = 3

// ComputeMonthlyTrend une ingresos y gastos por número de mes y calcula la media
// móvil de 3 meses del beneficio. Los meses sin gasto cuentan como 0; la serie
// sigue a los meses con ingresos.
func ComputeMonthlyTrend(year int, revenue, expenses []MonthlyAmount) []TrendPoint {
	expenseByMonth := make(map[int]float64, len(expenses))
	for _, e := range expenses {
		expenseByMonth[e.Month] += e.Amount
	}

	rows := make([]MonthlyAmount, len(revenue))
	copy(rows, revenue)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })

	points := make([]TrendPoint, 0, len(rows))
	for i, r := range rows {
		exp := expenseByMonth[r.Month]
		p := TrendPoint{
			Month:    fmt.Sprintf("%d-%02d", year, r.Month),
			MonthNum: r.Month,
			Revenue:  r.Amount,
			Expenses: exp,
			Profit:   r.Amount - exp,
		}
		if i >= movingAverageWindow-1 {
			sum := p.Profit
			for k := 1; k < movingAverageWindow; k++ {
				sum += points[i-k].Profit
			}
			p.MovingAverage = ptr(round2(sum / movingAverageWindow))
		}
		points = append(points, p)
	}
	return points
}

// RevenueExpensePoint fila de la comparación mensual ingresos/gastos.
type RevenueExpensePoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
	Margin   float64 `json:"margin"`
}

// ComputeRevenueVsExpense serie mensual con margen (2 decimales) por mes.
func ComputeRevenueVsExpense(year int, revenue, expenses []MonthlyAmount) []RevenueExpensePoint {
	trend := ComputeMonthlyTrend(year, revenue, expenses)
	out := make([]RevenueExpensePoint, 0, len(trend))
	for _, t := range trend {
		out = append(out, RevenueExpensePoint{
			Month:    t.Month,
			Revenue:  t.Revenue,
			Expenses: t.Expenses,
			Profit:   t.Profit,
			Margin:   round2(marginPct(t.Profit, t.Revenue)),
		})
	}
	return out
}
