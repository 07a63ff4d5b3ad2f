package analytics

import "sort"

// BranchTotals ingresos y gastos anuales de una sucursal.
type BranchTotals struct {
	ID       int64
	Name     string
	District string
	Revenue  float64
	Expenses float64
}

// BranchMargin rentabilidad anual de una sucursal.
type BranchMargin struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	District string  `json:"district"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
	Margin   float64 `json:"margin"` // %, 2 decimales
}

// ComputeBranchMargins margen por sucursal, ordenado por ingresos descendente.
func ComputeBranchMargins(rows []BranchTotals) []BranchMargin {
	out := make([]BranchMargin, 0, len(rows))
	for _, r := range rows {
		profit := r.Revenue - r.Expenses
		out = append(out, BranchMargin{
			ID:       r.ID,
			Name:     r.Name,
			District: r.District,
			Revenue:  r.Revenue,
			Expenses: r.Expenses,
			Profit:   profit,
			Margin:   round2(marginPct(profit, r.Revenue)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// CategoryTotals ventas agregadas de una categoría.
type CategoryTotals struct {
	Category    string
	Revenue     float64
	Quantity    float64
	BranchCount int
}

// CategoryShare participación de una categoría en las ventas.
type CategoryShare struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Quantity     float64 `json:"quantity"`
	Percentage   float64 `json:"percentage"`     // % del total, 2 decimales
	AvgPerBranch float64 `json:"avg_per_branch"` // 2 decimales
}

// ComputeCategoryBreakdown participación y promedio por sucursal, ordenado por ingresos.
func ComputeCategoryBreakdown(rows []CategoryTotals) []CategoryShare {
	var total float64
	for _, r := range rows {
		total += r.Revenue
	}

	out := make([]CategoryShare, 0, len(rows))
	for _, r := range rows {
		s := CategoryShare{
			Category: r.Category,
			Revenue:  r.Revenue,
			Quantity: r.Quantity,
		}
		if total > 0 {
			s.Percentage = round2(r.Revenue / total * 100)
		}
		if r.BranchCount > 0 {
			s.AvgPerBranch = round2(r.Revenue / float64(r.BranchCount))
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}
