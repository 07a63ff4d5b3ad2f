package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/branch-analytics/internal/domain"
)

const (
	MinComparedBranches = 2
	MaxComparedBranches = 5

	costStructureGap = 5   // puntos porcentuales de diferencia en costos fijos
	categoryGapShare = 0.1 // fracción del ingreso del líder
)

var comparedCategories = []string{"Books", "Stationery", "Kids", "Gifts", "OnlineOrders"}

// CategorySales ventas de una categoría en una sucursal.
type CategorySales struct {
	Revenue  float64 `json:"revenue"`
	Quantity float64 `json:"quantity"`
}

// MonthRevenue ingreso de un mes "YYYY-MM".
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// BranchProfile datos anuales de una sucursal para la comparación.
type BranchProfile struct {
	ID              int64
	Name            string
	District        string
	Latitude        float64
	Longitude       float64
	SalesByCategory map[string]CategorySales
	ExpensesByType  map[string]float64
	MonthlyRevenue  []MonthRevenue
}

// ComparedBranch métricas de una sucursal dentro de la comparación.
type ComparedBranch struct {
	ID              int64                    `json:"id"`
	Name            string                   `json:"name"`
	District        string                   `json:"district"`
	Latitude        float64                  `json:"latitude"`
	Longitude       float64                  `json:"longitude"`
	TotalRevenue    float64                  `json:"total_revenue"`
	TotalExpenses   float64                  `json:"total_expenses"`
	Profit          float64                  `json:"profit"`
	Margin          float64                  `json:"margin"`           // 2 decimales
	FixedCostRatio  float64                  `json:"fixed_cost_ratio"` // 2 decimales
	SalesByCategory map[string]CategorySales `json:"sales_by_category"`
	ExpensesByType  map[string]float64       `json:"expenses_by_type"`
	MonthlyTrend    []MonthRevenue           `json:"monthly_trend"`
}

// ComparisonExplanation diferencia explicable entre la mejor y la peor sucursal.
type ComparisonExplanation struct {
	Type        string `json:"type"` // revenue, costs, category
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"` // high, medium, low
}

// BranchComparison resultado de comparar entre 2 y 5 sucursales.
type BranchComparison struct {
	Branches     []ComparedBranch        `json:"branches"`
	Explanations []ComparisonExplanation `json:"explanations"`
	Insight      string                  `json:"insight"`
}

// CompareBranches calcula métricas por sucursal y explica las diferencias entre
// la más y la menos rentable. Requiere entre 2 y 5 perfiles.
func CompareBranches(profiles []BranchProfile) (BranchComparison, error) {
	if len(profiles) < MinComparedBranches || len(profiles) > MaxComparedBranches {
		return BranchComparison{}, fmt.Errorf("comparación con %d sucursales (%d–%d): %w",
			len(profiles), MinComparedBranches, MaxComparedBranches, domain.ErrInvalidInput)
	}

	branches := make([]ComparedBranch, 0, len(profiles))
	for _, p := range profiles {
		branches = append(branches, compareProfile(p))
	}

	return BranchComparison{
		Branches:     branches,
		Explanations: ComparisonExplanations(branches),
		Insight:      ComparisonInsight(branches),
	}, nil
}

func compareProfile(p BranchProfile) ComparedBranch {
	var revenue float64
	for _, cat := range sortedKeys(p.SalesByCategory) {
		revenue += p.SalesByCategory[cat].Revenue
	}
	var expenses float64
	for _, typ := range sortedKeys(p.ExpensesByType) {
		expenses += p.ExpensesByType[typ]
	}
	fixed := BreakdownFromTypes(p.ExpensesByType).FixedCosts()
	profit := revenue - expenses

	sales := p.SalesByCategory
	if sales == nil {
		sales = map[string]CategorySales{}
	}
	byType := p.ExpensesByType
	if byType == nil {
		byType = map[string]float64{}
	}
	trend := p.MonthlyRevenue
	if trend == nil {
		trend = []MonthRevenue{}
	}

	return ComparedBranch{
		ID:              p.ID,
		Name:            p.Name,
		District:        p.District,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		TotalRevenue:    revenue,
		TotalExpenses:   expenses,
		Profit:          profit,
		Margin:          round2(marginPct(profit, revenue)),
		FixedCostRatio:  round2(FixedCostRatio(fixed, expenses)),
		SalesByCategory: sales,
		ExpensesByType:  byType,
		MonthlyTrend:    trend,
	}
}

// bestAndWorst por beneficio, estable respecto al orden de entrada.
func bestAndWorst(branches []ComparedBranch) (best, worst ComparedBranch) {
	sorted := append([]ComparedBranch{}, branches...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Profit > sorted[j].Profit })
	return sorted[0], sorted[len(sorted)-1]
}

// ComparisonExplanations brecha de ingresos, de estructura de costos y por categoría.
func ComparisonExplanations(branches []ComparedBranch) []ComparisonExplanation {
	out := []ComparisonExplanation{}
	if len(branches) < MinComparedBranches {
		return out
	}
	best, worst := bestAndWorst(branches)

	if diff := best.TotalRevenue - worst.TotalRevenue; diff > 0 {
		out = append(out, ComparisonExplanation{
			Type:        "revenue",
			Title:       "Gelir Farkı",
			Description: fmt.Sprintf("%s şubesi, %s şubesinden %s daha fazla gelir elde etmiş.", best.Name, worst.Name, FormatTRY(diff)),
			Impact:      "high",
		})
	}

	if math.Abs(best.FixedCostRatio-worst.FixedCostRatio) > costStructureGap {
		impact := "low"
		if best.FixedCostRatio < worst.FixedCostRatio {
			impact = "medium"
		}
		out = append(out, ComparisonExplanation{
			Type:  "costs",
			Title: "Maliyet Yapısı",
			Description: fmt.Sprintf("%s şubesinin sabit maliyet oranı (%%%s) %s'den (%%%s) daha yüksek.",
				worst.Name, formatPlain(worst.FixedCostRatio), best.Name, formatPlain(best.FixedCostRatio)),
			Impact: impact,
		})
	}

	for _, cat := range comparedCategories {
		diff := best.SalesByCategory[cat].Revenue - worst.SalesByCategory[cat].Revenue
		if diff > best.TotalRevenue*categoryGapShare {
			out = append(out, ComparisonExplanation{
				Type:        "category",
				Title:       cat + " Kategorisi",
				Description: fmt.Sprintf("%s %q kategorisinde %s daha fazla satış yapmış.", best.Name, cat, FormatTRY(diff)),
				Impact:      "medium",
			})
		}
	}
	return out
}

// ComparisonInsight líder, rezagada y margen promedio.
func ComparisonInsight(branches []ComparedBranch) string {
	if len(branches) == 0 {
		return ""
	}
	best, worst := bestAndWorst(branches)

	var sum float64
	for _, b := range branches {
		sum += b.Margin
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s en yüksek kârlılık (%s) ile liderliği elinde tutarken, ", best.Name, FormatTRY(best.Profit))
	fmt.Fprintf(&sb, "%s en düşük performansı (%%%s marj) göstermektedir. ", worst.Name, formatPlain(worst.Margin))
	fmt.Fprintf(&sb, "Ortalama marj oranı %%%.1f seviyesindedir.", sum/float64(len(branches)))
	return sb.String()
}

// formatPlain número con los decimales mínimos necesarios (65.5, 12, 3.25).
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
