package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/branch-analytics/internal/domain"
)

const (
	DefaultForecastHorizon = 6
	MaxForecastHorizon     = 12
	MinForecastHistory     = 3
	MaxForecastHistory     = 24

	defaultExpenseRatio  = 0.8
	confidenceGrowthStep = 0.1
	returnedHistory      = 12
	monthLayout          = "2006-01"
)

// Direcciones de tendencia.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// ForecastPoint mes proyectado con banda de confianza sobre el ingreso.
type ForecastPoint struct {
	Month          string  `json:"month"`
	Revenue        float64 `json:"revenue"`
	Expenses       float64 `json:"expenses"`
	Profit         float64 `json:"profit"`
	ConfidenceLow  float64 `json:"confidence_low"`
	ConfidenceHigh float64 `json:"confidence_high"`
	IsOptimistic   bool    `json:"is_optimistic"`
}

// ForecastSummary totales y tendencia de la proyección.
type ForecastSummary struct {
	ForecastMonths       int     `json:"forecast_months"`
	TotalForecastRevenue float64 `json:"total_forecast_revenue"`
	TotalForecastProfit  float64 `json:"total_forecast_profit"`
	ProfitableMonths     int     `json:"profitable_months"`
	TrendDirection       string  `json:"trend_direction"`
	TrendPercent         float64 `json:"trend_percent"` // anualizado, 1 decimal
	ExpenseRatio         float64 `json:"expense_ratio"` // %, 1 decimal
}

// Forecast resultado completo de la proyección de una sucursal.
type Forecast struct {
	BranchID        int64              `json:"branch_id"`
	Historical      []MonthlyFinancial `json:"historical"` // últimos 12 meses
	Forecast        []ForecastPoint    `json:"forecast"`
	Summary         ForecastSummary    `json:"summary"`
	SeasonalFactors map[int]float64    `json:"seasonal_factors"`
	Insights        []Insight          `json:"insights"`
}

// ClampHorizon 0 → 6; resto limitado a [1,12].
func ClampHorizon(months int) int {
	switch {
	case months == 0:
		return DefaultForecastHorizon
	case months < 1:
		return 1
	case months > MaxForecastHorizon:
		return MaxForecastHorizon
	}
	return months
}

// ComputeForecast proyecta ingresos con regresión lineal (índice secuencial de
// mes) modulada por índice estacional, gastos con el ratio histórico y una
// banda de confianza que crece 10% por mes. Usa como máximo los últimos 24
// meses; con menos de 3 devuelve domain.ErrInsufficientData.
func ComputeForecast(branchID int64, history []MonthlyFinancial, horizon int) (*Forecast, error) {
	series := make([]MonthlyFinancial, len(history))
	copy(series, history)
	sort.SliceStable(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	if len(series) > MaxForecastHistory {
		series = series[len(series)-MaxForecastHistory:]
	}
	if len(series) < MinForecastHistory {
		return nil, fmt.Errorf("pronóstico sucursal %d: %d meses: %w", branchID, len(series), domain.ErrInsufficientData)
	}

	calendar := make([]int, len(series))
	for i, m := range series {
		t, err := time.Parse(monthLayout, m.Month)
		if err != nil {
			return nil, fmt.Errorf("pronóstico sucursal %d: mes %q: %w", branchID, m.Month, domain.ErrInvalidInput)
		}
		calendar[i] = int(t.Month())
	}
	last, _ := time.Parse(monthLayout, series[len(series)-1].Month)

	horizon = ClampHorizon(horizon)
	n := len(series)

	revenues := make([]float64, n)
	var totalRevenue, totalExpenses float64
	for i, m := range series {
		revenues[i] = m.Revenue
		totalRevenue += m.Revenue
		totalExpenses += m.Expenses
	}

	slope, intercept := linearRegression(revenues)
	yMean := totalRevenue / float64(n)
	seasonal := seasonalFactors(revenues, calendar, yMean)
	stdDev := populationStdDev(revenues, yMean)

	expenseRatio := defaultExpenseRatio
	if totalRevenue > 0 {
		expenseRatio = totalExpenses / totalRevenue
	}

	points := make([]ForecastPoint, 0, horizon)
	summary := ForecastSummary{ForecastMonths: horizon}
	for i := 1; i <= horizon; i++ {
		month := time.Date(last.Year(), last.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)

		trendValue := intercept + slope*float64(n+i-1)
		revenue := math.Max(0, trendValue*seasonal[int(month.Month())])
		expenses := revenue * expenseRatio
		profit := revenue - expenses
		margin := stdDev * (1 + float64(i)*confidenceGrowthStep)

		p := ForecastPoint{
			Month:          month.Format(monthLayout),
			Revenue:        round(revenue, 0),
			Expenses:       round(expenses, 0),
			Profit:         round(profit, 0),
			ConfidenceLow:  round(math.Max(0, revenue-margin), 0),
			ConfidenceHigh: round(revenue+margin, 0),
			IsOptimistic:   profit > 0,
		}
		points = append(points, p)

		summary.TotalForecastRevenue += p.Revenue
		summary.TotalForecastProfit += p.Profit
		if p.Profit > 0 {
			summary.ProfitableMonths++
		}
	}

	switch {
	case slope > 0:
		summary.TrendDirection = TrendUp
	case slope < 0:
		summary.TrendDirection = TrendDown
	default:
		summary.TrendDirection = TrendStable
	}
	if yMean > 0 {
		summary.TrendPercent = round1(slope * 12 / yMean * 100)
	}
	summary.ExpenseRatio = round1(expenseRatio * 100)

	historical := series
	if len(historical) > returnedHistory {
		historical = historical[len(historical)-returnedHistory:]
	}

	return &Forecast{
		BranchID:        branchID,
		Historical:      append([]MonthlyFinancial{}, historical...),
		Forecast:        points,
		Summary:         summary,
		SeasonalFactors: seasonal,
		Insights:        ForecastInsights(slope, summary, seasonal),
	}, nil
}

// linearRegression mínimos cuadrados de y contra x = 0..n−1. Pendiente 0 si el denominador es 0.
func linearRegression(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	if n == 0 {
		return 0, 0
	}
	xMean := (n - 1) / 2
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= n

	var num, den float64
	for i, v := range y {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	if den != 0 {
		slope = num / den
	}
	return slope, yMean - slope*xMean
}

// seasonalFactors promedio del mes calendario / promedio general; 1 sin datos o con media 0.
func seasonalFactors(revenues []float64, calendar []int, mean float64) map[int]float64 {
	sums := make(map[int]float64, 12)
	counts := make(map[int]int, 12)
	for i, r := range revenues {
		sums[calendar[i]] += r
		counts[calendar[i]]++
	}

	factors := make(map[int]float64, 12)
	for m := 1; m <= 12; m++ {
		factors[m] = 1
		if counts[m] > 0 && mean != 0 {
			factors[m] = sums[m] / float64(counts[m]) / mean
		}
	}
	return factors
}

// populationStdDev desviación estándar poblacional (divide por n).
func populationStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}

// ForecastInsights narrativa de tendencia, rentabilidad esperada y estacionalidad.
func ForecastInsights(slope float64, s ForecastSummary, seasonal map[int]float64) []Insight {
	var out []Insight
	switch {
	case slope > 0:
		out = append(out, Insight{InsightPositive, fmt.Sprintf("Yıllık büyüme trendi: %%%.1f", math.Abs(s.TrendPercent))})
	case slope < 0:
		out = append(out, Insight{InsightWarning, fmt.Sprintf("Yıllık düşüş trendi: %%%.1f", math.Abs(s.TrendPercent))})
	}

	switch s.ProfitableMonths {
	case s.ForecastMonths:
		out = append(out, Insight{InsightSuccess, fmt.Sprintf("Önümüzdeki %d ay boyunca kârlı olması bekleniyor.", s.ForecastMonths)})
	case 0:
		out = append(out, Insight{InsightDanger, fmt.Sprintf("Önümüzdeki %d ayda zarar bekleniyor.", s.ForecastMonths)})
	default:
		out = append(out, Insight{InsightInfo, fmt.Sprintf("%d aylık dönemde %d ay kârlı, %d ay zararlı bekleniyor.",
			s.ForecastMonths, s.ProfitableMonths, s.ForecastMonths-s.ProfitableMonths)})
	}

	peak, low := peakAndLowMonth(seasonal)
	out = append(out, Insight{InsightInfo, fmt.Sprintf("En yüksek satış dönemi: %s, En düşük: %s", MonthName(peak), MonthName(low))})
	return out
}

// peakAndLowMonth primer máximo y primer mínimo recorriendo enero→diciembre.
func peakAndLowMonth(seasonal map[int]float64) (peak, low int) {
	peak, low = 1, 1
	for m := 2; m <= 12; m++ {
		if seasonal[m] > seasonal[peak] {
			peak = m
		}
		if seasonal[m] < seasonal[low] {
			low = m
		}
	}
	return peak, low
}
