package analytics_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

func months(year int, revenues, expenses []float64) []analytics.MonthlyFinancial {
	out := make([]analytics.MonthlyFinancial, len(revenues))
	for i := range revenues {
		y := year + i/12
		out[i] = analytics.MonthlyFinancial{
			Month:    fmt.Sprintf("%d-%02d", y, i%12+1),
			Revenue:  revenues[i],
			Expenses: expenses[i],
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos base
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeForecast_SerieEstable(t *testing.T) {
	f, err := analytics.ComputeForecast(1, months(2024, []float64{100, 100, 100}, []float64{80, 80, 80}), 0)
	require.NoError(t, err)

	require.Len(t, f.Forecast, analytics.DefaultForecastHorizon, "horizonte 0 usa el valor por defecto")
	for _, p := range f.Forecast {
		assert.Equal(t, 100.0, p.Revenue)
		assert.Equal(t, 80.0, p.Expenses)
		assert.Equal(t, 20.0, p.Profit)
		assert.Equal(t, 100.0, p.ConfidenceLow, "desviación 0: banda cerrada")
		assert.Equal(t, 100.0, p.ConfidenceHigh)
		assert.True(t, p.IsOptimistic)
	}
	assert.Equal(t, "2024-04", f.Forecast[0].Month)
	assert.Equal(t, "2024-09", f.Forecast[5].Month)

	assert.Equal(t, analytics.TrendStable, f.Summary.TrendDirection)
	assert.Equal(t, 0.0, f.Summary.TrendPercent)
	assert.Equal(t, 80.0, f.Summary.ExpenseRatio)
	assert.Equal(t, 6, f.Summary.ProfitableMonths)
	assert.Equal(t, 600.0, f.Summary.TotalForecastRevenue)

	require.Len(t, f.Insights, 2, "sin pendiente no hay mensaje de tendencia")
	assert.Equal(t, analytics.Insight{Type: analytics.InsightSuccess, Message: "Önümüzdeki 6 ay boyunca kârlı olması bekleniyor."}, f.Insights[0])
	assert.Equal(t, "En yüksek satış dönemi: Ocak, En düşük: Ocak", f.Insights[1].Message)
}

func TestComputeForecast_TendenciaCreciente(t *testing.T) {
	f, err := analytics.ComputeForecast(2, months(2024, []float64{100, 200, 300, 400}, []float64{0, 0, 0, 0}), 2)
	require.NoError(t, err)

	require.Len(t, f.Forecast, 2)
	assert.Equal(t, "2024-05", f.Forecast[0].Month)
	assert.Equal(t, 500.0, f.Forecast[0].Revenue, "100 + 100×4, mayo sin historia → índice 1")
	assert.Equal(t, 600.0, f.Forecast[1].Revenue)
	assert.Equal(t, 377.0, f.Forecast[0].ConfidenceLow, "500 − 111.80×1.1")
	assert.Equal(t, 623.0, f.Forecast[0].ConfidenceHigh)

	assert.InDelta(t, 0.4, f.SeasonalFactors[1], 1e-9)
	assert.InDelta(t, 1.6, f.SeasonalFactors[4], 1e-9)
	assert.Equal(t, 1.0, f.SeasonalFactors[12])

	assert.Equal(t, analytics.TrendUp, f.Summary.TrendDirection)
	assert.Equal(t, 480.0, f.Summary.TrendPercent)
	assert.Equal(t, 0.0, f.Summary.ExpenseRatio)

	require.Len(t, f.Insights, 3)
	assert.Equal(t, analytics.Insight{Type: analytics.InsightPositive, Message: "Yıllık büyüme trendi: %480.0"}, f.Insights[0])
	assert.Equal(t, "En yüksek satış dönemi: Nisan, En düşük: Ocak", f.Insights[2].Message)
}

func TestComputeForecast_TendenciaDecreciente(t *testing.T) {
	f, err := analytics.ComputeForecast(3, months(2024, []float64{300, 200, 100}, []float64{250, 250, 250}), 3)
	require.NoError(t, err)

	assert.Equal(t, analytics.TrendDown, f.Summary.TrendDirection)
	assert.Equal(t, -600.0, f.Summary.TrendPercent)
	for _, p := range f.Forecast {
		assert.Equal(t, 0.0, p.Revenue, "el ingreso proyectado nunca es negativo")
		assert.GreaterOrEqual(t, p.ConfidenceLow, 0.0)
		assert.False(t, p.IsOptimistic)
	}
	assert.Equal(t, "Yıllık düşüş trendi: %600.0", f.Insights[0].Message)
	assert.Equal(t, analytics.Insight{Type: analytics.InsightDanger, Message: "Önümüzdeki 3 ayda zarar bekleniyor."}, f.Insights[1])
}

func TestComputeForecast_RentabilidadMixta(t *testing.T) {
	s := analytics.ForecastSummary{ForecastMonths: 6, ProfitableMonths: 4}
	insights := analytics.ForecastInsights(0, s, map[int]float64{})
	assert.Equal(t, "6 aylık dönemde 4 ay kârlı, 2 ay zararlı bekleniyor.", insights[0].Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores y límites
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeForecast_HistoriaInsuficiente(t *testing.T) {
	f, err := analytics.ComputeForecast(4, months(2024, []float64{100, 100}, []float64{50, 50}), 6)

	assert.Nil(t, f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientData))
}

func TestComputeForecast_MesInvalido(t *testing.T) {
	history := []analytics.MonthlyFinancial{
		{Month: "2024-01", Revenue: 1}, {Month: "2024-02", Revenue: 1}, {Month: "marzo", Revenue: 1},
	}
	_, err := analytics.ComputeForecast(5, history, 6)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestComputeForecast_VentanaDeHistoria(t *testing.T) {
	revenues := make([]float64, 30)
	expenses := make([]float64, 30)
	for i := range revenues {
		revenues[i] = 1_000
		expenses[i] = 500
	}
	f, err := analytics.ComputeForecast(6, months(2022, revenues, expenses), 1)
	require.NoError(t, err)

	assert.Len(t, f.Historical, 12)
	assert.Equal(t, "2024-06", f.Historical[11].Month)
	assert.Equal(t, "2024-07", f.Forecast[0].Month)
}

func TestComputeForecast_OrdenaHistoria(t *testing.T) {
	history := []analytics.MonthlyFinancial{
		{Month: "2024-03", Revenue: 300}, {Month: "2024-01", Revenue: 100}, {Month: "2024-02", Revenue: 200},
	}
	f, err := analytics.ComputeForecast(7, history, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01", f.Historical[0].Month)
	assert.Equal(t, analytics.TrendUp, f.Summary.TrendDirection)
}

func TestClampHorizon(t *testing.T) {
	assert.Equal(t, 6, analytics.ClampHorizon(0))
	assert.Equal(t, 1, analytics.ClampHorizon(-3))
	assert.Equal(t, 9, analytics.ClampHorizon(9))
	assert.Equal(t, 12, analytics.ClampHorizon(20))
}

// ──────────────────────────────────────────────────────────────────────────────
// Perspectiva de crecimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeGrowthOutlook(t *testing.T) {
	out := analytics.ComputeGrowthOutlook([]analytics.GrowthInput{
		{ID: 1, Name: "Alsancak", CurrentRevenue: 1_100_000, CurrentExpenses: 800_000, LastYearRevenue: 1_000_000},
		{ID: 2, Name: "Buca", CurrentRevenue: 400_000, CurrentExpenses: 500_000},
	})
	require.Len(t, out, 2)

	assert.Equal(t, 10.0, out[0].GrowthRate)
	assert.Equal(t, 1_210_000.0, out[0].ProjectedRevenue)
	assert.Equal(t, 386_000.0, out[0].ProjectedProfit, "1.21M − 800k×1.03")
	assert.Equal(t, analytics.OutlookPositive, out[0].Outlook)

	assert.Equal(t, 0.0, out[1].GrowthRate, "sin ingresos del año anterior")
	assert.Equal(t, -100_000.0, out[1].CurrentProfit)
	assert.Equal(t, analytics.OutlookNegative, out[1].Outlook)
}
