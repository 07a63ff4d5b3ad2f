package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

func TestComputeMonthlyTrend_MediaMovil(t *testing.T) {
	revenue := []analytics.MonthlyAmount{{Month: 1, Amount: 300_000}, {Month: 2, Amount: 320_000}, {Month: 3, Amount: 310_000}}
	expenses := []analytics.MonthlyAmount{{Month: 1, Amount: 200_000}, {Month: 2, Amount: 200_000}, {Month: 3, Amount: 200_000}}

	points := analytics.ComputeMonthlyTrend(2024, revenue, expenses)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-01", points[0].Month)
	assert.Equal(t, 100_000.0, points[0].Profit)
	assert.Nil(t, points[0].MovingAverage, "índice 0 sin media móvil")
	assert.Nil(t, points[1].MovingAverage, "índice 1 sin media móvil")
	require.NotNil(t, points[2].MovingAverage)
	assert.Equal(t, 110_000.0, *points[2].MovingAverage)
}

func TestComputeMonthlyTrend_MesSinGastoCuentaCero(t *testing.T) {
	revenue := []analytics.MonthlyAmount{{Month: 3, Amount: 50}, {Month: 1, Amount: 10}, {Month: 2, Amount: 20}}
	expenses := []analytics.MonthlyAmount{{Month: 1, Amount: 5}, {Month: 3, Amount: 30}}

	points := analytics.ComputeMonthlyTrend(2023, revenue, expenses)
	require.Len(t, points, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{points[0].MonthNum, points[1].MonthNum, points[2].MonthNum}, "ordenado por mes")
	assert.Equal(t, 0.0, points[1].Expenses)
	assert.Equal(t, 20.0, points[1].Profit)
	require.NotNil(t, points[2].MovingAverage)
	assert.Equal(t, 15.0, *points[2].MovingAverage, "(5 + 20 + 20) / 3")
}

func TestComputeMonthlyTrend_SinDatos(t *testing.T) {
	points := analytics.ComputeMonthlyTrend(2024, nil, nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestComputeRevenueVsExpense_Margen(t *testing.T) {
	out := analytics.ComputeRevenueVsExpense(2024,
		[]analytics.MonthlyAmount{{Month: 1, Amount: 300}, {Month: 2, Amount: 0}},
		[]analytics.MonthlyAmount{{Month: 1, Amount: 200}, {Month: 2, Amount: 10}},
	)
	require.Len(t, out, 2)
	assert.Equal(t, 33.33, out[0].Margin)
	assert.Equal(t, 0.0, out[1].Margin, "sin ingresos el margen es 0")
	assert.Equal(t, -10.0, out[1].Profit)
}
