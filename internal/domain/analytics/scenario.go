package analytics

import (
	"fmt"
	"math"
)

const (
	DefaultSimulationMonths = 12
	MaxSimulationMonths     = 120

	// La plantilla base se asume de 3 personas: el salario medio es salario/3.
	baselineStaff = 3
)

// ScenarioInput situación actual de la sucursal en el año de referencia.
type ScenarioInput struct {
	Revenue   float64
	Breakdown ExpenseBreakdown
}

// ScenarioDeltas cambios porcentuales y de plantilla a simular.
type ScenarioDeltas struct {
	RentChangePercent    float64 `json:"rent_change_percent" yaml:"rent_change_percent"`
	SalaryChangePercent  float64 `json:"salary_change_percent" yaml:"salary_change_percent"`
	RevenueChangePercent float64 `json:"revenue_change_percent" yaml:"revenue_change_percent"`
	UtilityChangePercent float64 `json:"utility_change_percent" yaml:"utility_change_percent"`
	StaffChange          int     `json:"staff_change" yaml:"staff_change"`
	MonthsToSimulate     int     `json:"months_to_simulate,omitempty" yaml:"months_to_simulate,omitempty"`
}

// FinancialState foto anual de ingresos y gastos.
type FinancialState struct {
	Revenue   float64          `json:"revenue"`
	Expenses  float64          `json:"expenses"`
	Profit    float64          `json:"profit"`
	Margin    float64          `json:"margin"` // %, 1 decimal
	Breakdown ExpenseBreakdown `json:"breakdown"`
}

// ScenarioComparison diferencias simulado − actual.
type ScenarioComparison struct {
	ProfitChange        float64 `json:"profit_change"`
	ProfitChangePercent float64 `json:"profit_change_percent"` // 1 decimal
	RevenueChange       float64 `json:"revenue_change"`
	ExpenseChange       float64 `json:"expense_change"`
	IsNowProfitable     bool    `json:"is_now_profitable"`
	IsNowLosing         bool    `json:"is_now_losing"`
}

// ProjectionMonth mes de la proyección con beneficio acumulado.
type ProjectionMonth struct {
	Month            int     `json:"month"`
	Revenue          float64 `json:"revenue"`
	Expense          float64 `json:"expense"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// ScenarioResult resultado de la simulación "qué pasaría si".
type ScenarioResult struct {
	Current        FinancialState     `json:"current"`
	Simulated      FinancialState     `json:"simulated"`
	Comparison     ScenarioComparison `json:"comparison"`
	Projection     []ProjectionMonth  `json:"projection"`
	BreakEvenMonth *int               `json:"break_even_month"` // primer mes con acumulado > 0
	Insights       []Insight          `json:"insights"`
}

// ComputeScenario aplica los cambios a alquiler, salarios, servicios e ingresos
// de forma independiente; Other nunca se altera. El ajuste de plantilla suma
// StaffChange × salario/3. Nunca falla: cualquier entrada numérica produce resultado.
func ComputeScenario(in ScenarioInput, d ScenarioDeltas) ScenarioResult {
	cur := in.Breakdown
	currentExpenses := cur.Total()
	currentProfit := in.Revenue - currentExpenses

	rent := applyPercent(cur.Rent, d.RentChangePercent)
	salary := applyPercent(cur.Salary, d.SalaryChangePercent)
	utilities := applyPercent(cur.Utilities, d.UtilityChangePercent)
	revenue := applyPercent(in.Revenue, d.RevenueChangePercent)

	avgSalaryPerPerson := cur.Salary / baselineStaff
	finalSalary := salary + float64(d.StaffChange)*avgSalaryPerPerson

	sim := ExpenseBreakdown{Rent: rent, Salary: finalSalary, Utilities: utilities, Other: cur.Other}
	simExpenses := sim.Total()
	simProfit := revenue - simExpenses

	profitChange := simProfit - currentProfit
	var changePct float64
	if currentProfit != 0 {
		changePct = profitChange / math.Abs(currentProfit) * 100
	}

	cmp := ScenarioComparison{
		ProfitChange:        round(profitChange, 0),
		ProfitChangePercent: round1(changePct),
		RevenueChange:       round(revenue-in.Revenue, 0),
		ExpenseChange:       round(simExpenses-currentExpenses, 0),
		IsNowProfitable:     simProfit > 0 && currentProfit <= 0,
		IsNowLosing:         simProfit <= 0 && currentProfit > 0,
	}

	projection, breakEven := projectMonths(revenue, simExpenses, d.MonthsToSimulate)

	return ScenarioResult{
		Current:        financialState(in.Revenue, currentExpenses, cur),
		Simulated:      financialState(revenue, simExpenses, sim),
		Comparison:     cmp,
		Projection:     projection,
		BreakEvenMonth: breakEven,
		Insights:       ScenarioInsights(profitChange, cmp, cur.Rent, d),
	}
}

// SimulationMonths 0 o negativo → 12; tope de 120 meses.
func SimulationMonths(months int) int {
	switch {
	case months <= 0:
		return DefaultSimulationMonths
	case months > MaxSimulationMonths:
		return MaxSimulationMonths
	}
	return months
}

func applyPercent(v, pct float64) float64 {
	return v * (1 + pct/100)
}

func financialState(revenue, expenses float64, b ExpenseBreakdown) FinancialState {
	profit := revenue - expenses
	return FinancialState{
		Revenue:  round(revenue, 0),
		Expenses: round(expenses, 0),
		Profit:   round(profit, 0),
		Margin:   round1(marginPct(profit, revenue)),
		Breakdown: ExpenseBreakdown{
			Rent:      round(b.Rent, 0),
			Salary:    round(b.Salary, 0),
			Utilities: round(b.Utilities, 0),
			Other:     round(b.Other, 0),
		},
	}
}

// projectMonths reparte el año simulado en doceavos y acumula el beneficio mes a mes.
func projectMonths(annualRevenue, annualExpenses float64, months int) ([]ProjectionMonth, *int) {
	months = SimulationMonths(months)
	monthlyRevenue := annualRevenue / 12
	monthlyExpense := annualExpenses / 12
	monthlyProfit := monthlyRevenue - monthlyExpense

	var breakEven *int
	cumulative := 0.0
	out := make([]ProjectionMonth, 0, months)
	for i := 1; i <= months; i++ {
		cumulative += monthlyProfit
		if breakEven == nil && cumulative > 0 {
			breakEven = ptr(i)
		}
		out = append(out, ProjectionMonth{
			Month:            i,
			Revenue:          round(monthlyRevenue, 0),
			Expense:          round(monthlyExpense, 0),
			Profit:           round(monthlyProfit, 0),
			CumulativeProfit: round(cumulative, 0),
		})
	}
	return out, breakEven
}

// ScenarioInsights narrativa: dirección del beneficio, cruces de rentabilidad,
// ahorro de alquiler y reducción de plantilla.
func ScenarioInsights(profitChange float64, cmp ScenarioComparison, currentRent float64, d ScenarioDeltas) []Insight {
	var out []Insight
	switch {
	case profitChange > 0:
		out = append(out, Insight{InsightPositive, fmt.Sprintf("Bu senaryo ile yıllık kâr %s artacak.", FormatTRY(profitChange))})
	case profitChange < 0:
		out = append(out, Insight{InsightNegative, fmt.Sprintf("Bu senaryo ile yıllık kâr %s azalacak.", FormatTRY(math.Abs(profitChange)))})
	}
	if cmp.IsNowProfitable {
		out = append(out, Insight{InsightSuccess, "Şube bu senaryo ile zararlı durumdan kârlı duruma geçecek!"})
	}
	if cmp.IsNowLosing {
		out = append(out, Insight{InsightWarning, "Dikkat: Bu senaryo ile şube zarar etmeye başlayacak!"})
	}
	if d.RentChangePercent < 0 {
		saving := currentRent * math.Abs(d.RentChangePercent) / 100
		out = append(out, Insight{InsightInfo, fmt.Sprintf("Kira indirimi ile yıllık %s tasarruf sağlanacak.", FormatTRY(saving))})
	}
	if d.StaffChange < 0 {
		out = append(out, Insight{InsightInfo, fmt.Sprintf("%d personel azaltımı ile maaş giderlerinde düşüş sağlanacak.", -d.StaffChange)})
	}
	if out == nil {
		out = []Insight{}
	}
	return out
}
