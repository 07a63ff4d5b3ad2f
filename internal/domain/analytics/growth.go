package analytics

const projectedExpenseGrowth = 1.03

// Perspectivas de crecimiento.
const (
	OutlookPositive = "positive"
	OutlookNegative = "negative"
)

// GrowthInput ingresos/gastos del año en curso e ingresos del anterior de una sucursal.
type GrowthInput struct {
	ID              int64
	Name            string
	District        string
	CurrentRevenue  float64
	CurrentExpenses float64
	LastYearRevenue float64
}

// GrowthOutlook proyección del próximo año manteniendo la tasa de crecimiento actual.
type GrowthOutlook struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	District         string  `json:"district"`
	CurrentRevenue   float64 `json:"current_revenue"`
	CurrentProfit    float64 `json:"current_profit"`
	GrowthRate       float64 `json:"growth_rate"` // %, 1 decimal
	ProjectedRevenue float64 `json:"projected_revenue"`
	ProjectedProfit  float64 `json:"projected_profit"`
	Outlook          string  `json:"outlook"`
}

// ComputeGrowthOutlook aplica la tasa interanual al ingreso actual y un 3% de
// aumento a los gastos. Conserva el orden de entrada.
func ComputeGrowthOutlook(inputs []GrowthInput) []GrowthOutlook {
	out := make([]GrowthOutlook, 0, len(inputs))
	for _, in := range inputs {
		var growth float64
		if in.LastYearRevenue > 0 {
			growth = (in.CurrentRevenue - in.LastYearRevenue) / in.LastYearRevenue * 100
		}
		projectedRevenue := in.CurrentRevenue * (1 + growth/100)
		projectedProfit := projectedRevenue - in.CurrentExpenses*projectedExpenseGrowth

		outlook := OutlookNegative
		if projectedProfit > 0 {
			outlook = OutlookPositive
		}

		out = append(out, GrowthOutlook{
			ID:               in.ID,
			Name:             in.Name,
			District:         in.District,
			CurrentRevenue:   round(in.CurrentRevenue, 0),
			CurrentProfit:    round(in.CurrentRevenue-in.CurrentExpenses, 0),
			GrowthRate:       round1(growth),
			ProjectedRevenue: round(projectedRevenue, 0),
			ProjectedProfit:  round(projectedProfit, 0),
			Outlook:          outlook,
		})
	}
	return out
}
