package analytics

import "sort"

// Tipos de gasto reconocidos por los agregados.
const (
	ExpenseRent        = "Rent"
	ExpenseSalary      = "Salary"
	ExpenseUtilities   = "Utilities"
	ExpenseMarketing   = "Marketing"
	ExpenseInventory   = "Inventory"
	ExpenseMaintenance = "Maintenance"
	ExpenseOther       = "Other"
)

// ExpenseBreakdown gastos de una sucursal agrupados para riesgo y simulación.
// Other suma cualquier tipo distinto de alquiler, salarios y servicios.
type ExpenseBreakdown struct {
	Rent      float64 `json:"rent"`
	Salary    float64 `json:"salary"`
	Utilities float64 `json:"utilities"`
	Other     float64 `json:"other"`
}

// BreakdownFromTypes agrupa un mapa tipo de gasto → importe.
func BreakdownFromTypes(byType map[string]float64) ExpenseBreakdown {
	types := make([]string, 0, len(byType))
	for typ := range byType {
		types = append(types, typ)
	}
	// orden estable: la suma en punto flotante no depende del orden del mapa
	sort.Strings(types)

	var b ExpenseBreakdown
	for _, typ := range types {
		amount := byType[typ]
		switch typ {
		case ExpenseRent:
			b.Rent += amount
		case ExpenseSalary:
			b.Salary += amount
		case ExpenseUtilities:
			b.Utilities += amount
		default:
			b.Other += amount
		}
	}
	return b
}

// Total suma en orden fijo para que un escenario sin cambios reproduzca el mismo valor.
func (b ExpenseBreakdown) Total() float64 {
	return b.Rent + b.Salary + b.Utilities + b.Other
}

// FixedCosts alquiler + salarios (costos no elásticos).
func (b ExpenseBreakdown) FixedCosts() float64 {
	return b.Rent + b.Salary
}

// FixedCostRatio porcentaje de costos fijos sobre un total de gastos; 0 sin gastos.
func FixedCostRatio(fixedCosts, totalExpenses float64) float64 {
	if totalExpenses == 0 {
		return 0
	}
	return fixedCosts / totalExpenses * 100
}
