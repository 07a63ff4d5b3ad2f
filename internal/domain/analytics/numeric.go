package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Level clasificación de tres bandas compartida por riesgo y oportunidad.
type Level string

const (
	LevelLow    Level = "Düşük"
	LevelMedium Level = "Orta"
	LevelHigh   Level = "Yüksek"
)

const (
	highThreshold   = 70
	mediumThreshold = 40
)

// levelFor ≥70 Yüksek, ≥40 Orta, resto Düşük.
func levelFor(score int) Level {
	switch {
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// round redondea sobre la representación decimal del float (1.005 → 1.01),
// mitad alejándose de cero.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func round1(v float64) float64 { return round(v, 1) }
func round2(v float64) float64 { return round(v, 2) }

// clampScore redondea al entero más cercano y limita a [0,100].
func clampScore(v float64) int {
	r := round(v, 0)
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 100:
		return 100
	}
	return int(r)
}

// marginPct profit/revenue×100; 0 si no hay ingresos.
func marginPct(profit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return profit / revenue * 100
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func ptr[T any](v T) *T { return &v }
