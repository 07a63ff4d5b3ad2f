package analytics

import (
	"fmt"
	"math"
	"strings"
)

// BaselineScorer modelo aditivo con base 50.
type BaselineScorer struct{}

func (BaselineScorer) Name() string { return "baseline" }

func (BaselineScorer) Score(m BranchMetrics) int {
	return BaselineScore(m.Profit, m.Margin, m.Factors.FixedCostRatio, m.Factors.AvgBasket)
}

// Explain en pérdida informa los totales; en otro caso el margen.
func (BaselineScorer) Explain(m BranchMetrics, _ int) string {
	if m.Profit < 0 {
		return fmt.Sprintf("%s zarar ediyor. Toplam gelir: %.0f TL, Gider: %.0f TL", m.Name, m.Revenue, m.Expenses)
	}
	return fmt.Sprintf("%s kârlı durumda. Marj: %.1f%%", m.Name, m.Margin)
}

// BaselineScore parte de 50:
//
//	+30 con pérdida
//	+15 si costos fijos > 80%, +10 si > 70%
//	+10 si ticket medio < 20
//	con beneficio: −30 si margen > 15%, −20 si > 10%, −10 si > 5%
//
// El resultado se redondea y se limita a [0,100].
func BaselineScore(profit, margin, fixedCostRatio, avgBasket float64) int {
	score := 50.0
	if profit < 0 {
		score += 30
	}
	switch {
	case fixedCostRatio > 80:
		score += 15
	case fixedCostRatio > 70:
		score += 10
	}
	if avgBasket < lowBasketThreshold {
		score += 10
	}
	if profit > 0 {
		switch {
		case margin > 15:
			score -= 30
		case margin > 10:
			score -= 20
		case margin > 5:
			score -= 10
		}
	}
	return clampScore(score)
}

// WeightedScorer modelo ponderado alternativo: racha de pérdidas (máx 30),
// caída de ingresos (máx 25), exceso de costos fijos sobre 60% (máx 25) y
// déficit de ticket bajo 30 (máx 20).
type WeightedScorer struct{}

func (WeightedScorer) Name() string { return "weighted" }

func (WeightedScorer) Score(m BranchMetrics) int {
	return WeightedScore(m.Factors)
}

// Explain narrativa con nivel y factores principales.
func (WeightedScorer) Explain(m BranchMetrics, score int) string {
	var b strings.Builder
	b.WriteString(m.Name + " şubesi ")
	switch levelFor(score) {
	case LevelHigh:
		b.WriteString("yüksek risk grubunda yer almaktadır. ")
	case LevelMedium:
		b.WriteString("orta düzeyde risk taşımaktadır. ")
	default:
		b.WriteString("düşük risk grubundadır. ")
	}

	f := m.Factors
	var reasons []string
	if f.LossStreak >= 3 {
		reasons = append(reasons, fmt.Sprintf("son %d aydır zarar etmesi", f.LossStreak))
	}
	if f.RevenueTrend < -10 {
		reasons = append(reasons, fmt.Sprintf("gelirlerin %%%.0f oranında düşmesi", math.Abs(f.RevenueTrend)))
	}
	if f.FixedCostRatio > 70 {
		reasons = append(reasons, fmt.Sprintf("sabit maliyet oranının %%%.0f ile yüksek olması", f.FixedCostRatio))
	}
	if len(reasons) > 0 {
		fmt.Fprintf(&b, "Başlıca faktörler: %s.", strings.Join(reasons, ", "))
	}
	return strings.TrimSpace(b.String())
}

const (
	weightLossStreak = 30
	weightTrend      = 25
	weightFixedCost  = 25
	weightBasket     = 20
)

// WeightedScore suma ponderada de factores, redondeada y limitada a [0,100].
func WeightedScore(f RiskFactors) int {
	score := math.Min(weightLossStreak, float64(f.LossStreak)*5)
	if f.RevenueTrend < 0 {
		score += math.Min(weightTrend, math.Abs(f.RevenueTrend)/2)
	}
	if f.FixedCostRatio > 60 {
		score += math.Min(weightFixedCost, (f.FixedCostRatio-60)/2)
	}
	if f.AvgBasket < 30 {
		score += math.Min(weightBasket, (30-f.AvgBasket)*2)
	}
	return clampScore(score)
}
