package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/branch-analytics/internal/domain"
)

const (
	closureThreshold   = 70 // riesgo estrictamente mayor → candidata a cierre
	lowBasketThreshold = 20
	assumedLossStreak  = 3 // racha asumida cuando no hay serie mensual y la sucursal pierde
	trendWindow        = 3
)

// BranchRiskInput agregados anuales de una sucursal activa.
// Monthly es opcional; si viene, la racha de pérdidas y la tendencia se miden sobre ella.
type BranchRiskInput struct {
	ID        int64
	Name      string
	District  string
	Revenue   float64
	Expenses  float64
	Quantity  float64
	Breakdown ExpenseBreakdown
	Monthly   []MonthlyFinancial
}

// RiskFactors factores explicativos del puntaje.
type RiskFactors struct {
	LossStreak     int     `json:"loss_streak"`
	LossMonths     int     `json:"loss_months"`
	RevenueTrend   float64 `json:"revenue_trend"`    // % últimos 3 meses vs 3 anteriores
	FixedCostRatio float64 `json:"fixed_cost_ratio"` // %
	AvgBasket      float64 `json:"avg_basket"`       // ingreso por unidad
}

// BranchMetrics hechos numéricos derivados de una sucursal, entrada de los scorers.
type BranchMetrics struct {
	Name     string
	Revenue  float64
	Expenses float64
	Profit   float64
	Margin   float64
	Factors  RiskFactors
}

// RiskResult puntaje de riesgo de una sucursal.
type RiskResult struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	District    string      `json:"district"`
	RiskScore   int         `json:"risk_score"`
	RiskLevel   Level       `json:"risk_level"`
	Factors     RiskFactors `json:"factors"`
	Explanation string      `json:"explanation"`
}

// RiskAnalysis resultado del lote: ranking, candidatas a cierre y sucursales omitidas.
type RiskAnalysis struct {
	Branches          []RiskResult    `json:"branches"`
	ClosureCandidates []RiskResult    `json:"closure_candidates"`
	AverageScore      float64         `json:"average_score"`
	Strategy          string          `json:"strategy"`
	Insight           string          `json:"insight"`
	Skipped           []EntityFailure `json:"skipped"`
}

// RiskScorer estrategia de puntuación. BaselineScorer es la de producción.
type RiskScorer interface {
	Name() string
	Score(m BranchMetrics) int
	Explain(m BranchMetrics, score int) string
}

type riskConfig struct {
	scorer RiskScorer
}

// RiskOption configura ComputeRiskAnalysis.
type RiskOption func(*riskConfig)

// WithScorer reemplaza la estrategia de puntuación.
func WithScorer(s RiskScorer) RiskOption {
	return func(c *riskConfig) {
		if s != nil {
			c.scorer = s
		}
	}
}

// ScorerByName "weighted" devuelve WeightedScorer; cualquier otro valor, BaselineScorer.
func ScorerByName(name string) RiskScorer {
	if strings.EqualFold(name, WeightedScorer{}.Name()) {
		return WeightedScorer{}
	}
	return BaselineScorer{}
}

// ComputeRiskAnalysis puntúa cada sucursal, ordena de mayor a menor riesgo y
// arma el resumen. Una sucursal con datos no finitos se omite sin abortar el lote.
func ComputeRiskAnalysis(inputs []BranchRiskInput, opts ...RiskOption) RiskAnalysis {
	cfg := riskConfig{scorer: BaselineScorer{}}
	for _, o := range opts {
		o(&cfg)
	}

	acc := &Partial[RiskResult]{}
	for _, in := range inputs {
		r, err := EvaluateBranchRisk(in, cfg.scorer)
		if err != nil {
			acc.Fail(strconv.FormatInt(in.ID, 10), err)
			continue
		}
		acc.Add(r)
	}

	branches := append([]RiskResult{}, acc.Items()...)
	sort.SliceStable(branches, func(i, j int) bool { return branches[i].RiskScore > branches[j].RiskScore })

	candidates := []RiskResult{}
	total := 0
	for _, b := range branches {
		total += b.RiskScore
		if b.RiskScore > closureThreshold {
			candidates = append(candidates, b)
		}
	}

	var avg float64
	if len(branches) > 0 {
		avg = float64(total) / float64(len(branches))
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}

	return RiskAnalysis{
		Branches:          branches,
		ClosureCandidates: candidates,
		AverageScore:      round1(avg),
		Strategy:          cfg.scorer.Name(),
		Insight:           RiskInsight(names, avg, len(branches)),
		Skipped:           append([]EntityFailure{}, acc.Failures()...),
	}
}

// EvaluateBranchRisk puntúa una sucursal con la estrategia dada.
func EvaluateBranchRisk(in BranchRiskInput, scorer RiskScorer) (RiskResult, error) {
	if !finite(in.Revenue, in.Expenses, in.Quantity,
		in.Breakdown.Rent, in.Breakdown.Salary, in.Breakdown.Utilities, in.Breakdown.Other) {
		return RiskResult{}, fmt.Errorf("sucursal %d: %w", in.ID, domain.ErrNonFiniteValue)
	}
	if scorer == nil {
		scorer = BaselineScorer{}
	}

	m := branchMetrics(in)
	score := scorer.Score(m)

	factors := m.Factors
	factors.FixedCostRatio = round2(factors.FixedCostRatio)
	factors.AvgBasket = round2(factors.AvgBasket)
	factors.RevenueTrend = round2(factors.RevenueTrend)

	return RiskResult{
		ID:          in.ID,
		Name:        in.Name,
		District:    in.District,
		RiskScore:   score,
		RiskLevel:   levelFor(score),
		Factors:     factors,
		Explanation: scorer.Explain(m, score),
	}, nil
}

func branchMetrics(in BranchRiskInput) BranchMetrics {
	profit := in.Revenue - in.Expenses

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	f := RiskFactors{
		FixedCostRatio: FixedCostRatio(in.Breakdown.FixedCosts(), in.Expenses),
		AvgBasket:      in.Revenue / qty,
	}
	if len(in.Monthly) > 0 {
		f.LossStreak, f.LossMonths, f.RevenueTrend = ComputeRiskFactors(in.Monthly)
	} else if profit < 0 {
		f.LossStreak = assumedLossStreak
	}

	return BranchMetrics{
		Name:     in.Name,
		Revenue:  in.Revenue,
		Expenses: in.Expenses,
		Profit:   profit,
		Margin:   marginPct(profit, in.Revenue),
		Factors:  f,
	}
}

// ComputeRiskFactors mide sobre una serie mensual ascendente la racha máxima de
// meses en pérdida, el total de meses en pérdida y la tendencia de ingresos
// (% de los últimos 3 meses contra los 3 anteriores; 0 con menos de 6 meses).
func ComputeRiskFactors(monthly []MonthlyFinancial) (lossStreak, lossMonths int, revenueTrend float64) {
	streak := 0
	for _, m := range monthly {
		if m.Profit() < 0 {
			streak++
			lossMonths++
			if streak > lossStreak {
				lossStreak = streak
			}
		} else {
			streak = 0
		}
	}

	n := len(monthly)
	if n >= 2*trendWindow {
		var recent, prior float64
		for i := n - trendWindow; i < n; i++ {
			recent += monthly[i].Revenue
		}
		for i := n - 2*trendWindow; i < n-trendWindow; i++ {
			prior += monthly[i].Revenue
		}
		if prior > 0 {
			revenueTrend = (recent - prior) / prior * 100
		}
	}
	return lossStreak, lossMonths, revenueTrend
}

// RiskInsight resumen del lote. names son las candidatas a cierre en orden de riesgo.
func RiskInsight(names []string, avgScore float64, branchCount int) string {
	if branchCount == 0 {
		return "Aktif şube bulunamadı."
	}
	var b strings.Builder
	switch len(names) {
	case 0:
		b.WriteString("Tüm şubeler kabul edilebilir risk seviyelerinde faaliyet göstermektedir. ")
	case 1:
		fmt.Fprintf(&b, "%s şubesi kapatma riski taşımakta ve acil değerlendirme gerektirmektedir. ", names[0])
	default:
		fmt.Fprintf(&b, "%d şube yüksek risk grubundadır: %s. ", len(names), strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "Ortalama risk skoru: %.0f/100.", round(avgScore, 0))
	return b.String()
}
