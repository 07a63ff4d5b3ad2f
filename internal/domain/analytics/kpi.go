package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// BranchProfit beneficio anual de una sucursal para el ranking de KPIs.
type BranchProfit struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Profit float64 `json:"profit"`
}

// KPIInput agregados ya filtrados por año/distrito/sucursal/categoría.
type KPIInput struct {
	TotalRevenue    float64
	TotalExpenses   float64
	TotalQuantity   float64
	PrevYearRevenue float64
	Branches        []BranchProfit
}

// KPIResult indicadores principales del tablero.
type KPIResult struct {
	TotalRevenue       float64       `json:"total_revenue"`
	TotalExpenses      float64       `json:"total_expenses"`
	NetProfit          float64       `json:"net_profit"`
	Margin             float64       `json:"margin"` // % con 2 decimales
	TotalQuantity      float64       `json:"total_quantity"`
	BestBranch         *BranchProfit `json:"best_branch"`
	WorstBranch        *BranchProfit `json:"worst_branch"`
	ProfitableBranches int           `json:"profitable_branches"`
	LossMakingBranches int           `json:"loss_making_branches"`
	YoYChange          *float64      `json:"yoy_change"` // nil sin ingresos del año anterior
	Insight            string        `json:"insight"`
}

// ComputeKPIs calcula totales, margen, variación interanual y mejor/peor sucursal.
func ComputeKPIs(in KPIInput) KPIResult {
	netProfit := in.TotalRevenue - in.TotalExpenses

	res := KPIResult{
		TotalRevenue:  in.TotalRevenue,
		TotalExpenses: in.TotalExpenses,
		NetProfit:     netProfit,
		Margin:        round2(marginPct(netProfit, in.TotalRevenue)),
		TotalQuantity: in.TotalQuantity,
	}

	if in.PrevYearRevenue > 0 {
		res.YoYChange = ptr(round2((in.TotalRevenue - in.PrevYearRevenue) / in.PrevYearRevenue * 100))
	}

	ranked := make([]BranchProfit, len(in.Branches))
	copy(ranked, in.Branches)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Profit > ranked[j].Profit })

	for _, b := range ranked {
		if b.Profit > 0 {
			res.ProfitableBranches++
		} else {
			res.LossMakingBranches++
		}
	}
	if len(ranked) > 0 {
		res.BestBranch = ptr(ranked[0])
		res.WorstBranch = ptr(ranked[len(ranked)-1])
	}

	res.Insight = KPIInsight(netProfit, res.ProfitableBranches, res.LossMakingBranches, res.YoYChange)
	return res
}

// KPIInsight texto resumen: rentabilidad global, dirección interanual y sucursales en pérdida.
func KPIInsight(netProfit float64, profitable, lossMaking int, yoy *float64) string {
	var b strings.Builder
	if netProfit > 0 {
		fmt.Fprintf(&b, "Toplam %d şube kârlı çalışmakta. ", profitable)
	} else {
		b.WriteString("Dikkat: Genel zarar durumu söz konusu. ")
	}
	if yoy != nil {
		switch {
		case *yoy > 0:
			fmt.Fprintf(&b, "Geçen yıla göre %%%.2f büyüme sağlandı. ", *yoy)
		case *yoy < 0:
			fmt.Fprintf(&b, "Geçen yıla göre %%%.2f düşüş yaşandı. ", math.Abs(*yoy))
		}
	}
	if lossMaking > 0 {
		fmt.Fprintf(&b, "%d şube zarar etmekte ve değerlendirme gerektirebilir.", lossMaking)
	}
	return strings.TrimSpace(b.String())
}
