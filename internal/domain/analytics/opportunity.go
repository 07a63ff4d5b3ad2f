package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	topOpportunityCount      = 3
	uncoveredPopulationFloor = 50000
	DefaultRegionName        = "İzmir"
)

// DistrictInput datos demográficos de un distrito y desempeño de sus sucursales activas.
type DistrictInput struct {
	District        string
	Population      int64
	Density         float64
	AreaKm2         float64
	Latitude        float64
	Longitude       float64
	BranchCount     int
	AvgBranchProfit float64
}

// OpportunityResult potencial de expansión de un distrito.
type OpportunityResult struct {
	District            string  `json:"district"`
	Population          int64   `json:"population"`
	Density             float64 `json:"density"`
	AreaKm2             float64 `json:"area_km2"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	BranchCount         int     `json:"branch_count"`
	PopulationPerBranch int64   `json:"population_per_branch"`
	AvgBranchProfit     float64 `json:"avg_branch_profit"`
	OpportunityScore    int     `json:"opportunity_score"`
	OpportunityLevel    Level   `json:"opportunity_level"`
	Recommendation      string  `json:"recommendation"`
}

// OpportunityAnalysis ranking de distritos y resumen.
type OpportunityAnalysis struct {
	Districts        []OpportunityResult `json:"districts"`
	TopOpportunities []OpportunityResult `json:"top_opportunities"`
	Insight          string              `json:"insight"`
	Skipped          []EntityFailure     `json:"skipped"`
}

type opportunityConfig struct {
	region string
}

// OpportunityOption configura ComputeOpportunityAnalysis.
type OpportunityOption func(*opportunityConfig)

// WithRegion nombre de la región usado en el resumen (por defecto "İzmir").
func WithRegion(name string) OpportunityOption {
	return func(c *opportunityConfig) {
		if name != "" {
			c.region = name
		}
	}
}

// ComputeOpportunityAnalysis puntúa los distritos, los ordena de mayor a menor
// oportunidad (estable respecto al orden de entrada) y toma los 3 primeros.
func ComputeOpportunityAnalysis(districts []DistrictInput, opts ...OpportunityOption) OpportunityAnalysis {
	cfg := opportunityConfig{region: DefaultRegionName}
	for _, o := range opts {
		o(&cfg)
	}

	acc := &Partial[OpportunityResult]{}
	for _, d := range districts {
		if !finite(d.Density, d.AvgBranchProfit) {
			acc.Fail(d.District, fmt.Errorf("distrito %s: valores no finitos", d.District))
			continue
		}
		acc.Add(EvaluateDistrict(d))
	}

	ranked := append([]OpportunityResult{}, acc.Items()...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].OpportunityScore > ranked[j].OpportunityScore })

	top := ranked
	if len(top) > topOpportunityCount {
		top = top[:topOpportunityCount]
	}
	top = append([]OpportunityResult{}, top...)

	return OpportunityAnalysis{
		Districts:        ranked,
		TopOpportunities: top,
		Insight:          OpportunityInsight(cfg.region, ranked),
		Skipped:          append([]EntityFailure{}, acc.Failures()...),
	}
}

// EvaluateDistrict puntaje, nivel y recomendación de un distrito.
func EvaluateDistrict(d DistrictInput) OpportunityResult {
	score := OpportunityScore(d.Density, d.BranchCount, d.Population, d.AvgBranchProfit)

	perBranch := d.Population
	if d.BranchCount > 0 {
		perBranch = int64(math.Round(float64(d.Population) / float64(d.BranchCount)))
	}

	return OpportunityResult{
		District:            d.District,
		Population:          d.Population,
		Density:             d.Density,
		AreaKm2:             d.AreaKm2,
		Latitude:            d.Latitude,
		Longitude:           d.Longitude,
		BranchCount:         d.BranchCount,
		PopulationPerBranch: perBranch,
		AvgBranchProfit:     d.AvgBranchProfit,
		OpportunityScore:    score,
		OpportunityLevel:    levelFor(score),
		Recommendation:      OpportunityRecommendation(d.District, score, d.BranchCount, d.Density),
	}
}

// OpportunityScore densidad (máx 30) + brecha de cobertura (máx 40) + desempeño (máx 30).
func OpportunityScore(density float64, branchCount int, population int64, avgProfit float64) int {
	score := math.Min(30, density/400)

	switch {
	case branchCount == 0:
		score += 40
	case branchCount == 1 && population > 100000:
		score += 30
	case branchCount == 1:
		score += 20
	case float64(population)/float64(branchCount) > 150000:
		score += 15
	default:
		score += 5
	}

	switch {
	case avgProfit > 100000:
		score += 30
	case avgProfit > 50000:
		score += 20
	case avgProfit > 0:
		score += 10
	case branchCount == 0:
		score += 15 // sin sucursales: desempeño desconocido, neutral
	}

	return clampScore(score)
}

// OpportunityRecommendation texto según banda de puntaje y cobertura actual.
func OpportunityRecommendation(district string, score, branchCount int, density float64) string {
	switch {
	case score >= highThreshold && branchCount == 0:
		return fmt.Sprintf("%s'da hiç şube bulunmuyor. Yüksek nüfus yoğunluğu (%.0f/km²) göz önünde bulundurularak yeni şube açılması önerilir.", district, density)
	case score >= highThreshold:
		return fmt.Sprintf("%s'da mevcut %d şubenin başarılı performansı, ek şube potansiyelini göstermektedir.", district, branchCount)
	case score >= mediumThreshold:
		return fmt.Sprintf("%s'da pazar araştırması yapılması ve rakip analizi önerilir.", district)
	default:
		return fmt.Sprintf("%s'da mevcut kapsama yeterli görülmektedir. Mevcut şubelerin performans iyileştirmesine odaklanılabilir.", district)
	}
}

// OpportunityInsight resumen sobre distritos ya ordenados por puntaje.
func OpportunityInsight(region string, ranked []OpportunityResult) string {
	high := 0
	var uncovered []string
	for _, d := range ranked {
		if d.OpportunityScore >= highThreshold {
			high++
		}
		if d.BranchCount == 0 && d.Population > uncoveredPopulationFloor {
			uncovered = append(uncovered, d.District)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s genelinde %d ilçe yüksek yatırım potansiyeli taşımaktadır. ", region, high)
	if len(ranked) > 0 {
		fmt.Fprintf(&b, "En yüksek fırsat skoru: %s (%%%d). ", ranked[0].District, ranked[0].OpportunityScore)
	}
	if len(uncovered) > 0 {
		fmt.Fprintf(&b, "%s ilçelerinde şube bulunmamaktadır ve değerlendirilmesi önerilir.", strings.Join(uncovered, ", "))
	}
	return strings.TrimSpace(b.String())
}
