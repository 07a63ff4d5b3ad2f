package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	Dashboard   DashboardService
	Risk        RiskService
	Opportunity OpportunityService
	Comparison  ComparisonService
	Forecast    ForecastService
	Scenario    ScenarioService
	Branches    BranchService
}

// Router registra las rutas de la API. Todas son de solo lectura salvo la
// simulación, que tampoco persiste nada.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api")

	// Sucursales (referencia)
	branches := api.Group("/branches")
	branchHandler := NewBranchHandler(deps.Branches)
	branches.Get("/", branchHandler.List)
	branches.Get("/districts", branchHandler.Districts)
	branches.Get("/:id", branchHandler.GetByID)

	// Dashboard y analítica
	analyticsGroup := api.Group("/analytics")
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	analyticsGroup.Get("/kpis", dashboardHandler.GetKPIs)
	analyticsGroup.Get("/monthly-trend", dashboardHandler.GetMonthlyTrend)
	analyticsGroup.Get("/revenue-expense", dashboardHandler.GetRevenueVsExpense)
	analyticsGroup.Get("/margins", dashboardHandler.GetMargins)
	analyticsGroup.Get("/categories", dashboardHandler.GetCategories)

	analyticsHandler := NewAnalyticsHandler(deps.Risk, deps.Opportunity, deps.Comparison)
	analyticsGroup.Get("/risk", analyticsHandler.GetRisk)
	analyticsGroup.Get("/opportunity", analyticsHandler.GetOpportunity)
	analyticsGroup.Get("/compare", analyticsHandler.Compare)

	// Pronóstico
	forecast := api.Group("/forecast")
	forecastHandler := NewForecastHandler(deps.Forecast)
	forecast.Get("/branch/:id", forecastHandler.GetBranchForecast)
	forecast.Get("/compare", forecastHandler.CompareGrowth)

	// Escenarios
	scenarios := api.Group("/scenarios")
	scenarioHandler := NewScenarioHandler(deps.Scenario)
	scenarios.Get("/presets", scenarioHandler.GetPresets)
	scenarios.Post("/simulate", scenarioHandler.Simulate)
}
