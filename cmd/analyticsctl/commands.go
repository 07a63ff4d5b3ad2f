package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	appanalytics "github.com/jhoicas/branch-analytics/internal/application/analytics"
	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/bootstrap"
	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
	"github.com/jhoicas/branch-analytics/pkg/config"
	"github.com/jhoicas/branch-analytics/pkg/logger"
)

type servicesKey struct{}

func yearFlag() *cli.IntFlag {
	return &cli.IntFlag{Name: "year", Usage: "Año analizado (0 = año en curso)"}
}

func branchFlag(required bool) *cli.Int64Flag {
	return &cli.Int64Flag{Name: "branch-id", Usage: "Id de la sucursal", Required: required}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "analyticsctl",
		Usage: "Analítica de sucursales desde la terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", EnvVars: []string{"LOG_LEVEL"}},
			&cli.BoolFlag{Name: "quiet", Usage: "No registrar nada en stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:   "kpis",
				Usage:  "Indicadores principales del año",
				Flags:  []cli.Flag{yearFlag(), branchFlag(false), &cli.StringFlag{Name: "district"}, &cli.StringFlag{Name: "category"}},
				Before: connect,
				After:  disconnect,
				Action: func(c *cli.Context) error {
					q := dto.AnalyticsQuery{
						Year:     c.Int("year"),
						District: c.String("district"),
						BranchID: c.Int64("branch-id"),
						Category: c.String("category"),
					}
					return printResult(c, func(s *bootstrap.Services) (any, error) {
						return s.Dashboard.GetKPIs(c.Context, q.Year, q.Filter())
					})
				},
			},
			{
				Name:  "risk",
				Usage: "Riesgo de cierre de las sucursales activas",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "strategy", Usage: "baseline | weighted"},
					&cli.IntFlag{Name: "year", Usage: "Año (0 = todo el histórico)"},
				},
				Before: connect,
				After:  disconnect,
				Action: func(c *cli.Context) error {
					return printResult(c, func(s *bootstrap.Services) (any, error) {
						return s.Risk.Analyze(c.Context, c.String("strategy"), c.Int("year"))
					})
				},
			},
			{
				Name:   "opportunity",
				Usage:  "Potencial de expansión por distrito",
				Flags:  []cli.Flag{yearFlag()},
				Before: connect,
				After:  disconnect,
				Action: func(c *cli.Context) error {
					return printResult(c, func(s *bootstrap.Services) (any, error) {
						return s.Opportunity.Analyze(c.Context, c.Int("year"))
					})
				},
			},
			{
				Name:  "forecast",
				Usage: "Pronóstico de ventas de una sucursal",
				Flags: []cli.Flag{
					branchFlag(true),
					&cli.IntFlag{Name: "months", Usage: "Meses a proyectar (0 = configurado)"},
				},
				Before: connect,
				After:  disconnect,
				Action: func(c *cli.Context) error {
					return printResult(c, func(s *bootstrap.Services) (any, error) {
						return s.Forecast.ForecastBranch(c.Context, c.Int64("branch-id"), c.Int("months"))
					})
				},
			},
			{
				Name:   "growth",
				Usage:  "Perspectiva de crecimiento de todas las sucursales",
				Flags:  []cli.Flag{yearFlag()},
				Before: connect,
				After:  disconnect,
				Action: func(c *cli.Context) error {
					return printResult(c, func(s *bootstrap.Services) (any, error) {
						return s.Forecast.CompareGrowth(c.Context, c.Int("year"))
					})
				},
			},
			{
				Name:  "compare",
				Usage: "Compara de 2 a 5 sucursales",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "branch-ids", Usage: "Ids separados por coma", Required: true},
					yearFlag(),
				},
				Before: connect,
				After:  disconnect,
				Action: func(c *cli.Context) error {
					ids, err := dto.CompareQuery{BranchIDs: c.String("branch-ids")}.IDs()
					if err != nil {
						return err
					}
					return printResult(c, func(s *bootstrap.Services) (any, error) {
						return s.Comparison.Compare(c.Context, ids, c.Int("year"))
					})
				},
			},
			{
				Name:  "scenario",
				Usage: "Simulación qué pasaría si sobre una sucursal",
				Flags: []cli.Flag{
					branchFlag(true),
					yearFlag(),
					&cli.StringFlag{Name: "preset", Usage: "Id de un preset (ver el comando presets)"},
					&cli.Float64Flag{Name: "rent", Usage: "Cambio de alquiler en %"},
					&cli.Float64Flag{Name: "salary", Usage: "Cambio de salarios en %"},
					&cli.Float64Flag{Name: "revenue", Usage: "Cambio de ingresos en %"},
					&cli.Float64Flag{Name: "utility", Usage: "Cambio de servicios en %"},
					&cli.IntFlag{Name: "staff", Usage: "Personas que se suman (+) o quitan (−)"},
					&cli.IntFlag{Name: "months", Usage: "Meses a proyectar (default 12)"},
				},
				Before: connect,
				After:  disconnect,
				Action: func(c *cli.Context) error {
					req := scenarioRequest(c)
					return printResult(c, func(s *bootstrap.Services) (any, error) {
						return s.Scenario.Simulate(c.Context, req)
					})
				},
			},
			{
				Name:  "presets",
				Usage: "Lista los escenarios predefinidos",
				Action: func(c *cli.Context) error {
					res, err := appanalytics.NewScenarioUseCase(nil, nil, nil, nil).Presets()
					if err != nil {
						return err
					}
					return writeJSON(c, res)
				},
			},
		},
	}
}

func scenarioRequest(c *cli.Context) dto.ScenarioRequest {
	return dto.ScenarioRequest{
		BranchID: c.Int64("branch-id"),
		Preset:   c.String("preset"),
		Year:     c.Int("year"),
		ScenarioDeltas: analytics.ScenarioDeltas{
			RentChangePercent:    c.Float64("rent"),
			SalaryChangePercent:  c.Float64("salary"),
			RevenueChangePercent: c.Float64("revenue"),
			UtilityChangePercent: c.Float64("utility"),
			StaffChange:          c.Int("staff"),
			MonthsToSimulate:     c.Int("months"),
		},
	}
}

func newLogger(c *cli.Context, cfg *config.Config) *logger.Logger {
	if c.Bool("quiet") {
		return logger.Nop()
	}
	return logger.New(logger.Config{Env: cfg.App.Env, Level: c.String("log-level"), Output: c.App.ErrWriter})
}

// connect carga la configuración y guarda los servicios en el contexto del comando.
func connect(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuración: %w", err)
	}
	services, err := bootstrap.New(c.Context, cfg, newLogger(c, cfg))
	if err != nil {
		return err
	}
	c.Context = context.WithValue(c.Context, servicesKey{}, services)
	return nil
}

func disconnect(c *cli.Context) error {
	if s, ok := c.Context.Value(servicesKey{}).(*bootstrap.Services); ok && s != nil {
		s.Close()
	}
	return nil
}

func printResult(c *cli.Context, run func(*bootstrap.Services) (any, error)) error {
	s, ok := c.Context.Value(servicesKey{}).(*bootstrap.Services)
	if !ok || s == nil {
		return errors.New("servicios no inicializados")
	}
	res, err := run(s)
	if err != nil {
		return err
	}
	return writeJSON(c, res)
}

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
