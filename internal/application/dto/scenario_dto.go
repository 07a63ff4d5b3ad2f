package dto

import "github.com/jhoicas/branch-analytics/internal/domain/analytics"

// ScenarioRequest cuerpo de POST /api/scenarios/simulate.
// Si Preset no está vacío, los cambios explícitos no nulos se superponen al preset.
type ScenarioRequest struct {
	BranchID int64  `json:"branch_id"`
	Preset   string `json:"preset,omitempty"`
	Year     int    `json:"year,omitempty"` // año de referencia; 0 = año en curso
	analytics.ScenarioDeltas
}

// ScenarioResponse resultado de la simulación con los parámetros efectivos.
type ScenarioResponse struct {
	Branch BranchDTO                `json:"branch"`
	Year   int                      `json:"year"`
	Preset string                   `json:"preset,omitempty"`
	Params analytics.ScenarioDeltas `json:"params"`
	analytics.ScenarioResult
}

// ScenarioPresetsResponse catálogo de presets.
type ScenarioPresetsResponse struct {
	Presets []analytics.ScenarioPreset `json:"presets"`
}
