package analytics

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed presets.yaml
var presetsYAML []byte

// ScenarioPreset escenario predefinido ofrecido al usuario.
type ScenarioPreset struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Params      ScenarioDeltas `json:"params" yaml:"params"`
}

// Presets decodifica el catálogo embebido en cada llamada.
func Presets() ([]ScenarioPreset, error) {
	var presets []ScenarioPreset
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		return nil, fmt.Errorf("presets de escenario: %w", err)
	}
	return presets, nil
}

// PresetByID busca un preset; ok=false si no existe.
func PresetByID(id string) (preset ScenarioPreset, ok bool, err error) {
	presets, err := Presets()
	if err != nil {
		return ScenarioPreset{}, false, err
	}
	for _, p := range presets {
		if p.ID == id {
			return p, true, nil
		}
	}
	return ScenarioPreset{}, false, nil
}

// Merge superpone sobre el preset los cambios no nulos de override.
func (d ScenarioDeltas) Merge(override ScenarioDeltas) ScenarioDeltas {
	out := d
	if override.RentChangePercent != 0 {
		out.RentChangePercent = override.RentChangePercent
	}
	if override.SalaryChangePercent != 0 {
		out.SalaryChangePercent = override.SalaryChangePercent
	}
	if override.RevenueChangePercent != 0 {
		out.RevenueChangePercent = override.RevenueChangePercent
	}
	if override.UtilityChangePercent != 0 {
		out.UtilityChangePercent = override.UtilityChangePercent
	}
	if override.StaffChange != 0 {
		out.StaffChange = override.StaffChange
	}
	if override.MonthsToSimulate != 0 {
		out.MonthsToSimulate = override.MonthsToSimulate
	}
	return out
}
