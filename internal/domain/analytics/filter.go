package analytics

// Filter restringe los agregados de KPI y tendencia. El valor cero de cada campo
// significa "sin filtro".
type Filter struct {
	District string `json:"district,omitempty" query:"district"`
	BranchID int64  `json:"branch_id,omitempty" query:"branch_id"`
	Category string `json:"category,omitempty" query:"category"`
}

func (f Filter) HasDistrict() bool { return f.District != "" }
func (f Filter) HasBranch() bool   { return f.BranchID > 0 }
func (f Filter) HasCategory() bool { return f.Category != "" }

// IsZero true cuando no se aplica ningún filtro.
func (f Filter) IsZero() bool {
	return !f.HasDistrict() && !f.HasBranch() && !f.HasCategory()
}
