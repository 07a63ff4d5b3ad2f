package entity

// District datos demográficos de un distrito (ilçe) usados en el análisis de oportunidad.
type District struct {
	Name       string
	Population int64
	Density    float64 // habitantes por km²
	AreaKm2    float64
	Latitude   float64
	Longitude  float64
}
