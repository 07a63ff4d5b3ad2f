package analytics

// Tipos de mensaje narrativo.
const (
	InsightPositive = "positive"
	InsightNegative = "negative"
	InsightSuccess  = "success"
	InsightWarning  = "warning"
	InsightDanger   = "danger"
	InsightInfo     = "info"
)

// Insight mensaje narrativo con su tono.
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
