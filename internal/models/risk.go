package models

// Risk categories
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// RiskAssessment is the result of classifying a tradeline's attributes
type RiskAssessment struct {
	RiskScore       float64  `json:"risk_score"` // 0-100, higher = riskier
	RiskCategory    string   `json:"risk_category"`
	Recommendations []string `json:"recommendations"`
}

// DefaultRiskAssessment is the fallback returned when the prediction
// service is unavailable or returns malformed data.
func DefaultRiskAssessment() *RiskAssessment {
	return &RiskAssessment{
		RiskScore:    50,
		RiskCategory: RiskMedium,
	}
}
