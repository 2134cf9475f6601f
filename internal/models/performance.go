package models

import "time"

// PerformanceRecord is a point-in-time performance snapshot for a tradeline.
// Records are append-only: each snapshot produces a new row and prior rows
// are never updated.
type PerformanceRecord struct {
	ID          int64     `json:"id"`
	TradelineID int64     `json:"tradeline_id"`
	RecordDate  time.Time `json:"record_date"`

	// Utilization metrics
	CurrentBalance  float64 `json:"current_balance"`
	AvailableCredit float64 `json:"available_credit"`
	UtilizationRate float64 `json:"utilization_rate"` // Balance / Credit Limit

	// Transaction metrics (30-day window)
	TransactionCount     int     `json:"transaction_count"`
	TransactionVolume    float64 `json:"transaction_volume"`
	AvgTransactionAmount float64 `json:"avg_transaction_amount"`

	// Repayment metrics
	TotalRepayments  float64 `json:"total_repayments"`
	RepaymentsOnTime int     `json:"repayments_on_time"`
	RepaymentsLate   int     `json:"repayments_late"`
	PaymentRatio     float64 `json:"payment_ratio"` // Repayments / Balance

	// Risk and financial health metrics
	RiskScore       float64 `json:"risk_score"` // 0 (lowest risk) to 100 (highest risk)
	DaysDelinquent  int     `json:"days_delinquent"`
	InterestAccrued float64 `json:"interest_accrued"`
}
