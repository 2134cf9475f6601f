package models

import "time"

// Agent represents an AI agent that can utilize tradelines
type Agent struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Purpose            string    `json:"purpose"`
	RiskProfile        string    `json:"risk_profile"` // Low, Medium, High
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	CreditScore        int       `json:"credit_score"`
	CreditScoreUpdated time.Time `json:"credit_score_updated"`
	CreditScoreHistory string    `json:"-"` // JSON-serialized, append-only
}

// DefaultCreditScore is the score assigned to an agent before any
// financial activity has been recorded.
const DefaultCreditScore = 600
