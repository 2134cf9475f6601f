package models

import "time"

// Tradeline represents a line of credit that can be allocated to agents
type Tradeline struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Issuer         string    `json:"issuer"`
	AccountType    string    `json:"account_type"` // Credit card, line of credit, etc.
	CreditLimit    float64   `json:"credit_limit"`
	AvailableLimit float64   `json:"available_limit"`
	InterestRate   float64   `json:"interest_rate"` // APR in percent
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
