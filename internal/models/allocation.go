package models

import "time"

// Allocation binds a tradeline (or a portion of its limit) to an agent
type Allocation struct {
	ID             int64     `json:"id"`
	AgentID        int64     `json:"agent_id"`
	TradelineID    int64     `json:"tradeline_id"`
	CreditLimit    float64   `json:"credit_limit"`
	IsActive       bool      `json:"is_active"`
	AllocationDate time.Time `json:"allocation_date"`

	// Joined tradeline attributes, populated by repository reads that
	// need them for credit profile building.
	AccountType string `json:"account_type,omitempty"`
	Issuer      string `json:"issuer,omitempty"`
}
