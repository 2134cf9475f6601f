package models

import "time"

// Transaction statuses
const (
	TransactionCompleted = "completed"
	TransactionPending   = "pending"
	TransactionDeclined  = "declined"
)

// Transaction represents a purchase made by an agent against an allocation
type Transaction struct {
	ID              int64     `json:"id"`
	AgentID         int64     `json:"agent_id"`
	AllocationID    int64     `json:"allocation_id"`
	Amount          float64   `json:"amount"`
	Merchant        string    `json:"merchant"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	TransactionDate time.Time `json:"transaction_date"`
	BalanceAfter    float64   `json:"balance_after"`
}
