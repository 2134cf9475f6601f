package credit

import "time"

// AgentProfile is the typed summary of an agent's financial activity that
// the scorer consumes. It is assembled by the service layer from already
// fetched rows; the scorer itself performs no I/O.
type AgentProfile struct {
	AgentID      int64
	CreatedAt    time.Time
	Tradelines   []TradelineSummary
	Transactions []TransactionSummary
	Repayments   []RepaymentSummary
}

// TradelineSummary describes one tradeline allocation held by the agent
type TradelineSummary struct {
	TradelineID int64
	CreditLimit float64
	AccountType string
	Issuer      string
	OpenedDate  time.Time
}

// TransactionSummary describes one transaction made by the agent
type TransactionSummary struct {
	ID              int64
	TradelineID     int64
	Amount          float64
	Status          string
	TransactionDate time.Time
	BalanceAfter    float64
}

// RepaymentSummary describes one repayment with its computed lateness
type RepaymentSummary struct {
	ID          int64
	Amount      float64
	DueDate     time.Time
	PaymentDate *time.Time
	Late        bool
	Paid        bool
}

// Empty reports whether the profile carries no financial activity at all.
func (p *AgentProfile) Empty() bool {
	return len(p.Tradelines) == 0 && len(p.Transactions) == 0 && len(p.Repayments) == 0
}
