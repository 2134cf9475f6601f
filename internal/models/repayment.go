package models

import "time"

// Repayment statuses
const (
	RepaymentScheduled = "scheduled"
	RepaymentPaid      = "paid"
	RepaymentLate      = "late"
	RepaymentMissed    = "missed"
)

// Repayment represents a payment an agent owes against an allocation
type Repayment struct {
	ID           int64      `json:"id"`
	AgentID      int64      `json:"agent_id"`
	AllocationID int64      `json:"allocation_id"`
	Amount       float64    `json:"amount"`
	DueDate      time.Time  `json:"due_date"`
	PaymentDate  *time.Time `json:"payment_date,omitempty"`
	Status       string     `json:"status"`
	Description  string     `json:"description"`
}

// IsLate reports whether the payment was made after its due date.
func (r *Repayment) IsLate() bool {
	if r.PaymentDate != nil && !r.DueDate.IsZero() {
		return r.PaymentDate.After(r.DueDate)
	}
	return false
}

// IsMissed reports whether the payment is past due with no payment made.
func (r *Repayment) IsMissed(now time.Time) bool {
	if r.PaymentDate == nil && !r.DueDate.IsZero() {
		return now.After(r.DueDate)
	}
	return false
}

// DaysOverdue returns how many whole days past due this repayment is.
// A repayment paid late counts the days between due date and payment date;
// an unpaid repayment counts the days between due date and now.
func (r *Repayment) DaysOverdue(now time.Time) int {
	if r.PaymentDate != nil {
		if r.PaymentDate.After(r.DueDate) {
			return int(r.PaymentDate.Sub(r.DueDate).Hours() / 24)
		}
		return 0
	}
	if r.IsMissed(now) {
		return int(now.Sub(r.DueDate).Hours() / 24)
	}
	return 0
}

// UpdateStatus recomputes the status from the payment state.
func (r *Repayment) UpdateStatus(now time.Time) {
	if r.PaymentDate != nil {
		if r.IsLate() {
			r.Status = RepaymentLate
		} else {
			r.Status = RepaymentPaid
		}
		return
	}
	if r.IsMissed(now) {
		r.Status = RepaymentMissed
	} else {
		r.Status = RepaymentScheduled
	}
}
