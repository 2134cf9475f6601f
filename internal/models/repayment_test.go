package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRepaymentIsLate(t *testing.T) {
	due := date(2024, 1, 1)
	paidLate := date(2024, 1, 15)
	paidOnTime := date(2023, 12, 30)

	tests := []struct {
		name        string
		paymentDate *time.Time
		want        bool
	}{
		{"paid after due date", &paidLate, true},
		{"paid before due date", &paidOnTime, false},
		{"unpaid", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &Repayment{DueDate: due, PaymentDate: tt.paymentDate}
			assert.Equal(t, tt.want, rep.IsLate())
		})
	}
}

func TestRepaymentDaysOverdue(t *testing.T) {
	due := date(2024, 1, 1)
	now := date(2024, 2, 1)

	paidLate := date(2024, 1, 15)
	rep := &Repayment{DueDate: due, PaymentDate: &paidLate}
	assert.Equal(t, 14, rep.DaysOverdue(now))

	paidOnTime := date(2023, 12, 31)
	rep = &Repayment{DueDate: due, PaymentDate: &paidOnTime}
	assert.Equal(t, 0, rep.DaysOverdue(now))

	// Unpaid and past due counts up to now.
	rep = &Repayment{DueDate: due}
	assert.Equal(t, 31, rep.DaysOverdue(now))

	// Unpaid but not yet due.
	rep = &Repayment{DueDate: date(2024, 3, 1)}
	assert.Equal(t, 0, rep.DaysOverdue(now))
}

func TestRepaymentIsMissed(t *testing.T) {
	due := date(2024, 1, 1)
	paid := date(2024, 1, 2)

	rep := &Repayment{DueDate: due}
	assert.True(t, rep.IsMissed(date(2024, 1, 2)))
	assert.False(t, rep.IsMissed(date(2023, 12, 31)))

	rep = &Repayment{DueDate: due, PaymentDate: &paid}
	assert.False(t, rep.IsMissed(date(2024, 2, 1)))
}

func TestRepaymentUpdateStatus(t *testing.T) {
	due := date(2024, 1, 1)
	paidLate := date(2024, 1, 15)
	paidOnTime := date(2023, 12, 30)

	tests := []struct {
		name        string
		paymentDate *time.Time
		now         time.Time
		want        string
	}{
		{"paid on time", &paidOnTime, date(2024, 2, 1), RepaymentPaid},
		{"paid late", &paidLate, date(2024, 2, 1), RepaymentLate},
		{"unpaid past due", nil, date(2024, 2, 1), RepaymentMissed},
		{"unpaid before due", nil, date(2023, 12, 1), RepaymentScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &Repayment{DueDate: due, PaymentDate: tt.paymentDate, Status: RepaymentScheduled}
			rep.UpdateStatus(tt.now)
			assert.Equal(t, tt.want, rep.Status)
		})
	}
}
