package credit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scoringNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScoreEmptyProfile(t *testing.T) {
	scorer := NewScorer()
	profile := &AgentProfile{AgentID: 1, CreatedAt: scoringNow.AddDate(-1, 0, 0)}

	result := scorer.Score(profile, scoringNow)

	assert.Equal(t, DefaultScore, result.Score)
	assert.Empty(t, result.Components)
	assert.NotNil(t, result.Components)
}

func TestScoreWithinBounds(t *testing.T) {
	scorer := NewScorer()
	paid := scoringNow.AddDate(0, 0, -10)
	profile := &AgentProfile{
		AgentID:   1,
		CreatedAt: scoringNow.AddDate(-2, 0, 0),
		Tradelines: []TradelineSummary{
			{TradelineID: 1, CreditLimit: 10000, AccountType: "Credit card"},
			{TradelineID: 2, CreditLimit: 5000, AccountType: "Line of credit"},
		},
		Transactions: []TransactionSummary{
			{ID: 1, Amount: 2500, Status: "completed", TransactionDate: scoringNow.AddDate(0, 0, -5)},
			{ID: 2, Amount: 100, Status: "declined", TransactionDate: scoringNow.AddDate(0, 0, -3)},
		},
		Repayments: []RepaymentSummary{
			{ID: 1, Amount: 1000, PaymentDate: &paid, Paid: true},
			{ID: 2, Amount: 500, PaymentDate: &paid, Paid: true, Late: true},
		},
	}

	result := scorer.Score(profile, scoringNow)

	require.Len(t, result.Components, 5)
	for name, value := range result.Components {
		assert.GreaterOrEqual(t, value, 0.0, "component %s below 0", name)
		assert.LessOrEqual(t, value, 100.0, "component %s above 100", name)
	}
	assert.GreaterOrEqual(t, result.Score, 300)
	assert.LessOrEqual(t, result.Score, 850)
}

func TestPaymentHistoryComponent(t *testing.T) {
	paid := scoringNow

	tests := []struct {
		name       string
		repayments []RepaymentSummary
		want       float64
	}{
		{
			name: "all on time",
			repayments: []RepaymentSummary{
				{PaymentDate: &paid, Paid: true},
				{PaymentDate: &paid, Paid: true},
			},
			want: 100,
		},
		{
			name: "half late",
			repayments: []RepaymentSummary{
				{PaymentDate: &paid, Paid: true},
				{PaymentDate: &paid, Paid: true, Late: true},
			},
			want: 50,
		},
		{
			name:       "no paid repayments is neutral",
			repayments: []RepaymentSummary{{Paid: false}},
			want:       neutralPaymentHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentHistoryComponent(tt.repayments))
		})
	}
}

func TestUtilizationComponent(t *testing.T) {
	tradelines := []TradelineSummary{{CreditLimit: 10000}}

	tests := []struct {
		name         string
		tradelines   []TradelineSummary
		transactions []TransactionSummary
		want         float64
	}{
		{
			name:         "quarter utilized",
			tradelines:   tradelines,
			transactions: []TransactionSummary{{Amount: 2500, Status: "completed"}},
			want:         75,
		},
		{
			name:         "pending transactions ignored",
			tradelines:   tradelines,
			transactions: []TransactionSummary{{Amount: 2500, Status: "pending"}},
			want:         100,
		},
		{
			name:         "over limit floors at zero",
			tradelines:   tradelines,
			transactions: []TransactionSummary{{Amount: 20000, Status: "completed"}},
			want:         0,
		},
		{
			name:       "zero limit is neutral",
			tradelines: []TradelineSummary{{CreditLimit: 0}},
			want:       neutralUtilization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utilizationComponent(tt.tradelines, tt.transactions))
		})
	}
}

func TestHistoryLengthComponent(t *testing.T) {
	assert.Equal(t, 100.0, historyLengthComponent(scoringNow.AddDate(-10, 0, 0), scoringNow))
	assert.Equal(t, 0.0, historyLengthComponent(time.Time{}, scoringNow))
	assert.Equal(t, 0.0, historyLengthComponent(scoringNow.AddDate(1, 0, 0), scoringNow))

	halfway := historyLengthComponent(scoringNow.AddDate(0, 0, -900), scoringNow)
	assert.InDelta(t, 50, halfway, 1)
}

func TestCreditMixComponent(t *testing.T) {
	assert.Equal(t, 0.0, creditMixComponent(nil))
	assert.Equal(t, 25.0, creditMixComponent([]TradelineSummary{
		{AccountType: "Credit card"},
		{AccountType: "Credit card"},
	}))
	assert.Equal(t, 100.0, creditMixComponent([]TradelineSummary{
		{AccountType: "Credit card"},
		{AccountType: "Line of credit"},
		{AccountType: "Auto loan"},
		{AccountType: "Mortgage"},
		{AccountType: "Personal loan"},
	}))
}

func TestRecentActivityComponent(t *testing.T) {
	recent := scoringNow.AddDate(0, 0, -5)
	old := scoringNow.AddDate(0, 0, -120)

	// No activity inside the window is neutral.
	assert.Equal(t, neutralActivity, recentActivityComponent([]TransactionSummary{
		{Status: "declined", TransactionDate: old},
	}, scoringNow))

	// Declines inside the window are penalized.
	component := recentActivityComponent([]TransactionSummary{
		{Status: "completed", TransactionDate: recent},
		{Status: "completed", TransactionDate: recent},
		{Status: "completed", TransactionDate: recent},
		{Status: "declined", TransactionDate: recent},
	}, scoringNow)
	assert.Equal(t, 50.0, component)
}
