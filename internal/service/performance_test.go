package service

import (
	"testing"
	"time"

	"github.com/RibbonBlockchain/TradelineAI/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var perfNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testTradeline(limit, rate float64) *models.Tradeline {
	return &models.Tradeline{
		ID:           1,
		Name:         "Platinum Card",
		AccountType:  "Credit card",
		CreditLimit:  limit,
		InterestRate: rate,
		IsActive:     true,
	}
}

func completedTx(amount float64, daysAgo int) models.Transaction {
	return models.Transaction{
		Amount:          amount,
		Status:          models.TransactionCompleted,
		TransactionDate: perfNow.AddDate(0, 0, -daysAgo),
	}
}

func lateRepayment(amount float64, dueDaysAgo, paidDaysAgo int) models.Repayment {
	paid := perfNow.AddDate(0, 0, -paidDaysAgo)
	return models.Repayment{
		Amount:      amount,
		DueDate:     perfNow.AddDate(0, 0, -dueDaysAgo),
		PaymentDate: &paid,
		Status:      models.RepaymentLate,
	}
}

func paidRepayment(amount float64, dueDaysAgo int) models.Repayment {
	paid := perfNow.AddDate(0, 0, -dueDaysAgo-1)
	return models.Repayment{
		Amount:      amount,
		DueDate:     perfNow.AddDate(0, 0, -dueDaysAgo),
		PaymentDate: &paid,
		Status:      models.RepaymentPaid,
	}
}

func TestBuildPerformanceRecordUtilization(t *testing.T) {
	tradeline := testTradeline(10000, 19.99)
	transactions := []models.Transaction{completedTx(2500, 5)}

	record := buildPerformanceRecord(tradeline, transactions, nil, perfNow)

	assert.Equal(t, 2500.0, record.CurrentBalance)
	assert.Equal(t, 7500.0, record.AvailableCredit)
	assert.Equal(t, 0.25, record.UtilizationRate)
}

func TestBuildPerformanceRecordZeroCreditLimit(t *testing.T) {
	tradeline := testTradeline(0, 19.99)
	transactions := []models.Transaction{completedTx(2500, 5)}

	record := buildPerformanceRecord(tradeline, transactions, nil, perfNow)

	assert.Equal(t, 0.0, record.UtilizationRate)
}

func TestBuildPerformanceRecordTransactionWindow(t *testing.T) {
	tradeline := testTradeline(10000, 19.99)
	transactions := []models.Transaction{
		completedTx(1000, 5),
		completedTx(500, 20),
		completedTx(2000, 45), // outside the 30-day window
	}

	record := buildPerformanceRecord(tradeline, transactions, nil, perfNow)

	// Balance counts everything; the transaction metrics only the window.
	assert.Equal(t, 3500.0, record.CurrentBalance)
	assert.Equal(t, 2, record.TransactionCount)
	assert.Equal(t, 1500.0, record.TransactionVolume)
	assert.Equal(t, 750.0, record.AvgTransactionAmount)
}

func TestBuildPerformanceRecordNoTransactions(t *testing.T) {
	tradeline := testTradeline(10000, 19.99)

	record := buildPerformanceRecord(tradeline, nil, nil, perfNow)

	assert.Equal(t, 0, record.TransactionCount)
	assert.Equal(t, 0.0, record.AvgTransactionAmount)
	// No outstanding balance means fully paid.
	assert.Equal(t, 1.0, record.PaymentRatio)
}

func TestBuildPerformanceRecordRepaymentMetrics(t *testing.T) {
	tradeline := testTradeline(10000, 19.99)
	transactions := []models.Transaction{completedTx(4000, 10)}
	repayments := []models.Repayment{
		paidRepayment(1000, 20),
		paidRepayment(1000, 40),
		lateRepayment(500, 30, 16), // 14 days overdue
	}

	record := buildPerformanceRecord(tradeline, transactions, repayments, perfNow)

	assert.Equal(t, 2500.0, record.TotalRepayments)
	assert.Equal(t, 2, record.RepaymentsOnTime)
	assert.Equal(t, 1, record.RepaymentsLate)
	assert.Equal(t, 2500.0/4000.0, record.PaymentRatio)
	assert.Equal(t, 14, record.DaysDelinquent)
}

func TestBuildPerformanceRecordRiskScore(t *testing.T) {
	tradeline := testTradeline(10000, 19.99)
	transactions := []models.Transaction{completedTx(5000, 10)}
	repayments := []models.Repayment{
		paidRepayment(1000, 20),
		lateRepayment(500, 30, 16),
	}

	record := buildPerformanceRecord(tradeline, transactions, repayments, perfNow)

	// 30*u + min(40, 10*late) + max(0, 30 - 30*paymentRatio)
	wantRisk := 0.5*30 + 10 + (30 - 1500.0/5000.0*30)
	assert.InDelta(t, wantRisk, record.RiskScore, 1e-9)
}

func TestBuildPerformanceRecordLateComponentCap(t *testing.T) {
	tradeline := testTradeline(10000, 0)

	atCap := make([]models.Repayment, 4)
	for i := range atCap {
		atCap[i] = lateRepayment(100, 60, 30)
	}
	overCap := make([]models.Repayment, 10)
	for i := range overCap {
		overCap[i] = lateRepayment(100, 60, 30)
	}

	recordAtCap := buildPerformanceRecord(tradeline, nil, atCap, perfNow)
	recordOverCap := buildPerformanceRecord(tradeline, nil, overCap, perfNow)

	// Four late repayments already reach the 40-point cap; ten must not
	// exceed it.
	assert.InDelta(t, 40.0, recordAtCap.RiskScore, 1e-9)
	assert.InDelta(t, 40.0, recordOverCap.RiskScore, 1e-9)
}

func TestBuildPerformanceRecordInterestAccrued(t *testing.T) {
	tradeline := testTradeline(10000, 24.0)
	transactions := []models.Transaction{completedTx(3650, 10)}

	record := buildPerformanceRecord(tradeline, transactions, nil, perfNow)

	// balance * (rate/100) / 365 * 30
	want := 3650.0 * 0.24 / 365 * 30
	assert.InDelta(t, want, record.InterestAccrued, 1e-9)
}

func TestBuildPerformanceRecordSnapshotIdentity(t *testing.T) {
	tradeline := testTradeline(10000, 19.99)

	first := buildPerformanceRecord(tradeline, nil, nil, perfNow)
	second := buildPerformanceRecord(tradeline, nil, nil, perfNow.Add(time.Hour))

	// Each call produces a new, independent record.
	require.NotSame(t, first, second)
	assert.Equal(t, perfNow, first.RecordDate)
	assert.Equal(t, perfNow.Add(time.Hour), second.RecordDate)
}
