package service

import (
	"context"
	"time"

	"github.com/RibbonBlockchain/TradelineAI/internal/models"
)

// Window over which transaction metrics are computed.
const transactionWindow = 30 * 24 * time.Hour

// RecordTradelinePerformance produces one immutable performance snapshot for
// a tradeline and appends it to the performance log. A missing tradeline or
// one with no active allocations returns (nil, nil): insufficient data, not
// an error.
func (s *Service) RecordTradelinePerformance(ctx context.Context, tradelineID int64) (*models.PerformanceRecord, error) {
	tradeline, err := s.repo.GetTradeline(tradelineID)
	if err != nil {
		return nil, err
	}
	if tradeline == nil {
		return nil, nil
	}

	allocations, err := s.repo.ActiveAllocationsByTradeline(tradelineID)
	if err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		s.log.Debugf("Tradeline %d has no active allocations, skipping snapshot", tradelineID)
		return nil, nil
	}

	allocationIDs := make([]int64, 0, len(allocations))
	for _, a := range allocations {
		allocationIDs = append(allocationIDs, a.ID)
	}

	transactions, err := s.repo.CompletedTransactionsByAllocations(allocationIDs)
	if err != nil {
		return nil, err
	}
	repayments, err := s.repo.RepaymentsByAllocations(allocationIDs,
		[]string{models.RepaymentPaid, models.RepaymentLate})
	if err != nil {
		return nil, err
	}

	record := buildPerformanceRecord(tradeline, transactions, repayments, time.Now().UTC())
	if err := s.repo.CreatePerformanceRecord(record); err != nil {
		return nil, err
	}

	s.log.Infof("Performance snapshot recorded for tradeline %d: utilization %.2f, risk %.1f",
		tradelineID, record.UtilizationRate, record.RiskScore)
	return record, nil
}

// RecordAllTradelinePerformance snapshots every active tradeline. Failures
// on individual tradelines are logged and do not stop the run.
func (s *Service) RecordAllTradelinePerformance(ctx context.Context) (int, error) {
	tradelines, err := s.repo.ListActiveTradelines()
	if err != nil {
		return 0, err
	}

	recorded := 0
	for _, t := range tradelines {
		record, err := s.RecordTradelinePerformance(ctx, t.ID)
		if err != nil {
			s.log.Errorf("Failed to snapshot tradeline %d: %v", t.ID, err)
			continue
		}
		if record != nil {
			recorded++
		}
	}
	s.log.Infof("Recorded performance snapshots for %d of %d active tradelines", recorded, len(tradelines))
	return recorded, nil
}

// buildPerformanceRecord computes the snapshot metrics from already fetched
// rows. transactions must be the completed transactions across the
// tradeline's active allocations; repayments must be those in paid or late
// status.
func buildPerformanceRecord(tradeline *models.Tradeline, transactions []models.Transaction, repayments []models.Repayment, now time.Time) *models.PerformanceRecord {
	record := &models.PerformanceRecord{
		TradelineID: tradeline.ID,
		RecordDate:  now,
	}

	// Utilization metrics
	var balance float64
	for _, t := range transactions {
		balance += t.Amount
	}
	record.CurrentBalance = balance
	record.AvailableCredit = tradeline.CreditLimit - balance
	if tradeline.CreditLimit > 0 {
		record.UtilizationRate = balance / tradeline.CreditLimit
	}

	// Transaction metrics over the recent window
	windowStart := now.Add(-transactionWindow)
	for _, t := range transactions {
		if t.TransactionDate.Before(windowStart) {
			continue
		}
		record.TransactionCount++
		record.TransactionVolume += t.Amount
	}
	if record.TransactionCount > 0 {
		record.AvgTransactionAmount = record.TransactionVolume / float64(record.TransactionCount)
	}

	// Repayment metrics
	for _, rep := range repayments {
		record.TotalRepayments += rep.Amount
		if rep.Status == models.RepaymentPaid && !rep.IsLate() {
			record.RepaymentsOnTime++
		}
		if rep.Status == models.RepaymentLate || rep.IsLate() {
			record.RepaymentsLate++
			record.DaysDelinquent += rep.DaysOverdue(now)
		}
	}
	if balance > 0 {
		record.PaymentRatio = record.TotalRepayments / balance
	} else {
		// No outstanding balance means fully paid.
		record.PaymentRatio = 1.0
	}

	// Risk score: utilization, late payments, and payment ratio weighted
	// onto a nominal 0-100 scale.
	riskUtilization := record.UtilizationRate * 30
	riskLatePayments := float64(record.RepaymentsLate) * 10
	if riskLatePayments > 40 {
		riskLatePayments = 40
	}
	riskPaymentRatio := 30 - record.PaymentRatio*30
	if riskPaymentRatio < 0 {
		riskPaymentRatio = 0
	}
	record.RiskScore = riskUtilization + riskLatePayments + riskPaymentRatio

	// Approximate monthly interest accrual on the outstanding balance.
	record.InterestAccrued = balance * (tradeline.InterestRate / 100) / 365 * 30

	return record
}

// GetTradelinePerformanceHistory returns the snapshot history for a
// tradeline, most recent first. A missing tradeline returns (nil, nil).
func (s *Service) GetTradelinePerformanceHistory(ctx context.Context, tradelineID int64) ([]models.PerformanceRecord, error) {
	tradeline, err := s.repo.GetTradeline(tradelineID)
	if err != nil {
		return nil, err
	}
	if tradeline == nil {
		return nil, nil
	}
	records, err := s.repo.PerformanceRecordsByTradeline(tradelineID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		// Distinguish "tradeline exists, no snapshots yet" from the
		// missing-tradeline (nil, nil) case above.
		records = []models.PerformanceRecord{}
	}
	return records, nil
}
