package service

import (
	"context"
	"time"

	"github.com/RibbonBlockchain/TradelineAI/internal/credit"
	"github.com/RibbonBlockchain/TradelineAI/internal/models"
)

// UpdateAgentCreditScore recomputes an agent's composite credit score from
// its allocations, transactions, and repayments, writes the new score and
// appends it to the score history. The write happens under a row lock so
// concurrent updates for the same agent serialize. A missing agent returns
// (nil, nil).
func (s *Service) UpdateAgentCreditScore(ctx context.Context, agentID int64) (*credit.ScoreResult, error) {
	allocations, err := s.repo.AllocationsByAgent(agentID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.repo.TransactionsByAgent(agentID)
	if err != nil {
		return nil, err
	}
	repayments, err := s.repo.RepaymentsByAgent(agentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var result credit.ScoreResult

	agent, err := s.repo.UpdateAgentCreditScore(ctx, agentID, func(agent *models.Agent) error {
		profile := buildAgentProfile(agent, allocations, transactions, repayments)
		result = s.scorer.Score(profile, now)

		history, err := credit.DecodeHistory(agent.CreditScoreHistory)
		if err != nil {
			// Corrupt history is recovered by rebuilding from empty,
			// but the anomaly is logged rather than hidden.
			s.log.Warnf("Agent %d has malformed credit score history, rebuilding: %v", agentID, err)
			history = nil
		}
		history = credit.AppendHistory(history, result, now)

		encoded, err := credit.EncodeHistory(history)
		if err != nil {
			return err
		}

		agent.CreditScore = result.Score
		agent.CreditScoreUpdated = now
		agent.CreditScoreHistory = encoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, nil
	}

	s.log.Infof("Credit score updated for agent %d: %d (%s)",
		agentID, result.Score, s.scorer.Rating(result.Score))
	return &result, nil
}

// GetAgentCreditScore returns an agent's current score and rating. A
// missing agent returns (nil, nil).
func (s *Service) GetAgentCreditScore(ctx context.Context, agentID int64) (*models.Agent, string, error) {
	agent, err := s.repo.GetAgent(agentID)
	if err != nil {
		return nil, "", err
	}
	if agent == nil {
		return nil, "", nil
	}
	return agent, s.scorer.Rating(agent.CreditScore), nil
}

// GetAgentCreditTrend analyzes the movement of an agent's score history.
// It returns (nil, nil) for a missing agent or fewer than two history
// points.
func (s *Service) GetAgentCreditTrend(ctx context.Context, agentID int64) (*credit.TrendSummary, error) {
	agent, err := s.repo.GetAgent(agentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, nil
	}

	history, err := credit.DecodeHistory(agent.CreditScoreHistory)
	if err != nil {
		s.log.Warnf("Agent %d has malformed credit score history: %v", agentID, err)
		return nil, nil
	}
	return credit.AnalyzeTrend(history), nil
}

// GetAgentCreditRating maps a numeric score onto the rating bands.
func (s *Service) GetAgentCreditRating(score int) string {
	return s.scorer.Rating(score)
}

// buildAgentProfile assembles the typed scoring input from repository rows.
func buildAgentProfile(agent *models.Agent, allocations []models.Allocation, transactions []models.Transaction, repayments []models.Repayment) *credit.AgentProfile {
	profile := &credit.AgentProfile{
		AgentID:   agent.ID,
		CreatedAt: agent.CreatedAt,
	}

	tradelineByAllocation := make(map[int64]int64, len(allocations))
	for _, a := range allocations {
		tradelineByAllocation[a.ID] = a.TradelineID
		profile.Tradelines = append(profile.Tradelines, credit.TradelineSummary{
			TradelineID: a.TradelineID,
			CreditLimit: a.CreditLimit,
			AccountType: a.AccountType,
			Issuer:      a.Issuer,
			OpenedDate:  a.AllocationDate,
		})
	}

	for _, t := range transactions {
		profile.Transactions = append(profile.Transactions, credit.TransactionSummary{
			ID:              t.ID,
			TradelineID:     tradelineByAllocation[t.AllocationID],
			Amount:          t.Amount,
			Status:          t.Status,
			TransactionDate: t.TransactionDate,
			BalanceAfter:    t.BalanceAfter,
		})
	}

	for _, r := range repayments {
		profile.Repayments = append(profile.Repayments, credit.RepaymentSummary{
			ID:          r.ID,
			Amount:      r.Amount,
			DueDate:     r.DueDate,
			PaymentDate: r.PaymentDate,
			Late:        r.IsLate(),
			Paid:        r.PaymentDate != nil,
		})
	}

	return profile
}
