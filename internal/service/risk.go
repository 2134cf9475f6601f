package service

import (
	"context"
	"math"

	"github.com/RibbonBlockchain/TradelineAI/internal/models"
)

// TradelineRiskRow is one tradeline's entry in the risk report
type TradelineRiskRow struct {
	TradelineID     int64    `json:"tradeline_id"`
	Name            string   `json:"name"`
	CreditLimit     float64  `json:"credit_limit"`
	AvailableLimit  float64  `json:"available_limit"`
	Utilization     float64  `json:"utilization"` // percent
	RiskScore       float64  `json:"risk_score"`
	RiskCategory    string   `json:"risk_category"`
	Recommendations []string `json:"recommendations"`
}

// TradelineRiskReport aggregates per-tradeline risk rows
type TradelineRiskReport struct {
	Tradelines   []TradelineRiskRow `json:"tradelines"`
	AvgRiskScore float64            `json:"avg_risk_score"`
}

// AssessTradelineRisk classifies one tradeline's attributes. Prediction
// service failures degrade to the default medium assessment; they are never
// fatal. A missing tradeline returns (nil, nil).
func (s *Service) AssessTradelineRisk(ctx context.Context, tradelineID int64) (*models.RiskAssessment, error) {
	tradeline, err := s.repo.GetTradeline(tradelineID)
	if err != nil {
		return nil, err
	}
	if tradeline == nil {
		return nil, nil
	}
	return s.predictRisk(ctx, tradeline), nil
}

func (s *Service) predictRisk(ctx context.Context, tradeline *models.Tradeline) *models.RiskAssessment {
	assessment, err := s.risk.PredictTradelineRisk(ctx, tradeline)
	if err != nil {
		s.log.Errorf("Risk prediction failed for tradeline %d, using default: %v", tradeline.ID, err)
		return models.DefaultRiskAssessment()
	}
	return assessment
}

// BuildTradelineRiskReport assembles utilization and risk rows for every
// active tradeline.
func (s *Service) BuildTradelineRiskReport(ctx context.Context) (*TradelineRiskReport, error) {
	tradelines, err := s.repo.ListActiveTradelines()
	if err != nil {
		return nil, err
	}

	report := &TradelineRiskReport{Tradelines: []TradelineRiskRow{}}
	var totalRisk float64
	for i := range tradelines {
		t := &tradelines[i]

		var utilization float64
		if t.CreditLimit > 0 {
			utilization = round2((t.CreditLimit - t.AvailableLimit) / t.CreditLimit * 100)
		}

		assessment := s.predictRisk(ctx, t)
		totalRisk += assessment.RiskScore

		report.Tradelines = append(report.Tradelines, TradelineRiskRow{
			TradelineID:     t.ID,
			Name:            t.Name,
			CreditLimit:     t.CreditLimit,
			AvailableLimit:  t.AvailableLimit,
			Utilization:     utilization,
			RiskScore:       assessment.RiskScore,
			RiskCategory:    assessment.RiskCategory,
			Recommendations: assessment.Recommendations,
		})
	}

	if len(report.Tradelines) > 0 {
		report.AvgRiskScore = round2(totalRisk / float64(len(report.Tradelines)))
	}
	return report, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
