package service

import (
	"context"
	"time"

	"github.com/RibbonBlockchain/TradelineAI/internal/config"
	"github.com/RibbonBlockchain/TradelineAI/internal/credit"
	"github.com/RibbonBlockchain/TradelineAI/internal/models"
	"github.com/RibbonBlockchain/TradelineAI/internal/repository"
	"github.com/sirupsen/logrus"
)

// RiskPredictor classifies a tradeline's attributes into a risk assessment.
// The production implementation is the external prediction service client.
type RiskPredictor interface {
	PredictTradelineRisk(ctx context.Context, tradeline *models.Tradeline) (*models.RiskAssessment, error)
}

// ReminderSender delivers repayment reminder notifications.
type ReminderSender interface {
	SendPaymentReminder(to, agentName string, dueDate time.Time, amount float64, daysOverdue int, overdue bool) error
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	scorer *credit.Scorer
	risk   RiskPredictor
	mail   ReminderSender
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, risk RiskPredictor, mail ReminderSender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		scorer: credit.NewScorer(),
		risk:   risk,
		mail:   mail,
		log:    log,
		config: cfg,
	}
}
