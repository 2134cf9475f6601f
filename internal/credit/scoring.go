package credit

import (
	"math"
	"time"
)

// Component keys used in score breakdowns and history entries.
const (
	ComponentPaymentHistory = "payment_history"
	ComponentUtilization    = "credit_utilization"
	ComponentHistoryLength  = "history_length"
	ComponentCreditMix      = "credit_mix"
	ComponentRecentActivity = "recent_activity"
)

// DefaultScore is assigned to agents with no financial activity.
const DefaultScore = 600

// Score scale bounds, analogous to a consumer credit score.
const (
	minScore = 300
	maxScore = 850
)

// Neutral component values used when a dimension has no data to judge.
const (
	neutralPaymentHistory = 65.0
	neutralUtilization    = 50.0
	neutralActivity       = 70.0
)

// Weights controls the relative contribution of each score component.
// Values should sum to 1.0.
type Weights struct {
	PaymentHistory float64
	Utilization    float64
	HistoryLength  float64
	CreditMix      float64
	RecentActivity float64
}

// DefaultWeights mirrors the conventional consumer-score breakdown.
func DefaultWeights() Weights {
	return Weights{
		PaymentHistory: 0.35,
		Utilization:    0.30,
		HistoryLength:  0.15,
		CreditMix:      0.10,
		RecentActivity: 0.10,
	}
}

// ScoreResult is the outcome of scoring one agent profile
type ScoreResult struct {
	Score      int                `json:"score"`
	Components map[string]float64 `json:"components"`
}

// Scorer computes composite credit scores for agent profiles. Weights and
// rating bands are configurable so recalibration does not require code
// changes.
type Scorer struct {
	weights Weights
	bands   []RatingBand
}

// NewScorer returns a scorer with the default weights and rating bands.
func NewScorer() *Scorer {
	return &Scorer{
		weights: DefaultWeights(),
		bands:   DefaultRatingBands(),
	}
}

// NewScorerWith returns a scorer with explicit weights and rating bands.
func NewScorerWith(w Weights, bands []RatingBand) *Scorer {
	return &Scorer{weights: w, bands: bands}
}

// Score computes the composite credit score for a profile. An agent with no
// tradelines, transactions, or repayments receives the default score with an
// empty component breakdown.
func (s *Scorer) Score(profile *AgentProfile, now time.Time) ScoreResult {
	if profile.Empty() {
		return ScoreResult{
			Score:      DefaultScore,
			Components: map[string]float64{},
		}
	}

	components := map[string]float64{
		ComponentPaymentHistory: paymentHistoryComponent(profile.Repayments),
		ComponentUtilization:    utilizationComponent(profile.Tradelines, profile.Transactions),
		ComponentHistoryLength:  historyLengthComponent(profile.CreatedAt, now),
		ComponentCreditMix:      creditMixComponent(profile.Tradelines),
		ComponentRecentActivity: recentActivityComponent(profile.Transactions, now),
	}

	composite := components[ComponentPaymentHistory]*s.weights.PaymentHistory +
		components[ComponentUtilization]*s.weights.Utilization +
		components[ComponentHistoryLength]*s.weights.HistoryLength +
		components[ComponentCreditMix]*s.weights.CreditMix +
		components[ComponentRecentActivity]*s.weights.RecentActivity

	score := minScore + int(math.Round(composite*(maxScore-minScore)/100))
	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}

	return ScoreResult{Score: score, Components: components}
}

// paymentHistoryComponent scores on-time payment behaviour. Only repayments
// that were actually paid are judged; a profile with no paid repayments gets
// a neutral value.
func paymentHistoryComponent(repayments []RepaymentSummary) float64 {
	var paid, onTime int
	for _, r := range repayments {
		if !r.Paid {
			continue
		}
		paid++
		if !r.Late {
			onTime++
		}
	}
	if paid == 0 {
		return neutralPaymentHistory
	}
	return float64(onTime) / float64(paid) * 100
}

// utilizationComponent rewards low utilization of the allocated limits.
func utilizationComponent(tradelines []TradelineSummary, transactions []TransactionSummary) float64 {
	var totalLimit float64
	for _, t := range tradelines {
		totalLimit += t.CreditLimit
	}
	if totalLimit <= 0 {
		return neutralUtilization
	}

	var balance float64
	for _, tx := range transactions {
		if tx.Status == "completed" {
			balance += tx.Amount
		}
	}
	utilization := balance / totalLimit
	component := 100 - utilization*100
	if component < 0 {
		component = 0
	}
	return component
}

// historyLengthComponent scales with account age, maxing out at five years.
func historyLengthComponent(createdAt time.Time, now time.Time) float64 {
	if createdAt.IsZero() || createdAt.After(now) {
		return 0
	}
	months := now.Sub(createdAt).Hours() / 24 / 30
	component := months * 100 / 60
	if component > 100 {
		component = 100
	}
	return component
}

// creditMixComponent rewards holding a variety of account types.
func creditMixComponent(tradelines []TradelineSummary) float64 {
	types := make(map[string]struct{})
	for _, t := range tradelines {
		if t.AccountType != "" {
			types[t.AccountType] = struct{}{}
		}
	}
	component := float64(len(types)) * 25
	if component > 100 {
		component = 100
	}
	return component
}

// recentActivityComponent penalizes declined transactions in the last 90
// days. No recent activity yields a neutral value.
func recentActivityComponent(transactions []TransactionSummary, now time.Time) float64 {
	windowStart := now.AddDate(0, 0, -90)
	var recent, declined int
	for _, tx := range transactions {
		if tx.TransactionDate.Before(windowStart) {
			continue
		}
		recent++
		if tx.Status == "declined" {
			declined++
		}
	}
	if recent == 0 {
		return neutralActivity
	}
	component := 100 - float64(declined)/float64(recent)*200
	if component < 0 {
		component = 0
	}
	return component
}
