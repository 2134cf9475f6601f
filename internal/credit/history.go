package credit

import (
	"encoding/json"
	"fmt"
	"time"
)

// HistoryEntry is one point in an agent's score history
type HistoryEntry struct {
	Timestamp  time.Time          `json:"timestamp"`
	Score      int                `json:"score"`
	Components map[string]float64 `json:"components,omitempty"`
}

// DecodeHistory parses a serialized score history. An empty string is a
// valid empty history. A decode error is returned to the caller so the
// anomaly can be logged before falling back to an empty history.
func DecodeHistory(raw string) ([]HistoryEntry, error) {
	if raw == "" {
		return nil, nil
	}
	var history []HistoryEntry
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("failed to decode score history: %w", err)
	}
	return history, nil
}

// EncodeHistory serializes a score history for storage.
func EncodeHistory(history []HistoryEntry) (string, error) {
	data, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("failed to encode score history: %w", err)
	}
	return string(data), nil
}

// AppendHistory appends a score result to the history. The history is
// append-only and unbounded; entries are never rewritten.
func AppendHistory(history []HistoryEntry, result ScoreResult, now time.Time) []HistoryEntry {
	return append(history, HistoryEntry{
		Timestamp:  now,
		Score:      result.Score,
		Components: result.Components,
	})
}

// TrendSummary describes how an agent's score has moved over its history
type TrendSummary struct {
	Direction     string  `json:"direction"` // improving, declining, stable
	Change        int     `json:"change"`    // last score minus first score
	AverageDelta  float64 `json:"average_delta"`
	Periods       int     `json:"periods"`
	StartingScore int     `json:"starting_score"`
	CurrentScore  int     `json:"current_score"`
}

// Trend directions
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// AnalyzeTrend computes a trend from consecutive score deltas. It returns
// nil when fewer than two history points exist; that is insufficient data,
// not an error.
func AnalyzeTrend(history []HistoryEntry) *TrendSummary {
	if len(history) < 2 {
		return nil
	}

	first := history[0].Score
	last := history[len(history)-1].Score

	var total int
	for i := 1; i < len(history); i++ {
		total += history[i].Score - history[i-1].Score
	}
	periods := len(history) - 1

	direction := TrendStable
	switch {
	case last > first:
		direction = TrendImproving
	case last < first:
		direction = TrendDeclining
	}

	return &TrendSummary{
		Direction:     direction,
		Change:        last - first,
		AverageDelta:  float64(total) / float64(periods),
		Periods:       periods,
		StartingScore: first,
		CurrentScore:  last,
	}
}
