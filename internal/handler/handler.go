package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RibbonBlockchain/TradelineAI/internal/service"
	"github.com/gorilla/mux"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RecordPerformance handles POST /tradelines/{id}/performance
func (h *Handler) RecordPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	record, err := h.svc.RecordTradelinePerformance(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record performance")
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "tradeline not found or has no active allocations")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// PerformanceHistory handles GET /tradelines/{id}/performance
func (h *Handler) PerformanceHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	records, err := h.svc.GetTradelinePerformanceHistory(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load performance history")
		return
	}
	if records == nil {
		writeError(w, http.StatusNotFound, "tradeline not found")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// TradelineRisk handles GET /tradelines/{id}/risk
func (h *Handler) TradelineRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	assessment, err := h.svc.AssessTradelineRisk(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to assess risk")
		return
	}
	if assessment == nil {
		writeError(w, http.StatusNotFound, "tradeline not found")
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// RiskReport handles GET /reports/tradeline-risk
func (h *Handler) RiskReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.BuildTradelineRiskReport(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build risk report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// UpdateCreditScore handles POST /agents/{id}/credit-score
func (h *Handler) UpdateCreditScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.svc.UpdateAgentCreditScore(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update credit score")
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "agent not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"score":      result.Score,
		"components": result.Components,
		"rating":     h.svc.GetAgentCreditRating(result.Score),
	})
}

// CreditScore handles GET /agents/{id}/credit-score
func (h *Handler) CreditScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	agent, rating, err := h.svc.GetAgentCreditScore(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load credit score")
		return
	}
	if agent == nil {
		writeError(w, http.StatusNotFound, "agent not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"agent_id":     agent.ID,
		"credit_score": agent.CreditScore,
		"rating":       rating,
		"updated_at":   agent.CreditScoreUpdated,
	})
}

// CreditTrend handles GET /agents/{id}/credit-trend
func (h *Handler) CreditTrend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	trend, err := h.svc.GetAgentCreditTrend(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to analyze credit trend")
		return
	}
	if trend == nil {
		// Insufficient history is not an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
