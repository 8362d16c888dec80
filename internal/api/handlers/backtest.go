package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/pipeline"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/store"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// BacktestHandler serves backtest execution and history endpoints.
type BacktestHandler struct {
	orchestrator *pipeline.Orchestrator
	repo         *store.Repository // nil when persistence is disabled
	logger       *logger.Logger
}

// NewBacktestHandler creates a new backtest handler.
func NewBacktestHandler(orchestrator *pipeline.Orchestrator, repo *store.Repository, log *logger.Logger) *BacktestHandler {
	return &BacktestHandler{
		orchestrator: orchestrator,
		repo:         repo,
		logger:       log,
	}
}

type runRequest struct {
	LookbackDays int `json:"lookback_days"`
	TopK         int `json:"top_k"`
}

type runResponse struct {
	LookbackDays int         `json:"lookback_days"`
	TradingDays  int         `json:"trading_days"`
	Rebalances   int         `json:"rebalances"`
	FinalValue   float64     `json:"final_value"`
	Metrics      interface{} `json:"metrics"`
}

// GetStrategy returns the loaded strategy configuration.
func (h *BacktestHandler) GetStrategy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orchestrator.StrategyConfig())
}

// RunBacktest executes one backtest for the requested lookback window
// and returns its metrics.
func (h *BacktestHandler) RunBacktest(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LookbackDays <= 0 {
		writeError(w, http.StatusBadRequest, "lookback_days must be positive")
		return
	}

	run, err := h.orchestrator.RunOne(r.Context(), req.LookbackDays, req.TopK)
	if err != nil {
		h.logger.WithError(err).Error("Backtest request failed")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, runResponse{
		LookbackDays: run.LookbackDays,
		TradingDays:  len(run.Result.Returns),
		Rebalances:   len(run.Result.RebalanceDays),
		FinalValue:   run.Result.FinalValue(),
		Metrics:      run.Metrics,
	})
}

// ListRuns returns persisted backtest runs, newest first.
func (h *BacktestHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.repo.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list runs")
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"runs":  runs,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
