package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/metrics"
)

// StrategyMetrics is one strategy's entry in the comparison payload.
type StrategyMetrics struct {
	LookbackPeriodDays int             `json:"lookback_period_days"`
	Metrics            *metrics.Result `json:"metrics"`
}

// Comparison is the structured payload the narrative analysis reasons
// over: the metrics of each strategy run plus strategy metadata.
type Comparison struct {
	Runs []StrategyMetrics
}

// NewComparison builds a comparison payload from strategy runs in the
// order given.
func NewComparison(runs ...StrategyMetrics) *Comparison {
	return &Comparison{Runs: runs}
}

// Payload returns the JSON-ready structure. Each run is keyed
// "strategy_<lookback>_day" so the model can reference strategies by
// their window.
func (c *Comparison) Payload() map[string]interface{} {
	payload := make(map[string]interface{}, len(c.Runs)+1)
	for _, run := range c.Runs {
		key := fmt.Sprintf("strategy_%d_day", run.LookbackPeriodDays)
		payload[key] = run
	}

	payload["metadata"] = map[string]string{
		"strategy_type":       "momentum_rebalancing",
		"rebalance_frequency": "monthly",
		"asset_selection":     "top_2_equal_weight",
	}

	return payload
}

// JSON renders the payload as indented JSON.
func (c *Comparison) JSON() (string, error) {
	data, err := json.MarshalIndent(c.Payload(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison payload: %w", err)
	}
	return string(data), nil
}

// Hash returns a deterministic digest of the payload, used as the
// analysis cache key.
func (c *Comparison) Hash() (string, error) {
	data, err := c.JSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:]), nil
}
