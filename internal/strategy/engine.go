package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// DefaultTopK is the number of assets held after each rebalance. The
// selection is fixed at the top 2 whenever at least 2 assets have a
// valid momentum score, even if only 2 assets exist.
const DefaultTopK = 2

// Engine runs the momentum strategy pipeline: score, schedule,
// allocate, account.
type Engine struct {
	scorer     *Scorer
	scheduler  *Scheduler
	accountant *Accountant
	logger     *logger.Logger
}

// Config holds the parameters of a single strategy run.
type Config struct {
	LookbackDays int
	TopK         int
}

// Result holds the three aligned output series of a strategy run plus
// the rebalance schedule that produced them. All series share the
// trading-day index of the input Series.
type Result struct {
	Config        Config
	Returns       []float64   // daily portfolio returns
	Values        []float64   // cumulative portfolio value, basis 1.0
	Weights       [][]float64 // day x asset weight matrix
	RebalanceDays []int
	Duration      time.Duration
}

// FinalValue returns the last cumulative portfolio value.
func (r *Result) FinalValue() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	return r.Values[len(r.Values)-1]
}

// NewEngine creates a new strategy engine.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		scorer:     NewScorer(log),
		scheduler:  NewScheduler(),
		accountant: NewAccountant(),
		logger:     log,
	}
}

// Run executes one strategy run over the series. Every entity is
// recomputed from scratch; nothing persists between runs.
func (e *Engine) Run(ctx context.Context, series *marketdata.Series, cfg Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid price series: %w", err)
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}

	startTime := time.Now()

	e.logger.WithFields(map[string]interface{}{
		"lookback_days": cfg.LookbackDays,
		"top_k":         cfg.TopK,
		"trading_days":  series.Len(),
		"assets":        series.NumAssets(),
	}).Info("Starting strategy run")

	scores, err := e.scorer.Scores(series, cfg.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("momentum scoring failed: %w", err)
	}

	rebalanceDays := e.scheduler.RebalanceDays(series)

	allocator := NewAllocator(cfg.TopK, e.logger)
	weights := allocator.Allocate(scores, rebalanceDays, e.scheduler, series.NumAssets())

	dailyReturns := e.accountant.DailyReturns(series)
	portReturns, portValues := e.accountant.Compound(dailyReturns, weights)

	result := &Result{
		Config:        cfg,
		Returns:       portReturns,
		Values:        portValues,
		Weights:       weights,
		RebalanceDays: rebalanceDays,
		Duration:      time.Since(startTime),
	}

	e.logger.WithFields(map[string]interface{}{
		"lookback_days": cfg.LookbackDays,
		"rebalances":    len(rebalanceDays),
		"final_value":   fmt.Sprintf("%.4f", result.FinalValue()),
		"duration_ms":   result.Duration.Milliseconds(),
	}).Info("Strategy run completed")

	return result, nil
}
