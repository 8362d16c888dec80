package jobs

import (
	"context"
	"fmt"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/pipeline"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// BacktestJob re-runs the full comparison workflow on a schedule,
// typically after the day's prices have been appended to the data
// file.
type BacktestJob struct {
	orchestrator *pipeline.Orchestrator
	schedule     string
	logger       *logger.Logger
}

// NewBacktestJob creates a scheduled backtest job.
func NewBacktestJob(orchestrator *pipeline.Orchestrator, schedule string, log *logger.Logger) *BacktestJob {
	return &BacktestJob{
		orchestrator: orchestrator,
		schedule:     schedule,
		logger:       log,
	}
}

// Name implements scheduler.Job.
func (j *BacktestJob) Name() string {
	return "backtest-refresh"
}

// Schedule implements scheduler.Job.
func (j *BacktestJob) Schedule() string {
	return j.schedule
}

// Run executes the comparison workflow.
func (j *BacktestJob) Run(ctx context.Context) error {
	outcome, err := j.orchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("scheduled backtest failed: %w", err)
	}

	for _, run := range outcome.Succeeded() {
		j.logger.WithFields(map[string]interface{}{
			"lookback_days": run.LookbackDays,
			"final_value":   fmt.Sprintf("%.4f", run.Result.FinalValue()),
			"sharpe":        fmt.Sprintf("%.4f", run.Metrics.SharpeRatio),
		}).Info("Scheduled backtest run completed")
	}

	return nil
}
