package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/metrics"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/report"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/store"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/strategy"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/strategyconfig"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/config"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// Orchestrator runs the full workflow: load and clean the price data,
// backtest each configured lookback window, compute metrics, and
// optionally persist the runs.
type Orchestrator struct {
	cfg         *config.Config
	strategyCfg *strategyconfig.Config
	loader      *marketdata.Loader
	engine      *strategy.Engine
	calculator  *metrics.Calculator
	repo        *store.Repository // nil when persistence is disabled
	logger      *logger.Logger

	mu            sync.Mutex
	series        *marketdata.Series
	seriesModTime time.Time
	seriesSize    int64
}

// StrategyOutcome is one lookback window's result. Err is set when
// this run failed; a failed run never aborts the others.
type StrategyOutcome struct {
	LookbackDays int
	Result       *strategy.Result
	Metrics      *metrics.Result
	Monthly      []report.MonthlyRow
	Err          error
}

// Outcome is the result of a full comparison workflow.
type Outcome struct {
	Series *marketdata.Series
	Runs   []StrategyOutcome
}

// Succeeded returns the outcomes of the runs that completed.
func (o *Outcome) Succeeded() []StrategyOutcome {
	runs := make([]StrategyOutcome, 0, len(o.Runs))
	for _, run := range o.Runs {
		if run.Err == nil {
			runs = append(runs, run)
		}
	}
	return runs
}

// New creates an orchestrator. repo may be nil.
func New(cfg *config.Config, strategyCfg *strategyconfig.Config, repo *store.Repository, log *logger.Logger) *Orchestrator {
	m := strategyCfg.Metrics
	return &Orchestrator{
		cfg:         cfg,
		strategyCfg: strategyCfg,
		loader:      marketdata.NewLoader(log),
		engine:      strategy.NewEngine(log),
		calculator:  metrics.NewCalculator(m.TradingDaysPerYear, m.RiskFreeRate, m.TargetReturn, log),
		repo:        repo,
		logger:      log,
	}
}

// StrategyConfig exposes the loaded strategy parameters.
func (o *Orchestrator) StrategyConfig() *strategyconfig.Config {
	return o.strategyCfg
}

// Series loads and cleans the price data, reusing the cached series
// while the file is unchanged. A modified file (scheduled runs pick up
// rows appended after market close) is reloaded on the next call.
func (o *Orchestrator) Series(ctx context.Context) (*marketdata.Series, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(o.cfg.Data.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat price file: %w", err)
	}
	if o.series != nil && info.ModTime().Equal(o.seriesModTime) && info.Size() == o.seriesSize {
		return o.series, nil
	}

	series, err := o.loader.Load(o.cfg.Data.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load price data: %w", err)
	}

	if o.cfg.Data.CleanCSVPath != "" {
		if err := o.loader.Save(series, o.cfg.Data.CleanCSVPath); err != nil {
			o.logger.WithError(err).Warn("Failed to save clean data")
		}
	}

	o.series = series
	o.seriesModTime = info.ModTime()
	o.seriesSize = info.Size()
	return series, nil
}

// Run backtests every configured lookback window sequentially. The
// runs are independent; an error in one degrades that entry only.
// Run itself errors when the data cannot be loaded or no run
// succeeded.
func (o *Orchestrator) Run(ctx context.Context) (*Outcome, error) {
	series, err := o.Series(ctx)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Series: series,
		Runs:   make([]StrategyOutcome, 0, len(o.strategyCfg.Momentum.LookbacksDays)),
	}

	for _, lookback := range o.strategyCfg.Momentum.LookbacksDays {
		run := o.runOne(ctx, series, lookback)
		if run.Err != nil {
			o.logger.WithFields(map[string]interface{}{
				"lookback_days": lookback,
				"error":         run.Err.Error(),
			}).Warn("Strategy run failed")
		}
		outcome.Runs = append(outcome.Runs, run)
	}

	if len(outcome.Succeeded()) == 0 {
		return nil, fmt.Errorf("all %d strategy runs failed", len(outcome.Runs))
	}

	return outcome, nil
}

// RunOne backtests a single lookback window.
func (o *Orchestrator) RunOne(ctx context.Context, lookbackDays, topK int) (*StrategyOutcome, error) {
	series, err := o.Series(ctx)
	if err != nil {
		return nil, err
	}

	if topK <= 0 {
		topK = o.strategyCfg.Momentum.TopK
	}

	run := o.runOneWithTopK(ctx, series, lookbackDays, topK)
	if run.Err != nil {
		return nil, run.Err
	}
	return &run, nil
}

func (o *Orchestrator) runOne(ctx context.Context, series *marketdata.Series, lookbackDays int) StrategyOutcome {
	return o.runOneWithTopK(ctx, series, lookbackDays, o.strategyCfg.Momentum.TopK)
}

func (o *Orchestrator) runOneWithTopK(ctx context.Context, series *marketdata.Series, lookbackDays, topK int) StrategyOutcome {
	outcome := StrategyOutcome{LookbackDays: lookbackDays}

	result, err := o.engine.Run(ctx, series, strategy.Config{
		LookbackDays: lookbackDays,
		TopK:         topK,
	})
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Result = result

	m, err := o.calculator.Compute(result.Returns, result.Values)
	if err != nil {
		outcome.Err = fmt.Errorf("metrics computation failed: %w", err)
		return outcome
	}
	outcome.Metrics = m

	outcome.Monthly = report.MonthlyBreakdown(series, result)

	o.persist(ctx, series, &outcome, topK)

	return outcome
}

// persist saves the run when a repository is configured. Persistence
// failures are logged, never fatal to the run.
func (o *Orchestrator) persist(ctx context.Context, series *marketdata.Series, run *StrategyOutcome, topK int) {
	if o.repo == nil {
		return
	}

	hash, err := strategyconfig.Hash(o.strategyCfg)
	if err != nil {
		o.logger.WithError(err).Warn("Failed to hash strategy config")
		hash = ""
	}

	rec := &store.RunRecord{
		StrategyID:   o.strategyCfg.Meta.StrategyID,
		ConfigHash:   hash,
		LookbackDays: run.LookbackDays,
		TopK:         topK,
		TradingDays:  series.Len(),
		Rebalances:   len(run.Result.RebalanceDays),
		FinalValue:   run.Result.FinalValue(),
		Metrics:      run.Metrics,
	}

	if err := o.repo.SaveRun(ctx, rec); err != nil {
		o.logger.WithError(err).Warn("Failed to persist backtest run")
	}
}
