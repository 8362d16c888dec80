package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/metrics"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// RunRecord is one persisted backtest run.
type RunRecord struct {
	ID           int64           `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	StrategyID   string          `json:"strategy_id"`
	ConfigHash   string          `json:"config_hash"`
	LookbackDays int             `json:"lookback_days"`
	TopK         int             `json:"top_k"`
	TradingDays  int             `json:"trading_days"`
	Rebalances   int             `json:"rebalances"`
	FinalValue   float64         `json:"final_value"`
	Metrics      *metrics.Result `json:"metrics"`
}

// Repository persists backtest runs to PostgreSQL.
type Repository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewRepository creates a new run repository.
func NewRepository(pool *pgxpool.Pool, log *logger.Logger) *Repository {
	return &Repository{pool: pool, logger: log}
}

// EnsureSchema creates the backtest_runs table when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS backtest_runs (
			id            BIGSERIAL PRIMARY KEY,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			strategy_id   TEXT NOT NULL,
			config_hash   TEXT NOT NULL,
			lookback_days INT NOT NULL,
			top_k         INT NOT NULL,
			trading_days  INT NOT NULL,
			rebalances    INT NOT NULL,
			final_value   DOUBLE PRECISION NOT NULL,
			total_return  DOUBLE PRECISION,
			cagr          DOUBLE PRECISION,
			volatility    DOUBLE PRECISION,
			max_drawdown  DOUBLE PRECISION,
			sharpe_ratio  DOUBLE PRECISION,
			sortino_ratio DOUBLE PRECISION
		)
	`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure backtest_runs schema: %w", err)
	}
	return nil
}

// SaveRun inserts a run record and fills in its ID and timestamp.
func (r *Repository) SaveRun(ctx context.Context, rec *RunRecord) error {
	query := `
		INSERT INTO backtest_runs (
			strategy_id, config_hash, lookback_days, top_k, trading_days, rebalances,
			final_value, total_return, cagr, volatility, max_drawdown, sharpe_ratio, sortino_ratio
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	m := rec.Metrics
	err := r.pool.QueryRow(ctx, query,
		rec.StrategyID, rec.ConfigHash, rec.LookbackDays, rec.TopK, rec.TradingDays, rec.Rebalances,
		rec.FinalValue, m.TotalReturn, m.CAGR, m.Volatility, m.MaxDrawdown, m.SharpeRatio, m.SortinoRatio,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save backtest run: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"run_id":        rec.ID,
		"lookback_days": rec.LookbackDays,
		"final_value":   rec.FinalValue,
	}).Info("Backtest run persisted")

	return nil
}

// ListRuns returns the most recent runs, newest first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, created_at, strategy_id, config_hash, lookback_days, top_k, trading_days, rebalances,
		       final_value, total_return, cagr, volatility, max_drawdown, sharpe_ratio, sortino_ratio
		FROM backtest_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list backtest runs: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0, limit)
	for rows.Next() {
		var rec RunRecord
		var m metrics.Result
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt, &rec.StrategyID, &rec.ConfigHash, &rec.LookbackDays,
			&rec.TopK, &rec.TradingDays, &rec.Rebalances, &rec.FinalValue,
			&m.TotalReturn, &m.CAGR, &m.Volatility, &m.MaxDrawdown, &m.SharpeRatio, &m.SortinoRatio,
		); err != nil {
			return nil, fmt.Errorf("failed to scan backtest run: %w", err)
		}
		rec.Metrics = &m
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read backtest runs: %w", err)
	}

	return records, nil
}
