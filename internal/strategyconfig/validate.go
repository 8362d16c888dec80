package strategyconfig

import "fmt"

// Validate checks a strategy config for internally consistent values.
func Validate(cfg *Config) error {
	if len(cfg.Momentum.LookbacksDays) == 0 {
		return fmt.Errorf("momentum.lookbacks_days must list at least one lookback window")
	}
	for _, lookback := range cfg.Momentum.LookbacksDays {
		if lookback <= 0 {
			return fmt.Errorf("momentum lookback must be positive, got %d", lookback)
		}
	}

	if cfg.Momentum.TopK <= 0 {
		return fmt.Errorf("momentum.top_k must be positive, got %d", cfg.Momentum.TopK)
	}

	if cfg.Metrics.TradingDaysPerYear <= 0 {
		return fmt.Errorf("metrics.trading_days_per_year must be positive, got %d", cfg.Metrics.TradingDaysPerYear)
	}

	if cfg.Analysis.Mode != "" && cfg.Analysis.Mode != "quick" && cfg.Analysis.Mode != "detailed" {
		return fmt.Errorf("analysis.mode must be 'quick' or 'detailed', got %q", cfg.Analysis.Mode)
	}

	return nil
}
