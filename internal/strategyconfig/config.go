package strategyconfig

// Config is the full description of a backtest comparison run.
type Config struct {
	Meta     Meta     `yaml:"meta" json:"meta"`
	Momentum Momentum `yaml:"momentum" json:"momentum"`
	Metrics  Metrics  `yaml:"metrics" json:"metrics"`
	Analysis Analysis `yaml:"analysis" json:"analysis"`
}

// Meta identifies the strategy.
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Momentum holds the signal and selection parameters. The two
// lookback windows are backtested independently and compared.
type Momentum struct {
	LookbacksDays []int `yaml:"lookbacks_days" json:"lookbacks_days"`
	TopK          int   `yaml:"top_k" json:"top_k"`
}

// Metrics holds annualization and benchmark-rate parameters.
type Metrics struct {
	TradingDaysPerYear int     `yaml:"trading_days_per_year" json:"trading_days_per_year"`
	RiskFreeRate       float64 `yaml:"risk_free_rate" json:"risk_free_rate"`
	TargetReturn       float64 `yaml:"target_return" json:"target_return"`
}

// Analysis holds the narrative analysis parameters.
type Analysis struct {
	Mode string `yaml:"mode" json:"mode"` // quick | detailed
}

// Default returns the configuration matching the standard comparison:
// 30-day vs 90-day lookback, top-2 equal weight, monthly rebalance.
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "momentum-top2-monthly",
			Version:    "v1",
		},
		Momentum: Momentum{
			LookbacksDays: []int{30, 90},
			TopK:          2,
		},
		Metrics: Metrics{
			TradingDaysPerYear: 252,
			RiskFreeRate:       0.0,
			TargetReturn:       0.0,
		},
		Analysis: Analysis{
			Mode: "quick",
		},
	}
}
