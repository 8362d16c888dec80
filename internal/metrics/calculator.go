package metrics

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// DefaultTradingDaysPerYear is the annualization constant for daily
// return series.
const DefaultTradingDaysPerYear = 252

// Result is an immutable snapshot of summary statistics for one
// strategy run. Undefined metrics are NaN; a Sortino ratio with no
// downside observations can be +Inf.
type Result struct {
	TotalReturn  float64 `json:"total_return"`
	CAGR         float64 `json:"cagr"`
	Volatility   float64 `json:"volatility"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio float64 `json:"sortino_ratio"`
}

// Map returns the metrics as a flat name-to-value mapping.
func (r *Result) Map() map[string]float64 {
	return map[string]float64{
		"total_return":  r.TotalReturn,
		"cagr":          r.CAGR,
		"volatility":    r.Volatility,
		"max_drawdown":  r.MaxDrawdown,
		"sharpe_ratio":  r.SharpeRatio,
		"sortino_ratio": r.SortinoRatio,
	}
}

// MarshalJSON encodes sentinel values in a JSON-safe way: NaN becomes
// null, infinities become the strings "Infinity" / "-Infinity".
func (r *Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, 6)
	for name, value := range r.Map() {
		out[name] = jsonSafe(value)
	}
	return json.Marshal(out)
}

func jsonSafe(v float64) interface{} {
	switch {
	case math.IsNaN(v):
		return nil
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	default:
		return v
	}
}

// Calculator reduces portfolio return/value series into summary
// statistics. Numeric degeneracy degrades single fields to NaN or
// +Inf; only an empty input series is a hard error.
type Calculator struct {
	tradingDaysPerYear int
	riskFreeRate       float64
	targetReturn       float64
	logger             *logger.Logger
}

// NewCalculator creates a metrics calculator. tradingDaysPerYear
// falls back to 252 when non-positive.
func NewCalculator(tradingDaysPerYear int, riskFreeRate, targetReturn float64, log *logger.Logger) *Calculator {
	if tradingDaysPerYear <= 0 {
		tradingDaysPerYear = DefaultTradingDaysPerYear
	}
	return &Calculator{
		tradingDaysPerYear: tradingDaysPerYear,
		riskFreeRate:       riskFreeRate,
		targetReturn:       targetReturn,
		logger:             log,
	}
}

// Compute calculates all summary statistics for one run. Undefined
// entries (NaN) are dropped from the return series first; an input
// that is empty, or empty after the drop, is an error.
func (c *Calculator) Compute(portReturns, portValues []float64) (*Result, error) {
	if len(portReturns) == 0 || len(portValues) == 0 {
		return nil, fmt.Errorf("portfolio returns and values cannot be empty")
	}

	returns := dropNaN(portReturns)
	if len(returns) == 0 {
		return nil, fmt.Errorf("return series is empty after removing undefined entries")
	}

	finalValue := portValues[len(portValues)-1]

	result := &Result{
		TotalReturn:  finalValue - 1.0,
		CAGR:         c.cagr(finalValue, len(returns)),
		Volatility:   sampleStdDev(returns) * math.Sqrt(float64(c.tradingDaysPerYear)),
		MaxDrawdown:  maxDrawdown(portValues),
		SharpeRatio:  c.sharpe(returns),
		SortinoRatio: c.sortino(returns),
	}

	c.logger.WithFields(map[string]interface{}{
		"total_return": result.TotalReturn,
		"cagr":         result.CAGR,
		"sharpe":       result.SharpeRatio,
		"max_drawdown": result.MaxDrawdown,
	}).Debug("Metrics computed")

	return result, nil
}

// SharpeRatio computes the annualized Sharpe ratio of a raw return
// series. Errors only when nothing remains after dropping NaN.
func (c *Calculator) SharpeRatio(portReturns []float64) (float64, error) {
	returns := dropNaN(portReturns)
	if len(returns) == 0 {
		return 0, fmt.Errorf("return series is empty after removing undefined entries")
	}
	return c.sharpe(returns), nil
}

// SortinoRatio computes the annualized Sortino ratio of a raw return
// series. Errors only when nothing remains after dropping NaN.
func (c *Calculator) SortinoRatio(portReturns []float64) (float64, error) {
	returns := dropNaN(portReturns)
	if len(returns) == 0 {
		return 0, fmt.Errorf("return series is empty after removing undefined entries")
	}
	return c.sortino(returns), nil
}

// cagr computes the compound annual growth rate from the final value.
// Non-positive horizons and non-positive compounding bases are
// undefined, not errors.
func (c *Calculator) cagr(finalValue float64, numReturns int) float64 {
	years := float64(numReturns) / float64(c.tradingDaysPerYear)
	if years <= 0 || finalValue <= 0 {
		return math.NaN()
	}
	return math.Pow(finalValue, 1.0/years) - 1.0
}

// sharpe annualizes mean return and volatility; zero annualized
// volatility makes the ratio undefined.
func (c *Calculator) sharpe(returns []float64) float64 {
	annualReturn := mean(returns) * float64(c.tradingDaysPerYear)
	annualVol := sampleStdDev(returns) * math.Sqrt(float64(c.tradingDaysPerYear))

	if annualVol == 0 {
		return math.NaN()
	}

	return (annualReturn - c.riskFreeRate) / annualVol
}

// sortino uses only returns strictly below the target. With no
// downside observations (or zero downside deviation) the ratio is
// +Inf when the annualized return beats the target, else 0.
func (c *Calculator) sortino(returns []float64) float64 {
	annualReturn := mean(returns) * float64(c.tradingDaysPerYear)

	downside := make([]float64, 0)
	for _, r := range returns {
		if r < c.targetReturn {
			downside = append(downside, r)
		}
	}

	if len(downside) == 0 {
		if annualReturn > c.targetReturn {
			return math.Inf(1)
		}
		return 0.0
	}

	downsideDeviation := sampleStdDev(downside) * math.Sqrt(float64(c.tradingDaysPerYear))
	if downsideDeviation == 0 {
		if annualReturn > c.targetReturn {
			return math.Inf(1)
		}
		return 0.0
	}

	return (annualReturn - c.targetReturn) / downsideDeviation
}

// maxDrawdown is the largest decline of the value series from its
// running peak. Always <= 0; zero iff the series never declines.
func maxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	peak := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		dd := v/peak - 1.0
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the ddof=1 standard deviation. A single observation
// has no sample deviation and yields NaN.
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return math.NaN()
	}

	m := mean(values)
	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(n - 1)

	return math.Sqrt(variance)
}
