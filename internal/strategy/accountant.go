package strategy

import (
	"math"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
)

// Accountant reduces per-asset returns and the weight schedule into
// the portfolio return and value series.
type Accountant struct{}

// NewAccountant creates a new portfolio accountant.
func NewAccountant() *Accountant {
	return &Accountant{}
}

// DailyReturns computes per-asset simple daily returns:
// r[i][a] = price[i][a] / price[i-1][a] - 1, NaN at day 0 where no
// prior price exists.
func (a *Accountant) DailyReturns(series *marketdata.Series) [][]float64 {
	n := series.Len()
	returns := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, series.NumAssets())
		for j := range row {
			if i == 0 {
				row[j] = math.NaN()
				continue
			}
			prev := series.Prices[i-1][j]
			if prev == 0 {
				row[j] = math.NaN()
				continue
			}
			row[j] = series.Prices[i][j]/prev - 1.0
		}
		returns[i] = row
	}
	return returns
}

// Compound combines daily returns with the weight schedule. The
// portfolio return on each day is the weight-weighted sum of asset
// returns, with undefined asset returns contributing zero. The value
// series compounds from a basis of 1.0 before day 0, strictly in
// trading-day order.
func (a *Accountant) Compound(returns, weights [][]float64) (portReturns, portValues []float64) {
	n := len(returns)
	portReturns = make([]float64, n)
	portValues = make([]float64, n)

	value := 1.0
	for i := 0; i < n; i++ {
		var dayReturn float64
		for j := range returns[i] {
			r := returns[i][j]
			if math.IsNaN(r) {
				continue
			}
			dayReturn += r * weights[i][j]
		}
		portReturns[i] = dayReturn

		value *= 1.0 + dayReturn
		portValues[i] = value
	}

	return portReturns, portValues
}
