package strategy

import (
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
)

// Scheduler identifies monthly rebalance days: the first trading day
// of each calendar month present in the series.
type Scheduler struct{}

// NewScheduler creates a new rebalance scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RebalanceDays returns the ordered day indices at which the portfolio
// is rebalanced. A day rebalances when its (year, month) differs from
// the previous trading day's; a single forward pass tracks the
// last-seen key.
func (s *Scheduler) RebalanceDays(series *marketdata.Series) []int {
	days := make([]int, 0)

	var lastYear int
	var lastMonth int
	for i, date := range series.Dates {
		year, month := date.Year(), int(date.Month())
		if i == 0 || year != lastYear || month != lastMonth {
			days = append(days, i)
			lastYear, lastMonth = year, month
		}
	}

	return days
}

// HoldingInterval returns the half-open day range [start, end)
// governed by rebalance day k. The last interval extends to the end
// of the series.
func (s *Scheduler) HoldingInterval(rebalanceDays []int, k, seriesLen int) (int, int) {
	start := rebalanceDays[k]
	end := seriesLen
	if k+1 < len(rebalanceDays) {
		end = rebalanceDays[k+1]
	}
	return start, end
}
