package strategy

import (
	"math"
	"sort"

	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// Allocator assigns portfolio weights at each rebalance day and holds
// them constant across the holding interval.
type Allocator struct {
	topK   int
	logger *logger.Logger
}

// NewAllocator creates a new weight allocator selecting the top K
// assets by momentum.
func NewAllocator(topK int, log *logger.Logger) *Allocator {
	return &Allocator{topK: topK, logger: log}
}

// Allocate builds the day-by-asset weight matrix. At each rebalance
// day the assets are ranked by momentum score; the top K receive
// weight 1/K for the whole holding interval. When fewer than 2 assets
// (or fewer than K) have a defined score the interval stays fully in
// cash (all weights zero): insufficient signal means no conviction
// bet, and a NaN-scored asset must never be bought to pad the
// selection. K stays fixed even when exactly K assets are valid.
func (a *Allocator) Allocate(scores [][]float64, rebalanceDays []int, scheduler *Scheduler, numAssets int) [][]float64 {
	n := len(scores)
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, numAssets)
	}

	for k, rebalDay := range rebalanceDays {
		row := scores[rebalDay]

		validCount := 0
		for _, score := range row {
			if !math.IsNaN(score) {
				validCount++
			}
		}

		start, end := scheduler.HoldingInterval(rebalanceDays, k, n)

		if validCount < 2 || validCount < a.topK {
			a.logger.WithFields(map[string]interface{}{
				"rebalance_day": rebalDay,
				"valid_scores":  validCount,
			}).Debug("Insufficient momentum data, holding cash")
			continue
		}

		selected := a.rank(row)
		weight := 1.0 / float64(a.topK)

		for day := start; day < end; day++ {
			for _, asset := range selected {
				weights[day][asset] = weight
			}
		}
	}

	return weights
}

// rank returns the column indices of the top K assets by score,
// descending. NaN scores sort last; ties keep the original column
// order (stable sort).
func (a *Allocator) rank(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(x, y int) bool {
		sx, sy := scores[idx[x]], scores[idx[y]]
		if math.IsNaN(sx) {
			return false
		}
		if math.IsNaN(sy) {
			return true
		}
		return sx > sy
	})

	if len(idx) > a.topK {
		idx = idx[:a.topK]
	}
	return idx
}
