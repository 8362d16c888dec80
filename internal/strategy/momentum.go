package strategy

import (
	"fmt"
	"math"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// Scorer derives lookback-period momentum scores from a price series.
type Scorer struct {
	logger *logger.Logger
}

// NewScorer creates a new momentum scorer.
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{logger: log}
}

// Scores computes the momentum score matrix for the series:
// score[i][a] = price[i][a] / price[i-lookback][a] - 1. The score is
// NaN for the first lookback days where no reference price exists.
func (s *Scorer) Scores(series *marketdata.Series, lookbackDays int) ([][]float64, error) {
	if lookbackDays <= 0 {
		return nil, fmt.Errorf("lookback must be positive, got %d", lookbackDays)
	}
	if series.NumAssets() == 0 {
		return nil, fmt.Errorf("price series has no asset columns")
	}

	n := series.Len()
	scores := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, series.NumAssets())
		for a := range row {
			if i < lookbackDays {
				row[a] = math.NaN()
				continue
			}
			past := series.Prices[i-lookbackDays][a]
			if past == 0 || math.IsNaN(past) {
				row[a] = math.NaN()
				continue
			}
			row[a] = series.Prices[i][a]/past - 1.0
		}
		scores[i] = row
	}

	s.logger.WithFields(map[string]interface{}{
		"lookback_days": lookbackDays,
		"trading_days":  n,
		"assets":        series.NumAssets(),
	}).Debug("Momentum scores computed")

	return scores, nil
}
