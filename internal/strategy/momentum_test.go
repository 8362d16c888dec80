package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// makeSeries builds a test series with consecutive weekdays starting
// 2024-01-02.
func makeSeries(t *testing.T, assets []string, prices [][]float64) *marketdata.Series {
	t.Helper()

	dates := make([]time.Time, len(prices))
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		dates[i] = d
		d = d.AddDate(0, 0, 1)
	}

	return &marketdata.Series{Dates: dates, Assets: assets, Prices: prices}
}

func TestScoresUndefinedBeforeLookback(t *testing.T) {
	series := makeSeries(t, []string{"A"}, [][]float64{
		{100}, {110}, {121},
	})

	scorer := NewScorer(logger.NewNop())
	scores, err := scorer.Scores(series, 2)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}

	if !math.IsNaN(scores[0][0]) || !math.IsNaN(scores[1][0]) {
		t.Error("expected NaN scores before the lookback window is available")
	}

	want := 0.21
	if math.Abs(scores[2][0]-want) > 1e-12 {
		t.Errorf("expected score %.4f, got %.4f", want, scores[2][0])
	}
}

func TestScoresExactValues(t *testing.T) {
	series := makeSeries(t, []string{"A", "B"}, [][]float64{
		{100, 200},
		{110, 190},
	})

	scorer := NewScorer(logger.NewNop())
	scores, err := scorer.Scores(series, 1)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}

	if math.Abs(scores[1][0]-0.10) > 1e-12 {
		t.Errorf("asset A: expected 0.10, got %v", scores[1][0])
	}
	if math.Abs(scores[1][1]-(-0.05)) > 1e-12 {
		t.Errorf("asset B: expected -0.05, got %v", scores[1][1])
	}
}

func TestScoresZeroPastPriceUndefined(t *testing.T) {
	series := makeSeries(t, []string{"A"}, [][]float64{
		{0}, {100},
	})

	scorer := NewScorer(logger.NewNop())
	scores, err := scorer.Scores(series, 1)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}

	if !math.IsNaN(scores[1][0]) {
		t.Errorf("expected NaN for zero reference price, got %v", scores[1][0])
	}
}

func TestScoresRejectsInvalidLookback(t *testing.T) {
	series := makeSeries(t, []string{"A"}, [][]float64{{100}})

	scorer := NewScorer(logger.NewNop())
	if _, err := scorer.Scores(series, 0); err == nil {
		t.Error("expected error for non-positive lookback")
	}
	if _, err := scorer.Scores(series, -5); err == nil {
		t.Error("expected error for negative lookback")
	}
}
