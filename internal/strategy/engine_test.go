package strategy

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// twoMonthSeries spans two calendar months so the run rebalances
// twice: once into cash (no momentum yet), once into both assets.
func twoMonthSeries() *marketdata.Series {
	return &marketdata.Series{
		Dates: []time.Time{
			day(2024, time.January, 2),
			day(2024, time.January, 3),
			day(2024, time.January, 4),
			day(2024, time.February, 1),
			day(2024, time.February, 2),
			day(2024, time.February, 5),
		},
		Assets: []string{"A", "B"},
		Prices: [][]float64{
			{100, 100},
			{110, 105},
			{121, 110.25},
			{121, 110.25},
			{133.1, 104.7375},
			{146.41, 99.500625},
		},
	}
}

func TestEngineRunClosedForm(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	result, err := engine.Run(context.Background(), twoMonthSeries(), Config{LookbackDays: 1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.RebalanceDays) != 2 {
		t.Fatalf("expected 2 rebalances, got %d", len(result.RebalanceDays))
	}

	// January: momentum is undefined on the first trading day, so the
	// whole first holding interval stays in cash.
	for day := 0; day < 3; day++ {
		if result.Returns[day] != 0 {
			t.Errorf("day %d: expected cash return 0, got %v", day, result.Returns[day])
		}
		if result.Values[day] != 1.0 {
			t.Errorf("day %d: expected value 1.0, got %v", day, result.Values[day])
		}
	}

	// February: both assets valid, held 50/50. A gains 10%/day, B
	// loses 5%/day, so the portfolio compounds at 2.5%/day.
	if math.Abs(result.Returns[4]-0.025) > 1e-12 {
		t.Errorf("day 4: expected return 0.025, got %v", result.Returns[4])
	}

	wantFinal := 1.025 * 1.025
	if math.Abs(result.FinalValue()-wantFinal) > 1e-12 {
		t.Errorf("expected final value %v, got %v", wantFinal, result.FinalValue())
	}
}

func TestEngineRunIsDeterministic(t *testing.T) {
	engine := NewEngine(logger.NewNop())
	series := twoMonthSeries()
	cfg := Config{LookbackDays: 1, TopK: 2}

	first, err := engine.Run(context.Background(), series, cfg)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := engine.Run(context.Background(), series, cfg)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range first.Values {
		if first.Values[i] != second.Values[i] {
			t.Errorf("day %d: values differ between identical runs", i)
		}
	}
}

func TestEngineRunDefaultsTopK(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	result, err := engine.Run(context.Background(), twoMonthSeries(), Config{LookbackDays: 1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Config.TopK != DefaultTopK {
		t.Errorf("expected TopK default %d, got %d", DefaultTopK, result.Config.TopK)
	}
}

func TestEngineRunRejectsCancelledContext(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Run(ctx, twoMonthSeries(), Config{LookbackDays: 1}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestEngineRunLookbackLongerThanSeries(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	// Lookback exceeds the series length: every score is undefined, so
	// the run completes fully in cash.
	result, err := engine.Run(context.Background(), twoMonthSeries(), Config{LookbackDays: 100})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FinalValue() != 1.0 {
		t.Errorf("expected all-cash final value 1.0, got %v", result.FinalValue())
	}
}
