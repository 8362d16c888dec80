package strategy

import (
	"testing"
	"time"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
)

func datedSeries(dates ...time.Time) *marketdata.Series {
	prices := make([][]float64, len(dates))
	for i := range prices {
		prices[i] = []float64{1.0}
	}
	return &marketdata.Series{Dates: dates, Assets: []string{"A"}, Prices: prices}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRebalanceDaysFirstTradingDayPerMonth(t *testing.T) {
	series := datedSeries(
		day(2024, time.January, 2),
		day(2024, time.January, 3),
		day(2024, time.January, 31),
		day(2024, time.February, 1),
		day(2024, time.February, 2),
		day(2024, time.April, 1), // March entirely absent
		day(2024, time.April, 2),
	)

	got := NewScheduler().RebalanceDays(series)
	want := []int{0, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rebalance day %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestRebalanceDaysAlwaysIncludesFirstDay(t *testing.T) {
	series := datedSeries(day(2024, time.June, 17))

	got := NewScheduler().RebalanceDays(series)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected [0], got %v", got)
	}
}

func TestHoldingIntervalsPartitionSeries(t *testing.T) {
	sched := NewScheduler()
	rebalanceDays := []int{0, 3, 5}
	seriesLen := 9

	covered := 0
	prevEnd := 0
	for k := range rebalanceDays {
		start, end := sched.HoldingInterval(rebalanceDays, k, seriesLen)
		if start != prevEnd {
			t.Errorf("interval %d starts at %d, expected %d", k, start, prevEnd)
		}
		if end <= start {
			t.Errorf("interval %d is empty: [%d, %d)", k, start, end)
		}
		covered += end - start
		prevEnd = end
	}

	if covered != seriesLen {
		t.Errorf("intervals cover %d days, expected %d", covered, seriesLen)
	}
	if prevEnd != seriesLen {
		t.Errorf("last interval ends at %d, expected %d", prevEnd, seriesLen)
	}
}
