package strategy

import (
	"math"
	"testing"

	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

var nan = math.NaN()

func TestAllocateTopTwoEqualWeight(t *testing.T) {
	scores := [][]float64{
		{0.3, 0.1, 0.2},
		{0.3, 0.1, 0.2},
		{0.3, 0.1, 0.2},
	}

	alloc := NewAllocator(2, logger.NewNop())
	weights := alloc.Allocate(scores, []int{0}, NewScheduler(), 3)

	for day := 0; day < 3; day++ {
		if weights[day][0] != 0.5 || weights[day][2] != 0.5 {
			t.Errorf("day %d: expected 0.5 on assets 0 and 2, got %v", day, weights[day])
		}
		if weights[day][1] != 0 {
			t.Errorf("day %d: expected 0 on asset 1, got %v", day, weights[day][1])
		}
	}
}

func TestAllocateWeightsSumToOneOrZero(t *testing.T) {
	scores := [][]float64{
		{nan, nan, nan}, // cash interval
		{nan, nan, nan},
		{0.1, 0.2, 0.3}, // invested interval
		{0.1, 0.2, 0.3},
	}

	alloc := NewAllocator(2, logger.NewNop())
	weights := alloc.Allocate(scores, []int{0, 2}, NewScheduler(), 3)

	for day, row := range weights {
		sum := 0.0
		for _, w := range row {
			sum += w
		}
		if day < 2 && sum != 0 {
			t.Errorf("day %d: expected all-cash, weights sum to %v", day, sum)
		}
		if day >= 2 && math.Abs(sum-1.0) > 1e-12 {
			t.Errorf("day %d: weights sum to %v, expected 1", day, sum)
		}
	}
}

func TestAllocateCashWhenFewerThanTwoValidScores(t *testing.T) {
	scores := [][]float64{
		{0.5, nan, nan}, // a single valid score is not enough
		{0.5, nan, nan},
	}

	alloc := NewAllocator(2, logger.NewNop())
	weights := alloc.Allocate(scores, []int{0}, NewScheduler(), 3)

	for day, row := range weights {
		for a, w := range row {
			if w != 0 {
				t.Errorf("day %d asset %d: expected cash, got weight %v", day, a, w)
			}
		}
	}
}

func TestAllocateCashWhenFewerValidScoresThanTopK(t *testing.T) {
	// Two valid scores cannot fill a top-3 selection; buying the
	// NaN-scored asset to pad it out would be a bet with no signal.
	scores := [][]float64{
		{0.2, -0.1, nan},
		{0.2, -0.1, nan},
	}

	alloc := NewAllocator(3, logger.NewNop())
	weights := alloc.Allocate(scores, []int{0}, NewScheduler(), 3)

	for day, row := range weights {
		for a, w := range row {
			if w != 0 {
				t.Errorf("day %d asset %d: expected cash, got weight %v", day, a, w)
			}
		}
	}
}

func TestAllocateTopKLargerThanTwo(t *testing.T) {
	scores := [][]float64{
		{0.3, 0.1, 0.2},
	}

	alloc := NewAllocator(3, logger.NewNop())
	weights := alloc.Allocate(scores, []int{0}, NewScheduler(), 3)

	for a := 0; a < 3; a++ {
		if math.Abs(weights[0][a]-1.0/3.0) > 1e-12 {
			t.Errorf("asset %d: expected weight 1/3, got %v", a, weights[0][a])
		}
	}
}

func TestAllocateWeightsConstantAcrossInterval(t *testing.T) {
	scores := [][]float64{
		{0.1, 0.2},
		{0.9, 0.0}, // mid-interval score changes must not move weights
		{0.0, 0.9},
		{0.2, 0.1},
	}

	alloc := NewAllocator(2, logger.NewNop())
	weights := alloc.Allocate(scores, []int{0, 3}, NewScheduler(), 2)

	for day := 1; day < 3; day++ {
		for a := range weights[day] {
			if weights[day][a] != weights[0][a] {
				t.Errorf("day %d asset %d: weight drifted within holding interval", day, a)
			}
		}
	}
}

func TestRankTiesKeepColumnOrder(t *testing.T) {
	alloc := NewAllocator(2, logger.NewNop())

	selected := alloc.rank([]float64{0.1, 0.1, 0.05})
	if len(selected) != 2 || selected[0] != 0 || selected[1] != 1 {
		t.Errorf("expected tied assets in column order [0 1], got %v", selected)
	}
}

func TestRankNaNSortsLast(t *testing.T) {
	alloc := NewAllocator(2, logger.NewNop())

	selected := alloc.rank([]float64{nan, 0.2, 0.1})
	if len(selected) != 2 || selected[0] != 1 || selected[1] != 2 {
		t.Errorf("expected [1 2], got %v", selected)
	}
}
