package strategy

import (
	"math"
	"testing"
)

func TestDailyReturnsFirstDayUndefined(t *testing.T) {
	series := makeSeries(t, []string{"A"}, [][]float64{
		{100}, {110},
	})

	returns := NewAccountant().DailyReturns(series)

	if !math.IsNaN(returns[0][0]) {
		t.Errorf("expected NaN on day 0, got %v", returns[0][0])
	}
	if math.Abs(returns[1][0]-0.10) > 1e-12 {
		t.Errorf("expected 0.10, got %v", returns[1][0])
	}
}

func TestCompoundSkipsUndefinedReturns(t *testing.T) {
	returns := [][]float64{
		{math.NaN(), 0.10},
		{0.05, math.NaN()},
	}
	weights := [][]float64{
		{0.5, 0.5},
		{0.5, 0.5},
	}

	portReturns, portValues := NewAccountant().Compound(returns, weights)

	// Undefined asset returns contribute zero, they never poison the
	// portfolio return.
	if math.Abs(portReturns[0]-0.05) > 1e-12 {
		t.Errorf("day 0: expected 0.05, got %v", portReturns[0])
	}
	if math.Abs(portReturns[1]-0.025) > 1e-12 {
		t.Errorf("day 1: expected 0.025, got %v", portReturns[1])
	}

	wantValue := 1.05 * 1.025
	if math.Abs(portValues[1]-wantValue) > 1e-12 {
		t.Errorf("expected final value %v, got %v", wantValue, portValues[1])
	}
}

func TestCompoundStartsFromUnitBasis(t *testing.T) {
	returns := [][]float64{{0.0}, {0.0}}
	weights := [][]float64{{1.0}, {1.0}}

	_, portValues := NewAccountant().Compound(returns, weights)

	for i, v := range portValues {
		if v != 1.0 {
			t.Errorf("day %d: expected 1.0 with zero returns, got %v", i, v)
		}
	}
}

func TestCompoundAllCashHoldsValue(t *testing.T) {
	series := makeSeries(t, []string{"A", "B"}, [][]float64{
		{100, 200}, {90, 210}, {80, 220},
	})

	acct := NewAccountant()
	returns := acct.DailyReturns(series)

	weights := make([][]float64, series.Len())
	for i := range weights {
		weights[i] = make([]float64, 2)
	}

	portReturns, portValues := acct.Compound(returns, weights)
	for i := range portReturns {
		if portReturns[i] != 0 {
			t.Errorf("day %d: all-cash return should be 0, got %v", i, portReturns[i])
		}
		if portValues[i] != 1.0 {
			t.Errorf("day %d: all-cash value should stay 1.0, got %v", i, portValues[i])
		}
	}
}
