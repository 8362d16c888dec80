package marketdata

import (
	"fmt"
	"math"
	"time"
)

// Series is a cleaned, chronologically sorted table of per-asset
// prices indexed by trading day. Row i of Prices holds the prices for
// Dates[i], column j for Assets[j]. Missing values are NaN only in the
// raw (pre-clean) form; a cleaned Series contains finite prices.
type Series struct {
	Dates  []time.Time
	Assets []string
	Prices [][]float64
}

// Len returns the number of trading days.
func (s *Series) Len() int {
	return len(s.Dates)
}

// NumAssets returns the number of asset columns.
func (s *Series) NumAssets() int {
	return len(s.Assets)
}

// Validate checks the Series invariants: at least one trading day, at
// least one asset column, strictly increasing dates with no
// duplicates, and a price row per date.
func (s *Series) Validate() error {
	if len(s.Dates) == 0 {
		return fmt.Errorf("price series is empty")
	}
	if len(s.Assets) == 0 {
		return fmt.Errorf("price series has no asset columns")
	}
	if len(s.Prices) != len(s.Dates) {
		return fmt.Errorf("price rows (%d) do not match dates (%d)", len(s.Prices), len(s.Dates))
	}

	for i, row := range s.Prices {
		if len(row) != len(s.Assets) {
			return fmt.Errorf("row %d has %d prices, want %d", i, len(row), len(s.Assets))
		}
	}

	for i := 1; i < len(s.Dates); i++ {
		if !s.Dates[i].After(s.Dates[i-1]) {
			return fmt.Errorf("dates not strictly increasing at row %d (%s >= %s)",
				i, s.Dates[i-1].Format("2006-01-02"), s.Dates[i].Format("2006-01-02"))
		}
	}

	return nil
}

// HasMissing reports whether any price cell is NaN.
func (s *Series) HasMissing() bool {
	for _, row := range s.Prices {
		for _, p := range row {
			if math.IsNaN(p) {
				return true
			}
		}
	}
	return false
}

// StartDate returns the first trading day.
func (s *Series) StartDate() time.Time {
	if len(s.Dates) == 0 {
		return time.Time{}
	}
	return s.Dates[0]
}

// EndDate returns the last trading day.
func (s *Series) EndDate() time.Time {
	if len(s.Dates) == 0 {
		return time.Time{}
	}
	return s.Dates[len(s.Dates)-1]
}
