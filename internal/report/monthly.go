package report

import (
	"fmt"
	"time"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/strategy"
)

// minDisplayWeight hides dust positions from the holdings column.
const minDisplayWeight = 0.01

// Holding is one asset position at a month end.
type Holding struct {
	Asset  string  `json:"asset"`
	Weight float64 `json:"weight"`
}

// MonthlyRow summarizes one calendar month of a strategy run: the
// portfolio value at the last trading day of the month, the
// month-over-month return, and the holdings in force at month end.
type MonthlyRow struct {
	Month     string    `json:"month"` // YYYY-MM
	EndDate   time.Time `json:"end_date"`
	Value     float64   `json:"value"`
	ReturnPct float64   `json:"return_pct"`
	Holdings  []Holding `json:"holdings"`
}

// MonthlyBreakdown groups a strategy run by calendar month. The first
// month's return is measured against the 1.0 starting basis.
func MonthlyBreakdown(series *marketdata.Series, result *strategy.Result) []MonthlyRow {
	rows := make([]MonthlyRow, 0)

	n := series.Len()
	for i := 0; i < n; i++ {
		date := series.Dates[i]
		isMonthEnd := i == n-1 ||
			series.Dates[i+1].Year() != date.Year() ||
			series.Dates[i+1].Month() != date.Month()
		if !isMonthEnd {
			continue
		}

		row := MonthlyRow{
			Month:   fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month())),
			EndDate: date,
			Value:   result.Values[i],
		}

		prevValue := 1.0
		if len(rows) > 0 {
			prevValue = rows[len(rows)-1].Value
		}
		row.ReturnPct = (row.Value/prevValue - 1.0) * 100

		for j, asset := range series.Assets {
			if w := result.Weights[i][j]; w > minDisplayWeight {
				row.Holdings = append(row.Holdings, Holding{Asset: asset, Weight: w})
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// HoldingsLabel renders the holdings of a row for console output,
// "Cash" when the month carried no positions.
func (r MonthlyRow) HoldingsLabel() string {
	if len(r.Holdings) == 0 {
		return "Cash"
	}

	label := ""
	for i, h := range r.Holdings {
		if i > 0 {
			label += ", "
		}
		label += fmt.Sprintf("%s (%.1f%%)", h.Asset, h.Weight*100)
	}
	return label
}
