package report

import (
	"fmt"
	"os"

	charts "github.com/vicanso/go-charts/v2"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/marketdata"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/strategy"
)

// RenderEquityChart renders the cumulative value curves of one or
// more strategy runs as a PNG line chart.
func RenderEquityChart(series *marketdata.Series, results []*strategy.Result) ([]byte, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no strategy results to chart")
	}

	values := make([][]float64, len(results))
	names := make([]string, len(results))
	for i, result := range results {
		if len(result.Values) != series.Len() {
			return nil, fmt.Errorf("result %d has %d values, series has %d days", i, len(result.Values), series.Len())
		}
		values[i] = result.Values
		names[i] = fmt.Sprintf("%d-day momentum", result.Config.LookbackDays)
	}

	xLabels := make([]string, series.Len())
	for i, date := range series.Dates {
		if series.Len() <= 60 {
			xLabels[i] = date.Format("Jan 02")
		} else {
			xLabels[i] = date.Format("Jan '06")
		}
	}

	splitNum := 6
	if len(xLabels) <= 30 {
		splitNum = len(xLabels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc("Momentum Strategy Comparison (basis 1.0)"),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return buf, nil
}

// WriteEquityChart renders the chart and writes it to path.
func WriteEquityChart(series *marketdata.Series, results []*strategy.Result, path string) error {
	buf, err := RenderEquityChart(series, results)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}

	return nil
}
