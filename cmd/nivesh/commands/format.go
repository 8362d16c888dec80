package commands

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/metrics"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/pipeline"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// All commands share the same console output format.
// ═══════════════════════════════════════════════════════════

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// formatMetric renders a metric value, spelling out sentinels.
func formatMetric(v float64) string {
	switch {
	case math.IsNaN(v):
		return "N/A"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

// formatPercent renders a ratio as a signed percentage.
func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", v*100)
}

// printRunSummary prints one strategy run's full result block.
func printRunSummary(run *pipeline.StrategyOutcome) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %d-Day Momentum Strategy\n", run.LookbackDays)
	PrintSeparator()

	fmt.Printf("Trading Days:    %d\n", len(run.Result.Returns))
	fmt.Printf("Rebalances:      %d times\n", len(run.Result.RebalanceDays))
	fmt.Printf("Final Value:     %.4f\n", run.Result.FinalValue())
	fmt.Printf("Duration:        %.2f ms\n", float64(run.Result.Duration.Microseconds())/1000)
	fmt.Println()

	printMetrics(run.Metrics)
	printMonthlyTable(run)
}

// printMetrics prints the performance and risk metric block.
func printMetrics(m *metrics.Result) {
	fmt.Println("💰 Performance")
	fmt.Printf("Total Return:    %s\n", formatPercent(m.TotalReturn))
	fmt.Printf("CAGR:            %s\n", formatPercent(m.CAGR))
	fmt.Printf("Volatility:      %s\n", formatPercent(m.Volatility))
	fmt.Println()

	fmt.Println("📉 Risk Metrics")
	fmt.Printf("Sharpe Ratio:    %s", formatMetric(m.SharpeRatio))
	if !math.IsNaN(m.SharpeRatio) {
		if m.SharpeRatio > 2.0 {
			fmt.Print(" 🌟 (Excellent)")
		} else if m.SharpeRatio > 1.0 {
			fmt.Print(" ✅ (Good)")
		} else if m.SharpeRatio > 0 {
			fmt.Print(" ⚠️  (Fair)")
		} else {
			fmt.Print(" ❌ (Poor)")
		}
	}
	fmt.Println()

	fmt.Printf("Sortino Ratio:   %s\n", formatMetric(m.SortinoRatio))

	fmt.Printf("Max Drawdown:    %s", formatPercent(m.MaxDrawdown))
	dd := -m.MaxDrawdown
	if dd < 0.10 {
		fmt.Print(" 🌟 (Excellent)")
	} else if dd < 0.20 {
		fmt.Print(" ✅ (Good)")
	} else if dd < 0.30 {
		fmt.Print(" ⚠️  (Fair)")
	} else {
		fmt.Print(" ❌ (High)")
	}
	fmt.Println()
	fmt.Println()
}

// printMonthlyTable prints the month-by-month breakdown.
func printMonthlyTable(run *pipeline.StrategyOutcome) {
	if len(run.Monthly) == 0 {
		return
	}

	fmt.Println("📅 Monthly Breakdown")
	fmt.Printf("%-8s  %-10s  %-9s  %s\n", "Month", "Value", "Return", "Holdings")
	PrintSeparator()
	for _, row := range run.Monthly {
		fmt.Printf("%-8s  %-10.4f  %-9s  %s\n",
			row.Month,
			row.Value,
			fmt.Sprintf("%+.2f%%", row.ReturnPct),
			row.HoldingsLabel())
	}
	fmt.Println()
}

// printComparison prints the side-by-side comparison table for all
// completed runs and names the better performer.
func printComparison(runs []pipeline.StrategyOutcome) {
	if len(runs) < 2 {
		return
	}

	fmt.Println()
	PrintDoubleSeparator()
	fmt.Println("  Strategy Comparison")
	PrintSeparator()

	fmt.Printf("%-16s", "Metric")
	for _, run := range runs {
		fmt.Printf("  %12s", fmt.Sprintf("%d-Day", run.LookbackDays))
	}
	fmt.Println()
	PrintSeparator()

	rows := []struct {
		name  string
		value func(m *metrics.Result) string
	}{
		{"Total Return", func(m *metrics.Result) string { return formatPercent(m.TotalReturn) }},
		{"CAGR", func(m *metrics.Result) string { return formatPercent(m.CAGR) }},
		{"Volatility", func(m *metrics.Result) string { return formatPercent(m.Volatility) }},
		{"Max Drawdown", func(m *metrics.Result) string { return formatPercent(m.MaxDrawdown) }},
		{"Sharpe Ratio", func(m *metrics.Result) string { return formatMetric(m.SharpeRatio) }},
		{"Sortino Ratio", func(m *metrics.Result) string { return formatMetric(m.SortinoRatio) }},
	}

	for _, row := range rows {
		fmt.Printf("%-16s", row.name)
		for _, run := range runs {
			fmt.Printf("  %12s", row.value(run.Metrics))
		}
		fmt.Println()
	}
	fmt.Println()

	best := runs[0]
	for _, run := range runs[1:] {
		if betterSharpe(run.Metrics.SharpeRatio, best.Metrics.SharpeRatio) {
			best = run
		}
	}
	fmt.Printf("💡 Best risk-adjusted performer: %d-day momentum (Sharpe %s)\n",
		best.LookbackDays, formatMetric(best.Metrics.SharpeRatio))
	fmt.Println()
}

// betterSharpe treats any defined ratio as better than NaN.
func betterSharpe(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

// printBanner prints the command banner line.
func printBanner(title string) {
	fmt.Printf("=== NiveshBuddy %s ===\n", strings.TrimSpace(title))
}
