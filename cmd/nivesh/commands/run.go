package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/analysis"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/pipeline"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/report"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/strategy"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full comparison workflow",
	Long: `Runs the full workflow: load and clean the price data, backtest
every configured lookback window, print per-strategy results and the
comparison table, and generate the AI strategy analysis.

Flags:
  --mode           analysis depth (quick|detailed)
  --skip-analysis  skip the Gemini analysis step
  --chart          write the equity curve chart PNG to this path
  --output         analysis output file (default: ai_suggestion.txt)

Example:
  go run ./cmd/nivesh run
  go run ./cmd/nivesh run --mode detailed
  go run ./cmd/nivesh run --skip-analysis --chart equity.png`,
	RunE: runWorkflow,
}

var (
	runMode         string
	runSkipAnalysis bool
	runChartPath    string
	runOutputPath   string
)

func init() {
	rootCmd.AddCommand(runCmd)

	// Flags
	runCmd.Flags().StringVar(&runMode, "mode", "", "analysis mode (quick|detailed, default from strategy config)")
	runCmd.Flags().BoolVar(&runSkipAnalysis, "skip-analysis", false, "skip the Gemini analysis step")
	runCmd.Flags().StringVar(&runChartPath, "chart", "", "write equity curve chart PNG to this path")
	runCmd.Flags().StringVar(&runOutputPath, "output", "ai_suggestion.txt", "analysis output file")
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	printBanner("Momentum Backtester")

	ctx := cmd.Context()

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Printf("\n📂 Data: %s\n", a.cfg.Data.CSVPath)
	fmt.Printf("🔍 Lookbacks: %v days, top %d assets\n",
		a.strategyCfg.Momentum.LookbacksDays, a.strategyCfg.Momentum.TopK)

	outcome, err := a.orchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("workflow failed: %w", err)
	}

	fmt.Printf("\n✅ Loaded %d trading days, %d assets (%s ~ %s)\n",
		outcome.Series.Len(),
		outcome.Series.NumAssets(),
		outcome.Series.StartDate().Format("2006-01-02"),
		outcome.Series.EndDate().Format("2006-01-02"))

	succeeded := outcome.Succeeded()
	for i := range succeeded {
		printRunSummary(&succeeded[i])
	}
	printComparison(succeeded)

	if runChartPath != "" {
		results := make([]*strategy.Result, 0, len(succeeded))
		for _, run := range succeeded {
			results = append(results, run.Result)
		}
		if err := report.WriteEquityChart(outcome.Series, results, runChartPath); err != nil {
			fmt.Printf("⚠️  Chart generation failed: %v\n", err)
		} else {
			fmt.Printf("📈 Equity curve written to %s\n", runChartPath)
		}
	}

	if runSkipAnalysis {
		fmt.Println("ℹ️  Analysis skipped (--skip-analysis)")
		return nil
	}

	if err := runAnalysis(cmd, a, succeeded); err != nil {
		// A backtest that completed is still useful without the
		// narrative; report and move on.
		fmt.Printf("\n⚠️  Analysis failed: %v\n", err)
	}

	return nil
}

// runAnalysis sends the comparison metrics to Gemini, prints the
// formatted narrative, and writes the raw text to the output file.
func runAnalysis(cmd *cobra.Command, a *app, succeeded []pipeline.StrategyOutcome) error {
	modeStr := runMode
	if modeStr == "" {
		modeStr = a.strategyCfg.Analysis.Mode
	}
	mode, err := analysis.ParseMode(modeStr)
	if err != nil {
		return err
	}

	runs := make([]analysis.StrategyMetrics, 0, len(succeeded))
	for _, run := range succeeded {
		runs = append(runs, analysis.StrategyMetrics{
			LookbackPeriodDays: run.LookbackDays,
			Metrics:            run.Metrics,
		})
	}

	analyzer, err := analysis.New(cmd.Context(), a.cfg, a.cache, a.log)
	if err != nil {
		return err
	}

	fmt.Printf("\n🤖 Requesting %s analysis from %s...\n", mode, a.cfg.Gemini.Model)

	text, err := analyzer.Analyze(cmd.Context(), analysis.NewComparison(runs...), mode)
	if err != nil {
		return err
	}

	fmt.Println()
	PrintDoubleSeparator()
	fmt.Println("  AI Strategy Analysis")
	PrintSeparator()
	fmt.Println(analysis.FormatAnalysis(text))
	PrintDoubleSeparator()

	if runOutputPath != "" {
		if err := os.WriteFile(runOutputPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write analysis file: %w", err)
		}
		fmt.Printf("💾 Analysis saved to %s\n", runOutputPath)
	}

	return nil
}
