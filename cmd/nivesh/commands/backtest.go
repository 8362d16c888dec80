package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// backtestCmd represents the backtest command
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a single backtest",
	Long: `Backtests one momentum lookback window and prints its metrics.

Flags:
  --lookback   momentum lookback window in trading days (required)
  --top        number of assets to hold (default from strategy config)

Example:
  go run ./cmd/nivesh backtest --lookback 30
  go run ./cmd/nivesh backtest --lookback 90 --top 2
  go run ./cmd/nivesh backtest --lookback 90 --data data/assets.csv`,
	RunE: runSingleBacktest,
}

var (
	backtestLookback int
	backtestTop      int
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	// Flags
	backtestCmd.Flags().IntVar(&backtestLookback, "lookback", 0, "momentum lookback window (trading days, required)")
	backtestCmd.Flags().IntVar(&backtestTop, "top", 0, "number of assets to hold")

	backtestCmd.MarkFlagRequired("lookback")
}

func runSingleBacktest(cmd *cobra.Command, args []string) error {
	printBanner("Backtest")

	ctx := cmd.Context()

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Printf("\n📂 Data: %s\n", a.cfg.Data.CSVPath)
	fmt.Printf("🔍 Lookback: %d days\n", backtestLookback)

	run, err := a.orchestrator.RunOne(ctx, backtestLookback, backtestTop)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	printRunSummary(run)

	return nil
}
