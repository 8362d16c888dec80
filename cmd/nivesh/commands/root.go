package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataPath     string
	strategyPath string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nivesh",
	Short: "NiveshBuddy - cross-sectional momentum backtester",
	Long: `NiveshBuddy Unified CLI

Cross-sectional momentum portfolio backtester with monthly
rebalancing. Compares lookback windows over one daily price file and
reports risk-adjusted performance.

Usage:
  go run ./cmd/nivesh [command]

Examples:
  go run ./cmd/nivesh run
  go run ./cmd/nivesh run --mode detailed --chart equity.png
  go run ./cmd/nivesh backtest --lookback 90
  go run ./cmd/nivesh api
  go run ./cmd/nivesh schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "price CSV path (default from DATA_PATH)")
	rootCmd.PersistentFlags().StringVar(&strategyPath, "strategy", "", "strategy YAML path (default from STRATEGY_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
