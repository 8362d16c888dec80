package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/scheduler"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run backtests on a cron schedule",
	Long: `Re-runs the comparison workflow on a cron schedule, picking up
new rows appended to the price data file. Results are persisted when
DATABASE_URL is configured.

The cron expression includes a seconds field.

Example:
  go run ./cmd/nivesh schedule
  go run ./cmd/nivesh schedule --cron "0 30 18 * * MON-FRI"`,
	RunE: runScheduler,
}

var (
	scheduleCron string
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	// Flags: default fires at 18:30 on weekdays, after market close.
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "0 30 18 * * MON-FRI", "cron expression (with seconds)")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	printBanner("Scheduler")

	a, err := initApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	sched := scheduler.New(a.log)

	job := jobs.NewBacktestJob(a.orchestrator, scheduleCron, a.log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	sched.Start()

	fmt.Printf("\n✅ Scheduler running (cron: %q)\n", scheduleCron)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
