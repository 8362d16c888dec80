package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/api"
	"github.com/jsm1306/NiveshBuddy-Assignment/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health          - Health check
  GET  /api/strategies  - Loaded strategy configuration
  POST /api/backtests   - Run a backtest
  GET  /api/backtests   - List persisted runs

Example:
  go run ./cmd/nivesh api
  go run ./cmd/nivesh api --port 8089`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	printBanner("API Server")

	a, err := initApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	backtestHandler := handlers.NewBacktestHandler(a.orchestrator, a.repo, a.log)
	router := api.NewRouter(backtestHandler, a.log)
	server := api.New(a.cfg, a.log, router)

	go func() {
		if err := server.Start(); err != nil {
			a.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/strategies")
	fmt.Println("  POST /api/backtests")
	fmt.Println("  GET  /api/backtests")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	a.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
