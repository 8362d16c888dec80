package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/strategyconfig"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/config"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

const testCSV = `Date,A,B
2024-01-02,100,100
2024-01-03,110,105
2024-01-04,121,110.25
2024-02-01,121,110.25
2024-02-02,133.1,104.7375
2024-02-05,146.41,99.500625
`

func newTestOrchestrator(t *testing.T, lookbacks []int) *Orchestrator {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o644))

	cfg := &config.Config{
		Data: config.DataConfig{
			CSVPath:      csvPath,
			CleanCSVPath: filepath.Join(dir, "prices_clean.csv"),
		},
	}

	strategyCfg := strategyconfig.Default()
	strategyCfg.Momentum.LookbacksDays = lookbacks

	return New(cfg, strategyCfg, nil, logger.NewNop())
}

func TestRunComparesAllLookbacks(t *testing.T) {
	orch := newTestOrchestrator(t, []int{1, 2})

	outcome, err := orch.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, outcome.Runs, 2)
	assert.Len(t, outcome.Succeeded(), 2)

	for _, run := range outcome.Succeeded() {
		assert.NotNil(t, run.Result)
		assert.NotNil(t, run.Metrics)
		assert.NotEmpty(t, run.Monthly)
		assert.Equal(t, outcome.Series.Len(), len(run.Result.Returns))
	}
}

func TestRunWritesCleanCSV(t *testing.T) {
	orch := newTestOrchestrator(t, []int{1})

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(orch.cfg.Data.CleanCSVPath)
	assert.NoError(t, err, "clean CSV should be written")
}

func TestRunDegradesFailedLookback(t *testing.T) {
	// A negative lookback fails scoring; the valid one still runs.
	orch := newTestOrchestrator(t, []int{-1, 1})

	outcome, err := orch.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, outcome.Runs, 2)
	assert.Error(t, outcome.Runs[0].Err)
	assert.NoError(t, outcome.Runs[1].Err)
	assert.Len(t, outcome.Succeeded(), 1)
}

func TestRunAllFailed(t *testing.T) {
	orch := newTestOrchestrator(t, []int{-1})

	_, err := orch.Run(context.Background())
	assert.Error(t, err)
}

func TestRunOne(t *testing.T) {
	orch := newTestOrchestrator(t, []int{1})

	run, err := orch.RunOne(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, run.LookbackDays)
	assert.NotNil(t, run.Metrics)
	// topK 0 falls back to the strategy config default
	assert.Equal(t, 2, run.Result.Config.TopK)
}

func TestRunReloadsModifiedDataFile(t *testing.T) {
	orch := newTestOrchestrator(t, []int{1})

	first, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, first.Series.Len())

	// New trading days appended after the first run must be picked up,
	// not served from the cached series.
	appended := "2024-02-06,150,95\n2024-02-07,155,90\n"
	f, err := os.OpenFile(orch.cfg.Data.CSVPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(appended)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	second, err := orch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, second.Series.Len())

	for _, run := range second.Succeeded() {
		assert.Equal(t, 8, len(run.Result.Returns))
	}
}

func TestSeriesLoadedOnce(t *testing.T) {
	orch := newTestOrchestrator(t, []int{1})

	first, err := orch.Series(context.Background())
	require.NoError(t, err)
	second, err := orch.Series(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second, "series should be cached after first load")
}

func TestRunMissingDataFile(t *testing.T) {
	cfg := &config.Config{
		Data: config.DataConfig{CSVPath: filepath.Join(t.TempDir(), "missing.csv")},
	}
	orch := New(cfg, strategyconfig.Default(), nil, logger.NewNop())

	_, err := orch.Run(context.Background())
	assert.Error(t, err)
}
