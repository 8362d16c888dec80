package report

import (
	"bytes"
	"testing"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/strategy"
)

func TestRenderEquityChart(t *testing.T) {
	series, result := testRun()

	buf, err := RenderEquityChart(series, []*strategy.Result{result})
	if err != nil {
		t.Fatalf("RenderEquityChart failed: %v", err)
	}

	// PNG magic bytes
	if !bytes.HasPrefix(buf, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("expected PNG output")
	}
}

func TestRenderEquityChartNoResults(t *testing.T) {
	series, _ := testRun()

	if _, err := RenderEquityChart(series, nil); err == nil {
		t.Error("expected error with no results")
	}
}

func TestRenderEquityChartLengthMismatch(t *testing.T) {
	series, result := testRun()
	result.Values = result.Values[:2]

	if _, err := RenderEquityChart(series, []*strategy.Result{result}); err == nil {
		t.Error("expected error for misaligned value series")
	}
}
