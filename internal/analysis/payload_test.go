package analysis

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/jsm1306/NiveshBuddy-Assignment/internal/metrics"
)

func testComparison() *Comparison {
	return NewComparison(
		StrategyMetrics{
			LookbackPeriodDays: 30,
			Metrics:            &metrics.Result{TotalReturn: 0.12, SharpeRatio: 1.1, MaxDrawdown: -0.08},
		},
		StrategyMetrics{
			LookbackPeriodDays: 90,
			Metrics:            &metrics.Result{TotalReturn: 0.18, SharpeRatio: 1.4, MaxDrawdown: -0.11},
		},
	)
}

func TestPayloadKeysByLookback(t *testing.T) {
	payload := testComparison().Payload()

	if _, ok := payload["strategy_30_day"]; !ok {
		t.Error("expected strategy_30_day key")
	}
	if _, ok := payload["strategy_90_day"]; !ok {
		t.Error("expected strategy_90_day key")
	}

	meta, ok := payload["metadata"].(map[string]string)
	if !ok {
		t.Fatal("expected metadata map")
	}
	if meta["rebalance_frequency"] != "monthly" {
		t.Errorf("expected monthly rebalance metadata, got %q", meta["rebalance_frequency"])
	}
}

func TestJSONRoundTrips(t *testing.T) {
	out, err := testComparison().JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if !strings.Contains(out, "sharpe_ratio") {
		t.Error("expected metric keys in payload JSON")
	}
}

func TestJSONEncodesSentinels(t *testing.T) {
	cmp := NewComparison(StrategyMetrics{
		LookbackPeriodDays: 30,
		Metrics: &metrics.Result{
			CAGR:         math.NaN(),
			SortinoRatio: math.Inf(1),
		},
	})

	out, err := cmp.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if !strings.Contains(out, `"cagr": null`) {
		t.Errorf("expected NaN as null, got %s", out)
	}
	if !strings.Contains(out, `"Infinity"`) {
		t.Errorf("expected Inf as string, got %s", out)
	}
}

func TestHashIsDeterministic(t *testing.T) {
	first, err := testComparison().Hash()
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, _ := testComparison().Hash()

	if first != second {
		t.Error("hash not deterministic")
	}
	if len(first) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(first))
	}
}
