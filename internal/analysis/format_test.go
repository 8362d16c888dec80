package analysis

import (
	"strings"
	"testing"
)

func TestFormatAnalysisHeaders(t *testing.T) {
	got := FormatAnalysis("## Performance Comparison")

	if !strings.Contains(got, "> PERFORMANCE COMPARISON") {
		t.Errorf("expected uppercased section header, got %q", got)
	}
	if !strings.Contains(got, strings.Repeat("-", 70)) {
		t.Errorf("expected section rules, got %q", got)
	}
}

func TestFormatAnalysisSubheaders(t *testing.T) {
	got := FormatAnalysis("### Risk Note")

	if !strings.Contains(got, "  * Risk Note") {
		t.Errorf("expected subheader bullet, got %q", got)
	}
}

func TestFormatAnalysisBoldAndBullets(t *testing.T) {
	got := FormatAnalysis("The **90-day** strategy wins\n- higher Sharpe ratio")

	if !strings.Contains(got, ">>> 90-day <<<") {
		t.Errorf("expected bold markers replaced, got %q", got)
	}
	if !strings.Contains(got, "    * higher Sharpe ratio") {
		t.Errorf("expected normalized bullet, got %q", got)
	}
}

func TestFormatAnalysisPassthrough(t *testing.T) {
	plain := "Both strategies compound monthly."
	if got := FormatAnalysis(plain); got != plain {
		t.Errorf("plain text must pass through unchanged, got %q", got)
	}
}
