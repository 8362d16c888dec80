package analysis

import "fmt"

// Mode selects the depth of the narrative analysis.
type Mode string

const (
	// ModeQuick asks for five concise bullet insights.
	ModeQuick Mode = "quick"
	// ModeDetailed asks for a full structured breakdown.
	ModeDetailed Mode = "detailed"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeQuick, ModeDetailed:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("mode must be 'quick' or 'detailed', got %q", s)
	}
}

// BuildPrompt assembles the analysis prompt around the metrics JSON.
// The model is instructed to reason only from the provided data.
func BuildPrompt(metricsJSON string, mode Mode) (string, error) {
	switch mode {
	case ModeQuick:
		return fmt.Sprintf(`You are a quantitative portfolio analyst evaluating two momentum strategies.

Analyze ONLY the provided JSON metrics below.

STRATEGY METRICS (JSON):
%s

Return a concise analysis with ONLY 5 bullet insights:

WINNER:
- Which strategy performs better overall?

KEY DIFFERENCE:
- What is the most significant performance gap?

RISK NOTE:
- What is the main risk trade-off?

ONE IMPROVEMENT IDEA:
- Suggest a single realistic enhancement.

TONE:
- Use percentages for metrics.
- Maximum 5 bullets total.
- Be concise and business-readable.
- No long essays.
- Reason ONLY from provided JSON.
- Maintain professional fintech analyst tone.`, metricsJSON), nil

	case ModeDetailed:
		return fmt.Sprintf(`You are a quantitative portfolio analyst evaluating two momentum strategies.

Analyze ONLY the provided JSON metrics below.

STRATEGY METRICS (JSON):
%s

Return your analysis in the following structured sections:

PERFORMANCE COMPARISON:
- Compare returns, CAGR, and risk-adjusted metrics across both strategies.
- Use specific values from the JSON data.

RISK VS RETURN ANALYSIS:
- Explain the efficiency frontier positions.
- Discuss drawdown, volatility, and Sharpe ratio trade-offs.
- Determine which strategy offers better risk-adjusted returns.

WHEN EACH STRATEGY OUTPERFORMS:
- Describe market conditions where the shorter-lookback strategy excels.
- Describe market conditions where the longer-lookback strategy excels.
- Specify risk tolerance scenarios.

IMPROVEMENT SUGGESTION:
- Propose ONE actionable enhancement to the underperforming strategy.
- Explain how it would improve the metrics.
- Be concrete and implementable.

STYLE CONSTRAINTS:
- Use percentages when referring to metrics.
- Ground every claim directly in the provided JSON data.
- Maintain professional fintech analyst tone.
- Allow depth but avoid unnecessary length.
- Quantify all comparisons with actual numbers, not vague language.`, metricsJSON), nil

	default:
		return "", fmt.Errorf("mode must be 'quick' or 'detailed', got %q", mode)
	}
}
