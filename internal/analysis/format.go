package analysis

import (
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// FormatAnalysis converts the model's markdown output into plain
// console text: section rules for headers, bullets normalized,
// bold markers stripped.
func FormatAnalysis(text string) string {
	lines := strings.Split(text, "\n")
	formatted := make([]string, 0, len(lines))

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "###"):
			subheader := strings.TrimSpace(strings.TrimPrefix(line, "###"))
			formatted = append(formatted, "", "  * "+subheader, "")

		case strings.HasPrefix(line, "##"):
			header := strings.TrimSpace(strings.TrimPrefix(line, "##"))
			formatted = append(formatted,
				"",
				strings.Repeat("-", 70),
				"  > "+strings.ToUpper(header),
				strings.Repeat("-", 70),
				"")

		case strings.Contains(line, "**"):
			formatted = append(formatted, boldPattern.ReplaceAllString(line, ">>> $1 <<<"))

		case strings.HasPrefix(strings.TrimSpace(line), "-"):
			item := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
			formatted = append(formatted, "    * "+item)

		default:
			if strings.TrimSpace(line) != "" {
				formatted = append(formatted, line)
			} else {
				formatted = append(formatted, "")
			}
		}
	}

	return strings.Join(formatted, "\n")
}
