package llm

import (
	"regexp"
	"strings"
)

// Backends decorate answers with labels and meta-commentary despite being
// told not to; strip the known patterns before display.
var (
	prefixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\*\*Answer:\*\*\s*`),
		regexp.MustCompile(`(?i)^Answer:\s*`),
		regexp.MustCompile(`(?i)^\*\*Response:\*\*\s*`),
	}
	trailerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\n?\*\([^)]+\)\*?\s*$`),
		regexp.MustCompile(`\n?\([^)]+\)\s*$`),
		regexp.MustCompile(`(?s)\n?\*?\(Key points:.*?\)\*?\s*$`),
	}
)

// CleanResponse strips boilerplate prefixes and trailing meta-commentary
// from a raw backend answer. Pure text transform.
func CleanResponse(response string) string {
	for _, re := range prefixPatterns {
		response = re.ReplaceAllString(response, "")
	}
	for _, re := range trailerPatterns {
		response = re.ReplaceAllString(response, "")
	}
	return strings.TrimSpace(response)
}
