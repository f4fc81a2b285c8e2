package llm

import (
	"fmt"
	"strings"

	"github.com/stagewhisper/platform/internal/profile"
)

// Profile texts are truncated to keep prompts lean.
const profileCharLimit = 500

// BuildPrompt assembles the answer-generation prompt from the question,
// the static interview profile, and recent transcript context.
func BuildPrompt(question string, p *profile.Profile, recentContext string) string {
	var b strings.Builder

	b.WriteString("You are helping answer an interview question.\n\n")
	fmt.Fprintf(&b, "Question: %q\n", question)

	if p != nil && (p.Company != "" || p.Position != "") {
		b.WriteString("\nInterview Details:\n")
		fmt.Fprintf(&b, "- Company: %s\n", orNA(p.Company))
		fmt.Fprintf(&b, "- Position: %s\n", orNA(p.Position))
	}

	if p != nil && p.SelfIntro != "" {
		fmt.Fprintf(&b, "\nCandidate Background:\n%s\n", truncate(p.SelfIntro, profileCharLimit))
	}
	if p != nil && p.CompanyBackground != "" {
		fmt.Fprintf(&b, "\nCompany Research:\n%s\n", truncate(p.CompanyBackground, profileCharLimit))
	}

	if recentContext != "" && recentContext != question {
		fmt.Fprintf(&b, "\nRecent Context: %s\n", recentContext)
	}

	b.WriteString(`
Provide a concise answer:
- 2-3 main points
- Use candidate's background if relevant
- Natural tone
- No labels or meta-commentary`)

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
