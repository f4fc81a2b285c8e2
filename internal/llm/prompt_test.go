package llm

import (
	"strings"
	"testing"

	"github.com/stagewhisper/platform/internal/profile"
)

func TestBuildPromptFull(t *testing.T) {
	p := &profile.Profile{
		Company:           "Acme Corp",
		Position:          "Platform Engineer",
		SelfIntro:         "I build streaming systems.",
		CompanyBackground: "Acme ships rockets.",
	}

	prompt := BuildPrompt("Why do you want to work here?", p, "some earlier context")

	for _, want := range []string{
		`Question: "Why do you want to work here?"`,
		"- Company: Acme Corp",
		"- Position: Platform Engineer",
		"Candidate Background:\nI build streaming systems.",
		"Company Research:\nAcme ships rockets.",
		"Recent Context: some earlier context",
		"2-3 main points",
		"No labels or meta-commentary",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptOmitsContextEqualToQuestion(t *testing.T) {
	q := "Tell me about yourself please"
	prompt := BuildPrompt(q, nil, q)

	if strings.Contains(prompt, "Recent Context") {
		t.Error("context identical to the question should be omitted")
	}
}

func TestBuildPromptTruncatesProfile(t *testing.T) {
	p := &profile.Profile{
		Company:   "Acme",
		SelfIntro: strings.Repeat("a", 1200),
	}

	prompt := BuildPrompt("What are your strengths?", p, "")
	if strings.Contains(prompt, strings.Repeat("a", 501)) {
		t.Error("self intro should be truncated to 500 chars")
	}
	if !strings.Contains(prompt, strings.Repeat("a", 500)) {
		t.Error("truncated intro should still be present")
	}
}

func TestBuildPromptMinimal(t *testing.T) {
	prompt := BuildPrompt("How would you design a rate limiter?", nil, "")

	if strings.Contains(prompt, "Interview Details") {
		t.Error("empty profile should add no details section")
	}
	if strings.Contains(prompt, "Candidate Background") {
		t.Error("empty intro should add no background section")
	}
}
