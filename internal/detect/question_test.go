package detect

import (
	"strings"
	"testing"
)

func TestIsQuestionShortTexts(t *testing.T) {
	shorts := []string{
		"",
		"why",
		"tell me more",
		"what is your name", // 4 words
	}
	for _, text := range shorts {
		if IsQuestion(text) {
			t.Errorf("IsQuestion(%q) = true, want false for under-5-word text", text)
		}
	}
}

func TestIsQuestionQuestionMark(t *testing.T) {
	if !IsQuestion("Have you ever worked with Go?") {
		t.Error("text with ? should be a question")
	}
	if !IsQuestion("So you moved to Berlin, was that hard?") {
		t.Error("any 5+ word text containing ? should be a question")
	}
}

func TestIsQuestionIncompleteEndings(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"So the main thing we should talk about...", false},
		{"Could you please tell me what this is...", false},
		{"I was wondering something like...", false},
		// Incomplete-ending rejection beats the question-mark rule only
		// when the text actually ends in the marker.
		{"Do you know what the answer is...", false},
		{"Is that really what it is...?", true}, // ends in "?", not the marker
	}
	for _, tt := range tests {
		if got := IsQuestion(tt.text); got != tt.expected {
			t.Errorf("IsQuestion(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestIsQuestionCanonicalPhrases(t *testing.T) {
	accepted := []string{
		"Okay then, tell me about yourself please",
		"Alright so why should we hire you then",
		"Please describe a time you disagreed with a manager",
		"Now give me an example of handling conflict",
		"I'd like you to walk me through your resume",
	}
	for _, text := range accepted {
		if !IsQuestion(text) {
			t.Errorf("IsQuestion(%q) = false, want true via canonical phrase", text)
		}
	}
}

func TestIsQuestionStarters(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"what starter long", "What happens when two goroutines write the same map", true},
		{"explain starter long", "Explain the difference between a mutex and a channel", true},
		{"tell me starter long", "Tell me the story of your hardest production incident", true},
		{"starter but short", "What about the other thing", false}, // 5 words < 7
		{"long but no starter", "Yesterday we deployed the new release to every region", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuestion(tt.text); got != tt.expected {
				t.Errorf("IsQuestion(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestWindowBound(t *testing.T) {
	w := NewWindow(5)
	for i := 0; i < 8; i++ {
		w.Add(strings.Repeat("x", i+1))
	}

	items := w.Items()
	if len(items) != 5 {
		t.Fatalf("window size = %d, want 5", len(items))
	}
	// FIFO eviction keeps the last 5 in order.
	if items[0] != "xxxx" || items[4] != "xxxxxxxx" {
		t.Errorf("unexpected window contents: %v", items)
	}
}

func TestAccumulatedNeedsTwoEntries(t *testing.T) {
	w := NewWindow(5)
	w.Add("tell me about a time you failed at work today")

	if _, ok := w.Accumulated(); ok {
		t.Error("accumulated check should require at least two entries")
	}
}

func TestAccumulatedRecoversSplitQuestion(t *testing.T) {
	w := NewWindow(3)
	w.Add("tell me about")
	w.Add("a time you failed")
	w.Add("at work today")

	joined, ok := w.Accumulated()
	if !ok {
		t.Fatal("accumulated check should fire on the split question")
	}
	if joined != "tell me about a time you failed at work today" {
		t.Errorf("joined = %q", joined)
	}
}

func TestAccumulatedJoinsLastThreeOnly(t *testing.T) {
	w := NewWindow(5)
	w.Add("this entry is old and should not appear")
	w.Add("tell me about")
	w.Add("a time you failed")
	w.Add("at work today")

	joined, ok := w.Accumulated()
	if !ok {
		t.Fatal("accumulated check should fire")
	}
	if strings.Contains(joined, "old") {
		t.Errorf("joined should only use the last 3 entries: %q", joined)
	}
}

// The opener check is anchored at the start of the joined text, so filler
// ahead of the question defeats accumulation even when a later span would
// qualify on its own.
func TestAccumulatedRejectsFillerPrefix(t *testing.T) {
	w := NewWindow(3)
	w.Add("Um so")
	w.Add("a time you failed")
	w.Add("at work")

	if joined, ok := w.Accumulated(); ok {
		t.Errorf("filler-prefixed join accepted as question: %q", joined)
	}
}

func TestAccumulatedNonQuestion(t *testing.T) {
	w := NewWindow(5)
	w.Add("we shipped the release")
	w.Add("and then everyone went home")

	if _, ok := w.Accumulated(); ok {
		t.Error("non-question context should not fire")
	}
}
