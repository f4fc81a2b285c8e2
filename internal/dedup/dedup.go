// Package dedup suppresses near-duplicate questions via token-set similarity
package dedup

import "strings"

// Duplicate threshold and how far back to compare.
const (
	SimilarityThreshold = 0.70
	checkDepth          = 3
)

// Jaccard computes token-set similarity between two texts: tokens are
// lower-cased whitespace-split words, similarity = |A∩B| / |A∪B|.
// Symmetric, bounded in [0,1].
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok] = struct{}{}
	}
	return set
}

// History is a bounded FIFO of recently answered questions, used purely
// for duplicate suppression.
type History struct {
	max   int
	items []string
}

// NewHistory creates a history keeping at most max questions.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add records an answered question, evicting the oldest past the bound.
func (h *History) Add(question string) {
	h.items = append(h.items, question)
	if len(h.items) > h.max {
		h.items = h.items[len(h.items)-h.max:]
	}
}

// IsDuplicate reports whether candidate is too similar to one of the most
// recently answered questions. Only the last few entries are checked, a
// recency-biased approximation rather than exhaustive dedup.
func (h *History) IsDuplicate(candidate string) bool {
	start := len(h.items) - checkDepth
	if start < 0 {
		start = 0
	}
	for _, prev := range h.items[start:] {
		if Jaccard(candidate, prev) > SimilarityThreshold {
			return true
		}
	}
	return false
}

// Items returns a copy of the history, oldest first.
func (h *History) Items() []string {
	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}
