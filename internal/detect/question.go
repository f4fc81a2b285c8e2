// Package detect classifies transcript spans as complete interview questions
package detect

import "strings"

// Minimum words for a text to be considered at all.
const MinWords = 5

// Minimum words for the interrogative-opener rule.
const minStarterWords = 7

// incompleteEndings mark cut-off utterances; matching texts are rejected
// before any accept rule runs.
var incompleteEndings = []string{
	"what is...", "is...", "about...", "...", "so...", "like...", "the...",
}

// completeQuestionPhrases are canonical interview questions accepted on a
// substring match.
var completeQuestionPhrases = []string{
	"tell me about yourself",
	"describe yourself",
	"what are your strengths",
	"what are your weaknesses",
	"why should we hire you",
	"why do you want",
	"where do you see yourself",
	"describe a time",
	"give me an example",
	"how would you",
	"what would you do",
	"can you tell me about",
	"could you explain",
	"walk me through your",
	"run me through your",
}

// questionStarters are interrogative/imperative openers; texts long enough
// and starting with one are accepted.
var questionStarters = []string{
	"what", "why", "how", "when", "where", "who",
	"can you", "could you", "would you", "do you",
	"tell me", "explain", "describe", "define",
}

// IsQuestion reports whether text is likely a complete interview question.
// Pure pattern matching, evaluated in a fixed order: length gate,
// incomplete-ending rejection, question mark, canonical phrases, then
// opener plus length.
func IsQuestion(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	words := len(strings.Fields(text))

	if words < MinWords {
		return false
	}

	for _, ending := range incompleteEndings {
		if strings.HasSuffix(lower, ending) {
			return false
		}
	}

	if strings.Contains(text, "?") {
		return true
	}

	for _, phrase := range completeQuestionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	if words >= minStarterWords {
		for _, starter := range questionStarters {
			if strings.HasPrefix(lower, starter) {
				return true
			}
		}
	}

	return false
}
