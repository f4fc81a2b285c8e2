package llm

import "testing"

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			"prefix and key points trailer",
			"**Answer:** Sure, here's my response. (Key points: clarity, brevity)",
			"Sure, here's my response.",
		},
		{
			"plain answer prefix",
			"Answer: Lead with impact.",
			"Lead with impact.",
		},
		{
			"case insensitive prefix",
			"ANSWER: Lead with impact.",
			"Lead with impact.",
		},
		{
			"response prefix",
			"**Response:** Keep it short.",
			"Keep it short.",
		},
		{
			"trailing parenthetical",
			"Talk about ownership.\n(This shows leadership qualities)",
			"Talk about ownership.",
		},
		{
			"starred parenthetical",
			"Talk about ownership.\n*(adjust to your experience)*",
			"Talk about ownership.",
		},
		{
			"multiline key points",
			"Good answer here.\n(Key points: one,\ntwo,\nthree)",
			"Good answer here.",
		},
		{
			"untouched",
			"A clean answer with (an inline aside) in the middle stays.",
			"A clean answer with (an inline aside) in the middle stays.",
		},
		{
			"whitespace trim",
			"  padded  ",
			"padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.in); got != tt.out {
				t.Errorf("CleanResponse(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}
