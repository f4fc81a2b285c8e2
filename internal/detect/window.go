package detect

import "strings"

// How many trailing window entries feed the accumulated check and the
// prompt context.
const joinDepth = 3

// Window is a bounded FIFO of recent raw transcript strings, used to
// reconstruct questions that speech segmentation split across spans and to
// enrich prompts with recent context.
type Window struct {
	max   int
	items []string
}

// NewWindow creates a window holding at most max entries.
func NewWindow(max int) *Window {
	return &Window{max: max}
}

// Add appends one transcript string, evicting the oldest past the bound.
func (w *Window) Add(text string) {
	w.items = append(w.items, text)
	if len(w.items) > w.max {
		w.items = w.items[len(w.items)-w.max:]
	}
}

// Len returns the current entry count.
func (w *Window) Len() int { return len(w.items) }

// Items returns a copy of the window contents, oldest first.
func (w *Window) Items() []string {
	out := make([]string, len(w.items))
	copy(out, w.items)
	return out
}

// RecentContext joins the last entries for prompt context.
func (w *Window) RecentContext() string {
	return strings.Join(w.tail(), " ")
}

// Accumulated joins the trailing entries and reports whether the combined
// text forms a complete question. This recovers questions split across
// multiple transcription spans. Requires at least two entries.
func (w *Window) Accumulated() (string, bool) {
	if len(w.items) < 2 {
		return "", false
	}
	joined := strings.Join(w.tail(), " ")
	if IsQuestion(joined) {
		return joined, true
	}
	return "", false
}

func (w *Window) tail() []string {
	if len(w.items) <= joinDepth {
		return w.items
	}
	return w.items[len(w.items)-joinDepth:]
}
