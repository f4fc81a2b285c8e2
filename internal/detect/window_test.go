package detect

import (
	"fmt"
	"reflect"
	"testing"
)

func TestWindowEviction(t *testing.T) {
	w := NewWindow(5)
	for i := 0; i < 8; i++ {
		w.Add(fmt.Sprintf("span %d", i))
	}

	want := []string{"span 3", "span 4", "span 5", "span 6", "span 7"}
	if got := w.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
	if w.Len() != 5 {
		t.Errorf("Len() = %d, want 5", w.Len())
	}
}

func TestRecentContextJoinsLastThree(t *testing.T) {
	w := NewWindow(5)
	for _, s := range []string{"one", "two", "three", "four"} {
		w.Add(s)
	}

	if got := w.RecentContext(); got != "two three four" {
		t.Errorf("RecentContext() = %q", got)
	}
}

func TestAccumulated(t *testing.T) {
	w := NewWindow(5)

	w.Add("tell me about")
	if _, ok := w.Accumulated(); ok {
		t.Error("single entry should never accumulate")
	}

	w.Add("a time you failed at work")
	joined, ok := w.Accumulated()
	if !ok {
		t.Fatal("split question should accumulate")
	}
	if joined != "tell me about a time you failed at work" {
		t.Errorf("joined = %q", joined)
	}
}

func TestAccumulatedRejectsNonQuestion(t *testing.T) {
	w := NewWindow(5)
	w.Add("the weather is")
	w.Add("nice today I think")

	if joined, ok := w.Accumulated(); ok {
		t.Errorf("statement accumulated as question: %q", joined)
	}
}
