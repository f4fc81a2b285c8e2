// Package orchestrator drives the poll loop from transcript spans to answers
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stagewhisper/platform/internal/dedup"
	"github.com/stagewhisper/platform/internal/detect"
	"github.com/stagewhisper/platform/internal/llm"
	"github.com/stagewhisper/platform/internal/observability"
	"github.com/stagewhisper/platform/internal/profile"
	"github.com/stagewhisper/platform/internal/syncx"
	"github.com/stagewhisper/platform/internal/trace"
)

// EventType discriminates presentation events.
type EventType string

const (
	EventStatus     EventType = "status"
	EventTranscript EventType = "transcript"
	EventQuestion   EventType = "question"
	EventAnswer     EventType = "answer"
)

// Event is one presentation-layer notification.
type Event struct {
	Type EventType `json:"type"`
	Text string    `json:"text,omitempty"`
}

// AudioStopper releases the capture device on shutdown.
type AudioStopper interface {
	Stop()
}

// doneNotifier is implemented by sources whose stream can end on its own,
// such as a capture device being unplugged.
type doneNotifier interface {
	Done() <-chan struct{}
}

// SegmentCloser unblocks the transcription worker on shutdown.
type SegmentCloser interface {
	Close()
}

// Config holds the orchestrator tunables.
type Config struct {
	PollInterval     time.Duration
	ContextWindow    int
	HistorySize      int
	MinQuestionWords int
}

// Orchestrator polls the latest transcript span, gates it through question
// detection and duplicate suppression, and turns accepted questions into
// answers. Window and history are guarded by one mutex so the manual ask
// path can share them with the poll loop.
type Orchestrator struct {
	provider llm.Provider
	prof     *profile.Profile
	lastSpan *syncx.Mailbox[string]
	source   AudioStopper
	segments SegmentCloser
	cfg      Config

	mu        sync.Mutex
	window    *detect.Window
	history   *dedup.History
	answering bool

	events     chan Event
	stopCh     chan struct{}
	stopOnce   sync.Once
	done       chan struct{}
	sourceDone <-chan struct{} // nil when the source cannot fail on its own
}

// New creates an orchestrator. source and segments may be nil when the
// caller owns pipeline shutdown itself.
func New(provider llm.Provider, prof *profile.Profile, lastSpan *syncx.Mailbox[string], source AudioStopper, segments SegmentCloser, cfg Config) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		prof:     prof,
		lastSpan: lastSpan,
		source:   source,
		segments: segments,
		cfg:      cfg,
		window:   detect.NewWindow(cfg.ContextWindow),
		history:  dedup.NewHistory(cfg.HistorySize),
		events:   make(chan Event, eventBuffer),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	if dn, ok := source.(doneNotifier); ok {
		o.sourceDone = dn.Done()
	}
	return o
}

// Events returns the presentation event stream.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// Answering reports whether detected questions are being answered.
func (o *Orchestrator) Answering() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.answering
}

// SetAnswering toggles answer generation. Transcription continues either
// way; only the question gate is affected.
func (o *Orchestrator) SetAnswering(enabled bool) {
	o.mu.Lock()
	o.answering = enabled
	o.mu.Unlock()

	state := "answering stopped"
	if enabled {
		state = "answering started"
	}
	trace.Logger(context.Background()).Info("answering state changed", "enabled", enabled)
	o.emit(Event{Type: EventStatus, Text: state})
}

// Run executes the poll loop until the context is cancelled or Stop is
// called. Answer generation blocks the loop; spans arriving meanwhile
// collapse into the latest one.
func (o *Orchestrator) Run(ctx context.Context) {
	defer close(o.done)

	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-o.stopCh:
			return
		case <-o.sourceDone:
			// Expected during shutdown; anything else means the device died.
			if o.Listening() {
				trace.Logger(ctx).Error("audio source stopped unexpectedly, ending pipeline")
				o.emit(Event{Type: EventStatus, Text: "listening stopped"})
				o.Stop()
			}
			return
		case <-ticker.C:
			text, ok := o.lastSpan.Take()
			if !ok {
				continue
			}
			o.handleSpan(ctx, text)
		}
	}
}

// Done is closed when the poll loop has exited.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.done
}

// Stop shuts down the pipeline: release the audio device, unblock the
// transcription worker, then end the poll loop. Safe to call twice.
func (o *Orchestrator) Stop() {
	o.stopOnce.Do(func() {
		if o.source != nil {
			o.source.Stop()
		}
		if o.segments != nil {
			o.segments.Close()
		}
		close(o.stopCh)
	})
}

// Listening reports whether the pipeline is still running.
func (o *Orchestrator) Listening() bool {
	select {
	case <-o.stopCh:
		return false
	default:
		return true
	}
}

// Ask answers a question supplied directly by the presentation layer,
// bypassing detection but still recorded in the duplicate history.
func (o *Orchestrator) Ask(ctx context.Context, question string) string {
	ctx, span := trace.StartSpan(ctx, "manual_ask")
	defer span.End()

	o.emit(Event{Type: EventQuestion, Text: question})
	answer := o.generate(ctx, question)
	o.emit(Event{Type: EventAnswer, Text: answer})

	o.mu.Lock()
	o.history.Add(question)
	o.mu.Unlock()
	return answer
}

func (o *Orchestrator) handleSpan(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	ctx, span := trace.StartSpan(ctx, "handle_span")
	defer span.End()
	span.SetAttr("words", len(strings.Fields(text)))

	o.mu.Lock()
	o.window.Add(text)
	candidate := ""
	if o.answering {
		if detect.IsQuestion(text) {
			candidate = text
		} else if joined, ok := o.window.Accumulated(); ok {
			candidate = joined
		}
		if candidate != "" {
			if o.history.IsDuplicate(candidate) {
				observability.DuplicatesSuppressed.Inc()
				trace.Logger(ctx).Debug("duplicate question suppressed", "question", candidate)
				candidate = ""
			} else if len(strings.Fields(candidate)) < o.cfg.MinQuestionWords {
				candidate = ""
			}
		}
	}
	o.mu.Unlock()

	if candidate == "" {
		o.emit(Event{Type: EventTranscript, Text: text})
		return
	}

	observability.QuestionsDetected.Inc()
	trace.Logger(ctx).Info("question detected", "question", candidate)
	o.emit(Event{Type: EventQuestion, Text: candidate})

	answer := o.generate(ctx, candidate)
	o.emit(Event{Type: EventAnswer, Text: answer})

	o.mu.Lock()
	o.history.Add(candidate)
	o.mu.Unlock()
}

// generate builds the prompt, calls the backend, and cleans the result.
// Backend failures become displayable text so the presentation layer always
// gets an answer event for every question event.
func (o *Orchestrator) generate(ctx context.Context, question string) string {
	o.mu.Lock()
	recent := o.window.RecentContext()
	o.mu.Unlock()

	start := time.Now()
	prompt := llm.BuildPrompt(question, o.prof, recent)
	raw, err := o.provider.Generate(ctx, prompt)
	if err != nil {
		observability.AnswerRequests.WithLabelValues(o.provider.Name(), "error").Inc()
		trace.Logger(ctx).Error("answer generation failed", "provider", o.provider.Name(), "error", err)
		return fmt.Sprintf("Error with %s: %v", o.provider.Name(), err)
	}
	observability.AnswerRequests.WithLabelValues(o.provider.Name(), "ok").Inc()
	observability.AnswerLatency.Observe(time.Since(start).Seconds())
	return llm.CleanResponse(raw)
}

func (o *Orchestrator) emit(ev Event) {
	select {
	case o.events <- ev:
	default:
		trace.Logger(context.Background()).Debug("event dropped, consumer too slow", "type", ev.Type)
	}
}
