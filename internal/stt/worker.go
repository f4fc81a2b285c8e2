package stt

import (
	"context"
	"strings"
	"time"

	"github.com/stagewhisper/platform/internal/audio"
	"github.com/stagewhisper/platform/internal/observability"
	"github.com/stagewhisper/platform/internal/syncx"
	"github.com/stagewhisper/platform/internal/trace"
	"github.com/stagewhisper/platform/internal/transcript"
)

// Pause between segments so bursty arrivals don't spin the loop.
const interSegmentPause = 250 * time.Millisecond

// Worker is the single consumer of the segment queue. It transcribes each
// segment, appends resulting spans to the transcript log, and overwrites
// the last-span mailbox. A nil segment on the queue ends the loop.
type Worker struct {
	transcriber Transcriber
	queue       <-chan *audio.Segment
	log         *transcript.Store
	lastSpan    *syncx.Mailbox[string]
	opts        Options
	done        chan struct{}
}

// NewWorker creates a transcription worker. Run must be invoked to start it.
func NewWorker(t Transcriber, queue <-chan *audio.Segment, log *transcript.Store, lastSpan *syncx.Mailbox[string], opts Options) *Worker {
	return &Worker{
		transcriber: t,
		queue:       queue,
		log:         log,
		lastSpan:    lastSpan,
		opts:        opts,
		done:        make(chan struct{}),
	}
}

// Done is closed when the worker loop has exited.
func (w *Worker) Done() <-chan struct{} { return w.done }

// Run pulls segments until the sentinel arrives or ctx is cancelled.
// Per-segment failures are logged and skipped; they never end the loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case seg := <-w.queue:
			if seg == nil {
				return
			}
			w.process(ctx, seg)

			select {
			case <-ctx.Done():
				return
			case <-time.After(interSegmentPause):
			}
		}
	}
}

func (w *Worker) process(ctx context.Context, seg *audio.Segment) {
	ctx, span := trace.StartSpan(ctx, "transcribe_segment")
	defer span.End()
	span.SetAttr("duration_s", seg.Duration())

	log := trace.Logger(ctx)
	started := time.Now()

	spans, err := w.transcriber.Transcribe(ctx, seg.WAV, w.opts)
	observability.TranscriptionLatency.Observe(time.Since(started).Seconds())
	if err != nil {
		observability.TranscriptionRequests.WithLabelValues("error").Inc()
		span.SetAttr("error", err.Error())
		log.Error("transcription error, skipping segment", "error", err)
		return
	}
	observability.TranscriptionRequests.WithLabelValues("ok").Inc()

	for _, sp := range spans {
		text := strings.TrimSpace(sp.Text)
		if text == "" {
			continue
		}
		log.Info("transcribed", "start", sp.Start, "end", sp.End, "text", text)
		w.log.Add(sp.Start, sp.End, text)
		w.lastSpan.Put(text)
	}
}
