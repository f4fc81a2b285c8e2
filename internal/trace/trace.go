// Package trace provides lightweight request tracing with W3C-style IDs.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"
)

// Header names used for HTTP propagation.
const (
	TraceIDHeader = "x-trace-id"
	SpanIDHeader  = "x-span-id"
)

type ctxKey struct{}

// Context identifies one span within a trace.
type Context struct {
	TraceID      string
	SpanID       string
	ParentSpanID string
}

// New creates a trace context with fresh identifiers.
func New() Context {
	return Context{TraceID: newID(16), SpanID: newID(8)}
}

// Child derives a new span under the same trace.
func (c Context) Child() Context {
	return Context{TraceID: c.TraceID, SpanID: newID(8), ParentSpanID: c.SpanID}
}

// FromContext extracts the trace context, if any.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(ctxKey{}).(Context)
	return tc, ok
}

// WithContext attaches a trace context.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc)
}

func newID(bytes int) string {
	b := make([]byte, bytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Span is a timed operation within a trace.
type Span struct {
	Name    string
	Ctx     Context
	started time.Time
	ended   time.Time
	attrs   []slog.Attr
}

// StartSpan begins a span, deriving from any trace already in ctx.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	tc, ok := FromContext(ctx)
	if ok {
		tc = tc.Child()
	} else {
		tc = New()
	}
	s := &Span{Name: name, Ctx: tc, started: time.Now()}
	return WithContext(ctx, tc), s
}

// SetAttr records a span attribute.
func (s *Span) SetAttr(key string, val any) {
	s.attrs = append(s.attrs, slog.Any(key, val))
}

// End marks the span complete and logs it at debug level.
func (s *Span) End() {
	s.ended = time.Now()
	args := []any{"span", s.Name, "trace_id", s.Ctx.TraceID, "duration", s.Duration()}
	for _, a := range s.attrs {
		args = append(args, a.Key, a.Value.Any())
	}
	slog.Debug("span complete", args...)
}

// Duration returns the span duration, zero until End is called.
func (s *Span) Duration() time.Duration {
	if s.ended.IsZero() {
		return 0
	}
	return s.ended.Sub(s.started)
}

// Logger returns a slog.Logger annotated with trace identifiers.
func Logger(ctx context.Context) *slog.Logger {
	tc, ok := FromContext(ctx)
	if !ok {
		return slog.Default()
	}
	args := []any{"trace_id", tc.TraceID, "span_id", tc.SpanID}
	if tc.ParentSpanID != "" {
		args = append(args, "parent_span_id", tc.ParentSpanID)
	}
	return slog.Default().With(args...)
}
