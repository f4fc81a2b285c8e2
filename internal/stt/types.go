// Package stt turns audio segments into transcript spans
package stt

import "context"

// Span is one recognized utterance with timestamps relative to its segment.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Options tune one transcription call.
type Options struct {
	BeamSize  int
	Language  string
	VADFilter bool
}

// Transcriber converts an encoded audio clip into timed text spans.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte, opts Options) ([]Span, error)
}
