// Package observability exposes Prometheus metrics for the pipeline
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Segmenter
	SegmentsProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stagewhisper_segments_produced_total",
		Help: "Audio segments emitted by the segmenter",
	})
	SegmentsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stagewhisper_segments_dropped_total",
		Help: "Audio segments dropped because the transcription queue was full",
	})

	// Transcription
	TranscriptionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stagewhisper_transcription_requests_total",
		Help: "Transcription backend calls",
	}, []string{"status"})
	TranscriptionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stagewhisper_transcription_latency_seconds",
		Help:    "Transcription backend latency",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
	})

	// Question pipeline
	QuestionsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stagewhisper_questions_detected_total",
		Help: "Transcript spans accepted as complete questions",
	})
	DuplicatesSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stagewhisper_duplicates_suppressed_total",
		Help: "Questions suppressed as near-duplicates",
	})

	// Answer backend
	AnswerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stagewhisper_answer_requests_total",
		Help: "Answer backend calls",
	}, []string{"provider", "status"})
	AnswerLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stagewhisper_answer_latency_seconds",
		Help:    "Answer backend latency",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	// Presentation
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stagewhisper_connected_clients",
		Help: "Connected WebSocket clients",
	})
)
