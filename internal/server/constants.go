// Package server provides HTTP and WebSocket handlers
package server

import "time"

// Server configuration constants
const (
	// Per-connection inbound message rate limiting
	RateLimitMessages = 10          // Max messages per connection per window
	RateLimitWindow   = time.Second // Sliding window duration

	// How far back GET /api/transcript reaches, in seconds
	TranscriptWindowSeconds = 300

	// Per-connection outbound event buffer; a client that cannot keep up
	// loses events rather than stalling the broadcaster
	sendBuffer = 64
)
