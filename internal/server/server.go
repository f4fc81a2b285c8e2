// Package server provides HTTP and WebSocket handlers
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stagewhisper/platform/internal/config"
	"github.com/stagewhisper/platform/internal/observability"
	"github.com/stagewhisper/platform/internal/orchestrator"
	"github.com/stagewhisper/platform/internal/trace"
	"github.com/stagewhisper/platform/internal/transcript"
)

// Message types.
type Message struct {
	Type string `json:"type"`
}

type AskMessage struct {
	Type     string `json:"type"`
	Question string `json:"question"`
	TraceID  string `json:"trace_id,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// rateLimiter tracks message timestamps using a sliding window.
type rateLimiter struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// allow checks if a message is allowed and records the timestamp if so.
func (r *rateLimiter) allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-RateLimitWindow)

	// Prune old timestamps
	valid := r.timestamps[:0]
	for _, t := range r.timestamps {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.timestamps = valid

	if len(r.timestamps) >= RateLimitMessages {
		return false
	}

	r.timestamps = append(r.timestamps, now)
	return true
}

// Server handles HTTP and WebSocket connections. Each connection owns a
// buffered send channel drained by one writer goroutine, so events reach a
// client in emission order (a question is never delivered after its answer).
type Server struct {
	orch       *orchestrator.Orchestrator
	store      *transcript.Store
	cfg        *config.Config
	mu         sync.RWMutex
	conns      map[*websocket.Conn]chan orchestrator.Event
	rateLimits map[*websocket.Conn]*rateLimiter
}

// New creates a new server and starts the event broadcaster.
func New(orch *orchestrator.Orchestrator, store *transcript.Store, cfg *config.Config) *Server {
	s := &Server{
		orch:       orch,
		store:      store,
		cfg:        cfg,
		conns:      make(map[*websocket.Conn]chan orchestrator.Event),
		rateLimits: make(map[*websocket.Conn]*rateLimiter),
	}

	go s.broadcastEvents()

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket)

	// REST API
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/transcript", s.handleTranscript)
	mux.HandleFunc("POST /api/answering/start", s.handleAnsweringStart)
	mux.HandleFunc("POST /api/answering/stop", s.handleAnsweringStop)
	mux.HandleFunc("POST /api/listening/stop", s.handleListeningStop)

	if s.cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Apply middleware: trace -> CORS
	return corsMiddleware(trace.Middleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		trace.Logger(r.Context()).Error("websocket accept error", "error", err)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	sendCh := make(chan orchestrator.Event, sendBuffer)
	s.mu.Lock()
	s.conns[conn] = sendCh
	s.rateLimits[conn] = &rateLimiter{}
	s.mu.Unlock()
	observability.ConnectedClients.Inc()

	defer func() {
		// Closing under the lock cannot race the broadcaster, which only
		// sends while holding the read lock.
		s.mu.Lock()
		delete(s.conns, conn)
		delete(s.rateLimits, conn)
		close(sendCh)
		s.mu.Unlock()
		observability.ConnectedClients.Dec()
	}()

	// Get trace context from HTTP upgrade request
	baseCtx := r.Context()
	connID := uuid.NewString()
	log := trace.Logger(baseCtx).With("conn_id", connID)
	log.Info("websocket connected", "remote", r.RemoteAddr)
	defer log.Info("websocket disconnected")

	go func() {
		for ev := range sendCh {
			if err := wsjson.Write(baseCtx, conn, ev); err != nil {
				return
			}
		}
	}()

	// Initial state so the client can render the answering toggle.
	sendCh <- orchestrator.Event{Type: orchestrator.EventStatus, Text: s.answeringState()}

	for {
		var msg json.RawMessage
		if err := wsjson.Read(baseCtx, conn, &msg); err != nil {
			log.Debug("websocket read error", "error", err)
			return
		}

		// Check rate limit
		s.mu.RLock()
		rl := s.rateLimits[conn]
		s.mu.RUnlock()

		if !rl.allow() {
			log.Warn("rate limit exceeded", "remote", r.RemoteAddr)
			_ = wsjson.Write(baseCtx, conn, ErrorMessage{
				Type:    "error",
				Message: "rate limit exceeded",
			})
			continue
		}

		var base Message
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}

		switch base.Type {
		case "ask":
			var ask AskMessage
			if err := json.Unmarshal(msg, &ask); err != nil || ask.Question == "" {
				continue
			}
			// Continue the client's trace when it sent one
			ctx := baseCtx
			if ask.TraceID != "" {
				tc := trace.Context{TraceID: ask.TraceID}
				ctx = trace.WithContext(ctx, tc.Child())
			}
			s.handleAsk(ctx, ask.Question)
		}
	}
}

// handleAsk answers a client-supplied question; the question and answer
// reach every client through the event broadcast.
func (s *Server) handleAsk(ctx context.Context, question string) {
	ctx, span := trace.StartSpan(ctx, "handle_ask")
	defer span.End()

	trace.Logger(ctx).Info("ask message", "question", question)
	s.orch.Ask(ctx, question)
}

func (s *Server) broadcastEvents() {
	for ev := range s.orch.Events() {
		s.mu.RLock()
		for _, sendCh := range s.conns {
			select {
			case sendCh <- ev:
			default: // client too slow, drop
			}
		}
		s.mu.RUnlock()
	}
}

func (s *Server) answeringState() string {
	if s.orch.Answering() {
		return "answering started"
	}
	return "answering stopped"
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"listening": s.orch.Listening(),
		"answering": s.orch.Answering(),
	})
}

// handleListeningStop shuts the capture pipeline down. One-way: the audio
// device is released and only a process restart brings it back.
func (s *Server) handleListeningStop(w http.ResponseWriter, r *http.Request) {
	s.orch.Stop()
	s.writeJSON(w, map[string]string{"status": "listening_stopped"})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"transcript": s.store.Recent(TranscriptWindowSeconds),
	})
}

func (s *Server) handleAnsweringStart(w http.ResponseWriter, r *http.Request) {
	s.orch.SetAnswering(true)
	s.writeJSON(w, map[string]string{"status": "answering_started"})
}

func (s *Server) handleAnsweringStop(w http.ResponseWriter, r *http.Request) {
	s.orch.SetAnswering(false)
	s.writeJSON(w, map[string]string{"status": "answering_stopped"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		trace.Logger(context.Background()).Error("response encode error", "error", err)
	}
}
