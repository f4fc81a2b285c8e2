// Platform server - drives audio capture, transcription, and answer generation
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/stagewhisper/platform/internal/audio"
	"github.com/stagewhisper/platform/internal/config"
	"github.com/stagewhisper/platform/internal/llm"
	"github.com/stagewhisper/platform/internal/orchestrator"
	"github.com/stagewhisper/platform/internal/profile"
	"github.com/stagewhisper/platform/internal/server"
	"github.com/stagewhisper/platform/internal/stt"
	"github.com/stagewhisper/platform/internal/syncx"
	"github.com/stagewhisper/platform/internal/transcript"
)

const (
	whisperTimeout     = 2 * time.Minute
	transcriptCapacity = 500
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	prof := profile.Load(cfg.ProfileDir, cfg.Company, cfg.Position, time.Now().Format("2006-01-02"))

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		slog.Error("answer provider error", "error", err)
		os.Exit(1)
	}

	// Pipeline wiring: capturer -> segmenter -> worker -> last-span slot
	store := transcript.NewStore(transcriptCapacity)
	lastSpan := syncx.NewMailbox[string]()
	segmenter := audio.NewSegmenter(cfg.BufferDuration, cfg.SegmentQueueSize)

	capturer, err := audio.NewCapturer(func(f audio.Frame) {
		segmenter.Ingest(f)
	}, cfg.ExcludedAudioDevices)
	if err != nil {
		slog.Error("audio capturer error", "error", err)
		os.Exit(1)
	}

	whisper := stt.NewWhisperClient(cfg.WhisperURL, cfg.STTDevice, cfg.STTModel, whisperTimeout)
	worker := stt.NewWorker(whisper, segmenter.Queue(), store, lastSpan, stt.Options{
		BeamSize:  cfg.BeamSize,
		Language:  cfg.STTLanguage,
		VADFilter: true,
	})

	orch := orchestrator.New(provider, prof, lastSpan, capturer, segmenter, orchestrator.Config{
		PollInterval:     time.Duration(cfg.PollIntervalMS) * time.Millisecond,
		ContextWindow:    cfg.ContextWindow,
		HistorySize:      cfg.HistorySize,
		MinQuestionWords: cfg.MinQuestionWords,
	})

	srv := server.New(orch, store, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := capturer.Start(ctx); err != nil {
		slog.Error("audio capture start failed", "error", err)
		os.Exit(1)
	}

	go worker.Run(ctx)
	go orch.Run(ctx)
	orch.SetAnswering(true)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("platform server starting",
			"http", cfg.HTTPAddr,
			"whisper", cfg.WhisperURL,
			"provider", provider.Name())
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down...")

	// Release the device and push the queue sentinel, then let the loops
	// observe cancellation.
	orch.Stop()
	cancel()
	<-worker.Done()
	<-orch.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

func setupLogging(cfg *config.Config) {
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
