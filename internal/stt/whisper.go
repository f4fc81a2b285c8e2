package stt

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// WhisperClient talks to a whisper-server style HTTP transcription backend:
// POST /inference with a multipart WAV file and decoding parameters.
type WhisperClient struct {
	http   *resty.Client
	device string
	model  string
}

type whisperResponse struct {
	Text     string `json:"text"`
	Segments []Span `json:"segments"`
}

// NewWhisperClient creates a transcription client for the given base URL.
// The device and model hints are forwarded so a multi-model server can
// route the request.
func NewWhisperClient(baseURL, device, model string, timeout time.Duration) *WhisperClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &WhisperClient{http: client, device: device, model: model}
}

// Transcribe sends one WAV clip and returns its recognized spans. A failed
// call is a single error for the whole segment; there is no partial result.
func (c *WhisperClient) Transcribe(ctx context.Context, wav []byte, opts Options) ([]Span, error) {
	var result whisperResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", "segment.wav", bytes.NewReader(wav)).
		SetFormData(map[string]string{
			"model":      c.model,
			"device":     c.device,
			"beam_size":  strconv.Itoa(opts.BeamSize),
			"language":   opts.Language,
			"vad_filter": strconv.FormatBool(opts.VADFilter),
		}).
		SetResult(&result).
		Post("/inference")
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("transcription backend returned %s", resp.Status())
	}

	if len(result.Segments) == 0 && result.Text != "" {
		return []Span{{Text: result.Text}}, nil
	}
	return result.Segments, nil
}
