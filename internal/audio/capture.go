package audio

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// ErrNoInputDevice is returned when no audio input device exists at all.
var ErrNoInputDevice = errors.New("no audio input devices found")

// Frame is one fixed-size chunk of raw PCM, tagged with its format so
// downstream consumers can decode it standalone.
type Frame struct {
	Samples    []int16 // interleaved when Channels > 1
	Channels   int
	SampleRate int
}

// FrameHandler receives captured frames. It runs on the capture goroutine
// and must not block.
type FrameHandler func(Frame)

// loopbackKeywords identify system-audio loopback devices by name.
var loopbackKeywords = []string{
	"stereo mix", "wave out mix", "loopback", "what u hear",
	"what you hear", "rec. playback", "recording playback",
}

// Capturer captures system audio from a loopback-like input device.
type Capturer struct {
	onFrame      FrameHandler
	excludedDevs []string

	mu         sync.Mutex
	stream     *portaudio.Stream
	cancel     context.CancelFunc
	sampleRate int
	channels   int
	running    bool
	stopOnce   sync.Once
	done       chan struct{}
}

// NewCapturer initializes the audio subsystem. Frames are delivered to
// onFrame from a dedicated capture goroutine.
func NewCapturer(onFrame FrameHandler, excludedDevices []string) (*Capturer, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	return &Capturer{
		onFrame:      onFrame,
		excludedDevs: excludedDevices,
		done:         make(chan struct{}),
	}, nil
}

// Done is closed when the capture stream has ended, whether by Stop or
// because the device failed. Valid once Start has succeeded.
func (c *Capturer) Done() <-chan struct{} {
	return c.done
}

// Start selects a capture device and begins streaming frames.
func (c *Capturer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}

	dev, err := c.selectDevice()
	if err != nil {
		return err
	}

	// Negotiate format from device defaults; downgrade to mono when the
	// device lacks stereo input.
	c.sampleRate = int(dev.DefaultSampleRate)
	c.channels = PreferredChannels
	if dev.MaxInputChannels < PreferredChannels {
		c.channels = 1
		slog.Info("device only supports mono audio", "device", dev.Name)
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: c.channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(c.sampleRate),
		FramesPerBuffer: FramesPerBuffer,
	}

	buf := make([]int16, FramesPerBuffer*c.channels)
	stream, err := portaudio.OpenStream(params, buf)
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return err
	}

	devCtx, cancel := context.WithCancel(ctx)
	c.stream = stream
	c.cancel = cancel
	c.running = true

	slog.Info("audio capture started",
		"device", dev.Name, "sample_rate", c.sampleRate, "channels", c.channels)

	go c.readLoop(devCtx, stream, buf)
	return nil
}

func (c *Capturer) readLoop(ctx context.Context, stream *portaudio.Stream, buf []int16) {
	defer close(c.done)

	channels, rate := c.channels, c.sampleRate
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := stream.Read(); err != nil {
			select {
			case <-ctx.Done(): // Stop tore the stream down; not a device failure
			default:
				slog.Error("audio stream read failed, capture ending", "error", err)
			}
			return
		}

		c.onFrame(Frame{
			Samples:    append([]int16(nil), buf...),
			Channels:   channels,
			SampleRate: rate,
		})
	}
}

// selectDevice picks a system-audio loopback device by name keyword,
// falling back to the first available input device.
func (c *Capturer) selectDevice() (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	var fallback *portaudio.DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels < 1 || c.isExcluded(dev.Name) {
			continue
		}
		if fallback == nil {
			fallback = dev
		}
		if isLoopbackName(dev.Name) {
			slog.Info("found system audio device", "device", dev.Name)
			return dev, nil
		}
	}

	if fallback == nil {
		return nil, ErrNoInputDevice
	}
	slog.Warn("no system audio loopback device found, using fallback; enable Stereo Mix or a virtual loopback to capture interviewer audio",
		"device", fallback.Name)
	return fallback, nil
}

func isLoopbackName(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range loopbackKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (c *Capturer) isExcluded(name string) bool {
	lower := strings.ToLower(name)
	for _, ex := range c.excludedDevs {
		if ex != "" && strings.Contains(lower, strings.ToLower(ex)) {
			return true
		}
	}
	return false
}

// SampleRate returns the negotiated sample rate (valid after Start).
func (c *Capturer) SampleRate() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sampleRate
}

// Channels returns the negotiated channel count (valid after Start).
func (c *Capturer) Channels() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channels
}

// Stop halts capture and releases the device. Safe to call multiple times.
func (c *Capturer) Stop() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.cancel != nil {
			c.cancel()
		}
		if c.stream != nil {
			_ = c.stream.Stop()
			_ = c.stream.Close()
			c.stream = nil
		}
		c.running = false
		_ = portaudio.Terminate()
	})
}
