package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"sync"

	"github.com/stagewhisper/platform/internal/observability"
)

// Segment is a self-describing audio clip ready for one transcription call.
type Segment struct {
	WAV         []byte
	Channels    int
	SampleRate  int
	SampleWidth int
	Samples     int // sample frames per channel
}

// Duration returns the clip length in seconds.
func (s *Segment) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.Samples) / float64(s.SampleRate)
}

// Segmenter accumulates capture frames into fixed-duration segments and
// enqueues each completed segment for transcription. Ingest runs on the
// capture goroutine and never blocks: when the queue is full the oldest
// segment is dropped to make room.
type Segmenter struct {
	bufferDuration float64
	queue          chan *Segment

	pcm        []int16
	samples    int
	channels   int
	sampleRate int

	closeOnce sync.Once
}

// NewSegmenter creates a segmenter emitting segments of at least
// bufferDuration seconds onto a bounded queue.
func NewSegmenter(bufferDuration float64, queueSize int) *Segmenter {
	return &Segmenter{
		bufferDuration: bufferDuration,
		queue:          make(chan *Segment, queueSize),
	}
}

// Queue returns the segment queue. A nil segment is the shutdown sentinel.
func (s *Segmenter) Queue() <-chan *Segment { return s.queue }

// Ingest buffers one frame. When the buffered audio reaches the configured
// duration it is encoded into a WAV clip, enqueued, and returned; otherwise
// Ingest returns nil. On encode failure the buffered audio is dropped and
// capture continues.
func (s *Segmenter) Ingest(f Frame) *Segment {
	if len(f.Samples) == 0 || f.Channels < 1 {
		return nil
	}
	if s.samples == 0 {
		s.channels = f.Channels
		s.sampleRate = f.SampleRate
	}

	s.pcm = append(s.pcm, f.Samples...)
	s.samples += len(f.Samples) / f.Channels

	if float64(s.samples)/float64(s.sampleRate) < s.bufferDuration {
		return nil
	}

	seg, err := encodeSegment(s.pcm, s.channels, s.sampleRate, s.samples)
	s.pcm = nil
	s.samples = 0
	if err != nil {
		slog.Error("segment encode failed, dropping buffer", "error", err)
		return nil
	}

	s.enqueue(seg)
	observability.SegmentsProduced.Inc()
	return seg
}

// enqueue never blocks; on a full queue the oldest segment is evicted so
// the freshest audio survives slow transcription.
func (s *Segmenter) enqueue(seg *Segment) {
	select {
	case s.queue <- seg:
		return
	default:
	}

	select {
	case <-s.queue:
		observability.SegmentsDropped.Inc()
		slog.Warn("transcription queue full, dropped oldest segment")
	default:
	}

	select {
	case s.queue <- seg:
	default:
		observability.SegmentsDropped.Inc()
	}
}

// Close pushes the shutdown sentinel onto the queue, evicting buffered
// segments if needed so the sentinel always lands. Any partial buffer is
// discarded, not flushed. Safe to call multiple times.
func (s *Segmenter) Close() {
	s.closeOnce.Do(func() {
		for {
			select {
			case s.queue <- nil:
				return
			default:
				select {
				case <-s.queue:
				default:
				}
			}
		}
	})
}

// Buffered returns the sample frames currently accumulated (for tests).
func (s *Segmenter) Buffered() int { return s.samples }

// encodeSegment wraps interleaved 16-bit PCM in a RIFF/WAVE container.
func encodeSegment(pcm []int16, channels, sampleRate, samples int) (*Segment, error) {
	if channels < 1 || sampleRate < 1 {
		return nil, errors.New("invalid segment format")
	}

	dataLen := len(pcm) * SampleWidthBytes
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataLen))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*SampleWidthBytes))
	binary.Write(buf, binary.LittleEndian, uint16(channels*SampleWidthBytes))
	binary.Write(buf, binary.LittleEndian, uint16(8*SampleWidthBytes))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	if err := binary.Write(buf, binary.LittleEndian, pcm); err != nil {
		return nil, err
	}

	return &Segment{
		WAV:         buf.Bytes(),
		Channels:    channels,
		SampleRate:  sampleRate,
		SampleWidth: SampleWidthBytes,
		Samples:     samples,
	}, nil
}
