package audio

import (
	"encoding/binary"
	"testing"
)

func frame(n, channels, rate int) Frame {
	return Frame{Samples: make([]int16, n*channels), Channels: channels, SampleRate: rate}
}

func TestSegmenterExactDuration(t *testing.T) {
	// 1s of audio at 1024 samples/frame and 16000Hz takes ceil(16000/1024)
	// frames; feed exactly enough to cross the threshold.
	s := NewSegmenter(1.0, 4)

	var seg *Segment
	frames := 0
	for seg == nil {
		seg = s.Ingest(frame(FramesPerBuffer, 1, 16000))
		frames++
		if frames > 20 {
			t.Fatal("segment never emitted")
		}
	}

	if frames != 16 { // 16*1024 = 16384 >= 16000
		t.Errorf("emitted after %d frames, want 16", frames)
	}
	if s.Buffered() != 0 {
		t.Errorf("residual buffer = %d samples, want 0", s.Buffered())
	}
	if seg.Duration() < 1.0 {
		t.Errorf("segment duration = %v, want >= 1.0", seg.Duration())
	}

	// Segment must also have landed on the queue.
	select {
	case q := <-s.Queue():
		if q != seg {
			t.Error("queued segment differs from returned segment")
		}
	default:
		t.Error("segment was not enqueued")
	}
}

func TestSegmenterBelowThreshold(t *testing.T) {
	s := NewSegmenter(5.0, 4)

	if seg := s.Ingest(frame(FramesPerBuffer, 2, 44100)); seg != nil {
		t.Error("one frame should not emit a segment")
	}
	if s.Buffered() != FramesPerBuffer {
		t.Errorf("residual buffer = %d, want %d", s.Buffered(), FramesPerBuffer)
	}
}

func TestSegmentWAVHeader(t *testing.T) {
	seg, err := encodeSegment(make([]int16, 32000), 2, 16000, 16000)
	if err != nil {
		t.Fatalf("encodeSegment: %v", err)
	}

	wav := seg.WAV
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE markers")
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		t.Fatal("missing fmt/data chunks")
	}

	if ch := binary.LittleEndian.Uint16(wav[22:24]); ch != 2 {
		t.Errorf("channels = %d, want 2", ch)
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	if bits := binary.LittleEndian.Uint16(wav[34:36]); bits != 16 {
		t.Errorf("bits per sample = %d, want 16", bits)
	}
	if dataLen := binary.LittleEndian.Uint32(wav[40:44]); dataLen != 64000 {
		t.Errorf("data length = %d, want 64000", dataLen)
	}
	if len(wav) != 44+64000 {
		t.Errorf("total length = %d, want %d", len(wav), 44+64000)
	}
}

func TestSegmenterDropsOldestWhenFull(t *testing.T) {
	s := NewSegmenter(0.01, 1) // tiny threshold, queue of one

	// Each frame at 16kHz crosses the 10ms threshold immediately.
	first := s.Ingest(frame(FramesPerBuffer, 1, 16000))
	second := s.Ingest(frame(FramesPerBuffer, 1, 16000))
	if first == nil || second == nil {
		t.Fatal("both ingests should emit segments")
	}

	select {
	case got := <-s.Queue():
		if got != second {
			t.Error("queue should hold the newest segment after eviction")
		}
	default:
		t.Fatal("queue empty")
	}
}

func TestSegmenterCloseSentinel(t *testing.T) {
	s := NewSegmenter(0.01, 1)
	s.Ingest(frame(FramesPerBuffer, 1, 16000)) // fill the queue

	s.Close()
	s.Close() // idempotent

	select {
	case seg := <-s.Queue():
		if seg != nil {
			t.Error("close should evict segments so the sentinel lands")
		}
	default:
		t.Fatal("sentinel missing from queue")
	}
}

func TestSegmenterIgnoresEmptyFrames(t *testing.T) {
	s := NewSegmenter(1.0, 4)
	if seg := s.Ingest(Frame{}); seg != nil {
		t.Error("empty frame should be ignored")
	}
	if s.Buffered() != 0 {
		t.Error("empty frame should not buffer anything")
	}
}
