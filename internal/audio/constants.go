// Package audio handles system-audio capture and segmentation
package audio

// Audio capture constants
const (
	// Samples per capture frame, per channel
	FramesPerBuffer = 1024

	// Bytes per sample (16-bit PCM)
	SampleWidthBytes = 2

	// Preferred channel count when the device supports it
	PreferredChannels = 2
)
