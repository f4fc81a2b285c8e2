package audio

import "testing"

func TestIsLoopbackName(t *testing.T) {
	tests := []struct {
		name     string
		device   string
		expected bool
	}{
		{"stereo mix", "Stereo Mix (Realtek High Definition Audio)", true},
		{"wave out", "Wave Out Mix", true},
		{"loopback", "Loopback Audio", true},
		{"what u hear", "What U Hear (Sound Blaster)", true},
		{"what you hear", "WHAT YOU HEAR", true},
		{"rec playback", "Rec. Playback", true},
		{"recording playback", "Recording Playback Device", true},
		{"plain mic", "Built-in Microphone", false},
		{"headset", "USB Headset", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLoopbackName(tt.device); got != tt.expected {
				t.Errorf("isLoopbackName(%q) = %v, want %v", tt.device, got, tt.expected)
			}
		})
	}
}

func TestIsExcluded(t *testing.T) {
	c := &Capturer{excludedDevs: []string{"teams", "iPhone"}}

	if !c.isExcluded("Microsoft Teams Audio") {
		t.Error("teams device should be excluded")
	}
	if !c.isExcluded("iphone microphone") {
		t.Error("exclusion should be case-insensitive")
	}
	if c.isExcluded("Stereo Mix") {
		t.Error("unlisted device should not be excluded")
	}
}
