package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration trades latency for underrun safety
	AudioBufferDuration = 100 * time.Millisecond
)

// Bump Sound
const (
	BumpDuration = 60 * time.Millisecond

	// BumpFreqNarrow plays on a single-feeler bounce, BumpFreqWide when both feelers hit
	BumpFreqNarrow = 880.0
	BumpFreqWide   = 440.0

	// BumpVolume is a base-2 gain exponent, -1 halves the amplitude
	BumpVolume = -1.0
)
