package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

// Completion chime: C5, E5, G5 over a decaying gain
const (
	CompletionChimeDuration  = 800 * time.Millisecond
	CompletionChimeStep      = 200 * time.Millisecond
	CompletionChimeGainStart = 0.3
	CompletionChimeGainEnd   = 0.01
)

// Segment chime: short rising triple
const (
	SegmentChimeDuration  = 500 * time.Millisecond
	SegmentChimeStep      = 100 * time.Millisecond
	SegmentChimeGainStart = 0.3
	SegmentChimeGainEnd   = 0.01
)

// Note frequencies in Hz
const (
	NoteC5 = 523.0
	NoteE5 = 659.0
	NoteG5 = 784.0
)
