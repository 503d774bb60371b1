package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/blocktimer/constants"
)

// ToneStep switches the oscillator to Freq at offset At from the start
type ToneStep struct {
	Freq float64
	At   time.Duration
}

// toneSequence is a sine oscillator with stepped frequency and an exponential gain ramp
// Gain follows gainStart * (gainEnd/gainStart)^(t/duration), matching an
// exponential ramp scheduled over the full duration
type toneSequence struct {
	steps     []ToneStep
	rate      beep.SampleRate
	total     int
	position  int
	phase     float64
	step      int
	gainStart float64
	gainEnd   float64
}

// NewToneSequence creates a finite streamer of total length duration
// Steps must be sorted by At; the first step applies from offset 0
func NewToneSequence(steps []ToneStep, duration time.Duration, gainStart, gainEnd float64, rate beep.SampleRate) beep.Streamer {
	if gainStart <= 0 {
		gainStart = constants.CompletionChimeGainStart
	}
	if gainEnd <= 0 || gainEnd > gainStart {
		gainEnd = gainStart
	}
	return &toneSequence{
		steps:     steps,
		rate:      rate,
		total:     rate.N(duration),
		gainStart: gainStart,
		gainEnd:   gainEnd,
	}
}

func (s *toneSequence) Stream(samples [][2]float64) (n int, ok bool) {
	if s.position >= s.total || len(s.steps) == 0 {
		return 0, false
	}

	for i := range samples {
		if s.position >= s.total {
			return i, true
		}

		t := float64(s.position) / float64(s.rate)
		for s.step+1 < len(s.steps) && t >= s.steps[s.step+1].At.Seconds() {
			s.step++
		}

		ratio := float64(s.position) / float64(s.total)
		gain := s.gainStart * math.Pow(s.gainEnd/s.gainStart, ratio)
		val := gain * math.Sin(2*math.Pi*s.phase)

		samples[i][0] = val
		samples[i][1] = val

		// Keep phase in [0, 1) so frequency steps stay continuous
		s.phase += s.steps[s.step].Freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *toneSequence) Err() error { return nil }

// CompletionChime is the rising C5, E5, G5 arpeggio played when time is up
func CompletionChime(rate beep.SampleRate) beep.Streamer {
	step := constants.CompletionChimeStep
	return NewToneSequence([]ToneStep{
		{Freq: constants.NoteC5, At: 0},
		{Freq: constants.NoteE5, At: step},
		{Freq: constants.NoteG5, At: 2 * step},
	}, constants.CompletionChimeDuration, constants.CompletionChimeGainStart, constants.CompletionChimeGainEnd, rate)
}

// SegmentChime is the short rising triple played on a color change
func SegmentChime(rate beep.SampleRate) beep.Streamer {
	step := constants.SegmentChimeStep
	return NewToneSequence([]ToneStep{
		{Freq: 800, At: 0},
		{Freq: 1000, At: step},
		{Freq: 1200, At: 2 * step},
	}, constants.SegmentChimeDuration, constants.SegmentChimeGainStart, constants.SegmentChimeGainEnd, rate)
}
