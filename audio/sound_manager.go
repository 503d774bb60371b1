package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/events"
)

// Output is the device side of the sound manager
type Output interface {
	Init(rate beep.SampleRate) error
	Play(s beep.Streamer)
	Close()
}

// speakerOutput plays through the system speaker via a single mixer
type speakerOutput struct {
	mixer *beep.Mixer
}

// NewSpeakerOutput returns the default system speaker output
func NewSpeakerOutput() Output {
	return &speakerOutput{mixer: &beep.Mixer{}}
}

func (o *speakerOutput) Init(rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(o.mixer)
	return nil
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

func (o *speakerOutput) Close() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// SoundManager plays timer chimes in response to routed events
// Audio is optional: when the device fails to initialize, every Play is a no-op
type SoundManager struct {
	mu           sync.Mutex
	out          Output
	rate         beep.SampleRate
	initialized  bool
	muted        bool
	segmentChime bool
	log          zerolog.Logger
}

// NewSoundManager creates a manager for out, nil selects the system speaker
func NewSoundManager(out Output, log zerolog.Logger) *SoundManager {
	if out == nil {
		out = NewSpeakerOutput()
	}
	return &SoundManager{
		out:          out,
		rate: beep.SampleRate(constants.AudioSampleRate),
		log:  log,
	}
}

// Initialize opens the output device, idempotent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := sm.out.Init(sm.rate); err != nil {
		sm.log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		return err
	}
	sm.initialized = true
	return nil
}

// Available reports whether the device was opened
func (sm *SoundManager) Available() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// SetMuted silences all chimes without closing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// SetSegmentChime enables the chime on color changes, off by default
func (sm *SoundManager) SetSegmentChime(enabled bool) {
	sm.mu.Lock()
	sm.segmentChime = enabled
	sm.mu.Unlock()
}

// Cleanup stops all sounds and closes the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.out.Close()
	sm.initialized = false
}

// PlayCompletion plays the completion arpeggio
func (sm *SoundManager) PlayCompletion() {
	sm.play(CompletionChime)
}

// PlaySegment plays the segment change chime when enabled
func (sm *SoundManager) PlaySegment() {
	sm.mu.Lock()
	enabled := sm.segmentChime
	sm.mu.Unlock()
	if enabled {
		sm.play(SegmentChime)
	}
}

func (sm *SoundManager) play(build func(beep.SampleRate) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	sm.out.Play(build(sm.rate))
}

// HandleEvent implements events.Handler
func (sm *SoundManager) HandleEvent(ev events.TimerEvent) {
	switch ev.Type {
	case events.EventCompleted:
		sm.PlayCompletion()
	case events.EventSegmentChanged:
		sm.PlaySegment()
	}
}

// EventTypes implements events.Handler
func (sm *SoundManager) EventTypes() []events.EventType {
	return []events.EventType{events.EventSegmentChanged, events.EventCompleted}
}
