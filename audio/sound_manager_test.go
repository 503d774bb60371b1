package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blocktimer/events"
)

// fakeOutput records streamers instead of playing them
type fakeOutput struct {
	initErr error
	inits   int
	played  []beep.Streamer
	closed  int
}

func (f *fakeOutput) Init(rate beep.SampleRate) error {
	f.inits++
	return f.initErr
}

func (f *fakeOutput) Play(s beep.Streamer) { f.played = append(f.played, s) }
func (f *fakeOutput) Close()               { f.closed++ }

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := math.Abs(buf[i][0]); v > peak {
				peak = v
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d: channels differ", total+i)
			}
		}
		total += n
		if !ok {
			return total, peak
		}
		if total > 10*44100 {
			t.Fatal("streamer never finished")
		}
	}
}

func TestCompletionChime_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	total, peak := drain(t, CompletionChime(rate))

	if want := rate.N(800 * time.Millisecond); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
	if peak > 0.3+1e-9 {
		t.Errorf("peak %f exceeds start gain", peak)
	}
	if peak < 0.1 {
		t.Errorf("peak %f suspiciously quiet", peak)
	}
}

func TestSegmentChime_Finishes(t *testing.T) {
	rate := beep.SampleRate(44100)
	total, _ := drain(t, SegmentChime(rate))
	if want := rate.N(500 * time.Millisecond); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestToneSequence_GainDecays(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewToneSequence([]ToneStep{{Freq: 440}}, time.Second, 0.3, 0.01, rate)

	buf := make([][2]float64, rate.N(100*time.Millisecond))
	peakOf := func() float64 {
		n, _ := s.Stream(buf)
		p := 0.0
		for i := 0; i < n; i++ {
			p = math.Max(p, math.Abs(buf[i][0]))
		}
		return p
	}

	first := peakOf()
	for i := 0; i < 8; i++ {
		peakOf()
	}
	last := peakOf()
	if last >= first/5 {
		t.Errorf("gain did not decay: first %f last %f", first, last)
	}
	if s.Err() != nil {
		t.Errorf("unexpected error: %v", s.Err())
	}
}

func TestToneSequence_EmptySteps(t *testing.T) {
	s := NewToneSequence(nil, time.Second, 0.3, 0.01, beep.SampleRate(8000))
	n, ok := s.Stream(make([][2]float64, 16))
	if n != 0 || ok {
		t.Errorf("empty sequence streamed n=%d ok=%v", n, ok)
	}
}

func TestSoundManager_InitFailureIsSilent(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	sm := NewSoundManager(out, zerolog.Nop())

	if err := sm.Initialize(); err == nil {
		t.Fatal("expected init error")
	}
	if sm.Available() {
		t.Error("manager should report unavailable")
	}
	sm.HandleEvent(events.TimerEvent{Type: events.EventCompleted})
	if len(out.played) != 0 {
		t.Error("played without a device")
	}
	sm.Cleanup()
	if out.closed != 0 {
		t.Error("closed an uninitialized device")
	}
}

func TestSoundManager_EventsPlayChimes(t *testing.T) {
	out := &fakeOutput{}
	sm := NewSoundManager(out, zerolog.Nop())
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := sm.Initialize(); err != nil || out.inits != 1 {
		t.Errorf("second Initialize reopened the device (%d)", out.inits)
	}

	sm.HandleEvent(events.TimerEvent{Type: events.EventSegmentChanged})
	if len(out.played) != 0 {
		t.Fatalf("segment chime played before being enabled (%d)", len(out.played))
	}
	sm.SetSegmentChime(true)

	router := events.NewRouter()
	router.Subscribe(sm)
	router.Dispatch([]events.TimerEvent{
		{Type: events.EventSegmentChanged},
		{Type: events.EventProgress},
		{Type: events.EventCompleted},
	})
	if len(out.played) != 2 {
		t.Fatalf("played %d chimes, want 2", len(out.played))
	}

	sm.SetSegmentChime(false)
	sm.HandleEvent(events.TimerEvent{Type: events.EventSegmentChanged})
	if len(out.played) != 2 {
		t.Error("segment chime played while disabled")
	}

	sm.SetMuted(true)
	sm.PlayCompletion()
	if len(out.played) != 2 {
		t.Error("chime played while muted")
	}

	sm.Cleanup()
	if out.closed != 1 || sm.Available() {
		t.Errorf("cleanup closed=%d available=%v", out.closed, sm.Available())
	}
}
