package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/blocktimer/core"
)

func newTestClock(t *testing.T, total int) (*CountdownClock, *MockTimeProvider) {
	t.Helper()
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	c, err := NewCountdownClock(total, mock)
	if err != nil {
		t.Fatalf("NewCountdownClock: %v", err)
	}
	return c, mock
}

func TestNewCountdownClock_InvalidDuration(t *testing.T) {
	for _, total := range []int{0, -1} {
		if _, err := NewCountdownClock(total, nil); !errors.Is(err, core.ErrInvalidConfiguration) {
			t.Errorf("total %d: expected ErrInvalidConfiguration, got %v", total, err)
		}
	}
}

func TestCountdownClock_InitialState(t *testing.T) {
	c, _ := newTestClock(t, 180)
	if c.State() != StateIdle || c.IsRunning() || c.IsCompleted() {
		t.Fatalf("new clock should be idle, got %s", c.State())
	}
	if c.RemainingTicks() != 180 || c.Progress() != 0 {
		t.Errorf("remaining=%d progress=%v", c.RemainingTicks(), c.Progress())
	}
	if c.WallElapsed() != 0 {
		t.Errorf("wall elapsed before start = %v", c.WallElapsed())
	}
}

func TestCountdownClock_AdvanceRequiresRunning(t *testing.T) {
	c, _ := newTestClock(t, 10)
	elapsed, err := c.Advance()
	if !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if elapsed != 0 || c.Elapsed() != 0 {
		t.Errorf("advance from idle changed elapsed to %d", c.Elapsed())
	}
}

func TestCountdownClock_FullRun(t *testing.T) {
	c, mock := newTestClock(t, 180)
	if !c.Start() {
		t.Fatal("Start from idle should succeed")
	}
	start := c.StartedAt()

	for i := 1; i <= 180; i++ {
		mock.Advance(time.Second)
		elapsed, err := c.Advance()
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if elapsed != i {
			t.Fatalf("tick %d: elapsed %d", i, elapsed)
		}
		if i < 180 && c.State() != StateRunning {
			t.Fatalf("tick %d: state %s", i, c.State())
		}
	}

	if !c.IsCompleted() || c.IsRunning() || c.State() != StateCompleted {
		t.Fatalf("after 180 ticks: state %s", c.State())
	}
	if c.RemainingTicks() != 0 || c.Progress() != 1 {
		t.Errorf("remaining=%d progress=%v", c.RemainingTicks(), c.Progress())
	}
	if c.WallElapsed() != 180*time.Second || !c.StartedAt().Equal(start) {
		t.Errorf("wall elapsed = %v", c.WallElapsed())
	}

	// Further advances are ignored
	if _, err := c.Advance(); !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("advance after completion: %v", err)
	}
	if c.Elapsed() != 180 {
		t.Errorf("elapsed changed after completion: %d", c.Elapsed())
	}

	// Start from Completed is refused
	if c.Start() {
		t.Error("Start from completed should be refused")
	}
}

func TestCountdownClock_DoubleStart(t *testing.T) {
	c, _ := newTestClock(t, 10)
	c.Start()
	c.Advance()
	c.Advance()
	if c.Start() {
		t.Error("second Start should be a no-op")
	}
	if c.Elapsed() != 2 || !c.IsRunning() {
		t.Errorf("double start disturbed clock: elapsed=%d running=%v", c.Elapsed(), c.IsRunning())
	}
}

func TestCountdownClock_StopIdempotent(t *testing.T) {
	c, _ := newTestClock(t, 10)
	c.Start()
	c.Advance()
	c.Stop()
	c.Stop()
	if c.IsRunning() || c.Elapsed() != 1 || c.State() != StateIdle {
		t.Errorf("after stop: running=%v elapsed=%d state=%s", c.IsRunning(), c.Elapsed(), c.State())
	}
	if !c.Resumable() {
		t.Error("stopped clock with progress should be resumable")
	}

	// Resume keeps the count
	c.Start()
	c.Advance()
	if c.Elapsed() != 2 {
		t.Errorf("resume lost progress: elapsed=%d", c.Elapsed())
	}
}

func TestCountdownClock_ResetIdempotent(t *testing.T) {
	c, _ := newTestClock(t, 3)
	c.Start()
	c.Advance()
	c.Advance()
	c.Advance()

	c.Reset()
	first := *c
	c.Reset()
	if *c != first {
		t.Error("second Reset changed state")
	}
	if c.IsCompleted() || c.Elapsed() != 0 || c.IsRunning() || !c.StartedAt().IsZero() {
		t.Errorf("after reset: elapsed=%d completed=%v", c.Elapsed(), c.IsCompleted())
	}
	if c.Resumable() {
		t.Error("reset clock is not resumable")
	}
	if !c.Start() {
		t.Error("Start after reset should succeed")
	}
}

func TestClockState_String(t *testing.T) {
	names := map[ClockState]string{
		StateIdle:      "idle",
		StateRunning:   "running",
		StateCompleted: "completed",
		ClockState(42): "unknown",
	}
	for s, want := range names {
		if s.String() != want {
			t.Errorf("%d: got %q want %q", s, s.String(), want)
		}
	}
}
