package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/blocktimer/core"
)

// ClockState is the countdown lifecycle state
type ClockState uint8

const (
	StateIdle ClockState = iota
	StateRunning
	StateCompleted
)

// String returns the state name for logs and status lines
func (s ClockState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CountdownClock is the countdown state machine
//
// Transitions:
//   - Idle --Start--> Running
//   - Running --Advance (not last)--> Running
//   - Running --Advance (last tick)--> Completed
//   - Running --Stop--> Idle
//   - Completed --Reset--> Idle, Idle --Reset--> Idle
//
// Advance from Idle or Completed and Start from Completed are ignored.
// Not goroutine-safe: a single writer (the orchestrator's owner) mutates it.
type CountdownClock struct {
	total   int
	elapsed int
	running bool

	timeSource TimeSource
	startedAt  time.Time
}

// NewCountdownClock creates an Idle clock with a fixed tick duration
// A nil time source uses the real clock
func NewCountdownClock(totalTicks int, ts TimeSource) (*CountdownClock, error) {
	if totalTicks <= 0 {
		return nil, fmt.Errorf("%w: total duration ticks must be positive, got %d", core.ErrInvalidConfiguration, totalTicks)
	}
	if ts == nil {
		ts = NewTimeProvider()
	}
	return &CountdownClock{
		total:      totalTicks,
		timeSource: ts,
	}, nil
}

// Start enters Running, returns false when already Running or Completed
// The start timestamp is informational only; tick accuracy comes from the tick source
func (c *CountdownClock) Start() bool {
	if c.running || c.IsCompleted() {
		return false
	}
	c.running = true
	c.startedAt = c.timeSource.Now()
	return true
}

// Advance consumes exactly one tick and returns the new elapsed count
// Outside Running the state is untouched and ErrInvalidTransition is returned
func (c *CountdownClock) Advance() (int, error) {
	if !c.running {
		return c.elapsed, fmt.Errorf("%w: advance while %s", core.ErrInvalidTransition, c.State())
	}
	c.elapsed++
	if c.elapsed >= c.total {
		c.elapsed = c.total
		c.running = false
	}
	return c.elapsed, nil
}

// Stop leaves Running, idempotent
func (c *CountdownClock) Stop() {
	c.running = false
}

// Reset stops and rewinds to elapsed 0
func (c *CountdownClock) Reset() {
	c.Stop()
	c.elapsed = 0
	c.startedAt = time.Time{}
}

func (c *CountdownClock) Total() int      { return c.total }
func (c *CountdownClock) Elapsed() int    { return c.elapsed }
func (c *CountdownClock) IsRunning() bool { return c.running }

// RemainingTicks is total minus elapsed, never negative
func (c *CountdownClock) RemainingTicks() int {
	if r := c.total - c.elapsed; r > 0 {
		return r
	}
	return 0
}

// Progress returns elapsed/total in [0,1]
func (c *CountdownClock) Progress() float64 {
	return float64(c.elapsed) / float64(c.total)
}

// IsCompleted reports elapsed >= total
func (c *CountdownClock) IsCompleted() bool {
	return c.elapsed >= c.total
}

// Resumable reports a stopped clock with partial progress
func (c *CountdownClock) Resumable() bool {
	return !c.running && c.elapsed > 0 && !c.IsCompleted()
}

// State derives the lifecycle state from the fields
func (c *CountdownClock) State() ClockState {
	switch {
	case c.IsCompleted():
		return StateCompleted
	case c.running:
		return StateRunning
	default:
		return StateIdle
	}
}

// StartedAt returns the timestamp of the last Start, zero after Reset
func (c *CountdownClock) StartedAt() time.Time {
	return c.startedAt
}

// WallElapsed returns wall time since the last Start, zero when never started
func (c *CountdownClock) WallElapsed() time.Duration {
	if c.startedAt.IsZero() {
		return 0
	}
	return c.timeSource.Now().Sub(c.startedAt)
}
