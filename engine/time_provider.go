package engine

import (
	"sync/atomic"
	"time"
)

// TimeSource supplies timestamps to the clock, tick sources and events
type TimeSource interface {
	Now() time.Time
}

// TimeProvider is the wall clock with monotonic readings
type TimeProvider struct{}

func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider only moves when advanced, for deterministic runs and tests
// Safe for concurrent use; the offset keeps the monotonic reading of start
type MockTimeProvider struct {
	start  time.Time
	offset atomic.Int64
}

// NewMockTimeProvider creates a mock frozen at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{start: start}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.start.Add(time.Duration(m.offset.Load()))
}

// Advance moves the mock forward by d, negative values are ignored
func (m *MockTimeProvider) Advance(d time.Duration) {
	if d > 0 {
		m.offset.Add(int64(d))
	}
}

// AdvanceTicks moves the mock forward by n tick periods
func (m *MockTimeProvider) AdvanceTicks(n int, interval time.Duration) {
	if n > 0 {
		m.Advance(time.Duration(n) * interval)
	}
}
