package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/core"
)

// Tick is one external periodic signal
// Epoch is the orchestrator epoch the source was started with; ticks from an
// older epoch were scheduled before a Stop/Reset and must be ignored
type Tick struct {
	Epoch uint64
	Seq   uint64
	At    time.Time
}

// TickSource delivers ticks on a channel between Start and Stop
// Implementations must never deliver two ticks concurrently: the consumer
// reads C() from one goroutine and processes each tick synchronously
type TickSource interface {
	Start(epoch uint64)
	Stop()
	C() <-chan Tick
}

// IntervalTickSource emits ticks at a fixed interval from a background goroutine
// Ticks are dropped, not queued, when the consumer is still busy
type IntervalTickSource struct {
	interval   time.Duration
	timeSource TimeSource
	ch         chan Tick

	mu     sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
	seq    uint64
}

// NewIntervalTickSource creates a stopped source
func NewIntervalTickSource(interval time.Duration, ts TimeSource) *IntervalTickSource {
	if interval <= 0 {
		interval = constants.DefaultTickInterval
	}
	if ts == nil {
		ts = NewTimeProvider()
	}
	return &IntervalTickSource{
		interval:   interval,
		timeSource: ts,
		ch:         make(chan Tick, constants.TickSourceBuffer),
	}
}

// Interval returns the tick period
func (s *IntervalTickSource) Interval() time.Duration { return s.interval }

// C returns the delivery channel, never closed
func (s *IntervalTickSource) C() <-chan Tick { return s.ch }

// Start begins emitting for epoch, restarting the period if already running
func (s *IntervalTickSource) Start(epoch uint64) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	stop := make(chan struct{})
	s.stopCh = stop
	s.wg.Add(1)
	core.Go(func() { s.loop(epoch, stop) })
}

// Stop halts emission and waits for the goroutine to exit, idempotent
// Ticks already buffered stay in the channel and are rejected by epoch
func (s *IntervalTickSource) Stop() {
	s.mu.Lock()
	stop := s.stopCh
	s.stopCh = nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	s.wg.Wait()
}

func (s *IntervalTickSource) loop(epoch uint64, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.seq++
			tick := Tick{Epoch: epoch, Seq: s.seq, At: s.timeSource.Now()}
			s.mu.Unlock()

			select {
			case s.ch <- tick:
			default:
				// Consumer lagging, drop instead of overlapping
			}
		}
	}
}

// ManualTickSource queues ticks on demand, for deterministic tests and stepping
type ManualTickSource struct {
	mu      sync.Mutex
	ch      chan Tick
	epoch   uint64
	running bool
	seq     uint64
	ts      TimeSource
}

// NewManualTickSource creates a source able to queue capacity undelivered ticks
func NewManualTickSource(capacity int, ts TimeSource) *ManualTickSource {
	if capacity <= 0 {
		capacity = 1
	}
	if ts == nil {
		ts = NewTimeProvider()
	}
	return &ManualTickSource{
		ch: make(chan Tick, capacity),
		ts: ts,
	}
}

func (m *ManualTickSource) C() <-chan Tick { return m.ch }

func (m *ManualTickSource) Start(epoch uint64) {
	m.mu.Lock()
	m.epoch = epoch
	m.running = true
	m.mu.Unlock()
}

func (m *ManualTickSource) Stop() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// Running reports whether Start was called without a later Stop
func (m *ManualTickSource) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Epoch returns the epoch of the last Start
func (m *ManualTickSource) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// Fire queues up to n ticks stamped with the current epoch and returns how many were queued
// Nothing is queued while stopped; a full channel drops the remainder
func (m *ManualTickSource) Fire(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return 0
	}
	queued := 0
	for i := 0; i < n; i++ {
		m.seq++
		select {
		case m.ch <- Tick{Epoch: m.epoch, Seq: m.seq, At: m.ts.Now()}:
			queued++
		default:
			return queued
		}
	}
	return queued
}
