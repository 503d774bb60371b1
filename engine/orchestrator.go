package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blocktimer/core"
	"github.com/lixenwraith/blocktimer/events"
	"github.com/lixenwraith/blocktimer/layout"
	"github.com/lixenwraith/blocktimer/palette"
	"github.com/lixenwraith/blocktimer/status"
)

// Orchestrator bridges a tick source to the clock and publishes per-tick deltas
// It owns no block or screen state; collaborators react to routed events.
// All methods must be called from one goroutine, the same one reading Source().C()
type Orchestrator struct {
	clock  *CountdownClock
	layout *layout.BlockLayout
	policy *palette.SegmentColorPolicy
	source TickSource
	router *events.Router

	timeSource TimeSource
	log        zerolog.Logger

	// epoch invalidates ticks scheduled before the last Start/Stop/Reset
	epoch       uint64
	prevSegment int
	runID       string

	statTicks      *atomic.Int64
	statStale      *atomic.Int64
	statSegments   *atomic.Int64
	statCompletion *atomic.Int64
	statRuns       *atomic.Int64
	statRunning    *atomic.Bool
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger routes lifecycle and tick diagnostics to l
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithMetrics writes counters into reg
func WithMetrics(reg *status.Registry) Option {
	return func(o *Orchestrator) {
		o.statTicks = reg.Int(status.KeyTicks)
		o.statStale = reg.Int(status.KeyStaleTicks)
		o.statSegments = reg.Int(status.KeySegmentChanges)
		o.statCompletion = reg.Int(status.KeyCompletions)
		o.statRuns = reg.Int(status.KeyRuns)
		o.statRunning = reg.Bool(status.KeyRunning)
	}
}

// WithTimeSource stamps events with ts instead of the real clock
func WithTimeSource(ts TimeSource) Option {
	return func(o *Orchestrator) { o.timeSource = ts }
}

// NewOrchestrator wires independently constructed collaborators and checks their cross invariants
func NewOrchestrator(
	clock *CountdownClock,
	blocks *layout.BlockLayout,
	policy *palette.SegmentColorPolicy,
	source TickSource,
	router *events.Router,
	opts ...Option,
) (*Orchestrator, error) {
	if clock == nil || blocks == nil || policy == nil || source == nil || router == nil {
		return nil, fmt.Errorf("%w: orchestrator collaborators must not be nil", core.ErrInvalidConfiguration)
	}
	if blocks.TotalBlocks() != clock.Total() {
		return nil, fmt.Errorf("%w: %d blocks but %d duration ticks", core.ErrInvalidConfiguration, blocks.TotalBlocks(), clock.Total())
	}
	if policy.SegmentCount() != blocks.SegmentCount() {
		return nil, fmt.Errorf("%w: %d colors for %d segments", core.ErrInvalidConfiguration, policy.SegmentCount(), blocks.SegmentCount())
	}
	if policy.BlocksPerSegment() != blocks.BlocksPerSegment() {
		return nil, fmt.Errorf("%w: color policy spans %d ticks per segment, layout %d", core.ErrInvalidConfiguration, policy.BlocksPerSegment(), blocks.BlocksPerSegment())
	}

	o := &Orchestrator{
		clock:      clock,
		layout:     blocks,
		policy:     policy,
		source:     source,
		router:     router,
		timeSource: NewTimeProvider(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.statTicks == nil {
		WithMetrics(status.NewRegistry())(o)
	}
	return o, nil
}

// Source returns the tick source whose channel the owner must drain into HandleTick
func (o *Orchestrator) Source() TickSource { return o.source }

// Start runs the clock from Idle
// Already Running is a no-op; Completed requires Reset first and returns ErrInvalidTransition
func (o *Orchestrator) Start() error {
	if o.clock.IsCompleted() {
		o.log.Debug().Str("run", o.runID).Msg("start ignored, timer completed")
		return fmt.Errorf("%w: start while completed, reset first", core.ErrInvalidTransition)
	}
	if !o.clock.Start() {
		return nil
	}

	if o.runID == "" {
		o.runID = uuid.NewString()
		o.statRuns.Add(1)
	}
	o.epoch++
	// Elapsed is 0 on a fresh run, so this is segment 0. On resume after Stop it
	// is the segment already reached, so the first tick does not re-announce it.
	o.prevSegment = o.policy.SegmentFor(o.clock.Elapsed())
	o.source.Start(o.epoch)
	o.statRunning.Store(true)

	o.log.Info().
		Str("run", o.runID).
		Int("elapsed", o.clock.Elapsed()).
		Int("total", o.clock.Total()).
		Msg("timer started")

	o.dispatch(events.TimerEvent{Type: events.EventStarted, Tick: o.clock.Elapsed(), Payload: o.lifecycle()})
	return nil
}

// Stop pauses a running clock, idempotent
func (o *Orchestrator) Stop() {
	if !o.clock.IsRunning() {
		return
	}
	o.clock.Stop()
	o.source.Stop()
	o.epoch++
	o.statRunning.Store(false)

	o.log.Info().Str("run", o.runID).Int("elapsed", o.clock.Elapsed()).Msg("timer stopped")
	o.dispatch(events.TimerEvent{Type: events.EventStopped, Tick: o.clock.Elapsed(), Payload: o.lifecycle()})
}

// Reset rewinds to elapsed 0 from any state, a second Reset changes nothing
func (o *Orchestrator) Reset() {
	if !o.clock.IsRunning() && o.clock.Elapsed() == 0 {
		return
	}
	o.clock.Reset()
	o.source.Stop()
	o.epoch++
	o.prevSegment = 0
	o.statRunning.Store(false)

	o.log.Info().Str("run", o.runID).Msg("timer reset")
	payload := o.lifecycle()
	o.runID = ""
	o.dispatch(events.TimerEvent{Type: events.EventReset, Tick: 0, Payload: payload})
}

// HandleTick processes one delivered tick, false when it was stale or the clock is not running
//
// Per processed tick, events are emitted in this order:
//  1. EventSegmentChanged, only when the active segment differs from the previous tick
//  2. EventBlocksRemoved with consumed(elapsed) \ consumed(elapsed-1)
//  3. EventProgress
//  4. EventCompleted, only on the final tick
func (o *Orchestrator) HandleTick(t Tick) bool {
	if t.Epoch != o.epoch || !o.clock.IsRunning() {
		o.statStale.Add(1)
		o.log.Debug().Uint64("epoch", t.Epoch).Uint64("current", o.epoch).Uint64("seq", t.Seq).Msg("stale tick ignored")
		return false
	}

	prev := o.clock.Elapsed()
	elapsed, err := o.clock.Advance()
	if err != nil {
		o.statStale.Add(1)
		return false
	}
	o.statTicks.Add(1)

	batch := make([]events.TimerEvent, 0, 4)

	if seg := o.policy.SegmentFor(elapsed); seg != o.prevSegment {
		token, err := o.policy.ColorFor(seg)
		if err != nil {
			// SegmentFor is clamped to the policy range
			panic(err)
		}
		batch = append(batch, o.event(events.EventSegmentChanged, elapsed, &events.SegmentPayload{
			Previous: o.prevSegment,
			Segment:  seg,
			Token:    token,
		}))
		o.log.Debug().Str("run", o.runID).Int("from", o.prevSegment).Int("to", seg).Msg("segment changed")
		o.prevSegment = seg
		o.statSegments.Add(1)
	}

	batch = append(batch,
		o.event(events.EventBlocksRemoved, elapsed, &events.BlocksPayload{
			Indices: o.layout.NewlyConsumed(prev, elapsed),
		}),
		o.event(events.EventProgress, elapsed, &events.ProgressPayload{
			Progress:  o.clock.Progress(),
			Elapsed:   elapsed,
			Remaining: o.clock.RemainingTicks(),
		}),
	)

	if o.clock.IsCompleted() {
		o.source.Stop()
		o.epoch++
		o.statCompletion.Add(1)
		o.statRunning.Store(false)
		o.log.Info().Str("run", o.runID).Dur("wall", o.clock.WallElapsed()).Msg("timer completed")
		batch = append(batch, o.event(events.EventCompleted, elapsed, nil))
	}

	o.router.Dispatch(batch)
	return true
}

// Pump handles every tick already queued on the source without blocking
// Returns the number of ticks that advanced the clock
func (o *Orchestrator) Pump() int {
	n := 0
	for {
		select {
		case t := <-o.source.C():
			if o.HandleTick(t) {
				n++
			}
		default:
			return n
		}
	}
}

// Run starts the timer and processes ticks until completion or ctx cancellation
// Intended for headless use; interactive shells select on Source().C() themselves
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.Start(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			o.Stop()
			return ctx.Err()
		case t := <-o.source.C():
			o.HandleTick(t)
			if o.clock.IsCompleted() {
				return nil
			}
		}
	}
}

// Snapshot is a read-only view of the orchestrator for renderers
type Snapshot struct {
	State     ClockState
	Elapsed   int
	Total     int
	Remaining int
	Progress  float64
	Segment   int
	Resumable bool
	RunID     string
}

// Snapshot returns the current clock position
func (o *Orchestrator) Snapshot() Snapshot {
	return Snapshot{
		State:     o.clock.State(),
		Elapsed:   o.clock.Elapsed(),
		Total:     o.clock.Total(),
		Remaining: o.clock.RemainingTicks(),
		Progress:  o.clock.Progress(),
		Segment:   o.policy.SegmentFor(o.clock.Elapsed()),
		Resumable: o.clock.Resumable(),
		RunID:     o.runID,
	}
}

func (o *Orchestrator) lifecycle() *events.LifecyclePayload {
	return &events.LifecyclePayload{
		RunID:   o.runID,
		Elapsed: o.clock.Elapsed(),
		Total:   o.clock.Total(),
		Segment: o.policy.SegmentFor(o.clock.Elapsed()),
	}
}

func (o *Orchestrator) event(t events.EventType, tick int, payload any) events.TimerEvent {
	return events.TimerEvent{Type: t, Tick: tick, Payload: payload, Timestamp: o.timeSource.Now()}
}

func (o *Orchestrator) dispatch(ev events.TimerEvent) {
	ev.Timestamp = o.timeSource.Now()
	o.router.Dispatch([]events.TimerEvent{ev})
}
