package render

import (
	"time"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/engine"
	"github.com/lixenwraith/blocktimer/events"
	"github.com/lixenwraith/blocktimer/layout"
	"github.com/lixenwraith/blocktimer/palette"
)

// View is the render model, rebuilt purely from routed timer events
// It is mutated by HandleEvent and read by Renderer.Draw on the same goroutine
type View struct {
	layout *layout.BlockLayout
	policy *palette.SegmentColorPolicy

	consumed  []bool
	removedAt map[int]time.Time
	remaining int

	state     engine.ClockState
	elapsed   int
	progress  float64
	remTicks  int
	segment   int
	prevSeg   int
	changedAt time.Time

	completedAt time.Time
	message     string
	runID       string
}

// NewView creates an idle view for blocks colored by policy
func NewView(blocks *layout.BlockLayout, policy *palette.SegmentColorPolicy) *View {
	v := &View{layout: blocks, policy: policy}
	v.clear()
	return v
}

func (v *View) clear() {
	v.consumed = make([]bool, v.layout.TotalBlocks())
	v.removedAt = make(map[int]time.Time)
	v.remaining = v.layout.TotalBlocks()
	v.state = engine.StateIdle
	v.elapsed = 0
	v.progress = 0
	v.remTicks = v.layout.TotalBlocks()
	v.segment = 0
	v.prevSeg = 0
	v.changedAt = time.Time{}
	v.completedAt = time.Time{}
	v.message = constants.MessageIdle
	v.runID = ""
}

// HandleEvent implements events.Handler
func (v *View) HandleEvent(ev events.TimerEvent) {
	switch ev.Type {
	case events.EventStarted:
		v.state = engine.StateRunning
		v.message = constants.MessageStarted
		if p, ok := ev.Payload.(*events.LifecyclePayload); ok {
			v.runID = p.RunID
			v.elapsed = p.Elapsed
			v.segment = p.Segment
			v.prevSeg = p.Segment
		}

	case events.EventStopped:
		v.state = engine.StateIdle
		v.message = constants.MessagePaused

	case events.EventReset:
		v.clear()

	case events.EventSegmentChanged:
		if p, ok := ev.Payload.(*events.SegmentPayload); ok {
			v.prevSeg = p.Previous
			v.segment = p.Segment
			v.changedAt = ev.Timestamp
		}

	case events.EventBlocksRemoved:
		if p, ok := ev.Payload.(*events.BlocksPayload); ok {
			for _, idx := range p.Indices {
				if idx < 0 || idx >= len(v.consumed) || v.consumed[idx] {
					continue
				}
				v.consumed[idx] = true
				v.removedAt[idx] = ev.Timestamp
				v.remaining--
			}
		}

	case events.EventProgress:
		if p, ok := ev.Payload.(*events.ProgressPayload); ok {
			v.elapsed = p.Elapsed
			v.progress = p.Progress
			v.remTicks = p.Remaining
		}

	case events.EventCompleted:
		v.state = engine.StateCompleted
		v.completedAt = ev.Timestamp
		v.message = constants.MessageCompleted
	}
}

// EventTypes implements events.Handler
func (v *View) EventTypes() []events.EventType { return events.AllTypes() }

// Consumed reports whether block has been removed
func (v *View) Consumed(block int) bool {
	if block < 0 || block >= len(v.consumed) {
		return false
	}
	return v.consumed[block]
}

// RemainingBlocks is the count of blocks still shown
func (v *View) RemainingBlocks() int { return v.remaining }

func (v *View) State() engine.ClockState { return v.state }
func (v *View) Segment() int             { return v.segment }
func (v *View) Elapsed() int             { return v.elapsed }
func (v *View) Progress() float64        { return v.progress }
func (v *View) RemainingTicks() int      { return v.remTicks }
func (v *View) Message() string          { return v.message }
func (v *View) RunID() string            { return v.runID }

// ShowStart reports whether the start hint is offered
func (v *View) ShowStart() bool {
	return v.state == engine.StateIdle
}

// ShowReset reports whether the reset hint is offered
func (v *View) ShowReset() bool {
	return v.state != engine.StateIdle || v.elapsed > 0
}

// StartLabel is "start" before the first tick and "resume" after a pause
func (v *View) StartLabel() string {
	if v.elapsed == 0 {
		return constants.LabelStart
	}
	return constants.LabelResume
}

// ResetLabel is "again" once the countdown finished
func (v *View) ResetLabel() string {
	if v.state == engine.StateCompleted {
		return constants.LabelAgain
	}
	return constants.LabelReset
}

// Celebrating reports whether the completion banner is still highlighted at now
func (v *View) Celebrating(now time.Time) bool {
	if v.state != engine.StateCompleted || v.completedAt.IsZero() {
		return false
	}
	return now.Sub(v.completedAt) < constants.CompletionBannerDuration
}

// FadeRatio returns how far a removed block has faded at now, 1 once fully gone
// Blocks that are not consumed return 0
func (v *View) FadeRatio(block int, now time.Time) float64 {
	if !v.Consumed(block) {
		return 0
	}
	at, ok := v.removedAt[block]
	if !ok || at.IsZero() {
		return 1
	}
	d := now.Sub(at)
	if d <= 0 {
		return 0
	}
	if d >= constants.BlockFadeDuration {
		return 1
	}
	return float64(d) / float64(constants.BlockFadeDuration)
}

// waveSegment is the segment color shown for a block at wave position rank
// Following a change, remaining blocks recolor one after another
func (v *View) waveSegment(rank int, now time.Time) int {
	if v.changedAt.IsZero() {
		return v.segment
	}
	if now.Sub(v.changedAt) >= time.Duration(rank)*constants.ColorWaveDelay {
		return v.segment
	}
	return v.prevSeg
}
