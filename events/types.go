package events

import "time"

// EventType represents the type of timer event
type EventType int

const (
	// EventStarted signals the clock entered Running
	// Trigger: Orchestrator.Start from Idle | Payload: *LifecyclePayload
	EventStarted EventType = iota

	// EventStopped signals the clock left Running without completing
	// Trigger: Orchestrator.Stop while Running | Payload: *LifecyclePayload
	EventStopped

	// EventReset signals the clock returned to elapsed 0
	// Trigger: Orchestrator.Reset | Payload: *LifecyclePayload
	// Consumers rebuild the full block grid from elapsed 0
	EventReset

	// EventSegmentChanged signals a new active color segment
	// Trigger: Tick crossing a segment boundary, emitted before EventBlocksRemoved
	// Consumer: View (recolor), SoundManager (chime) | Payload: *SegmentPayload
	EventSegmentChanged

	// EventBlocksRemoved carries the blocks consumed by one tick
	// Trigger: Every processed tick | Payload: *BlocksPayload
	EventBlocksRemoved

	// EventProgress carries the clock position after one tick
	// Trigger: Every processed tick, after EventBlocksRemoved | Payload: *ProgressPayload
	EventProgress

	// EventCompleted signals the final tick, exactly once per run
	// Trigger: Tick reaching total duration, after the tick's other events
	// Consumer: View (banner), SoundManager (chime) | Payload: nil
	EventCompleted
)

// String returns the name of the event type for debugging
func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "Started"
	case EventStopped:
		return "Stopped"
	case EventReset:
		return "Reset"
	case EventSegmentChanged:
		return "SegmentChanged"
	case EventBlocksRemoved:
		return "BlocksRemoved"
	case EventProgress:
		return "Progress"
	case EventCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// TimerEvent is a single emitted event
// Tick is the clock elapsed value the event describes
type TimerEvent struct {
	Type      EventType
	Tick      int
	Payload   any
	Timestamp time.Time
}

// LifecyclePayload describes the clock after a command
type LifecyclePayload struct {
	RunID   string
	Elapsed int
	Total   int
	Segment int
}

// SegmentPayload identifies the newly active segment
type SegmentPayload struct {
	Previous int
	Segment  int
	Token    string
}

// BlocksPayload lists block indices newly consumed, ascending
type BlocksPayload struct {
	Indices []int
}

// ProgressPayload is the clock position after a tick
type ProgressPayload struct {
	Progress  float64
	Elapsed   int
	Remaining int
}
