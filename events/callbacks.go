package events

// Callbacks adapts plain functions to a Handler
// Nil fields are skipped; EventTypes only lists the non-nil ones
type Callbacks struct {
	OnStarted        func(p LifecyclePayload)
	OnStopped        func(p LifecyclePayload)
	OnReset          func(p LifecyclePayload)
	OnSegmentChanged func(segment int)
	OnBlocksRemoved  func(indices []int)
	OnProgress       func(progress float64, remaining int)
	OnCompleted      func()
}

// HandleEvent implements Handler
func (c *Callbacks) HandleEvent(ev TimerEvent) {
	switch ev.Type {
	case EventStarted:
		if p, ok := ev.Payload.(*LifecyclePayload); ok && c.OnStarted != nil {
			c.OnStarted(*p)
		}
	case EventStopped:
		if p, ok := ev.Payload.(*LifecyclePayload); ok && c.OnStopped != nil {
			c.OnStopped(*p)
		}
	case EventReset:
		if p, ok := ev.Payload.(*LifecyclePayload); ok && c.OnReset != nil {
			c.OnReset(*p)
		}
	case EventSegmentChanged:
		if p, ok := ev.Payload.(*SegmentPayload); ok && c.OnSegmentChanged != nil {
			c.OnSegmentChanged(p.Segment)
		}
	case EventBlocksRemoved:
		if p, ok := ev.Payload.(*BlocksPayload); ok && c.OnBlocksRemoved != nil {
			c.OnBlocksRemoved(p.Indices)
		}
	case EventProgress:
		if p, ok := ev.Payload.(*ProgressPayload); ok && c.OnProgress != nil {
			c.OnProgress(p.Progress, p.Remaining)
		}
	case EventCompleted:
		if c.OnCompleted != nil {
			c.OnCompleted()
		}
	}
}

// EventTypes implements Handler
func (c *Callbacks) EventTypes() []EventType {
	var types []EventType
	if c.OnStarted != nil {
		types = append(types, EventStarted)
	}
	if c.OnStopped != nil {
		types = append(types, EventStopped)
	}
	if c.OnReset != nil {
		types = append(types, EventReset)
	}
	if c.OnSegmentChanged != nil {
		types = append(types, EventSegmentChanged)
	}
	if c.OnBlocksRemoved != nil {
		types = append(types, EventBlocksRemoved)
	}
	if c.OnProgress != nil {
		types = append(types, EventProgress)
	}
	if c.OnCompleted != nil {
		types = append(types, EventCompleted)
	}
	return types
}

// AllTypes lists every event type in declaration order
func AllTypes() []EventType {
	return []EventType{
		EventStarted,
		EventStopped,
		EventReset,
		EventSegmentChanged,
		EventBlocksRemoved,
		EventProgress,
		EventCompleted,
	}
}

// Recorder stores every event it receives, for tests and debugging
type Recorder struct {
	Events []TimerEvent
}

// HandleEvent implements Handler
func (r *Recorder) HandleEvent(ev TimerEvent) { r.Events = append(r.Events, ev) }

// EventTypes implements Handler
func (r *Recorder) EventTypes() []EventType { return AllTypes() }

// Types returns the recorded event types in order
func (r *Recorder) Types() []EventType {
	out := make([]EventType, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Type
	}
	return out
}

// Count returns how many events of type t were recorded
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Clear drops recorded events
func (r *Recorder) Clear() { r.Events = r.Events[:0] }
