package constants

import "time"

// Countdown Defaults
const (
	// DefaultDurationTicks is the session length, one block per tick (3 minutes of 1s ticks)
	DefaultDurationTicks = 180

	// DefaultSegmentCount is the number of color segments (one per minute)
	DefaultSegmentCount = 3

	// DefaultTickInterval is the wall-clock length of one tick
	DefaultTickInterval = 1 * time.Second
)

// Classic preset: 36 blocks removed every 5 seconds, ascending order
const (
	ClassicDurationTicks = 36
	ClassicSegmentCount  = 3
	ClassicTickInterval  = 5 * time.Second
)

// Segment color tokens
const (
	ColorGreen  = "#4CAF50"
	ColorOrange = "#FF9800"
	ColorRed    = "#F44336"
)

// TickSourceBuffer is the capacity of a tick source channel
// Interval sources drop ticks instead of blocking when the consumer lags
const TickSourceBuffer = 1
