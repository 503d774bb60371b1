package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Timer intents
	IntentStart  // Enter
	IntentToggle // Space: reset while running, start otherwise
	IntentPause  // p
	IntentReset  // Escape, r

	// System-level intents
	IntentQuit       // q, Ctrl+C
	IntentToggleMute // m
	IntentResize     // Terminal resize event
)

var intentNames = [...]string{
	IntentNone:       "none",
	IntentStart:      "start",
	IntentToggle:     "toggle",
	IntentPause:      "pause",
	IntentReset:      "reset",
	IntentQuit:       "quit",
	IntentToggleMute: "mute",
	IntentResize:     "resize",
}

func (i IntentType) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}
