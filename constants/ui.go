package constants

import "time"

// UI Layout Constants
const (
	// DefaultBlockColumns is the number of blocks per row inside one section
	DefaultBlockColumns = 20

	// BlockCellWidth is the terminal width of one block glyph pair
	BlockCellWidth = 2

	// SectionTitleHeight is the rows reserved above each section
	SectionTitleHeight = 1

	// ProgressBarWidth is the maximum width of the progress bar
	ProgressBarWidth = 40
)

// UI Timing Constants
const (
	// FrameUpdateInterval is the redraw rate of the terminal frontend
	FrameUpdateInterval = 50 * time.Millisecond

	// BlockFadeDuration is how long a removed block fades before disappearing
	BlockFadeDuration = 500 * time.Millisecond

	// CompletionBannerDuration is how long the completion celebration stays highlighted
	CompletionBannerDuration = 3 * time.Second

	// ColorWaveDelay is the per-block delay of the segment color wave
	ColorWaveDelay = 50 * time.Millisecond
)

// UI Color Constants
const (
	// BlockFadeSteps is the gradient resolution of the removal fade
	BlockFadeSteps = 6

	// ColorConsumed is the token a removed block fades toward
	ColorConsumed = "#303030"

	// ColorDim is used for descriptions and empty bar cells
	ColorDim = "#707070"

	// ColorText is the default foreground for status text
	ColorText = "#E0E0E0"

	// InactiveTitleBrightness scales the segment color of inactive section titles
	InactiveTitleBrightness = 0.6

	// BannerTextBlend lightens the completion banner from the last segment color toward ColorText
	BannerTextBlend = 0.25
)

// Status messages
const (
	MessageIdle      = "Press Enter to start the timer"
	MessageStarted   = "Timer started!"
	MessagePaused    = "Paused - press Enter to resume"
	MessageCompleted = "* Time is up! Great job! *"
)

// Key hint labels
const (
	LabelStart  = "start"
	LabelResume = "resume"
	LabelReset  = "reset"
	LabelAgain  = "again"
	LabelQuit   = "quit"
)
