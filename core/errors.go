package core

import "errors"

// Error taxonomy shared by the timer packages
// Callers wrap with fmt.Errorf("%w: ...") and test with errors.Is
var (
	// ErrInvalidConfiguration is fatal at construction: counts non-positive,
	// blocks not divisible into segments, or blocks != duration ticks
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidTransition marks a command the state machine ignored
	// (advance while not running, start while completed)
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrOutOfRange marks a query outside its domain, always a caller bug
	ErrOutOfRange = errors.New("out of range")
)
