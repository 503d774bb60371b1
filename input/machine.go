// Package input maps terminal key events to timer commands
package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blocktimer/engine"
)

// Timer is the subset of the orchestrator driven by keys
type Timer interface {
	Start() error
	Stop()
	Reset()
	Snapshot() engine.Snapshot
}

// Machine translates terminal events into intents and applies timer intents
// System intents (quit, mute, resize) are returned for the owner to act on
type Machine struct {
	keys  *KeyTable
	timer Timer
	log   zerolog.Logger
}

// NewMachine creates a machine over timer, nil keys selects DefaultKeyTable
func NewMachine(keys *KeyTable, timer Timer, log zerolog.Logger) *Machine {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Machine{keys: keys, timer: timer, log: log}
}

// Handle processes one terminal event
// The returned error comes from the timer and is informational; state is never corrupted
func (m *Machine) Handle(ev tcell.Event) (IntentType, error) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		return IntentResize, nil
	case *tcell.EventKey:
		intent := m.keys.Lookup(e)
		return intent, m.apply(intent)
	default:
		return IntentNone, nil
	}
}

func (m *Machine) apply(intent IntentType) error {
	switch intent {
	case IntentStart:
		return m.start()
	case IntentToggle:
		if m.timer.Snapshot().State == engine.StateRunning {
			m.timer.Reset()
			return nil
		}
		return m.start()
	case IntentPause:
		m.timer.Stop()
	case IntentReset:
		m.timer.Reset()
	}
	return nil
}

func (m *Machine) start() error {
	if err := m.timer.Start(); err != nil {
		m.log.Debug().Err(err).Msg("start refused")
		return err
	}
	return nil
}
