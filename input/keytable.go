package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Escape)
	SpecialKeys map[tcell.Key]IntentType

	// Plain rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEnter:  IntentStart,
			tcell.KeyEscape: IntentReset,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlL:  IntentResize,
		},
		Runes: map[rune]IntentType{
			' ': IntentToggle,
			'p': IntentPause,
			'r': IntentReset,
			'q': IntentQuit,
			'm': IntentToggleMute,
		},
	}
}

// Lookup resolves a key event, IntentNone when unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}
