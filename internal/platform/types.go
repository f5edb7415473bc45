package platform

import (
	"fmt"
	"strings"

	"github.com/mj1618/macpaste/internal/model"
)

// EventKind is the type of a global pointer event.
type EventKind int

const (
	OtherButtonDown EventKind = iota + 1
	LeftButtonDown
	LeftButtonUp
	LeftButtonDragged
)

var eventKindNames = map[EventKind]string{
	OtherButtonDown:   "other-down",
	LeftButtonDown:    "left-down",
	LeftButtonUp:      "left-up",
	LeftButtonDragged: "left-dragged",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind converts a name such as "left-down" to an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range eventKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind: %q (expected other-down, left-down, left-up, or left-dragged)", s)
}

// PointerEvent is a single event from the global input hook.
type PointerEvent struct {
	Kind EventKind
	At   model.Point
	// Timestamp is in milliseconds from a monotonic clock.
	Timestamp int64
}

// Modifier selects the modifier key held for copy and paste shortcuts.
type Modifier int

const (
	ModifierCommand Modifier = iota
	ModifierControl
)

func (m Modifier) String() string {
	switch m {
	case ModifierCommand:
		return "cmd"
	case ModifierControl:
		return "ctrl"
	default:
		return fmt.Sprintf("Modifier(%d)", int(m))
	}
}

// ParseModifier converts a string flag value to Modifier.
func ParseModifier(s string) (Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cmd", "command":
		return ModifierCommand, nil
	case "ctrl", "control":
		return ModifierControl, nil
	default:
		return ModifierCommand, fmt.Errorf("unknown modifier: %q (expected cmd or ctrl)", s)
	}
}

// Key is a shortcut key sent together with a Modifier.
type Key int

const (
	KeyCopy Key = iota
	KeyPaste
)

func (k Key) String() string {
	switch k {
	case KeyCopy:
		return "copy"
	case KeyPaste:
		return "paste"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}
