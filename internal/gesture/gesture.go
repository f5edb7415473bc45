// Package gesture classifies raw pointer events into copy and paste gestures.
package gesture

import (
	"time"

	"github.com/mj1618/macpaste/internal/model"
	"github.com/mj1618/macpaste/internal/platform"
)

// DefaultDoubleClick is the maximum gap between two left-button downs for
// the second click to count as a double click.
const DefaultDoubleClick = 500 * time.Millisecond

// Kind is the type of a classified gesture.
type Kind int

const (
	None Kind = iota
	Paste
	Copy
)

func (k Kind) String() string {
	switch k {
	case Paste:
		return "paste"
	case Copy:
		return "copy"
	default:
		return "none"
	}
}

// Gesture is a classified user action at a screen location.
type Gesture struct {
	Kind Kind
	At   model.Point
}

// State is the click-timing state carried between events.
// The zero value is the start state. PrevDown only takes part in double
// click detection once Downs reaches 2, so the first click never counts
// as a double click whatever the clock origin of the event source.
type State struct {
	PrevDown int64
	CurDown  int64
	Dragging bool
	// Downs counts recorded left-button downs, saturating at 2.
	Downs int
}

// Classifier turns pointer events into gestures.
type Classifier struct {
	DoubleClick time.Duration
}

// NewClassifier creates a classifier. A non-positive threshold selects DefaultDoubleClick.
func NewClassifier(doubleClick time.Duration) Classifier {
	if doubleClick <= 0 {
		doubleClick = DefaultDoubleClick
	}
	return Classifier{DoubleClick: doubleClick}
}

// Next applies ev to s and returns the new state and the gesture it
// triggers, if any (Kind None otherwise).
//
// Double clicks are detected from consecutive down timestamps only, so a
// drag followed quickly by another click also counts.
func (c Classifier) Next(s State, ev platform.PointerEvent) (State, Gesture) {
	switch ev.Kind {
	case platform.OtherButtonDown:
		return s, Gesture{Kind: Paste, At: ev.At}

	case platform.LeftButtonDown:
		s.PrevDown = s.CurDown
		s.CurDown = ev.Timestamp
		if s.Downs < 2 {
			s.Downs++
		}
		return s, Gesture{}

	case platform.LeftButtonDragged:
		s.Dragging = true
		return s, Gesture{}

	case platform.LeftButtonUp:
		var g Gesture
		if s.Dragging || c.isDoubleClick(s) {
			g = Gesture{Kind: Copy, At: ev.At}
		}
		s.Dragging = false
		return s, g
	}
	return s, Gesture{}
}

func (c Classifier) isDoubleClick(s State) bool {
	if s.Downs < 2 {
		return false
	}
	threshold := c.DoubleClick
	if threshold <= 0 {
		threshold = DefaultDoubleClick
	}
	return s.CurDown-s.PrevDown < threshold.Milliseconds()
}
