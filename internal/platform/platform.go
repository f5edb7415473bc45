package platform

import (
	"context"

	"github.com/mj1618/macpaste/internal/model"
)

// EventSource delivers global pointer events in temporal order.
//
// Stream blocks, calling emit once per event, until ctx is cancelled or an
// error occurs. emit is never called concurrently. Events produced by this
// process's own Inputter must not be delivered.
type EventSource interface {
	Stream(ctx context.Context, emit func(PointerEvent) error) error
}

// EventSourceFunc adapts a function literal to the EventSource interface.
type EventSourceFunc func(ctx context.Context, emit func(PointerEvent) error) error

// Stream calls the underlying function.
func (f EventSourceFunc) Stream(ctx context.Context, emit func(PointerEvent) error) error {
	return f(ctx, emit)
}

// Inputter simulates mouse and keyboard input, desktop-wide.
// Each call posts a complete down+up pair or nothing at all.
type Inputter interface {
	// Click sends a left button down+up at the given screen location.
	Click(at model.Point) error

	// KeyCombo sends key down+up with the modifier held.
	KeyCombo(key Key, mod Modifier) error
}

// WindowLister enumerates on-screen windows.
type WindowLister interface {
	// ListWindows returns every currently visible window, front to back.
	// Results are never cached across calls.
	ListWindows() ([]model.Window, error)
}
