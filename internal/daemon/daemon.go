// Package daemon runs the event loop that connects the global event source
// to the gesture classifier and the action dispatcher.
package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mj1618/macpaste/internal/dispatch"
	"github.com/mj1618/macpaste/internal/gesture"
	"github.com/mj1618/macpaste/internal/platform"
)

// Daemon processes pointer events one at a time until its context ends.
type Daemon struct {
	source     platform.EventSource
	classifier gesture.Classifier
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// New creates a daemon. A nil logger discards output.
func New(source platform.EventSource, classifier gesture.Classifier, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Daemon{
		source:     source,
		classifier: classifier,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run streams events until ctx is cancelled. Cancellation is a normal
// shutdown and returns nil.
func (d *Daemon) Run(ctx context.Context) error {
	var state gesture.State
	err := d.source.Stream(ctx, func(ev platform.PointerEvent) error {
		var g gesture.Gesture
		state, g = d.classifier.Next(state, ev)
		if g.Kind != gesture.None {
			d.logger.Debug("gesture", "kind", g.Kind.String(), "x", g.At.X, "y", g.At.Y)
			d.dispatcher.Dispatch(g)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
