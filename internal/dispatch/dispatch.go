// Package dispatch turns classified gestures into injected focus clicks and
// copy/paste shortcuts, filtered by the window policy table.
package dispatch

import (
	"io"
	"log/slog"
	"time"

	"github.com/mj1618/macpaste/internal/gesture"
	"github.com/mj1618/macpaste/internal/model"
	"github.com/mj1618/macpaste/internal/platform"
	"github.com/mj1618/macpaste/internal/policy"
)

// DefaultSettle is the pause between the focusing click and the paste
// shortcut, long enough for the click to place the insertion point.
const DefaultSettle = time.Millisecond

// Options configures a Dispatcher.
type Options struct {
	Policy   *policy.Table
	Windows  policy.WindowLister
	Input    platform.Inputter
	Modifier platform.Modifier
	Settle   time.Duration
	Logger   *slog.Logger
	Sleep    func(time.Duration)
}

// Dispatcher issues injected actions for gestures.
type Dispatcher struct {
	policy   *policy.Table
	windows  policy.WindowLister
	input    platform.Inputter
	modifier platform.Modifier
	settle   time.Duration
	logger   *slog.Logger
	sleep    func(time.Duration)
}

// New constructs a Dispatcher, filling unset options with defaults.
func New(opts Options) *Dispatcher {
	settle := opts.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Dispatcher{
		policy:   opts.Policy,
		windows:  opts.Windows,
		input:    opts.Input,
		modifier: opts.Modifier,
		settle:   settle,
		logger:   logger,
		sleep:    sleep,
	}
}

// Dispatch runs the action for g. A None gesture does nothing.
func (d *Dispatcher) Dispatch(g gesture.Gesture) {
	switch g.Kind {
	case gesture.Paste:
		d.HandlePaste(g.At)
	case gesture.Copy:
		d.HandleCopy(g.At)
	}
}

// HandlePaste clicks at the pointer to focus and position the insertion
// point, unless the window is no-focus, then sends the paste shortcut,
// unless the window is skipped. A skipped window that is not no-focus
// still receives the focusing click; only the shortcut is suppressed.
// Rules that must stay fully untouched set both flags.
func (d *Dispatcher) HandlePaste(at model.Point) {
	entry := d.entryAt(at)

	if !entry.NoFocus {
		d.logger.Debug("focusing", "x", at.X, "y", at.Y)
		if err := d.input.Click(at); err != nil {
			d.logger.Debug("focus click failed", "error", err)
			return
		}
	}

	if entry.Skip {
		return
	}

	d.sleep(d.settle)

	if err := d.input.KeyCombo(platform.KeyPaste, d.modifier); err != nil {
		d.logger.Debug("paste shortcut failed", "error", err)
	}
}

// HandleCopy sends the copy shortcut unless the window is skipped.
func (d *Dispatcher) HandleCopy(at model.Point) {
	if d.entryAt(at).Skip {
		return
	}
	if err := d.input.KeyCombo(platform.KeyCopy, d.modifier); err != nil {
		d.logger.Debug("copy shortcut failed", "error", err)
	}
}

// entryAt returns the policy entry for the window under at. With an empty
// table filtering is inactive and the window server is not queried.
func (d *Dispatcher) entryAt(at model.Point) policy.Entry {
	if d.policy.Len() == 0 {
		return policy.Entry{}
	}
	w, ok := policy.ResolveWindowUnderPoint(at, d.windows)
	if !ok {
		d.logger.Debug("no window", "x", at.X, "y", at.Y)
		return policy.Entry{}
	}
	entry := d.policy.Lookup(w.App)
	d.logger.Debug("window under pointer", "app", w.App, "skip", entry.Skip, "no_focus", entry.NoFocus)
	return entry
}
