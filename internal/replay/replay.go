// Package replay runs scripted pointer events against a scripted screen,
// recording the actions that would have been injected.
package replay

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/macpaste/internal/model"
	"github.com/mj1618/macpaste/internal/platform"
)

// Script is a recorded session: the windows on screen and the pointer
// events to replay, in order.
type Script struct {
	Windows []model.Window `yaml:"windows"`
	Events  []Event        `yaml:"events"`
}

// Event is one scripted pointer event.
type Event struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	// T is the monotonic timestamp in milliseconds.
	T int64 `yaml:"t"`
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return DecodeScript(f)
}

// DecodeScript parses a YAML script and validates its event kinds.
func DecodeScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	for i, ev := range s.Events {
		if _, err := platform.ParseEventKind(ev.Kind); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return &s, nil
}

// Source returns an EventSource that emits the script's events in order.
func (s *Script) Source() platform.EventSource {
	return platform.EventSourceFunc(func(ctx context.Context, emit func(platform.PointerEvent) error) error {
		for i, ev := range s.Events {
			if err := ctx.Err(); err != nil {
				return err
			}
			kind, err := platform.ParseEventKind(ev.Kind)
			if err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			pe := platform.PointerEvent{
				Kind:      kind,
				At:        model.Point{X: ev.X, Y: ev.Y},
				Timestamp: ev.T,
			}
			if err := emit(pe); err != nil {
				return err
			}
		}
		return nil
	})
}

// Lister returns a WindowLister over the script's windows.
func (s *Script) Lister() Windows {
	return Windows(s.Windows)
}

// Windows is a fixed window list, front to back.
type Windows []model.Window

// ListWindows returns a copy of the list.
func (w Windows) ListWindows() ([]model.Window, error) {
	out := make([]model.Window, len(w))
	copy(out, w)
	return out, nil
}

// Action is one recorded injected action.
type Action struct {
	Type     string  `yaml:"type"               json:"type"`
	X        float64 `yaml:"x"                  json:"x"`
	Y        float64 `yaml:"y"                  json:"y"`
	Key      string  `yaml:"key,omitempty"      json:"key,omitempty"`
	Modifier string  `yaml:"modifier,omitempty" json:"modifier,omitempty"`
}

// Recorder is a platform.Inputter that records instead of injecting.
type Recorder struct {
	Actions []Action
}

// Click records a focusing click.
func (r *Recorder) Click(at model.Point) error {
	r.Actions = append(r.Actions, Action{Type: "click", X: at.X, Y: at.Y})
	return nil
}

// KeyCombo records a shortcut.
func (r *Recorder) KeyCombo(key platform.Key, mod platform.Modifier) error {
	r.Actions = append(r.Actions, Action{Type: "key", Key: key.String(), Modifier: mod.String()})
	return nil
}
