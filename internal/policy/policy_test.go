package policy

import (
	"errors"
	"testing"

	"github.com/mj1618/macpaste/internal/model"
)

func TestLookup_Unregistered(t *testing.T) {
	table, err := Load([]Rule{{Name: "Terminal", Skip: true}})
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Lookup("Safari"); got != (Entry{}) {
		t.Errorf("Lookup(Safari) = %+v, want zero entry", got)
	}
}

func TestLookup_NilTable(t *testing.T) {
	var table *Table
	if got := table.Lookup("anything"); got != (Entry{}) {
		t.Errorf("Lookup on nil table = %+v, want zero entry", got)
	}
	if table.Len() != 0 {
		t.Errorf("Len on nil table = %d, want 0", table.Len())
	}
	if rules := table.Rules(); len(rules) != 0 {
		t.Errorf("Rules on nil table = %v, want empty", rules)
	}
}

func TestLoad_MergesFlags(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		want  Entry
	}{
		{
			name:  "skip then no-focus",
			rules: []Rule{{Name: "iTerm2", Skip: true}, {Name: "iTerm2", NoFocus: true}},
			want:  Entry{Skip: true, NoFocus: true},
		},
		{
			name:  "no-focus then skip",
			rules: []Rule{{Name: "iTerm2", NoFocus: true}, {Name: "iTerm2", Skip: true}},
			want:  Entry{Skip: true, NoFocus: true},
		},
		{
			name:  "duplicate skip",
			rules: []Rule{{Name: "iTerm2", Skip: true}, {Name: "iTerm2", Skip: true}},
			want:  Entry{Skip: true},
		},
		{
			name:  "name is trimmed",
			rules: []Rule{{Name: " iTerm2 ", NoFocus: true}, {Name: "iTerm2", Skip: true}},
			want:  Entry{Skip: true, NoFocus: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(tt.rules)
			if err != nil {
				t.Fatal(err)
			}
			if table.Len() != 1 {
				t.Errorf("Len() = %d, want 1", table.Len())
			}
			if got := table.Lookup("iTerm2"); got != tt.want {
				t.Errorf("Lookup = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	table, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"empty name", []Rule{{Name: "", Skip: true}}},
		{"blank name", []Rule{{Name: "   ", NoFocus: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.rules)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Load error = %v, want *ConfigurationError", err)
			}
		})
	}
}

func TestLoad_RuleWithoutFlags(t *testing.T) {
	table, err := Load([]Rule{{Name: "Safari"}, {Name: "Safari"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := table.Lookup("Safari"); got != (Entry{}) {
		t.Errorf("Lookup(Safari) = %+v, want default entry", got)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}

	// A flagless rule merged with a flagged one keeps the flag.
	table, err = Load([]Rule{{Name: "Safari", NoFocus: true}, {Name: "Safari"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := table.Lookup("Safari"); got != (Entry{NoFocus: true}) {
		t.Errorf("Lookup(Safari) = %+v, want no-focus", got)
	}
}

func TestRules_SortedByName(t *testing.T) {
	table, err := Load([]Rule{
		{Name: "Xcode", NoFocus: true},
		{Name: "Alacritty", Skip: true},
		{Name: "Xcode", Skip: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	rules := table.Rules()
	want := []Rule{
		{Name: "Alacritty", Skip: true},
		{Name: "Xcode", Skip: true, NoFocus: true},
	}
	if len(rules) != len(want) {
		t.Fatalf("Rules() = %+v, want %+v", rules, want)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Errorf("Rules()[%d] = %+v, want %+v", i, rules[i], want[i])
		}
	}
}

type staticLister struct {
	windows []model.Window
	err     error
	calls   int
}

func (s *staticLister) ListWindows() ([]model.Window, error) {
	s.calls++
	return s.windows, s.err
}

func TestResolveWindowUnderPoint(t *testing.T) {
	lister := &staticLister{windows: []model.Window{
		{App: "Window Server", Layer: 25, Bounds: model.Bounds{X: 0, Y: 0, Width: 1440, Height: 24}},
		{App: "", Layer: 0, Bounds: model.Bounds{X: 0, Y: 0, Width: 1440, Height: 900}},
		{App: "Terminal", Layer: 0, Bounds: model.Bounds{X: 100, Y: 100, Width: 400, Height: 300}},
		{App: "Safari", Layer: 0, Bounds: model.Bounds{X: 0, Y: 0, Width: 1440, Height: 900}},
	}}

	tests := []struct {
		name   string
		at     model.Point
		want   string
		wantOK bool
	}{
		{"menu bar layer is ignored", model.Point{X: 10, Y: 10}, "Safari", true},
		{"frontmost window wins", model.Point{X: 150, Y: 150}, "Terminal", true},
		{"behind front window edge", model.Point{X: 500, Y: 150}, "Safari", true},
		{"off every window", model.Point{X: 2000, Y: 2000}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := ResolveWindowUnderPoint(tt.at, lister)
			if ok != tt.wantOK || w.App != tt.want {
				t.Errorf("ResolveWindowUnderPoint(%v) = %q, %v; want %q, %v", tt.at, w.App, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveWindowUnderPoint_RequeriesEachCall(t *testing.T) {
	lister := &staticLister{windows: []model.Window{
		{App: "Notes", Layer: 0, Bounds: model.Bounds{Width: 100, Height: 100}},
	}}
	ResolveWindowUnderPoint(model.Point{X: 1, Y: 1}, lister)
	lister.windows = nil
	if _, ok := ResolveWindowUnderPoint(model.Point{X: 1, Y: 1}, lister); ok {
		t.Error("stale window list was used")
	}
	if lister.calls != 2 {
		t.Errorf("ListWindows called %d times, want 2", lister.calls)
	}
}

func TestResolveWindowUnderPoint_ErrorsAreMisses(t *testing.T) {
	lister := &staticLister{err: errors.New("window server unavailable")}
	if _, ok := ResolveWindowUnderPoint(model.Point{}, lister); ok {
		t.Error("enumeration error should resolve to no window")
	}
	if _, ok := ResolveWindowUnderPoint(model.Point{}, nil); ok {
		t.Error("nil lister should resolve to no window")
	}
}
