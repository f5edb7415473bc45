// Package policy holds the per-window rules that suppress automated copy,
// paste, and focusing clicks for specific applications.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mj1618/macpaste/internal/model"
)

// Entry is the policy for one window owner. The zero value is the default
// applied to windows without a rule: nothing suppressed.
type Entry struct {
	// Skip suppresses copy and paste shortcuts.
	Skip bool `yaml:"skip" json:"skip"`
	// NoFocus suppresses the focusing click sent before a paste.
	NoFocus bool `yaml:"no_focus" json:"no_focus"`
}

// Rule is one configured policy line for a window owner name.
type Rule struct {
	Name    string `yaml:"name"               json:"name"               toml:"name"`
	Skip    bool   `yaml:"skip,omitempty"     json:"skip,omitempty"     toml:"skip"`
	NoFocus bool   `yaml:"no_focus,omitempty" json:"no_focus,omitempty" toml:"no_focus"`
}

// ConfigurationError reports a rule that cannot be loaded.
type ConfigurationError struct {
	Name   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid window policy %q: %s", e.Name, e.Reason)
}

// Table maps window owner names to entries. It is built once by Load and
// must not be modified afterwards, so concurrent lookups need no locking.
type Table struct {
	entries map[string]Entry
}

// Load builds a table from rules. A later rule for a name already in the
// table ORs its flags into the existing entry rather than replacing it.
// A rule with neither flag set registers the name with the default entry.
func Load(rules []Rule) (*Table, error) {
	t := &Table{entries: make(map[string]Entry, len(rules))}
	for _, r := range rules {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, &ConfigurationError{Name: r.Name, Reason: "window name must not be empty"}
		}
		e := t.entries[name]
		e.Skip = e.Skip || r.Skip
		e.NoFocus = e.NoFocus || r.NoFocus
		t.entries[name] = e
	}
	return t, nil
}

// Lookup returns the entry for a window owner name, or the zero Entry.
func (t *Table) Lookup(name string) Entry {
	if t == nil {
		return Entry{}
	}
	return t.entries[name]
}

// Len returns the number of window names with a rule.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Rules returns the merged table as rules sorted by name.
func (t *Table) Rules() []Rule {
	rules := make([]Rule, 0, t.Len())
	if t == nil {
		return rules
	}
	for name, e := range t.entries {
		rules = append(rules, Rule{Name: name, Skip: e.Skip, NoFocus: e.NoFocus})
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Name < rules[j].Name
	})
	return rules
}

// WindowLister enumerates on-screen windows front to back.
type WindowLister interface {
	ListWindows() ([]model.Window, error)
}

// ResolveWindowUnderPoint takes a fresh window snapshot and returns the
// frontmost layer-0 window whose bounds contain at. Enumeration failures
// are reported as no match.
func ResolveWindowUnderPoint(at model.Point, lister WindowLister) (model.Window, bool) {
	if lister == nil {
		return model.Window{}, false
	}
	windows, err := lister.ListWindows()
	if err != nil {
		return model.Window{}, false
	}
	for _, w := range windows {
		if w.Layer != 0 || w.App == "" {
			continue
		}
		if w.Bounds.Contains(at) {
			return w, true
		}
	}
	return model.Window{}, false
}
