package grid

import (
	"maps"
	"slices"
	"strings"
)

// NavigationFunc is evaluated by the host engine before it handles a key on a cell.
// It returns true when the engine's default navigation for key must not run.
type NavigationFunc func(key Key) bool

// SuppressionPolicy builds per-column navigation overrides from live Shift state.
// The closures capture the Shift state they were built with, so they are rebuilt on every transition.
type SuppressionPolicy struct {
	columns   []string
	shiftHeld bool
	overrides map[string]NavigationFunc
}

// NewSuppressionPolicy constructs a policy for the given column fields with Shift released.
func NewSuppressionPolicy(columns []string) SuppressionPolicy {
	cols := make([]string, 0, len(columns))
	for _, field := range columns {
		field = strings.TrimSpace(field)
		if field == "" || slices.Contains(cols, field) {
			continue
		}
		cols = append(cols, field)
	}
	p := SuppressionPolicy{columns: cols}
	p.overrides = p.build()
	return p
}

// Columns returns the configured column fields.
func (p SuppressionPolicy) Columns() []string {
	return append([]string(nil), p.columns...)
}

// ShiftHeld reports the Shift state the overrides were derived from.
func (p SuppressionPolicy) ShiftHeld() bool {
	return p.shiftHeld
}

// WithShift re-derives the overrides for a Shift state. changed is false when the state is unchanged
// and the existing closures are kept.
func (p SuppressionPolicy) WithShift(held bool) (next SuppressionPolicy, changed bool) {
	if p.shiftHeld == held && p.overrides != nil {
		return p, false
	}
	p.shiftHeld = held
	p.overrides = p.build()
	return p, true
}

// Override returns the navigation override for field, or nil when the column is not covered.
func (p SuppressionPolicy) Override(field string) NavigationFunc {
	return p.overrides[field]
}

// Overrides returns a copy of all current overrides keyed by field.
func (p SuppressionPolicy) Overrides() map[string]NavigationFunc {
	return maps.Clone(p.overrides)
}

// Suppresses reports whether the default navigation for key on field is currently blocked.
func (p SuppressionPolicy) Suppresses(field string, key Key) bool {
	fn := p.Override(field)
	return fn != nil && fn(key)
}

// build creates one closure per covered column.
func (p SuppressionPolicy) build() map[string]NavigationFunc {
	held := p.shiftHeld
	out := make(map[string]NavigationFunc, len(p.columns))
	for _, field := range p.columns {
		if !held {
			out[field] = func(Key) bool { return false }
			continue
		}
		out[field] = func(key Key) bool {
			switch NormalizeKey(key) {
			case KeyArrowUp, KeyArrowDown:
				return true
			default:
				return false
			}
		}
	}
	return out
}
