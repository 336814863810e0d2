package grid

import (
	"maps"
	"slices"
)

// DefaultClickHistoryCap is the number of primary clicks remembered for anchor decisions.
const DefaultClickHistoryCap = 2

// SelectionConfig configures a Selection.
type SelectionConfig struct {
	HistoryCap int
	// PairFirstClick selects the clicked row together with the previous anchor when an unmodified click
	// lands on an empty selection.
	PairFirstClick bool
}

// Selection is the set of selected display positions plus the primary-click history.
// Values are immutable: every transition returns a new Selection.
type Selection struct {
	rows      map[int]struct{}
	history   []int
	cap       int
	pairFirst bool
}

// NewSelection constructs an empty selection.
func NewSelection(cfg SelectionConfig) Selection {
	if cfg.HistoryCap < 1 {
		cfg.HistoryCap = DefaultClickHistoryCap
	}
	return Selection{
		rows:      map[int]struct{}{},
		cap:       cfg.HistoryCap,
		pairFirst: cfg.PairFirstClick,
	}
}

// Len returns the number of selected rows.
func (s Selection) Len() int {
	return len(s.rows)
}

// Contains reports whether row is selected.
func (s Selection) Contains(row int) bool {
	_, ok := s.rows[row]
	return ok
}

// Rows returns selected rows in display order.
func (s Selection) Rows() []int {
	out := slices.Collect(maps.Keys(s.rows))
	slices.Sort(out)
	return out
}

// History returns the click history, oldest first.
func (s Selection) History() []int {
	return append([]int(nil), s.history...)
}

// PreviousAnchor returns the most recent primary click.
func (s Selection) PreviousAnchor() (int, bool) {
	if len(s.history) == 0 {
		return 0, false
	}
	return s.history[len(s.history)-1], true
}

// Equal reports whether both selections hold the same rows.
func (s Selection) Equal(other Selection) bool {
	if len(s.rows) != len(other.rows) {
		return false
	}
	for row := range s.rows {
		if !other.Contains(row) {
			return false
		}
	}
	return true
}

// RecordPrimaryClick pushes row onto the click history, evicting the oldest entry past the cap.
// The selected set is unchanged.
func (s Selection) RecordPrimaryClick(row int) Selection {
	if row < 0 {
		return s
	}
	history := append([]int(nil), s.history...)
	history = append(history, row)
	limit := s.cap
	if limit < 1 {
		limit = DefaultClickHistoryCap
	}
	if over := len(history) - limit; over > 0 {
		history = history[over:]
	}
	s.history = history
	return s
}

// ComputeClickSelection applies a mouse click on clicked with the given modifiers.
// focused is the row holding focus after the click; rowCount is the number of displayed rows.
// Out-of-range rows leave the selection unchanged.
func (s Selection) ComputeClickSelection(clicked int, mods Modifier, focused, rowCount int) Selection {
	if !inRange(clicked, rowCount) {
		return s
	}
	ctrl := mods.Has(ModCtrl) || mods.Has(ModMeta)
	shift := mods.Has(ModShift)
	switch {
	case ctrl:
		return s.Toggle(clicked, rowCount)
	case shift:
		anchor, ok := s.PreviousAnchor()
		if !ok || !inRange(anchor, rowCount) {
			return s.replace(clicked)
		}
		if !inRange(focused, rowCount) {
			focused = clicked
		}
		return s.withRange(anchor, focused)
	case s.Len() == 0:
		if anchor, ok := s.PreviousAnchor(); ok && s.pairFirst && anchor != clicked && inRange(anchor, rowCount) {
			return s.replace(clicked, anchor)
		}
		return s.replace(clicked)
	case s.Len() > 1:
		if !inRange(focused, rowCount) {
			focused = clicked
		}
		return s.replace(focused)
	default:
		return s.replace(clicked)
	}
}

// Toggle flips membership of row.
func (s Selection) Toggle(row, rowCount int) Selection {
	if !inRange(row, rowCount) {
		return s
	}
	rows := make(map[int]struct{}, len(s.rows)+1)
	maps.Copy(rows, s.rows)
	if _, ok := rows[row]; ok {
		delete(rows, row)
	} else {
		rows[row] = struct{}{}
	}
	s.rows = rows
	return s
}

// SelectAll selects every displayed row.
func (s Selection) SelectAll(rowCount int) Selection {
	rows := make(map[int]struct{}, rowCount)
	for i := 0; i < rowCount; i++ {
		rows[i] = struct{}{}
	}
	s.rows = rows
	return s
}

// WithRows selects exactly the in-range entries of rows.
func (s Selection) WithRows(rows []int, rowCount int) Selection {
	next := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		if inRange(row, rowCount) {
			next[row] = struct{}{}
		}
	}
	s.rows = next
	return s
}

// ClearRows empties the selected set but keeps the click history.
func (s Selection) ClearRows() Selection {
	s.rows = map[int]struct{}{}
	return s
}

// Clear empties the selected set and the click history.
func (s Selection) Clear() Selection {
	s.rows = map[int]struct{}{}
	s.history = nil
	return s
}

// withRange selects the inclusive display range between a and b.
func (s Selection) withRange(a, b int) Selection {
	if a > b {
		a, b = b, a
	}
	rows := make(map[int]struct{}, b-a+1)
	for i := a; i <= b; i++ {
		rows[i] = struct{}{}
	}
	s.rows = rows
	return s
}

// replace selects exactly rows.
func (s Selection) replace(rows ...int) Selection {
	next := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		next[row] = struct{}{}
	}
	s.rows = next
	return s
}

// inRange reports whether row is a valid display position.
func inRange(row, rowCount int) bool {
	return row >= 0 && row < rowCount
}
