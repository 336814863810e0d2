package grid

import (
	"slices"
	"testing"
)

// TestSelectionFirstClickPairsAnchor verifies the first unmodified click also selects the previous anchor.
func TestSelectionFirstClickPairsAnchor(t *testing.T) {
	s := NewSelection(SelectionConfig{PairFirstClick: true}).RecordPrimaryClick(5)

	s = s.ComputeClickSelection(2, 0, 2, 10)
	if got := s.Rows(); !slices.Equal(got, []int{2, 5}) {
		t.Fatalf("first click rows = %v, want [2 5]", got)
	}
	s = s.RecordPrimaryClick(2)

	s = s.ComputeClickSelection(2, 0, 2, 10)
	if got := s.Rows(); !slices.Equal(got, []int{2}) {
		t.Fatalf("second click rows = %v, want [2]", got)
	}
}

// TestSelectionFirstClickWithoutPairing verifies single-click selection when pairing is disabled.
func TestSelectionFirstClickWithoutPairing(t *testing.T) {
	s := NewSelection(SelectionConfig{}).RecordPrimaryClick(5)
	s = s.ComputeClickSelection(2, 0, 2, 10)
	if got := s.Rows(); !slices.Equal(got, []int{2}) {
		t.Fatalf("rows = %v, want [2]", got)
	}
}

// TestSelectionCtrlClickToggles verifies ctrl-click adds and removes rows.
func TestSelectionCtrlClickToggles(t *testing.T) {
	s := NewSelection(SelectionConfig{}).WithRows([]int{3}, 10)

	s = s.ComputeClickSelection(7, ModCtrl, 7, 10)
	if got := s.Rows(); !slices.Equal(got, []int{3, 7}) {
		t.Fatalf("after ctrl-click 7 rows = %v, want [3 7]", got)
	}
	s = s.ComputeClickSelection(3, ModCtrl, 3, 10)
	if got := s.Rows(); !slices.Equal(got, []int{7}) {
		t.Fatalf("after ctrl-click 3 rows = %v, want [7]", got)
	}
}

// TestSelectionCtrlWinsOverShift verifies ctrl takes precedence when both modifiers are held.
func TestSelectionCtrlWinsOverShift(t *testing.T) {
	s := NewSelection(SelectionConfig{}).RecordPrimaryClick(1)
	s = s.ComputeClickSelection(4, ModCtrl|ModShift, 4, 10)
	if got := s.Rows(); !slices.Equal(got, []int{4}) {
		t.Fatalf("rows = %v, want [4]", got)
	}
}

// TestSelectionShiftClickRange verifies shift-click selects the range from the anchor to focus.
func TestSelectionShiftClickRange(t *testing.T) {
	s := NewSelection(SelectionConfig{}).RecordPrimaryClick(6)
	s = s.ComputeClickSelection(3, ModShift, 3, 10)
	if got := s.Rows(); !slices.Equal(got, []int{3, 4, 5, 6}) {
		t.Fatalf("rows = %v, want [3 4 5 6]", got)
	}

	empty := NewSelection(SelectionConfig{})
	empty = empty.ComputeClickSelection(3, ModShift, 3, 10)
	if got := empty.Rows(); !slices.Equal(got, []int{3}) {
		t.Fatalf("shift-click without anchor rows = %v, want [3]", got)
	}
}

// TestSelectionHistoryCap verifies the click history evicts the oldest entry.
func TestSelectionHistoryCap(t *testing.T) {
	s := NewSelection(SelectionConfig{HistoryCap: 2})
	for _, row := range []int{1, 2, 3} {
		s = s.RecordPrimaryClick(row)
	}
	if got := s.History(); !slices.Equal(got, []int{2, 3}) {
		t.Fatalf("History() = %v, want [2 3]", got)
	}
	if anchor, ok := s.PreviousAnchor(); !ok || anchor != 3 {
		t.Fatalf("PreviousAnchor() = %d, %v, want 3, true", anchor, ok)
	}
	if s.Len() != 0 {
		t.Fatalf("RecordPrimaryClick changed rows: %v", s.Rows())
	}
}

// TestSelectionImmutable verifies transitions never mutate the receiver.
func TestSelectionImmutable(t *testing.T) {
	base := NewSelection(SelectionConfig{}).WithRows([]int{1}, 5)
	toggled := base.Toggle(2, 5)
	all := base.SelectAll(5)
	if got := base.Rows(); !slices.Equal(got, []int{1}) {
		t.Fatalf("base rows = %v, want [1]", got)
	}
	if got := toggled.Rows(); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("toggled rows = %v, want [1 2]", got)
	}
	if all.Len() != 5 {
		t.Fatalf("SelectAll len = %d, want 5", all.Len())
	}
}

// TestSelectionOutOfRangeIgnored verifies stale row references are absorbed.
func TestSelectionOutOfRangeIgnored(t *testing.T) {
	s := NewSelection(SelectionConfig{}).WithRows([]int{1, 9}, 3)
	if got := s.Rows(); !slices.Equal(got, []int{1}) {
		t.Fatalf("WithRows rows = %v, want [1]", got)
	}
	if next := s.Toggle(7, 3); !next.Equal(s) {
		t.Fatalf("Toggle(7) changed selection to %v", next.Rows())
	}
	if next := s.ComputeClickSelection(-1, 0, 0, 3); !next.Equal(s) {
		t.Fatalf("click on -1 changed selection to %v", next.Rows())
	}
}

// TestSelectionZeroValue verifies a zero Selection is usable.
func TestSelectionZeroValue(t *testing.T) {
	var s Selection
	s = s.Toggle(0, 1).RecordPrimaryClick(0)
	if !s.Contains(0) {
		t.Fatal("zero selection Toggle(0) did not select row 0")
	}
	if got := s.History(); !slices.Equal(got, []int{0}) {
		t.Fatalf("History() = %v, want [0]", got)
	}
}
