package grid

import "slices"

// DataMode declares whether the full filtered dataset is resident in the controller.
type DataMode uint8

// DataMode values.
const (
	ModeClientSide DataMode = iota
	ModeServerPaged
)

// String returns the config name of the mode.
func (m DataMode) String() string {
	if m == ModeServerPaged {
		return "server_paged"
	}
	return "client"
}

// ParseDataMode maps a config name to a DataMode.
func ParseDataMode(raw string) (DataMode, bool) {
	switch raw {
	case "", "client":
		return ModeClientSide, true
	case "server_paged":
		return ModeServerPaged, true
	default:
		return ModeClientSide, false
	}
}

// IntentKind classifies the outcome of one key-down.
type IntentKind uint8

// IntentKind values.
const (
	// IntentPassThrough leaves the host engine's default handling untouched.
	IntentPassThrough IntentKind = iota
	// IntentAbsorbed consumes the key with no state change (boundary presses, paged select-all).
	IntentAbsorbed
	IntentMoveFocus
	IntentExtendSelection
	IntentToggleSelection
	IntentSelectAll
	IntentDeselectAll
	IntentCopy
	IntentPaste
	// IntentSuppressed blocks the host engine's default column navigation.
	IntentSuppressed
)

var intentNames = [...]string{
	IntentPassThrough:     "pass-through",
	IntentAbsorbed:        "absorbed",
	IntentMoveFocus:       "move-focus",
	IntentExtendSelection: "extend-selection",
	IntentToggleSelection: "toggle-selection",
	IntentSelectAll:       "select-all",
	IntentDeselectAll:     "deselect-all",
	IntentCopy:            "copy",
	IntentPaste:           "paste",
	IntentSuppressed:      "suppressed",
}

// String returns the intent name.
func (k IntentKind) String() string {
	if int(k) < len(intentNames) {
		return intentNames[k]
	}
	return "unknown"
}

// KeySnapshot is everything the resolver needs to decide one key-down.
type KeySnapshot struct {
	Key               Key
	Shift             bool
	Ctrl              bool
	FocusedColumn     string
	Row               int
	RowCount          int
	Direction         Direction
	Mode              DataMode
	SuppressedColumns []string
	SelectionEmpty    bool
	ClipboardEmpty    bool
}

// Intent is the resolved action for one key-down.
type Intent struct {
	Kind IntentKind
	// Row is the display position the intent acts on: the new focus for move and extend,
	// the flipped row for toggle.
	Row int
	// Direction is the direction memory after this key.
	Direction Direction
}

// ResolveKey maps a key-down and grid snapshot to an Intent. It has no side effects.
func ResolveKey(s KeySnapshot) Intent {
	key := NormalizeKey(s.Key)
	out := Intent{Kind: IntentPassThrough, Row: s.Row, Direction: s.Direction}
	if key == "" || key.IsModifier() {
		return out
	}
	if !key.IsArrow() {
		out.Direction = DirectionNone
	}

	if s.Ctrl {
		switch key {
		case "a":
			if s.Mode == ModeServerPaged {
				out.Kind = IntentAbsorbed
				return out
			}
			out.Kind = IntentSelectAll
		case "d":
			out.Kind = IntentDeselectAll
		case "c":
			if !s.SelectionEmpty {
				out.Kind = IntentCopy
			}
		case "v":
			if !s.ClipboardEmpty {
				out.Kind = IntentPaste
			}
		}
		return out
	}

	dir := directionOf(key)
	if s.Shift && dir != DirectionNone {
		if !inRange(s.Row, s.RowCount) || !canStep(dir, s.Row, s.RowCount) {
			out.Kind = IntentAbsorbed
			return out
		}
		if s.Direction == dir {
			out.Kind = IntentExtendSelection
			out.Row = step(dir, s.Row)
			return out
		}
		out.Kind = IntentToggleSelection
		out.Direction = dir
		return out
	}

	if s.Shift && slices.Contains(s.SuppressedColumns, s.FocusedColumn) {
		out.Kind = IntentSuppressed
		return out
	}

	if dir != DirectionNone && inRange(s.Row, s.RowCount) {
		if !canStep(dir, s.Row, s.RowCount) {
			out.Kind = IntentAbsorbed
			return out
		}
		out.Kind = IntentMoveFocus
		out.Row = step(dir, s.Row)
	}
	return out
}

// canStep reports whether moving one row in dir stays inside the displayed rows.
func canStep(dir Direction, row, rowCount int) bool {
	if dir == DirectionDown {
		return row+1 < rowCount
	}
	return row > 0
}

// step moves row one position in dir.
func step(dir Direction, row int) int {
	if dir == DirectionDown {
		return row + 1
	}
	return row - 1
}
