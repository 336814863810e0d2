package grid

import "testing"

// TestResolveKey verifies the key-to-intent table.
func TestResolveKey(t *testing.T) {
	base := KeySnapshot{Row: 2, RowCount: 5, FocusedColumn: "qty", SelectionEmpty: false, ClipboardEmpty: false}
	cases := []struct {
		name   string
		mutate func(*KeySnapshot)
		kind   IntentKind
		row    int
		dir    Direction
	}{
		{name: "modifier alone", mutate: func(s *KeySnapshot) { s.Key = KeyShift; s.Shift = true }, kind: IntentPassThrough, row: 2},
		{name: "plain letter", mutate: func(s *KeySnapshot) { s.Key = "x" }, kind: IntentPassThrough, row: 2},
		{name: "ctrl a client", mutate: func(s *KeySnapshot) { s.Key = "a"; s.Ctrl = true }, kind: IntentSelectAll, row: 2},
		{name: "ctrl upper A", mutate: func(s *KeySnapshot) { s.Key = "A"; s.Ctrl = true }, kind: IntentSelectAll, row: 2},
		{name: "ctrl a paged", mutate: func(s *KeySnapshot) { s.Key = "a"; s.Ctrl = true; s.Mode = ModeServerPaged }, kind: IntentAbsorbed, row: 2},
		{name: "ctrl d", mutate: func(s *KeySnapshot) { s.Key = "d"; s.Ctrl = true }, kind: IntentDeselectAll, row: 2},
		{name: "ctrl c", mutate: func(s *KeySnapshot) { s.Key = "c"; s.Ctrl = true }, kind: IntentCopy, row: 2},
		{name: "ctrl c empty selection", mutate: func(s *KeySnapshot) { s.Key = "c"; s.Ctrl = true; s.SelectionEmpty = true }, kind: IntentPassThrough, row: 2},
		{name: "ctrl v", mutate: func(s *KeySnapshot) { s.Key = "v"; s.Ctrl = true }, kind: IntentPaste, row: 2},
		{name: "ctrl v empty buffer", mutate: func(s *KeySnapshot) { s.Key = "v"; s.Ctrl = true; s.ClipboardEmpty = true }, kind: IntentPassThrough, row: 2},
		{name: "shift down first press", mutate: func(s *KeySnapshot) { s.Key = KeyArrowDown; s.Shift = true }, kind: IntentToggleSelection, row: 2, dir: DirectionDown},
		{name: "shift down same direction", mutate: func(s *KeySnapshot) { s.Key = KeyArrowDown; s.Shift = true; s.Direction = DirectionDown }, kind: IntentExtendSelection, row: 3, dir: DirectionDown},
		{name: "shift up reversal", mutate: func(s *KeySnapshot) { s.Key = KeyArrowUp; s.Shift = true; s.Direction = DirectionDown }, kind: IntentToggleSelection, row: 2, dir: DirectionUp},
		{name: "shift down last row", mutate: func(s *KeySnapshot) { s.Key = KeyArrowDown; s.Shift = true; s.Row = 4; s.Direction = DirectionDown }, kind: IntentAbsorbed, row: 4, dir: DirectionDown},
		{name: "shift up first row", mutate: func(s *KeySnapshot) { s.Key = KeyArrowUp; s.Shift = true; s.Row = 0 }, kind: IntentAbsorbed, row: 0},
		{name: "shift left on suppressed column", mutate: func(s *KeySnapshot) { s.Key = KeyArrowLeft; s.Shift = true; s.SuppressedColumns = []string{"qty"} }, kind: IntentSuppressed, row: 2},
		{name: "shift left elsewhere", mutate: func(s *KeySnapshot) { s.Key = KeyArrowLeft; s.Shift = true; s.SuppressedColumns = []string{"sku"} }, kind: IntentPassThrough, row: 2},
		{name: "plain down", mutate: func(s *KeySnapshot) { s.Key = KeyArrowDown }, kind: IntentMoveFocus, row: 3},
		{name: "plain up at top", mutate: func(s *KeySnapshot) { s.Key = KeyArrowUp; s.Row = 0 }, kind: IntentAbsorbed, row: 0},
		{name: "letter resets direction", mutate: func(s *KeySnapshot) { s.Key = "q"; s.Direction = DirectionDown }, kind: IntentPassThrough, row: 2, dir: DirectionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := base
			tc.mutate(&snap)
			got := ResolveKey(snap)
			if got.Kind != tc.kind {
				t.Fatalf("ResolveKey() kind = %s, want %s", got.Kind, tc.kind)
			}
			if got.Row != tc.row {
				t.Fatalf("ResolveKey() row = %d, want %d", got.Row, tc.row)
			}
			if got.Direction != tc.dir {
				t.Fatalf("ResolveKey() direction = %s, want %s", got.Direction, tc.dir)
			}
		})
	}
}

// TestParseDataMode verifies config names round-trip.
func TestParseDataMode(t *testing.T) {
	for _, mode := range []DataMode{ModeClientSide, ModeServerPaged} {
		got, ok := ParseDataMode(mode.String())
		if !ok || got != mode {
			t.Fatalf("ParseDataMode(%q) = %v, %v", mode.String(), got, ok)
		}
	}
	if _, ok := ParseDataMode("infinite"); ok {
		t.Fatal("ParseDataMode(infinite) ok = true, want false")
	}
}
