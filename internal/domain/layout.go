package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// LayoutEntry stores the presentation state of one column.
type LayoutEntry struct {
	Field   string `json:"field"`
	Width   int    `json:"width,omitempty"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
}

// ColumnLayout is the persisted column arrangement for one view. It is always replaced as a whole.
type ColumnLayout struct {
	ViewID    string
	Columns   []LayoutEntry
	UpdatedAt time.Time
}

// NewColumnLayout validates entries and constructs a layout ordered by entry order.
func NewColumnLayout(viewID string, entries []LayoutEntry, now time.Time) (ColumnLayout, error) {
	viewID = strings.TrimSpace(viewID)
	if viewID == "" {
		return ColumnLayout{}, ErrInvalidViewID
	}
	seen := make(map[string]struct{}, len(entries))
	cols := make([]LayoutEntry, 0, len(entries))
	for _, entry := range entries {
		entry.Field = strings.TrimSpace(entry.Field)
		if entry.Field == "" {
			return ColumnLayout{}, ErrInvalidField
		}
		if entry.Width < 0 {
			return ColumnLayout{}, ErrInvalidWidth
		}
		if _, ok := seen[entry.Field]; ok {
			return ColumnLayout{}, fmt.Errorf("%w: %s", ErrDuplicateField, entry.Field)
		}
		seen[entry.Field] = struct{}{}
		cols = append(cols, entry)
	}
	slices.SortStableFunc(cols, func(a, b LayoutEntry) int {
		return a.Order - b.Order
	})
	return ColumnLayout{
		ViewID:    viewID,
		Columns:   cols,
		UpdatedAt: now.UTC(),
	}, nil
}

// Entry returns the saved entry for field.
func (l ColumnLayout) Entry(field string) (LayoutEntry, bool) {
	for _, entry := range l.Columns {
		if entry.Field == field {
			return entry, true
		}
	}
	return LayoutEntry{}, false
}

// Fields lists entry fields in layout order.
func (l ColumnLayout) Fields() []string {
	out := make([]string, 0, len(l.Columns))
	for _, entry := range l.Columns {
		out = append(out, entry.Field)
	}
	return out
}

// Clone deep-copies the layout entries.
func (l ColumnLayout) Clone() ColumnLayout {
	l.Columns = append([]LayoutEntry(nil), l.Columns...)
	return l
}

// EncodeColumnState serializes entries into the opaque blob stored per view.
func EncodeColumnState(entries []LayoutEntry) (string, error) {
	if entries == nil {
		entries = []LayoutEntry{}
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode column state: %w", err)
	}
	return string(encoded), nil
}

// DecodeColumnState parses a serialized blob. Unknown keys inside entries are ignored.
func DecodeColumnState(raw string) ([]LayoutEntry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var entries []LayoutEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColumnState, err)
	}
	return entries, nil
}
