package grid

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hylla/gridline/internal/domain"
)

// ErrDuplicateField and related errors describe column schema contract violations.
var (
	ErrDuplicateField = errors.New("duplicate column field")
	ErrEmptyField     = errors.New("empty column field")
)

// Column is one entry of the caller-supplied schema. Field, Header, Width and Hidden are presentation;
// the function fields are behavior and are never taken from a saved layout.
type Column[P any] struct {
	Field  string
	Header string
	Width  int
	Hidden bool

	Editable func(row P) bool
	Render   func(row P) string
	Validate func(row P, value any) error
	Style    func(row P) string
}

// CanEdit reports whether the column accepts edits for row. Columns without a predicate are editable.
func (c Column[P]) CanEdit(row P) bool {
	return c.Editable == nil || c.Editable(row)
}

// Text renders the cell text for row.
func (c Column[P]) Text(row P) string {
	if c.Render == nil {
		return ""
	}
	return c.Render(row)
}

// ValidateSchema reports contract violations and returns the schema with offending entries removed.
// The first column with a given field wins.
func ValidateSchema[P any](schema []Column[P]) ([]Column[P], []error) {
	out := make([]Column[P], 0, len(schema))
	seen := make(map[string]struct{}, len(schema))
	var issues []error
	for idx, col := range schema {
		col.Field = strings.TrimSpace(col.Field)
		if col.Field == "" {
			issues = append(issues, fmt.Errorf("column[%d]: %w", idx, ErrEmptyField))
			continue
		}
		if _, ok := seen[col.Field]; ok {
			issues = append(issues, fmt.Errorf("column[%d] %q: %w", idx, col.Field, ErrDuplicateField))
			continue
		}
		seen[col.Field] = struct{}{}
		out = append(out, col)
	}
	return out, issues
}

// Merge applies a saved layout onto schema. Saved entries set width, order and visibility; columns
// missing from the layout keep their defaults and follow the saved ones in schema order; saved entries
// for fields no longer in schema are dropped. Behavior always comes from schema.
func Merge[P any](schema []Column[P], saved domain.ColumnLayout) []Column[P] {
	byField := make(map[string]int, len(schema))
	for idx, col := range schema {
		if _, ok := byField[col.Field]; !ok {
			byField[col.Field] = idx
		}
	}
	entries := append([]domain.LayoutEntry(nil), saved.Columns...)
	slices.SortStableFunc(entries, func(a, b domain.LayoutEntry) int {
		return a.Order - b.Order
	})

	out := make([]Column[P], 0, len(schema))
	used := make(map[string]struct{}, len(schema))
	for _, entry := range entries {
		idx, ok := byField[entry.Field]
		if !ok {
			continue
		}
		if _, dup := used[entry.Field]; dup {
			continue
		}
		col := schema[idx]
		if entry.Width > 0 {
			col.Width = entry.Width
		}
		col.Hidden = !entry.Visible
		out = append(out, col)
		used[entry.Field] = struct{}{}
	}
	for _, col := range schema {
		if _, ok := used[col.Field]; ok {
			continue
		}
		out = append(out, col)
		used[col.Field] = struct{}{}
	}
	return out
}

// LayoutOf captures the presentation state of schema as a ColumnLayout.
func LayoutOf[P any](viewID string, schema []Column[P], now time.Time) domain.ColumnLayout {
	entries := make([]domain.LayoutEntry, 0, len(schema))
	for idx, col := range schema {
		entries = append(entries, domain.LayoutEntry{
			Field:   col.Field,
			Width:   col.Width,
			Order:   idx,
			Visible: !col.Hidden,
		})
	}
	return domain.ColumnLayout{
		ViewID:    viewID,
		Columns:   entries,
		UpdatedAt: now.UTC(),
	}
}

// MoveColumn moves field to position to, clamped to the schema bounds.
func MoveColumn[P any](schema []Column[P], field string, to int) ([]Column[P], bool) {
	from := columnIndex(schema, field)
	if from < 0 {
		return schema, false
	}
	to = max(0, min(to, len(schema)-1))
	if from == to {
		return schema, false
	}
	out := slices.Clone(schema)
	col := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, col)
	return out, true
}

// SetColumnHidden shows or hides field.
func SetColumnHidden[P any](schema []Column[P], field string, hidden bool) ([]Column[P], bool) {
	idx := columnIndex(schema, field)
	if idx < 0 || schema[idx].Hidden == hidden {
		return schema, false
	}
	out := slices.Clone(schema)
	out[idx].Hidden = hidden
	return out, true
}

// SetColumnWidth resizes field.
func SetColumnWidth[P any](schema []Column[P], field string, width int) ([]Column[P], bool) {
	idx := columnIndex(schema, field)
	if idx < 0 || width <= 0 || schema[idx].Width == width {
		return schema, false
	}
	out := slices.Clone(schema)
	out[idx].Width = width
	return out, true
}

// VisibleColumns returns the non-hidden columns in order.
func VisibleColumns[P any](schema []Column[P]) []Column[P] {
	out := make([]Column[P], 0, len(schema))
	for _, col := range schema {
		if !col.Hidden {
			out = append(out, col)
		}
	}
	return out
}

// columnIndex returns the schema position of field, or -1.
func columnIndex[P any](schema []Column[P], field string) int {
	return slices.IndexFunc(schema, func(c Column[P]) bool {
		return c.Field == field
	})
}
