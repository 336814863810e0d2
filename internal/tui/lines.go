package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hylla/gridline/internal/grid"
)

// maxQty bounds one order line quantity.
const maxQty = 9999

// errInvalidQty reports a quantity edit outside 0..maxQty.
var errInvalidQty = errors.New("quantity must be between 0 and 9999")

// orderLine is one row of the order-entry grid.
type orderLine struct {
	ID         string
	SKU        string
	Item       string
	Qty        int
	PriceCents int
	Notes      string
	Shipped    bool
	Tags       []string
}

// cloneLine deep-copies one line so clipboard snapshots never alias the source array.
func cloneLine(l orderLine) orderLine {
	l.Tags = append([]string(nil), l.Tags...)
	return l
}

// withField returns l with field set to value; unknown fields and mistyped values leave l unchanged.
func withField(l orderLine, field string, value any) orderLine {
	switch field {
	case "qty":
		if v, ok := value.(int); ok {
			l.Qty = v
		}
	case "item":
		if v, ok := value.(string); ok {
			l.Item = v
		}
	case "notes":
		if v, ok := value.(string); ok {
			l.Notes = v
		}
	}
	return l
}

// formatCents renders an amount in cents as dollars.
func formatCents(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// orderColumns returns the default order-entry schema.
func orderColumns() []grid.Column[orderLine] {
	return []grid.Column[orderLine]{
		{
			Field:    "sku",
			Header:   "SKU",
			Width:    10,
			Editable: func(orderLine) bool { return false },
			Render:   func(l orderLine) string { return l.SKU },
		},
		{
			Field:  "item",
			Header: "Item",
			Width:  22,
			Render: func(l orderLine) string { return l.Item },
		},
		{
			Field:    "qty",
			Header:   "Qty",
			Width:    5,
			Editable: func(l orderLine) bool { return !l.Shipped },
			Render:   func(l orderLine) string { return strconv.Itoa(l.Qty) },
			Validate: func(_ orderLine, value any) error {
				v, ok := value.(int)
				if !ok || v < 0 || v > maxQty {
					return errInvalidQty
				}
				return nil
			},
			Style: func(l orderLine) string {
				if l.Qty == 0 {
					return "muted"
				}
				return ""
			},
		},
		{
			Field:    "price",
			Header:   "Price",
			Width:    9,
			Editable: func(orderLine) bool { return false },
			Render:   func(l orderLine) string { return formatCents(l.PriceCents) },
		},
		{
			Field:    "total",
			Header:   "Total",
			Width:    10,
			Editable: func(orderLine) bool { return false },
			Render:   func(l orderLine) string { return formatCents(l.PriceCents * l.Qty) },
		},
		{
			Field:  "notes",
			Header: "Notes",
			Width:  18,
			Render: func(l orderLine) string { return l.Notes },
		},
		{
			Field:    "status",
			Header:   "Status",
			Width:    8,
			Editable: func(orderLine) bool { return false },
			Render: func(l orderLine) string {
				if l.Shipped {
					return "shipped"
				}
				return "open"
			},
			Style: func(l orderLine) string {
				if l.Shipped {
					return "muted"
				}
				return ""
			},
		},
	}
}

// demoLines returns the seed order lines shown when no rows are supplied.
func demoLines() []orderLine {
	seed := []struct {
		sku, item string
		qty       int
		price     int
		notes     string
		shipped   bool
	}{
		{"BR-100", "Brass hinge, 3in", 12, 349, "", false},
		{"BR-104", "Brass hinge, 4in", 8, 429, "match finish", false},
		{"SC-220", "Wood screw #8 x 1-1/4", 200, 6, "", true},
		{"SC-224", "Wood screw #10 x 2", 150, 9, "", false},
		{"PL-010", "Shelf pin, nickel", 0, 15, "backordered", false},
		{"KN-300", "Cabinet knob, walnut", 24, 275, "", false},
		{"KN-302", "Cabinet knob, oak", 24, 250, "customer pickup", true},
		{"GL-050", "Wood glue, 16oz", 2, 899, "", false},
	}
	out := make([]orderLine, 0, len(seed))
	for _, s := range seed {
		out = append(out, orderLine{
			ID:         uuid.NewString(),
			SKU:        s.sku,
			Item:       s.item,
			Qty:        s.qty,
			PriceCents: s.price,
			Notes:      s.notes,
			Shipped:    s.shipped,
		})
	}
	return out
}

// linesAsTSV renders copied lines as tab-separated text for the system clipboard.
func linesAsTSV(columns []grid.Column[orderLine], lines []orderLine) string {
	visible := grid.VisibleColumns(columns)
	var b strings.Builder
	for _, line := range lines {
		cells := make([]string, 0, len(visible))
		for _, col := range visible {
			cells = append(cells, col.Text(line))
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
