package grid

import (
	"io"
	"time"

	charmLog "github.com/charmbracelet/log"
)

// Logger receives debug and warning events from the controller.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

// Options configures a Controller.
type Options[P any] struct {
	ViewID  string
	Columns []Column[P]
	Rows    []P
	// Order maps display position to original index. Nil displays rows in source order.
	Order []int
	Mode  DataMode

	HistoryCap int
	// SinglePrimaryClick disables selecting the previous anchor together with the first unmodified click.
	SinglePrimaryClick bool
	SuppressedColumns  []string

	// Clone deep-copies rows for clipboard snapshots. Required when P holds references.
	Clone CloneFunc[P]
	// Assertions panics on contract violations instead of skipping the offending entry.
	Assertions bool

	Logger Logger
	Clock  func() time.Time
}

// defaultLogger discards output.
func defaultLogger() Logger {
	return charmLog.NewWithOptions(io.Discard, charmLog.Options{Prefix: "grid"})
}
