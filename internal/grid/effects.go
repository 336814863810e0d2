package grid

import "github.com/hylla/gridline/internal/domain"

// Effect is one instruction for the host adapter. The set of implementations is closed.
type Effect interface {
	effect()
}

// FocusMove moves the focused cell.
type FocusMove struct {
	Row   int
	Field string
}

// SelectionChanged carries the full selected set in display order.
type SelectionChanged struct {
	Rows []int
}

// PreventDefault tells the host engine not to run its default handling for Key.
type PreventDefault struct {
	Key Key
}

// NavigationOverrides carries freshly built per-column overrides after a Shift transition.
type NavigationOverrides struct {
	ShiftHeld bool
	Overrides map[string]NavigationFunc
}

// PersistLayout asks the adapter to save the layout without waiting for the result.
type PersistLayout struct {
	Layout domain.ColumnLayout
}

// SchemaChanged carries an effective schema the host engine must adopt.
type SchemaChanged[P any] struct {
	Columns []Column[P]
}

// ResetLayout asks the adapter to clear the persisted layout and revert the host to Columns.
type ResetLayout[P any] struct {
	ViewID  string
	Columns []Column[P]
}

// EmitCopy reports copied row snapshots. SourceIndex is the original index focused at copy time.
type EmitCopy[P any] struct {
	Rows        []P
	SourceIndex int
}

// EmitPaste reports pasted snapshots. The caller inserts them into its source array at TargetIndex.
type EmitPaste[P any] struct {
	Rows        []P
	TargetIndex int
}

// EmitCellEdit reports an accepted cell edit against the caller's source array.
type EmitCellEdit[P any] struct {
	Row           P
	OriginalIndex int
	Field         string
	Value         any
}

func (FocusMove) effect()           {}
func (SelectionChanged) effect()    {}
func (PreventDefault) effect()      {}
func (NavigationOverrides) effect() {}
func (PersistLayout) effect()       {}
func (SchemaChanged[P]) effect()    {}
func (ResetLayout[P]) effect()      {}
func (EmitCopy[P]) effect()         {}
func (EmitPaste[P]) effect()        {}
func (EmitCellEdit[P]) effect()     {}

// Callbacks are the caller-side hooks fed from emitted effects.
type Callbacks[P any] struct {
	OnSelectedRowsCopied func(rows []P)
	OnRowsPasted         func(rows []P, targetIndex int)
	OnCellValueChanged   func(row P, field string, value any)
}

// Dispatch invokes the matching callback for every copy, paste and edit effect in order.
func (cb Callbacks[P]) Dispatch(effects []Effect) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case EmitCopy[P]:
			if cb.OnSelectedRowsCopied != nil {
				cb.OnSelectedRowsCopied(e.Rows)
			}
		case EmitPaste[P]:
			if cb.OnRowsPasted != nil {
				cb.OnRowsPasted(e.Rows, e.TargetIndex)
			}
		case EmitCellEdit[P]:
			if cb.OnCellValueChanged != nil {
				cb.OnCellValueChanged(e.Row, e.Field, e.Value)
			}
		}
	}
}
