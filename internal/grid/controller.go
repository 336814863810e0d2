package grid

import (
	"fmt"
	"slices"
	"time"

	"github.com/hylla/gridline/internal/domain"
)

// State is the controller's interaction state. It is replaced wholesale on every transition.
type State struct {
	Selection  Selection
	Pressed    PressedKeySet
	Direction  Direction
	FocusRow   int
	FocusField string
}

// Controller coordinates selection, keyboard intents, clipboard and column layout for one grid view.
// It is not safe for concurrent use; every method must run on the host engine's event loop.
type Controller[P any] struct {
	viewID     string
	mode       DataMode
	suppressed []string
	assertions bool
	logger     Logger
	clock      func() time.Time
	selCfg     SelectionConfig

	state     State
	defaults  []Column[P]
	schema    []Column[P]
	rows      []P
	order     []int
	clipboard *Clipboard[P]
	policy    SuppressionPolicy
	liveness  Liveness
	moving    string
}

// New constructs a controller from opts.
func New[P any](opts Options[P]) *Controller[P] {
	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	c := &Controller[P]{
		viewID:     opts.ViewID,
		mode:       opts.Mode,
		suppressed: append([]string(nil), opts.SuppressedColumns...),
		assertions: opts.Assertions,
		logger:     opts.Logger,
		clock:      opts.Clock,
		selCfg: SelectionConfig{
			HistoryCap:     opts.HistoryCap,
			PairFirstClick: !opts.SinglePrimaryClick,
		},
		clipboard: NewClipboard(opts.Clone),
		policy:    NewSuppressionPolicy(opts.SuppressedColumns),
	}
	defaults, issues := ValidateSchema(opts.Columns)
	for _, issue := range issues {
		c.violation(issue)
	}
	c.defaults = defaults
	c.schema = slices.Clone(defaults)
	c.state = State{Selection: NewSelection(c.selCfg), FocusRow: -1}
	c.setData(opts.Rows, opts.Order)
	return c
}

// ViewID returns the view identity used for layout persistence.
func (c *Controller[P]) ViewID() string {
	return c.viewID
}

// Mode returns the data mode fixed at construction.
func (c *Controller[P]) Mode() DataMode {
	return c.mode
}

// State returns the current interaction state.
func (c *Controller[P]) State() State {
	return c.state
}

// Columns returns the effective schema.
func (c *Controller[P]) Columns() []Column[P] {
	return slices.Clone(c.schema)
}

// DefaultColumns returns the caller-supplied schema.
func (c *Controller[P]) DefaultColumns() []Column[P] {
	return slices.Clone(c.defaults)
}

// RowCount returns the number of displayed rows.
func (c *Controller[P]) RowCount() int {
	return len(c.order)
}

// OriginalIndex resolves a display position to the row's index in the caller's source array.
func (c *Controller[P]) OriginalIndex(ref int) (int, bool) {
	if !inRange(ref, len(c.order)) {
		return 0, false
	}
	return c.order[ref], true
}

// Row returns the row at display position ref.
func (c *Controller[P]) Row(ref int) (P, bool) {
	idx, ok := c.OriginalIndex(ref)
	if !ok {
		var zero P
		return zero, false
	}
	return c.rows[idx], true
}

// SelectedRows returns the selected rows in display order.
func (c *Controller[P]) SelectedRows() []P {
	refs := c.state.Selection.Rows()
	out := make([]P, 0, len(refs))
	for _, ref := range refs {
		if row, ok := c.Row(ref); ok {
			out = append(out, row)
		}
	}
	return out
}

// ClipboardLen returns the number of buffered snapshots.
func (c *Controller[P]) ClipboardLen() int {
	return c.clipboard.Len()
}

// NavigationOverride returns the current host navigation override for field, or nil.
func (c *Controller[P]) NavigationOverride(field string) NavigationFunc {
	return c.policy.Override(field)
}

// Mount starts a view lifetime and returns the token async layout loads must carry.
// Mounting a different view reverts the schema to defaults.
func (c *Controller[P]) Mount(viewID string) Token {
	if viewID != c.viewID {
		c.viewID = viewID
		c.schema = slices.Clone(c.defaults)
	}
	return c.liveness.Mount(viewID)
}

// Unmount ends the view lifetime; later async results are discarded.
func (c *Controller[P]) Unmount() {
	c.liveness.Unmount()
}

// ApplySavedLayout merges a loaded layout onto the default schema. Results for a stale token are dropped.
func (c *Controller[P]) ApplySavedLayout(tok Token, saved domain.ColumnLayout, found bool) []Effect {
	if !c.liveness.Alive(tok) {
		c.logger.Debug("discarding stale layout load", "view_id", tok.ViewID())
		return nil
	}
	if !found {
		return nil
	}
	if saved.ViewID != "" && saved.ViewID != tok.ViewID() {
		c.logger.Debug("discarding layout for another view", "view_id", tok.ViewID(), "layout_view_id", saved.ViewID)
		return nil
	}
	c.schema = Merge(c.defaults, saved)
	effects := []Effect{SchemaChanged[P]{Columns: c.Columns()}}
	return append(effects, c.refocusField()...)
}

// ResetLayout reverts to the default schema and asks the adapter to clear the persisted layout.
func (c *Controller[P]) ResetLayout() []Effect {
	c.schema = slices.Clone(c.defaults)
	c.moving = ""
	effects := []Effect{ResetLayout[P]{ViewID: c.viewID, Columns: c.Columns()}}
	return append(effects, c.refocusField()...)
}

// HandleHostEvent applies one host event and returns the effects the adapter must apply, in order.
func (c *Controller[P]) HandleHostEvent(ev HostEvent) []Effect {
	switch e := ev.(type) {
	case CellMouseDown:
		return c.handleMouseDown(e)
	case CellKeyDown:
		return c.handleKeyDown(e)
	case KeyUp:
		return c.handleKeyUp(e)
	case Blur:
		return c.handleBlur()
	case ColumnMoved:
		return c.handleColumnMoved(e)
	case ColumnVisible:
		return c.handleColumnVisible(e)
	case ColumnResized:
		return c.handleColumnResized(e)
	case SortChanged:
		return c.handleOrderChanged(e.Order)
	case FilterChanged:
		return c.handleOrderChanged(e.Order)
	case DataChanged[P]:
		return c.handleDataChanged(e)
	case CellValueChanged:
		return c.handleCellValueChanged(e)
	case HostSelectionChanged:
		c.state.Selection = c.state.Selection.WithRows(e.Rows, len(c.order))
		return nil
	default:
		c.logger.Debug("ignoring unknown host event", "event", fmt.Sprintf("%T", ev))
		return nil
	}
}

// handleMouseDown moves focus to the clicked cell and applies click selection.
func (c *Controller[P]) handleMouseDown(e CellMouseDown) []Effect {
	if e.Button != ButtonPrimary {
		return nil
	}
	if !inRange(e.Row, len(c.order)) {
		c.logger.Debug("absorbing click on stale row", "view_id", c.viewID, "row", e.Row)
		return nil
	}
	mods := e.Modifiers | c.state.Pressed.Modifiers()
	next := c.state
	next.FocusRow = e.Row
	if e.Field != "" {
		next.FocusField = e.Field
	}
	next.Direction = DirectionNone
	next.Selection = c.state.Selection.ComputeClickSelection(e.Row, mods, next.FocusRow, len(c.order))
	if !mods.Has(ModShift) && !mods.Has(ModCtrl) && !mods.Has(ModMeta) {
		next.Selection = next.Selection.RecordPrimaryClick(e.Row)
	}
	return c.commit(next)
}

// handleKeyDown tracks modifiers and applies the resolved intent.
func (c *Controller[P]) handleKeyDown(e CellKeyDown) []Effect {
	key := NormalizeKey(e.Key)
	var effects []Effect
	if key.IsModifier() {
		c.state.Pressed = c.state.Pressed.Press(key)
		return c.syncShift()
	}
	if e.Modifiers.Has(ModShift) && !c.state.Pressed.Has(KeyShift) {
		c.state.Pressed = c.state.Pressed.Press(KeyShift)
		effects = append(effects, c.syncShift()...)
	}

	next := c.state
	if inRange(e.Row, len(c.order)) {
		next.FocusRow = e.Row
	}
	if e.Field != "" {
		next.FocusField = e.Field
	}
	mods := e.Modifiers | next.Pressed.Modifiers()
	intent := ResolveKey(KeySnapshot{
		Key:               key,
		Shift:             mods.Has(ModShift),
		Ctrl:              mods.Has(ModCtrl) || mods.Has(ModMeta),
		FocusedColumn:     next.FocusField,
		Row:               e.Row,
		RowCount:          len(c.order),
		Direction:         next.Direction,
		Mode:              c.mode,
		SuppressedColumns: c.suppressed,
		SelectionEmpty:    next.Selection.Len() == 0,
		ClipboardEmpty:    c.clipboard.Empty(),
	})
	next.Direction = intent.Direction

	switch intent.Kind {
	case IntentMoveFocus:
		next.FocusRow = intent.Row
	case IntentExtendSelection:
		next.FocusRow = intent.Row
		next.Selection = next.Selection.Toggle(intent.Row, len(c.order))
	case IntentToggleSelection:
		next.Selection = next.Selection.Toggle(intent.Row, len(c.order))
	case IntentSelectAll:
		next.Selection = next.Selection.SelectAll(len(c.order))
	case IntentDeselectAll:
		next.Selection = next.Selection.ClearRows()
	case IntentCopy:
		effects = append(effects, c.copySelection(next)...)
	case IntentPaste:
		effects = append(effects, c.paste(next)...)
	}
	effects = append(effects, c.commit(next)...)
	if intent.Kind != IntentPassThrough {
		effects = append(effects, PreventDefault{Key: key})
	}
	return effects
}

// handleKeyUp releases a held key; releasing Shift ends the selection sequence.
func (c *Controller[P]) handleKeyUp(e KeyUp) []Effect {
	key := NormalizeKey(e.Key)
	c.state.Pressed = c.state.Pressed.Release(key)
	if key != KeyShift {
		return nil
	}
	c.state.Direction = DirectionNone
	return c.syncShift()
}

// handleBlur drops all held keys since their key-up events will not arrive.
func (c *Controller[P]) handleBlur() []Effect {
	c.state.Pressed = c.state.Pressed.Clear()
	c.state.Direction = DirectionNone
	return c.syncShift()
}

// handleColumnMoved applies a column move once the drag settles.
func (c *Controller[P]) handleColumnMoved(e ColumnMoved) []Effect {
	if !e.Finished {
		c.moving = e.Field
		return nil
	}
	field := e.Field
	if field == "" {
		field = c.moving
	}
	c.moving = ""
	schema, changed := MoveColumn(c.schema, field, e.To)
	if !changed {
		return nil
	}
	c.schema = schema
	return []Effect{c.persist()}
}

// handleColumnVisible shows or hides a column and persists the result.
func (c *Controller[P]) handleColumnVisible(e ColumnVisible) []Effect {
	schema, changed := SetColumnHidden(c.schema, e.Field, !e.Visible)
	if !changed {
		return nil
	}
	c.schema = schema
	effects := []Effect{c.persist()}
	return append(effects, c.refocusField()...)
}

// handleColumnResized persists the final width of a resize.
func (c *Controller[P]) handleColumnResized(e ColumnResized) []Effect {
	if !e.Finished {
		return nil
	}
	schema, changed := SetColumnWidth(c.schema, e.Field, e.Width)
	if !changed {
		return nil
	}
	c.schema = schema
	return []Effect{c.persist()}
}

// handleOrderChanged adopts a new display order; display positions change meaning, so selection is cleared.
func (c *Controller[P]) handleOrderChanged(order []int) []Effect {
	had := c.state.Selection.Len() > 0
	c.order = c.validOrder(order, len(c.rows))
	return c.afterDataSwap(had)
}

// handleDataChanged replaces the dataset and invalidates the selection.
func (c *Controller[P]) handleDataChanged(e DataChanged[P]) []Effect {
	had := c.state.Selection.Len() > 0
	c.setData(e.Rows, e.Order)
	return c.afterDataSwap(had)
}

// handleCellValueChanged forwards an edit when the column accepts it.
func (c *Controller[P]) handleCellValueChanged(e CellValueChanged) []Effect {
	idx, ok := c.OriginalIndex(e.Row)
	if !ok {
		c.logger.Debug("absorbing edit on stale row", "view_id", c.viewID, "row", e.Row)
		return nil
	}
	colIdx := columnIndex(c.schema, e.Field)
	if colIdx < 0 {
		c.violation(fmt.Errorf("edit on unknown field %q", e.Field))
		return nil
	}
	col := c.schema[colIdx]
	row := c.rows[idx]
	if !col.CanEdit(row) {
		c.logger.Debug("rejecting edit on read-only cell", "view_id", c.viewID, "field", e.Field, "row", e.Row)
		return nil
	}
	if col.Validate != nil {
		if err := col.Validate(row, e.Value); err != nil {
			c.logger.Debug("rejecting invalid edit", "view_id", c.viewID, "field", e.Field, "err", err)
			return nil
		}
	}
	return []Effect{EmitCellEdit[P]{Row: row, OriginalIndex: idx, Field: e.Field, Value: e.Value}}
}

// copySelection snapshots the selected rows into the clipboard.
func (c *Controller[P]) copySelection(s State) []Effect {
	source := -1
	if idx, ok := c.OriginalIndex(s.FocusRow); ok {
		source = idx
	}
	refs := s.Selection.Rows()
	rows := make([]P, 0, len(refs))
	for _, ref := range refs {
		if row, ok := c.Row(ref); ok {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	c.clipboard.Copy(rows, source)
	emitted := make([]P, 0, len(rows))
	for _, row := range rows {
		emitted = append(emitted, c.clipboard.clone(row))
	}
	return []Effect{EmitCopy[P]{Rows: emitted, SourceIndex: source}}
}

// paste consumes the clipboard at the focused row's original index.
func (c *Controller[P]) paste(s State) []Effect {
	target := len(c.rows)
	if idx, ok := c.OriginalIndex(s.FocusRow); ok {
		target = idx
	}
	payload, ok := c.clipboard.Paste(target)
	if !ok {
		return nil
	}
	return []Effect{EmitPaste[P]{Rows: payload.Rows, TargetIndex: payload.TargetIndex}}
}

// commit installs next and reports focus and selection differences.
func (c *Controller[P]) commit(next State) []Effect {
	prev := c.state
	c.state = next
	var effects []Effect
	if next.FocusRow != prev.FocusRow || next.FocusField != prev.FocusField {
		effects = append(effects, FocusMove{Row: next.FocusRow, Field: next.FocusField})
	}
	if !next.Selection.Equal(prev.Selection) {
		effects = append(effects, SelectionChanged{Rows: next.Selection.Rows()})
	}
	return effects
}

// syncShift rebuilds navigation overrides when the held Shift state differs from the policy's.
func (c *Controller[P]) syncShift() []Effect {
	policy, changed := c.policy.WithShift(c.state.Pressed.Has(KeyShift))
	if !changed {
		return nil
	}
	c.policy = policy
	return []Effect{NavigationOverrides{ShiftHeld: policy.ShiftHeld(), Overrides: policy.Overrides()}}
}

// persist captures the current schema for a fire-and-forget save.
func (c *Controller[P]) persist() Effect {
	return PersistLayout{Layout: LayoutOf(c.viewID, c.schema, c.clock())}
}

// refocusField moves focus off a column that is no longer visible.
func (c *Controller[P]) refocusField() []Effect {
	visible := VisibleColumns(c.schema)
	if slices.ContainsFunc(visible, func(col Column[P]) bool { return col.Field == c.state.FocusField }) {
		return nil
	}
	next := c.state
	next.FocusField = ""
	if len(visible) > 0 {
		next.FocusField = visible[0].Field
	}
	return c.commit(next)
}

// afterDataSwap clears selection and clamps focus after the displayed rows changed.
func (c *Controller[P]) afterDataSwap(hadSelection bool) []Effect {
	next := c.state
	next.Selection = next.Selection.Clear()
	next.Direction = DirectionNone
	next.FocusRow = clampFocus(next.FocusRow, len(c.order))
	effects := c.commit(next)
	if hadSelection && !containsSelectionChange(effects) {
		effects = append(effects, SelectionChanged{Rows: []int{}})
	}
	return effects
}

// setData installs rows and a validated display order.
func (c *Controller[P]) setData(rows []P, order []int) {
	c.rows = rows
	c.order = c.validOrder(order, len(rows))
	c.state.FocusRow = clampFocus(c.state.FocusRow, len(c.order))
	if c.state.FocusField == "" {
		if visible := VisibleColumns(c.schema); len(visible) > 0 {
			c.state.FocusField = visible[0].Field
		}
	}
}

// validOrder returns order with out-of-range and repeated indices removed, or the identity order when nil.
func (c *Controller[P]) validOrder(order []int, rowCount int) []int {
	if order == nil {
		out := make([]int, rowCount)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, len(order))
	seen := make(map[int]struct{}, len(order))
	for pos, idx := range order {
		if !inRange(idx, rowCount) {
			c.violation(fmt.Errorf("display order[%d] = %d references a row outside %d rows", pos, idx, rowCount))
			continue
		}
		if _, dup := seen[idx]; dup {
			c.violation(fmt.Errorf("display order[%d] repeats row %d", pos, idx))
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

// violation panics under assertions and otherwise logs and continues.
func (c *Controller[P]) violation(err error) {
	if c.assertions {
		panic(fmt.Sprintf("grid contract violation: %v", err))
	}
	c.logger.Warn("grid contract violation", "view_id", c.viewID, "err", err)
}

// clampFocus keeps a focused row inside the displayed rows, or -1 when nothing is focused.
func clampFocus(row, rowCount int) int {
	if rowCount == 0 || row < 0 {
		return -1
	}
	return min(row, rowCount-1)
}

// containsSelectionChange reports whether effects already carry a SelectionChanged.
func containsSelectionChange(effects []Effect) bool {
	return slices.ContainsFunc(effects, func(e Effect) bool {
		_, ok := e.(SelectionChanged)
		return ok
	})
}
