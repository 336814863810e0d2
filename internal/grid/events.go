package grid

// HostEvent is one input or lifecycle event reported by the host rendering engine.
// The set of implementations is closed.
type HostEvent interface {
	hostEvent()
}

// MouseButton identifies the pressed mouse button.
type MouseButton uint8

// MouseButton values.
const (
	ButtonPrimary MouseButton = iota
	ButtonSecondary
	ButtonMiddle
)

// CellMouseDown reports a mouse press on a cell. Row is a display position.
type CellMouseDown struct {
	Row       int
	Field     string
	Button    MouseButton
	Modifiers Modifier
}

// CellKeyDown reports a key press while the cell at Row/Field has focus.
type CellKeyDown struct {
	Key       Key
	Modifiers Modifier
	Row       int
	Field     string
}

// KeyUp reports a key release.
type KeyUp struct {
	Key Key
}

// Blur reports that the grid lost input focus; held keys are no longer tracked.
type Blur struct{}

// ColumnMoved reports a column drag. Only the event with Finished set is a settled move.
type ColumnMoved struct {
	Field    string
	To       int
	Finished bool
}

// ColumnVisible reports a column being shown or hidden.
type ColumnVisible struct {
	Field   string
	Visible bool
}

// ColumnResized reports a column resize. Only the event with Finished set is settled.
type ColumnResized struct {
	Field    string
	Width    int
	Finished bool
}

// SortChanged reports a new display order after a sort. Order maps display position to original index.
type SortChanged struct {
	Order []int
}

// FilterChanged reports a new display order after a filter change.
type FilterChanged struct {
	Order []int
}

// DataChanged replaces the row dataset. A nil Order displays rows in source order.
type DataChanged[P any] struct {
	Rows  []P
	Order []int
}

// CellValueChanged reports an edit committed by a cell editor.
type CellValueChanged struct {
	Row   int
	Field string
	Value any
}

// HostSelectionChanged reports a selection change made by the host engine itself.
type HostSelectionChanged struct {
	Rows []int
}

func (CellMouseDown) hostEvent()        {}
func (CellKeyDown) hostEvent()          {}
func (KeyUp) hostEvent()                {}
func (Blur) hostEvent()                 {}
func (ColumnMoved) hostEvent()          {}
func (ColumnVisible) hostEvent()        {}
func (ColumnResized) hostEvent()        {}
func (SortChanged) hostEvent()          {}
func (FilterChanged) hostEvent()        {}
func (DataChanged[P]) hostEvent()       {}
func (CellValueChanged) hostEvent()     {}
func (HostSelectionChanged) hostEvent() {}
