package grid

// CloneFunc returns an independent deep copy of a row.
type CloneFunc[P any] func(P) P

// ClipboardPayload is the content handed out by a consuming paste.
type ClipboardPayload[P any] struct {
	Rows []P
	// SourceIndex is the original index of the row focused at copy time.
	SourceIndex int
	// TargetIndex is the original index of the row focused at paste time.
	TargetIndex int
}

// Clipboard holds row snapshots between a copy and the paste that consumes them.
type Clipboard[P any] struct {
	rows   []P
	source int
	clone  CloneFunc[P]
}

// NewClipboard constructs an empty clipboard. A nil clone copies rows by assignment,
// which is only a snapshot for value types without shared references.
func NewClipboard[P any](clone CloneFunc[P]) *Clipboard[P] {
	if clone == nil {
		clone = func(row P) P { return row }
	}
	return &Clipboard[P]{clone: clone}
}

// Copy replaces the buffer with snapshots of rows.
func (c *Clipboard[P]) Copy(rows []P, sourceIndex int) {
	snap := make([]P, 0, len(rows))
	for _, row := range rows {
		snap = append(snap, c.clone(row))
	}
	c.rows = snap
	c.source = sourceIndex
}

// Paste returns the buffered snapshots and empties the buffer. ok is false when nothing is buffered.
func (c *Clipboard[P]) Paste(targetIndex int) (payload ClipboardPayload[P], ok bool) {
	if len(c.rows) == 0 {
		return ClipboardPayload[P]{}, false
	}
	payload = ClipboardPayload[P]{
		Rows:        c.rows,
		SourceIndex: c.source,
		TargetIndex: targetIndex,
	}
	c.rows = nil
	c.source = 0
	return payload, true
}

// Len returns the number of buffered rows.
func (c *Clipboard[P]) Len() int {
	return len(c.rows)
}

// Empty reports whether the buffer holds nothing.
func (c *Clipboard[P]) Empty() bool {
	return len(c.rows) == 0
}
