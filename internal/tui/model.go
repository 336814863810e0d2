// Package tui hosts the grid controller in a terminal order-entry view.
package tui

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hylla/gridline/internal/domain"
	"github.com/hylla/gridline/internal/grid"
	"github.com/mattn/go-runewidth"
)

// defaultColumnWidth and related constants define layout defaults.
const (
	defaultColumnWidth = 12
	minColumnWidth     = 3
	maxColumnWidth     = 60
	widthStep          = 2
	gutterWidth        = 2
	headerLines        = 2
	resetTimeout       = 5 * time.Second
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	focusStyle    = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// layoutLoadedMsg carries an async layout load back to the event loop with the token it was issued for.
type layoutLoadedMsg struct {
	token  grid.Token
	layout domain.ColumnLayout
	found  bool
}

// layoutResetMsg reports the result of clearing the persisted layout.
type layoutResetMsg struct {
	viewID string
	err    error
}

// clipboardWrittenMsg reports the result of writing copied lines to the system clipboard.
type clipboardWrittenMsg struct {
	lines int
	err   error
}

// Model is the terminal host for one grid controller.
type Model struct {
	ctrl           *grid.Controller[orderLine]
	token          grid.Token
	gridCfg        GridConfig
	layouts        LayoutStore
	logger         Logger
	writeClipboard func(string) error

	// rows shares its backing array with the controller so in-place edits are visible to it.
	rows       []orderLine
	order      []int
	columns    []grid.Column[orderLine]
	focusRow   int
	focusField string
	selected   map[int]struct{}
	overrides  map[string]grid.NavigationFunc
	shiftHeld  bool
	sortField  string
	sortDesc   bool
	hideEmpty  bool

	keys     keyMap
	help     help.Model
	helpView *helpOverlay
	showHelp bool
	width    int
	height   int
	ready    bool
	status   string
}

// NewModel constructs the order-entry model and mounts its grid view.
func NewModel(opts ...Option) Model {
	m := Model{
		gridCfg:        DefaultGridConfig(),
		logger:         charmLog.NewWithOptions(io.Discard, charmLog.Options{}),
		writeClipboard: clipboard.WriteAll,
		focusRow:       -1,
		selected:       map[int]struct{}{},
		overrides:      map[string]grid.NavigationFunc{},
		keys:           newKeyMap(),
		help:           help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	if m.rows == nil {
		m.rows = demoLines()
	}
	m.helpView = newHelpOverlay(m.keys)
	m.ctrl = grid.New(grid.Options[orderLine]{
		ViewID:             m.gridCfg.ViewID,
		Columns:            orderColumns(),
		Rows:               m.rows,
		Mode:               m.gridCfg.Mode,
		HistoryCap:         m.gridCfg.HistoryCap,
		SinglePrimaryClick: m.gridCfg.SinglePrimaryClick,
		SuppressedColumns:  m.gridCfg.SuppressedColumns,
		Clone:              cloneLine,
		Assertions:         m.gridCfg.Assertions,
		Logger:             m.logger,
	})
	m.token = m.ctrl.Mount(m.gridCfg.ViewID)
	m.columns = m.ctrl.Columns()
	m.order = m.displayOrder()
	m.focusField = m.ctrl.State().FocusField
	for _, field := range m.gridCfg.SuppressedColumns {
		if fn := m.ctrl.NavigationOverride(field); fn != nil {
			m.overrides[field] = fn
		}
	}
	return m
}

// Init loads the saved layout for the mounted view.
func (m Model) Init() tea.Cmd {
	return m.loadLayout(m.token)
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case layoutLoadedMsg:
		_, cmd := m.apply(m.ctrl.ApplySavedLayout(msg.token, msg.layout, msg.found))
		if msg.found {
			m.logger.Debug("layout applied", "view_id", msg.token.ViewID(), "columns", len(msg.layout.Columns))
		}
		return m, cmd

	case layoutResetMsg:
		if msg.err != nil {
			m.logger.Warn("layout reset failed", "view_id", msg.viewID, "err", msg.err)
			m.status = "layout reset failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "layout reset"
		return m, nil

	case clipboardWrittenMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", "lines", msg.lines, "err", msg.err)
			m.status = fmt.Sprintf("copied %d lines (clipboard unavailable)", msg.lines)
			return m, nil
		}
		m.status = fmt.Sprintf("copied %d lines", msg.lines)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.KeyReleaseMsg:
		return m.handleKeyRelease(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.BlurMsg:
		m.shiftHeld = false
		_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.Blur{}))
		return m, cmd

	default:
		return m, nil
	}
}

// View renders the grid or the help overlay.
func (m Model) View() tea.View {
	content := m.renderGrid()
	if m.showHelp {
		content = m.renderHelp()
	}
	v := tea.NewView(content)
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	v.ReportFocus = true
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

// loadLayout fetches the saved layout off the event loop.
func (m Model) loadLayout(tok grid.Token) tea.Cmd {
	if m.layouts == nil {
		return nil
	}
	store := m.layouts
	return func() tea.Msg {
		layout, found := store.LoadOrDefault(context.Background(), tok.ViewID())
		return layoutLoadedMsg{token: tok, layout: layout, found: found}
	}
}

// resetStored clears the persisted layout off the event loop.
func (m Model) resetStored(viewID string) tea.Cmd {
	if m.layouts == nil {
		return nil
	}
	store := m.layouts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
		defer cancel()
		return layoutResetMsg{viewID: viewID, err: store.Reset(ctx, viewID)}
	}
}

// handleKeyPress routes host bindings locally and everything else through the controller.
func (m Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.quit):
			m.ctrl.Unmount()
			return m, tea.Quit
		case key.Matches(msg, m.keys.toggleHelp), msg.Code == tea.KeyEscape:
			m.showHelp = false
		}
		return m, nil
	}
	if slices.ContainsFunc(m.keys.hostBindings(), func(b key.Binding) bool { return key.Matches(msg, b) }) {
		return m.handleHostKey(msg)
	}

	k, ok := gridKey(msg.Key())
	if !ok {
		return m, nil
	}
	mods := gridModifiers(msg.Mod)
	var cmds []tea.Cmd
	if m.shiftHeld && !mods.Has(grid.ModShift) && k != grid.KeyShift {
		cmds = append(cmds, m.releaseShift())
	}
	if k == grid.KeyShift || mods.Has(grid.ModShift) {
		m.shiftHeld = true
	}
	prevented, cmd := m.apply(m.ctrl.HandleHostEvent(grid.CellKeyDown{
		Key:       k,
		Modifiers: mods,
		Row:       m.focusRow,
		Field:     m.focusField,
	}))
	cmds = append(cmds, cmd)
	if !prevented && !k.IsModifier() {
		m.defaultNavigation(k)
	}
	return m, tea.Batch(cmds...)
}

// handleKeyRelease forwards key releases reported by terminals with event-type support.
func (m Model) handleKeyRelease(msg tea.KeyReleaseMsg) (tea.Model, tea.Cmd) {
	k, ok := gridKey(msg.Key())
	if !ok {
		return m, nil
	}
	if k == grid.KeyShift {
		m.shiftHeld = false
	}
	_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.KeyUp{Key: k}))
	return m, cmd
}

// handleMouseClick maps a click to a cell and forwards it as a mouse down.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	button, ok := gridButton(mouse.Button)
	if !ok {
		return m, nil
	}
	row, field, ok := m.cellAt(mouse.X, mouse.Y)
	if !ok {
		return m, nil
	}
	mods := gridModifiers(mouse.Mod)
	var cmds []tea.Cmd
	if m.shiftHeld && !mods.Has(grid.ModShift) {
		cmds = append(cmds, m.releaseShift())
	}
	_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.CellMouseDown{
		Row:       row,
		Field:     field,
		Button:    button,
		Modifiers: mods,
	}))
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// releaseShift reports a Shift release the terminal did not deliver as its own event.
func (m *Model) releaseShift() tea.Cmd {
	m.shiftHeld = false
	_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.KeyUp{Key: grid.KeyShift}))
	return cmd
}

// handleHostKey runs one host binding.
func (m Model) handleHostKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.ctrl.Unmount()
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.sort):
		return m.cycleSort()
	case key.Matches(msg, m.keys.filter):
		m.hideEmpty = !m.hideEmpty
		m.order = m.displayOrder()
		_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.FilterChanged{Order: m.order}))
		m.status = fmt.Sprintf("showing %d of %d lines", len(m.order), len(m.rows))
		return m, cmd
	case key.Matches(msg, m.keys.hideColumn):
		return m.hideFocusedColumn()
	case key.Matches(msg, m.keys.showColumns):
		return m.showAllColumns()
	case key.Matches(msg, m.keys.moveLeft):
		return m.moveFocusedColumn(-1)
	case key.Matches(msg, m.keys.moveRight):
		return m.moveFocusedColumn(1)
	case key.Matches(msg, m.keys.narrow):
		return m.resizeFocusedColumn(-widthStep)
	case key.Matches(msg, m.keys.widen):
		return m.resizeFocusedColumn(widthStep)
	case key.Matches(msg, m.keys.qtyUp):
		return m.editQty(1)
	case key.Matches(msg, m.keys.qtyDown):
		return m.editQty(-1)
	case key.Matches(msg, m.keys.resetLayout):
		_, cmd := m.apply(m.ctrl.ResetLayout())
		return m, cmd
	default:
		return m, nil
	}
}

// cycleSort cycles the focused column through ascending, descending and unsorted.
func (m Model) cycleSort() (tea.Model, tea.Cmd) {
	field := m.focusField
	switch {
	case field == "":
		return m, nil
	case m.sortField != field:
		m.sortField, m.sortDesc = field, false
	case !m.sortDesc:
		m.sortDesc = true
	default:
		m.sortField, m.sortDesc = "", false
	}
	m.order = m.displayOrder()
	_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.SortChanged{Order: m.order}))
	return m, cmd
}

// hideFocusedColumn hides the focused column unless it is the last visible one.
func (m Model) hideFocusedColumn() (tea.Model, tea.Cmd) {
	if len(grid.VisibleColumns(m.columns)) <= 1 {
		m.status = "cannot hide the last column"
		return m, nil
	}
	field := m.focusField
	columns, changed := grid.SetColumnHidden(m.columns, field, true)
	if !changed {
		return m, nil
	}
	m.columns = columns
	_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.ColumnVisible{Field: field, Visible: false}))
	return m, cmd
}

// showAllColumns reveals every hidden column.
func (m Model) showAllColumns() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, col := range m.columns {
		if !col.Hidden {
			continue
		}
		m.columns, _ = grid.SetColumnHidden(m.columns, col.Field, false)
		_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.ColumnVisible{Field: col.Field, Visible: true}))
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// moveFocusedColumn drags the focused column one slot and reports the settled move.
func (m Model) moveFocusedColumn(delta int) (tea.Model, tea.Cmd) {
	field := m.focusField
	idx := slices.IndexFunc(m.columns, func(c grid.Column[orderLine]) bool { return c.Field == field })
	if idx < 0 {
		return m, nil
	}
	to := idx + delta
	if to < 0 || to >= len(m.columns) {
		return m, nil
	}
	columns, changed := grid.MoveColumn(m.columns, field, to)
	if !changed {
		return m, nil
	}
	m.columns = columns
	m.ctrl.HandleHostEvent(grid.ColumnMoved{Field: field, To: to})
	_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.ColumnMoved{To: to, Finished: true}))
	return m, cmd
}

// resizeFocusedColumn changes the focused column's width and reports the settled resize.
func (m Model) resizeFocusedColumn(delta int) (tea.Model, tea.Cmd) {
	field := m.focusField
	idx := slices.IndexFunc(m.columns, func(c grid.Column[orderLine]) bool { return c.Field == field })
	if idx < 0 {
		return m, nil
	}
	width := min(max(columnWidth(m.columns[idx])+delta, minColumnWidth), maxColumnWidth)
	columns, changed := grid.SetColumnWidth(m.columns, field, width)
	if !changed {
		return m, nil
	}
	m.columns = columns
	m.ctrl.HandleHostEvent(grid.ColumnResized{Field: field, Width: width})
	_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.ColumnResized{Field: field, Width: width, Finished: true}))
	return m, cmd
}

// editQty commits a quantity edit on the focused line.
func (m Model) editQty(delta int) (tea.Model, tea.Cmd) {
	if m.focusRow < 0 || m.focusRow >= len(m.order) {
		return m, nil
	}
	line := m.rows[m.order[m.focusRow]]
	effects := m.ctrl.HandleHostEvent(grid.CellValueChanged{Row: m.focusRow, Field: "qty", Value: line.Qty + delta})
	accepted := slices.ContainsFunc(effects, func(e grid.Effect) bool {
		_, ok := e.(grid.EmitCellEdit[orderLine])
		return ok
	})
	if !accepted {
		m.status = "quantity is read-only or out of range"
	}
	_, cmd := m.apply(effects)
	if accepted {
		cmd = tea.Batch(cmd, m.reorderAfterEdit())
	}
	return m, cmd
}

// reorderAfterEdit reapplies the filter and sort to edited rows and reports a changed display order.
func (m *Model) reorderAfterEdit() tea.Cmd {
	next := m.displayOrder()
	if slices.Equal(next, m.order) {
		return nil
	}
	var ev grid.HostEvent = grid.SortChanged{Order: next}
	if len(next) != len(m.order) {
		ev = grid.FilterChanged{Order: next}
		m.status = fmt.Sprintf("showing %d of %d lines", len(next), len(m.rows))
	}
	m.order = next
	_, cmd := m.apply(m.ctrl.HandleHostEvent(ev))
	return cmd
}

// defaultNavigation runs the host's own handling for keys the controller did not prevent.
func (m *Model) defaultNavigation(k grid.Key) {
	switch k {
	case grid.KeyArrowLeft, grid.KeyArrowRight, grid.KeyTab:
		if fn := m.overrides[m.focusField]; fn != nil && fn(k) {
			return
		}
		visible := grid.VisibleColumns(m.columns)
		if len(visible) == 0 {
			return
		}
		idx := slices.IndexFunc(visible, func(c grid.Column[orderLine]) bool { return c.Field == m.focusField })
		step := 1
		if k == grid.KeyArrowLeft {
			step = -1
		}
		idx = min(max(idx+step, 0), len(visible)-1)
		m.focusField = visible[idx].Field
	case grid.KeyArrowUp, grid.KeyArrowDown:
		if m.focusRow < 0 && len(m.order) > 0 {
			m.focusRow = 0
		}
	}
}

// apply installs effects into host state. prevented reports whether the host default must not run.
func (m *Model) apply(effects []grid.Effect) (prevented bool, cmd tea.Cmd) {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case grid.FocusMove:
			m.focusRow = e.Row
			m.focusField = e.Field
		case grid.SelectionChanged:
			selected := make(map[int]struct{}, len(e.Rows))
			for _, row := range e.Rows {
				selected[row] = struct{}{}
			}
			m.selected = selected
		case grid.PreventDefault:
			prevented = true
		case grid.NavigationOverrides:
			m.overrides = e.Overrides
		case grid.PersistLayout:
			if m.layouts != nil {
				m.layouts.SaveAsync(e.Layout)
			}
		case grid.SchemaChanged[orderLine]:
			m.columns = e.Columns
		case grid.ResetLayout[orderLine]:
			m.columns = e.Columns
			cmds = append(cmds, m.resetStored(e.ViewID))
		}
	}
	grid.Callbacks[orderLine]{
		OnSelectedRowsCopied: func(lines []orderLine) {
			cmds = append(cmds, m.copyToClipboard(lines))
		},
		OnRowsPasted: func(lines []orderLine, target int) {
			cmds = append(cmds, m.insertLines(lines, target))
		},
		OnCellValueChanged: func(line orderLine, field string, value any) {
			idx := slices.IndexFunc(m.rows, func(l orderLine) bool { return l.ID == line.ID })
			if idx >= 0 {
				m.rows[idx] = withField(m.rows[idx], field, value)
			}
		},
	}.Dispatch(effects)
	return prevented, tea.Batch(cmds...)
}

// copyToClipboard writes copied lines to the system clipboard off the event loop.
func (m *Model) copyToClipboard(lines []orderLine) tea.Cmd {
	text := linesAsTSV(m.columns, lines)
	write := m.writeClipboard
	n := len(lines)
	return func() tea.Msg {
		return clipboardWrittenMsg{lines: n, err: write(text)}
	}
}

// insertLines adds pasted lines to the source array at target and hands the new dataset to the controller.
func (m *Model) insertLines(lines []orderLine, target int) tea.Cmd {
	target = min(max(target, 0), len(m.rows))
	next := make([]orderLine, 0, len(m.rows)+len(lines))
	next = append(next, m.rows[:target]...)
	for _, line := range lines {
		line.ID = uuid.NewString()
		next = append(next, line)
	}
	next = append(next, m.rows[target:]...)
	m.rows = next
	m.order = m.displayOrder()
	m.status = fmt.Sprintf("pasted %d lines", len(lines))
	_, cmd := m.apply(m.ctrl.HandleHostEvent(grid.DataChanged[orderLine]{Rows: m.rows, Order: m.order}))
	return cmd
}

// displayOrder applies the current filter and sort to the source array.
func (m Model) displayOrder() []int {
	order := make([]int, 0, len(m.rows))
	for idx, line := range m.rows {
		if m.hideEmpty && line.Qty == 0 {
			continue
		}
		order = append(order, idx)
	}
	if m.sortField == "" {
		return order
	}
	slices.SortStableFunc(order, func(a, b int) int {
		c := compareLines(m.sortField, m.rows[a], m.rows[b])
		if m.sortDesc {
			return -c
		}
		return c
	})
	return order
}

// compareLines orders two lines by one field.
func compareLines(field string, a, b orderLine) int {
	switch field {
	case "qty":
		return cmp.Compare(a.Qty, b.Qty)
	case "price":
		return cmp.Compare(a.PriceCents, b.PriceCents)
	case "total":
		return cmp.Compare(a.PriceCents*a.Qty, b.PriceCents*b.Qty)
	case "status":
		return cmp.Compare(boolRank(a.Shipped), boolRank(b.Shipped))
	case "sku":
		return strings.Compare(a.SKU, b.SKU)
	case "notes":
		return strings.Compare(strings.ToLower(a.Notes), strings.ToLower(b.Notes))
	default:
		return strings.Compare(strings.ToLower(a.Item), strings.ToLower(b.Item))
	}
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}

// cellAt maps terminal coordinates to a display row and column field.
func (m Model) cellAt(x, y int) (int, string, bool) {
	row := y - headerLines
	if row < 0 || row >= len(m.order) {
		return 0, "", false
	}
	x -= gutterWidth
	if x < 0 {
		return row, m.focusField, true
	}
	for _, col := range grid.VisibleColumns(m.columns) {
		w := columnWidth(col)
		if x < w {
			return row, col.Field, true
		}
		x -= w + 1
	}
	return 0, "", false
}

// columnWidth returns the rendered width of one column.
func columnWidth(col grid.Column[orderLine]) int {
	if col.Width <= 0 {
		return defaultColumnWidth
	}
	return col.Width
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// renderGrid renders the title, header, rows and footer.
func (m Model) renderGrid() string {
	visible := grid.VisibleColumns(m.columns)
	var b strings.Builder

	summary := fmt.Sprintf("%d lines · %d selected", len(m.order), len(m.selected))
	if m.sortField != "" {
		dir := "↑"
		if m.sortDesc {
			dir = "↓"
		}
		summary += " · sort " + m.sortField + " " + dir
	}
	if n := m.ctrl.ClipboardLen(); n > 0 {
		summary += fmt.Sprintf(" · %d on clipboard", n)
	}
	b.WriteString(titleStyle.Render("gridline · "+m.ctrl.ViewID()) + "  " + statusStyle.Render(summary) + "\n")

	headers := make([]string, 0, len(visible))
	for _, col := range visible {
		headers = append(headers, headerStyle.Render(fit(col.Header, columnWidth(col))))
	}
	b.WriteString(strings.Repeat(" ", gutterWidth) + strings.Join(headers, " ") + "\n")

	if len(m.order) == 0 {
		b.WriteString(mutedStyle.Render("  no lines") + "\n")
	}
	for pos, idx := range m.order {
		line := m.rows[idx]
		_, isSelected := m.selected[pos]
		marker := "  "
		if pos == m.focusRow {
			marker = "▸ "
		}
		cells := make([]string, 0, len(visible))
		for _, col := range visible {
			text := fit(col.Text(line), columnWidth(col))
			style := lipgloss.NewStyle()
			if col.Style != nil && col.Style(line) == "muted" {
				style = mutedStyle
			}
			if isSelected {
				style = style.Inherit(selectedStyle)
			}
			if pos == m.focusRow && col.Field == m.focusField {
				style = style.Inherit(focusStyle)
			}
			cells = append(cells, style.Render(text))
		}
		b.WriteString(marker + strings.Join(cells, " ") + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	width := m.width - 4
	if width <= 0 {
		width = 80
	}
	return m.helpView.view(width) + "\n\n" + statusStyle.Render("? or esc to close")
}
