package tui

import "charm.land/bubbles/v2/key"

// keyMap holds host bindings. Keys not bound here are forwarded to the grid controller.
type keyMap struct {
	quit        key.Binding
	toggleHelp  key.Binding
	sort        key.Binding
	filter      key.Binding
	hideColumn  key.Binding
	showColumns key.Binding
	moveLeft    key.Binding
	moveRight   key.Binding
	narrow      key.Binding
	widen       key.Binding
	qtyUp       key.Binding
	qtyDown     key.Binding
	resetLayout key.Binding

	// Grid bindings are listed for help only; the controller resolves them.
	focus     key.Binding
	extend    key.Binding
	selectAll key.Binding
	deselect  key.Binding
	copyRows  key.Binding
	pasteRows key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		toggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by column")),
		filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "hide empty lines")),
		hideColumn:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide column")),
		showColumns: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "show all columns")),
		moveLeft:    key.NewBinding(key.WithKeys(","), key.WithHelp(",", "move column left")),
		moveRight:   key.NewBinding(key.WithKeys("."), key.WithHelp(".", "move column right")),
		narrow:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "narrow column")),
		widen:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "widen column")),
		qtyUp:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "qty +1")),
		qtyDown:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "qty -1")),
		resetLayout: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset layout")),

		focus:     key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move focus")),
		extend:    key.NewBinding(key.WithKeys("shift+up", "shift+down"), key.WithHelp("shift+↑/↓", "extend selection")),
		selectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		deselect:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "deselect")),
		copyRows:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy rows")),
		pasteRows: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste rows")),
	}
}

// hostBindings returns every binding the host handles itself.
func (k keyMap) hostBindings() []key.Binding {
	return []key.Binding{
		k.quit, k.toggleHelp, k.sort, k.filter, k.hideColumn, k.showColumns,
		k.moveLeft, k.moveRight, k.narrow, k.widen, k.qtyUp, k.qtyDown, k.resetLayout,
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.extend, k.selectAll, k.copyRows, k.pasteRows, k.sort, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.focus, k.extend, k.selectAll, k.deselect, k.copyRows, k.pasteRows},
		{k.sort, k.filter, k.hideColumn, k.showColumns, k.moveLeft, k.moveRight, k.narrow, k.widen},
		{k.qtyUp, k.qtyDown, k.resetLayout, k.toggleHelp, k.quit},
	}
}
