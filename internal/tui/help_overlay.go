package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/glamour"
)

// minHelpWrap keeps the help table readable on very narrow terminals.
const minHelpWrap = 24

// mouseHelp lists pointer gestures, which have no key binding to derive them from.
var mouseHelp = [][2]string{
	{"click", "focus a cell; the first click on an empty grid also keeps the previous anchor"},
	{"shift+click", "select the range from the focused row"},
	{"ctrl+click", "toggle one row"},
}

// helpOverlay renders the help sheet built from the key map. Output is cached per wrap width.
type helpOverlay struct {
	markdown string
	style    string
	width    int
	renderer *glamour.TermRenderer
	rendered string
}

// newHelpOverlay builds the sheet for keys.
func newHelpOverlay(keys keyMap) *helpOverlay {
	return &helpOverlay{markdown: helpMarkdown(keys), style: "dark"}
}

// view returns the sheet wrapped to width. Rendering failures fall back to the raw markdown.
func (h *helpOverlay) view(width int) string {
	width = max(width, minHelpWrap)
	if h.renderer != nil && h.width == width {
		return h.rendered
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(h.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return h.markdown
	}
	out, err := renderer.Render(h.markdown)
	if err != nil {
		return h.markdown
	}
	h.renderer = renderer
	h.width = width
	h.rendered = strings.TrimRight(out, "\n")
	return h.rendered
}

// helpMarkdown documents mouse gestures and every enabled binding of keys.
func helpMarkdown(keys keyMap) string {
	var b strings.Builder
	b.WriteString("# Order lines\n\n| Input | Action |\n|---|---|\n")
	for _, row := range mouseHelp {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
	}
	for _, group := range keys.FullHelp() {
		for _, binding := range group {
			writeBindingRow(&b, binding)
		}
	}
	b.WriteString("\nSorting, filtering or pasting clears the selection. The clipboard keeps its copy.\n")
	b.WriteString("Column moves, widths and visibility are saved per view; ")
	fmt.Fprintf(&b, "%s restores the defaults.\n", keys.resetLayout.Help().Key)
	return b.String()
}

func writeBindingRow(b *strings.Builder, binding key.Binding) {
	if !binding.Enabled() {
		return
	}
	h := binding.Help()
	if h.Key == "" {
		return
	}
	fmt.Fprintf(b, "| %s | %s |\n", h.Key, h.Desc)
}
