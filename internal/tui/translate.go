package tui

import (
	"unicode"

	tea "charm.land/bubbletea/v2"
	"github.com/hylla/gridline/internal/grid"
)

// gridKey maps one terminal key to the grid key vocabulary.
func gridKey(k tea.Key) (grid.Key, bool) {
	switch k.Code {
	case tea.KeyUp:
		return grid.KeyArrowUp, true
	case tea.KeyDown:
		return grid.KeyArrowDown, true
	case tea.KeyLeft:
		return grid.KeyArrowLeft, true
	case tea.KeyRight:
		return grid.KeyArrowRight, true
	case tea.KeyTab:
		return grid.KeyTab, true
	case tea.KeyEnter:
		return grid.KeyEnter, true
	case tea.KeyEscape:
		return grid.KeyEscape, true
	case tea.KeyLeftShift, tea.KeyRightShift:
		return grid.KeyShift, true
	case tea.KeyLeftCtrl, tea.KeyRightCtrl:
		return grid.KeyControl, true
	case tea.KeyLeftAlt, tea.KeyRightAlt:
		return grid.KeyAlt, true
	case tea.KeyLeftSuper, tea.KeyRightSuper, tea.KeyLeftMeta, tea.KeyRightMeta:
		return grid.KeyMeta, true
	}
	if unicode.IsPrint(k.Code) {
		return grid.NormalizeKey(grid.Key(string(k.Code))), true
	}
	return "", false
}

// gridModifiers maps terminal modifier bits to grid modifiers. Super is folded into Meta.
func gridModifiers(mod tea.KeyMod) grid.Modifier {
	var out grid.Modifier
	if mod&tea.ModShift != 0 {
		out |= grid.ModShift
	}
	if mod&tea.ModCtrl != 0 {
		out |= grid.ModCtrl
	}
	if mod&(tea.ModMeta|tea.ModSuper) != 0 {
		out |= grid.ModMeta
	}
	if mod&tea.ModAlt != 0 {
		out |= grid.ModAlt
	}
	return out
}

// gridButton maps a terminal mouse button.
func gridButton(b tea.MouseButton) (grid.MouseButton, bool) {
	switch b {
	case tea.MouseLeft:
		return grid.ButtonPrimary, true
	case tea.MouseRight:
		return grid.ButtonSecondary, true
	case tea.MouseMiddle:
		return grid.ButtonMiddle, true
	default:
		return 0, false
	}
}
