// Package grid implements the interaction layer between raw grid input and a host rendering engine.
package grid

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Key names one physical key using DOM-style names ("ArrowDown", "Shift", "c").
type Key string

// Named keys understood by the resolver.
const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyShift      Key = "Shift"
	KeyControl    Key = "Control"
	KeyMeta       Key = "Meta"
	KeyAlt        Key = "Alt"
	KeyTab        Key = "Tab"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
)

// NormalizeKey canonicalizes single-rune keys to lower case so "C" and "c" match.
func NormalizeKey(k Key) Key {
	s := string(k)
	if utf8.RuneCountInString(s) == 1 {
		return Key(strings.ToLower(s))
	}
	return k
}

// IsModifier reports whether k is a modifier key.
func (k Key) IsModifier() bool {
	switch k {
	case KeyShift, KeyControl, KeyMeta, KeyAlt:
		return true
	default:
		return false
	}
}

// IsArrow reports whether k is one of the four arrow keys.
func (k Key) IsArrow() bool {
	switch k {
	case KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight:
		return true
	default:
		return false
	}
}

// Modifier is a bit set of modifiers reported alongside an input event.
type Modifier uint8

// Modifier bits.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModMeta
	ModAlt
)

// Has reports whether all bits in m2 are set.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2 && m2 != 0
}

// PressedKeySet tracks keys currently held. Values are immutable; mutators return a new set.
type PressedKeySet struct {
	keys []Key
}

// Press returns a set that additionally holds k.
func (s PressedKeySet) Press(k Key) PressedKeySet {
	k = NormalizeKey(k)
	if k == "" || s.Has(k) {
		return s
	}
	next := make([]Key, 0, len(s.keys)+1)
	next = append(next, s.keys...)
	next = append(next, k)
	return PressedKeySet{keys: next}
}

// Release returns a set without k.
func (s PressedKeySet) Release(k Key) PressedKeySet {
	k = NormalizeKey(k)
	idx := slices.Index(s.keys, k)
	if idx < 0 {
		return s
	}
	next := make([]Key, 0, len(s.keys)-1)
	next = append(next, s.keys[:idx]...)
	next = append(next, s.keys[idx+1:]...)
	return PressedKeySet{keys: next}
}

// Clear returns an empty set.
func (s PressedKeySet) Clear() PressedKeySet {
	return PressedKeySet{}
}

// Has reports whether k is held.
func (s PressedKeySet) Has(k Key) bool {
	return slices.Contains(s.keys, NormalizeKey(k))
}

// Len returns the number of held keys.
func (s PressedKeySet) Len() int {
	return len(s.keys)
}

// Modifiers folds held modifier keys into a Modifier bit set.
func (s PressedKeySet) Modifiers() Modifier {
	var m Modifier
	for _, k := range s.keys {
		switch k {
		case KeyShift:
			m |= ModShift
		case KeyControl:
			m |= ModCtrl
		case KeyMeta:
			m |= ModMeta
		case KeyAlt:
			m |= ModAlt
		}
	}
	return m
}

// Direction is the vertical direction of a shift-arrow selection sequence.
type Direction uint8

// Direction values. DirectionNone means no shift-arrow press has been seen since the last reset.
const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// directionOf maps vertical arrows to a direction.
func directionOf(k Key) Direction {
	switch k {
	case KeyArrowUp:
		return DirectionUp
	case KeyArrowDown:
		return DirectionDown
	default:
		return DirectionNone
	}
}
