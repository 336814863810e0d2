package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// TestHostBindingsLeaveGridKeysUnbound verifies grid chords are never captured by host bindings.
func TestHostBindingsLeaveGridKeysUnbound(t *testing.T) {
	km := newKeyMap()
	gridKeys := []tea.KeyPressMsg{
		{Code: tea.KeyUp},
		{Code: tea.KeyDown, Mod: tea.ModShift},
		{Code: 'a', Mod: tea.ModCtrl},
		{Code: 'c', Mod: tea.ModCtrl},
		{Code: 'd', Mod: tea.ModCtrl},
		{Code: 'v', Mod: tea.ModCtrl},
		{Code: tea.KeyTab},
	}
	for _, msg := range gridKeys {
		for _, b := range km.hostBindings() {
			if key.Matches(msg, b) {
				t.Fatalf("%q matched host binding %v", msg.String(), b.Keys())
			}
		}
	}
}

// TestHostBindingsMatch verifies the host keys resolve to their bindings.
func TestHostBindingsMatch(t *testing.T) {
	km := newKeyMap()
	cases := []struct {
		msg  tea.KeyPressMsg
		want key.Binding
	}{
		{msg: keyRune('q'), want: km.quit},
		{msg: keyRune('?'), want: km.toggleHelp},
		{msg: keyRune('='), want: km.qtyUp},
		{msg: keyRune(']'), want: km.widen},
		{msg: tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}, want: km.resetLayout},
	}
	for _, tc := range cases {
		if !key.Matches(tc.msg, tc.want) {
			t.Fatalf("%q did not match %v", tc.msg.String(), tc.want.Keys())
		}
	}
}

// TestHelpListsEveryHostBinding verifies the full help covers all host bindings.
func TestHelpListsEveryHostBinding(t *testing.T) {
	km := newKeyMap()
	listed := map[string]bool{}
	for _, group := range km.FullHelp() {
		for _, b := range group {
			listed[b.Help().Key] = true
		}
	}
	for _, b := range km.hostBindings() {
		if !listed[b.Help().Key] {
			t.Fatalf("binding %q missing from full help", b.Help().Key)
		}
	}
	if len(km.ShortHelp()) == 0 {
		t.Fatal("expected short help bindings")
	}
}
