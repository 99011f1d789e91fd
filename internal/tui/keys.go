package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Key is a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func bind(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}
	s := msg.String()
	for _, key := range k.Keys {
		if s == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Navigation
	Up   Key
	Down Key
	Back Key
	Quit Key

	// Modules
	F1  Key
	F2  Key
	F3  Key
	F4  Key
	F10 Key

	// List actions
	Toggle    Key
	Increment Key
	Decrement Key
	Consume   Key
	Discard   Key
	Move      Key
	Add       Key
	Delete    Key
	Refresh   Key
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:   bind("up", "up", "k"),
		Down: bind("down", "down", "j"),
		Back: bind("back", "esc"),
		Quit: bind("quit", "q", "ctrl+c"),

		F1:  bind("Help", "f1"),
		F2:  bind("Inventory", "f2"),
		F3:  bind("Shopping", "f3"),
		F4:  bind("Expiring", "f4"),
		F10: bind("Quit", "f10"),

		Toggle:    bind("check", " "),
		Increment: bind("check one more", "+", "="),
		Decrement: bind("check one less", "-"),
		Consume:   bind("consume checked", "c"),
		Discard:   bind("discard expired", "x"),
		Move:      bind("move to inventory", "m"),
		Add:       bind("add entry", "a"),
		Delete:    bind("delete entry", "d"),
		Refresh:   bind("refresh", "r"),
	}
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// ModuleFor returns the module a function key opens, or "" for other keys.
func (km KeyMap) ModuleFor(msg tea.KeyMsg) Module {
	switch {
	case km.F1.Matches(msg):
		return ModuleHelp
	case km.F2.Matches(msg):
		return ModuleInventory
	case km.F3.Matches(msg):
		return ModuleShopping
	case km.F4.Matches(msg):
		return ModuleExpiring
	default:
		return ""
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	return "[F1]Help [F2]Inventory [F3]Shopping [F4]Expiring [F10]Quit"
}

// ListHelp returns the key hints shown under a list.
func (km KeyMap) ListHelp(shopping bool) string {
	if shopping {
		return "Space:Check  +/-:Count  c:Clear checked  m:Move to inventory  a:Add  d:Delete  r:Refresh"
	}
	return "Space:Check  +/-:Count  c:Consume  x:Discard expired  a:Add  d:Delete  r:Refresh"
}
