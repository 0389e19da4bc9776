package picker

import (
	"github.com/senenv/shellmenu/pkg/keys"
)

// KeyBinds defines key bindings for the picker.
type KeyBinds struct {
	Up     *keys.KeyBind `json:"up,omitempty"`
	Down   *keys.KeyBind `json:"down,omitempty"`
	Select *keys.KeyBind `json:"select,omitempty"`
	Back   *keys.KeyBind `json:"back,omitempty"`
	Help   *keys.KeyBind `json:"help,omitempty"`
	Quit   *keys.KeyBind `json:"quit,omitempty"`
}

// NewKeyBinds returns the default key bindings.
func NewKeyBinds() *KeyBinds {
	kb := &KeyBinds{}
	kb.EnsureDefaults()

	return kb
}

// EnsureDefaults sets default key bindings for unset actions.
func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Up,
		keys.NewBind("move up",
			keys.New("up", keys.WithAlias("↑")),
			keys.New("k"),
		))
	keys.SetDefaultBind(&kb.Down,
		keys.NewBind("move down",
			keys.New("down", keys.WithAlias("↓")),
			keys.New("j"),
		))
	keys.SetDefaultBind(&kb.Select,
		keys.NewBind("select",
			keys.New("enter", keys.WithAlias("↵")),
			keys.New("right", keys.Hidden()),
			keys.New("l", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Back,
		keys.NewBind("back",
			keys.New("esc"),
			keys.New("left", keys.Hidden()),
			keys.New("h", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Help,
		keys.NewBind("toggle help",
			keys.New("?"),
		))
	keys.SetDefaultBind(&kb.Quit,
		keys.NewBind("quit",
			keys.New("q"),
			keys.New("ctrl+c", keys.Hidden()),
		))
}

// GetKeyBinds returns all key bindings.
func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Up,
		*kb.Down,
		*kb.Select,
		*kb.Back,
		*kb.Help,
		*kb.Quit,
	}
}

// Validate reports keys bound to more than one action.
func (kb *KeyBinds) Validate() error {
	//nolint:wrapcheck // Already descriptive.
	return keys.ValidateBinds(kb.GetKeyBinds()...)
}
