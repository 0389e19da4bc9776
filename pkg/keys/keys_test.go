package keys_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/senenv/shellmenu/pkg/keys"
)

func TestKeyBind_String(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		kb   keys.KeyBind
		want string
	}{
		"single key": {
			kb:   keys.NewBind("quit", keys.New("q")),
			want: "q",
		},
		"alias and hidden": {
			kb: keys.NewBind("select",
				keys.New("enter", keys.WithAlias("↵")),
				keys.New("l", keys.Hidden()),
				keys.New("right", keys.WithAlias("→")),
			),
			want: "↵/→",
		},
		"all hidden": {
			kb:   keys.NewBind("nothing", keys.New("x", keys.Hidden())),
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.kb.String())
		})
	}
}

func TestKeyBind_Match(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("down", keys.New("down"), keys.New("j", keys.Hidden()))

	assert.True(t, kb.Match("down"))
	assert.True(t, kb.Match("j"))
	assert.False(t, kb.Match("k"))
}

func TestKeyBind_Binding(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("back", keys.New("esc"), keys.New("left", keys.WithAlias("←")))
	b := kb.Binding()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, b))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyLeft}, b))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, b))
	assert.Equal(t, "esc/←", b.Help().Key)
	assert.Equal(t, "back", b.Help().Desc)
}

func TestKeyBind_StringRow(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		kb        keys.KeyBind
		want      string
		keyWidth  int
		descWidth int
	}{
		"padded": {
			kb:        keys.NewBind("up", keys.New("k")),
			keyWidth:  3,
			descWidth: 6,
			want:      "k    up  ",
		},
		"truncated": {
			kb:        keys.NewBind("select item", keys.New("enter")),
			keyWidth:  5,
			descWidth: 8,
			want:      "enter  selec…",
		},
		"hidden": {
			kb:        keys.NewBind("x", keys.New("x", keys.Hidden())),
			keyWidth:  1,
			descWidth: 4,
			want:      "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.kb.StringRow(tc.keyWidth, tc.descWidth))
		})
	}
}

func TestKeyBindRenderer(t *testing.T) {
	t.Parallel()

	kbr := &keys.KeyBindRenderer{}
	assert.Empty(t, kbr.Render(40))

	kbr.AddColumn(
		keys.NewBind("up", keys.New("k")),
		keys.NewBind("down", keys.New("j")),
	)
	kbr.AddColumn(keys.NewBind("quit", keys.New("q")))
	kbr.AddColumn()

	assert.Equal(t, 2, kbr.Height())

	lines := strings.Split(kbr.Render(40), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "k  up")
	assert.Contains(t, lines[0], "q  quit")
	assert.Contains(t, lines[1], "j  down")
	assert.Len(t, lines[0], 40)
}

func TestValidateBinds(t *testing.T) {
	t.Parallel()

	require.NoError(t, keys.ValidateBinds(
		keys.NewBind("up", keys.New("k")),
		keys.NewBind("down", keys.New("j")),
	))

	err := keys.ValidateBinds(
		keys.NewBind("up", keys.New("k")),
		keys.NewBind("down", keys.New("j"), keys.New("k")),
	)
	require.ErrorIs(t, err, keys.ErrDuplicateKey)
	assert.Contains(t, err.Error(), ": k")
}

func TestSetDefaultBind(t *testing.T) {
	t.Parallel()

	def := keys.NewBind("quit", keys.New("q"))

	var unset *keys.KeyBind
	keys.SetDefaultBind(&unset, def)
	require.NotNil(t, unset)
	assert.Equal(t, def, *unset)

	partial := &keys.KeyBind{Keys: []keys.Key{keys.New("x")}}
	keys.SetDefaultBind(&partial, def)
	assert.Equal(t, "quit", partial.Description)
	assert.Equal(t, []keys.Key{keys.New("x")}, partial.Keys)

	empty := &keys.KeyBind{Description: "exit"}
	keys.SetDefaultBind(&empty, def)
	assert.Equal(t, "exit", empty.Description)
	assert.Equal(t, def.Keys, empty.Keys)
}
