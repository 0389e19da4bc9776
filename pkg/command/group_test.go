package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/icon"
	"github.com/senenv/shellmenu/pkg/rule"
)

func titles(cmds []command.Command) []string {
	out := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.Flags().Has(command.FlagIsSeparator) {
			out = append(out, "-")

			continue
		}

		out = append(out, cmd.Title())
	}

	return out
}

func newTestGroup(separators []int, names ...string) *command.Group {
	children := make([]*rule.Rule, 0, len(names))
	for _, name := range names {
		children = append(children, rule.MustNew(name, "{}"))
	}

	return command.NewGroup(&command.GroupConfig{
		Name:       "G",
		Children:   children,
		Separators: separators,
	}, testFrame(), &execs.Recorder{}, icon.Static("/icons/menu.ico"))
}

func TestGroup_Materialize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		separators []int
		children   []string
		want       []string
	}{
		"no separators": {
			children: []string{"A", "B", "C"},
			want:     []string{"A", "B", "C"},
		},
		"after first child": {
			separators: []int{1},
			children:   []string{"A", "B", "C"},
			want:       []string{"A", "-", "B", "C"},
		},
		"before first child": {
			separators: []int{0},
			children:   []string{"A", "B", "C"},
			want:       []string{"-", "A", "B", "C"},
		},
		"running count": {
			separators: []int{2, 3},
			children:   []string{"A", "B", "C", "D", "E", "F"},
			want:       []string{"A", "B", "-", "C", "D", "E", "-", "F"},
		},
		"adjacent": {
			separators: []int{1, 0},
			children:   []string{"A", "B"},
			want:       []string{"A", "-", "-", "B"},
		},
		"adjacent before first child": {
			separators: []int{0, 0},
			children:   []string{"A", "B"},
			want:       []string{"-", "-", "A", "B"},
		},
		"adjacent then running count": {
			separators: []int{1, 0, 1},
			children:   []string{"A", "B", "C"},
			want:       []string{"A", "-", "-", "B", "-", "C"},
		},
		"position past the end": {
			separators: []int{5},
			children:   []string{"A", "B"},
			want:       []string{"A", "B"},
		},
		"no children": {
			separators: []int{0},
			want:       []string{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := newTestGroup(tc.separators, tc.children...)
			assert.Equal(t, tc.want, titles(g.Materialize()))
		})
	}
}

func TestGroup_ChildrenHaveNoIcon(t *testing.T) {
	t.Parallel()

	g := newTestGroup([]int{1}, "A", "B")

	path, ok := g.Icon()
	assert.True(t, ok)
	assert.Equal(t, "/icons/menu.ico", path)

	for _, cmd := range g.Materialize() {
		_, ok := cmd.Icon()
		assert.False(t, ok, cmd.Title())
	}
}

func TestGroup_IsEnabled(t *testing.T) {
	t.Parallel()

	g := command.NewGroup(&command.GroupConfig{
		Name: "G",
		Children: []*rule.Rule{
			rule.MustNew("Decode", "{}", rule.WithPattern(`\.rton$`)),
			rule.MustNew("Encode", "{}", rule.WithPattern(`\.json$`)),
		},
	}, testFrame(), &execs.Recorder{}, nil)

	assert.True(t, g.IsEnabled([]string{"/x/a.rton"}))
	assert.True(t, g.IsEnabled([]string{"/x/a.json", "/x/b.json"}))
	assert.False(t, g.IsEnabled([]string{"/x/a.rton", "/x/b.json"}))
	assert.False(t, g.IsEnabled([]string{"/x/a.txt"}))
	assert.True(t, g.IsEnabled(nil))

	empty := newTestGroup(nil)
	assert.False(t, empty.IsEnabled(nil))
	assert.False(t, empty.IsEnabled([]string{"/x/a.rton"}))
}

func TestGroup_Flags(t *testing.T) {
	t.Parallel()

	g := newTestGroup(nil, "A")
	assert.True(t, g.Flags().Has(command.FlagHasSubCommands))
	assert.False(t, g.Flags().Has(command.FlagIsSeparator))
	assert.Equal(t, "G", g.Title())
}

func TestGroup_EnumerateIndependent(t *testing.T) {
	t.Parallel()

	g := newTestGroup([]int{1}, "A", "B", "C")

	first := g.Enumerate()
	second := g.Enumerate()

	cmds, n := first.Next(3)
	require.Equal(t, 3, n)
	assert.Equal(t, []string{"A", "-", "B"}, titles(cmds))

	cmds, n = second.Next(1)
	require.Equal(t, 1, n)
	assert.Equal(t, []string{"A"}, titles(cmds))

	cmds, n = first.Next(3)
	require.Equal(t, 1, n)
	assert.Equal(t, []string{"C"}, titles(cmds))
}

func TestGroup_ChildInvoke(t *testing.T) {
	t.Parallel()

	rec := &execs.Recorder{}
	g := command.NewGroup(&command.GroupConfig{
		Name: "G",
		Children: []*rule.Rule{
			rule.MustNew("Decode", "{}", rule.WithMethod("popcap.rton.decode")),
		},
	}, testFrame(), rec, nil)

	cmds, n := g.Enumerate().Next(1)
	require.Equal(t, 1, n)

	inv, ok := cmds[0].(command.Invoker)
	require.True(t, ok)
	require.NoError(t, inv.Invoke(t.Context(), []string{"/x/a.rton"}))

	assert.Equal(t, []string{
		`/C ""L.exe" "/x/a.rton" "-method" "popcap.rton.decode" "-argument" "{}""`,
	}, rec.CommandLines())
}
