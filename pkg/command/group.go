package command

import (
	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/icon"
	"github.com/senenv/shellmenu/pkg/rule"
)

// Group is a [Command] whose children are actions, listed through an
// [Enumerator] rather than invoked.
type Group struct {
	launcher   execs.Launcher
	frame      *execs.LauncherConfig
	icons      icon.Resolver
	name       string
	children   []*rule.Rule
	separators []int
}

// NewGroup creates a [Group] from cfg. Child actions share frame and
// launcher; the group's icon comes from icons.
func NewGroup(cfg *GroupConfig, frame *execs.LauncherConfig, launcher execs.Launcher, icons icon.Resolver) *Group {
	return &Group{
		launcher:   launcher,
		frame:      frame,
		icons:      icons,
		name:       cfg.Name,
		children:   cfg.Children,
		separators: cfg.Separators,
	}
}

func (g *Group) Title() string {
	return g.name
}

func (g *Group) Icon() (string, bool) {
	return resolveIcon(g.icons)
}

// IsEnabled reports whether at least one child matches every path.
// A group without children is never enabled.
func (g *Group) IsEnabled(paths []string) bool {
	for _, child := range g.children {
		if child.MatchAll(paths) {
			return true
		}
	}

	return false
}

func (g *Group) Flags() Flags {
	return FlagHasSubCommands
}

// Enumerate returns a new [Enumerator] over a freshly built command list.
func (g *Group) Enumerate() *Enumerator {
	return newEnumerator(g.Materialize())
}

// Materialize builds the group's command list: one [*Action] per child, in
// order, without icons, with a [Separator] inserted whenever the number of
// children since the previous separator equals the next separator position.
// Every due position fires before the next child, not just the first, so a
// zero position right after another separator makes the two adjacent:
// [1, 0] over A, B, C gives A, -, -, B, C.
// Positions that are still pending after the last child are ignored.
func (g *Group) Materialize() []Command {
	commands := make([]Command, 0, len(g.children)+len(g.separators))

	var next, count int
	for _, child := range g.children {
		for next < len(g.separators) && count == g.separators[next] {
			commands = append(commands, Separator{})
			count = 0
			next++
		}

		commands = append(commands, NewAction(child, g.frame, g.launcher))
		count++
	}

	return commands
}
