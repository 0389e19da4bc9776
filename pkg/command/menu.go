package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/icon"
)

var (
	// ErrNotFound is returned by [Menu.Find] when no command has the given title.
	ErrNotFound = errors.New("command not found")
	// ErrNotInvokable is returned by [Menu.FindAction] when the title names a
	// group.
	ErrNotInvokable = errors.New("command cannot be invoked")
)

// Menu holds the top-level commands built from a [Config].
type Menu struct {
	commands []Command
}

// NewMenu builds the commands of cfg. Top-level actions and groups advertise
// the icon from icons; children of groups do not.
func NewMenu(cfg *Config, launcher execs.Launcher, icons icon.Resolver) *Menu {
	frame := cfg.Launcher
	if frame == nil {
		frame = execs.NewLauncherConfig()
	}

	commands := make([]Command, 0, len(cfg.Commands))
	for _, entry := range cfg.Commands {
		switch {
		case entry.Action != nil:
			commands = append(commands, NewAction(entry.Action, frame, launcher, WithIcon(icons)))
		case entry.Group != nil:
			commands = append(commands, NewGroup(entry.Group, frame, launcher, icons))
		}
	}

	return &Menu{commands: commands}
}

// Commands returns the top-level commands in display order.
func (m *Menu) Commands() []Command {
	return m.commands
}

// Find returns the command with the given title. A title of the form
// "Group/Child" selects a child of a group; the full title is tried first so
// that names containing a slash still resolve.
func (m *Menu) Find(title string) (Command, error) {
	for _, cmd := range m.commands {
		if cmd.Title() == title {
			return cmd, nil
		}
	}

	groupName, childName, ok := strings.Cut(title, "/")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	for _, cmd := range m.commands {
		group, ok := cmd.(Enumerable)
		if !ok || cmd.Title() != groupName {
			continue
		}

		for child := range group.Enumerate().All(DefaultBatch) {
			if child.Flags().Has(FlagIsSeparator) {
				continue
			}

			if child.Title() == childName {
				return child, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
}

// FindAction is like [Menu.Find], but only returns actions.
func (m *Menu) FindAction(title string) (*Action, error) {
	cmd, err := m.Find(title)
	if err != nil {
		return nil, err
	}

	action, ok := cmd.(*Action)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotInvokable, title)
	}

	return action, nil
}
