package command

import (
	"errors"
	"fmt"

	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/rule"
)

var (
	// ErrInvalidEntry is returned for an entry that does not set exactly one
	// of action or group.
	ErrInvalidEntry = errors.New("entry must set exactly one of action or group")

	// ErrNegativeSeparator is returned for a separator position below zero.
	ErrNegativeSeparator = errors.New("separator position is negative")

	// ErrEmptyGroupName is returned when a group has no name.
	ErrEmptyGroupName = errors.New("group name is empty")
)

var (
	defaultCommands = []*Entry{
		{
			Group: &GroupConfig{
				Name: "Sen.Environment",
				Children: []*rule.Rule{
					rule.MustNew("Decode RTON", "{}",
						rule.WithKind(rule.KindFile),
						rule.WithPattern(`(?i)\.rton$`),
						rule.WithMethod("popcap.rton.decode"),
					),
					rule.MustNew("Encode RTON", "{}",
						rule.WithKind(rule.KindFile),
						rule.WithPattern(`(?i)\.json$`),
						rule.WithMethod("popcap.rton.encode"),
					),
					rule.MustNew("Unpack RSB", "{}",
						rule.WithKind(rule.KindFile),
						rule.WithPattern(`(?i)\.(rsb|obb)$`),
						rule.WithMethod("popcap.rsb.unpack"),
					),
					rule.MustNew("Pack RSB", "{}",
						rule.WithKind(rule.KindDirectory),
						rule.WithPattern(`(?i)\.bundle$`),
						rule.WithMethod("popcap.rsb.pack"),
					),
				},
				Separators: []int{2},
			},
		},
		{
			Action: rule.MustNew("Run with Sen.Environment", "{}"),
		},
	}

	DefaultConfig = MustNewConfig(defaultCommands)
)

// Config defines the menu: the launcher, the icon and the commands.
type Config struct {
	// Launcher configures the external process started by actions.
	Launcher *execs.LauncherConfig `json:"launcher,omitempty" jsonschema:"title=Launcher"`
	// Icon is the icon path advertised by commands. Defaults to the running executable.
	Icon *string `json:"icon,omitempty" jsonschema:"title=Icon"`
	// Commands lists the top-level menu entries, in display order.
	Commands []*Entry `json:"commands,omitempty" jsonschema:"title=Commands"`
}

// Entry is a top-level menu entry: exactly one of Action or Group.
type Entry struct {
	// Action is a single command.
	Action *rule.Rule `json:"action,omitempty" jsonschema:"title=Action"`
	// Group is a command with sub-commands.
	Group *GroupConfig `json:"group,omitempty" jsonschema:"title=Group"`
}

// GroupConfig defines a [Group].
type GroupConfig struct {
	// Name is the label shown for the group.
	Name string `json:"name" jsonschema:"title=Name,minLength=1"`
	// Children are the group's actions, in display order.
	Children []*rule.Rule `json:"children,omitempty" jsonschema:"title=Children"`
	// Separators are separator positions, each counted in children since the
	// previous separator (or the start of the group).
	Separators []int `json:"separators,omitempty" jsonschema:"title=Separators"`
}

func NewConfig(commands []*Entry) (*Config, error) {
	c := &Config{Commands: commands}
	c.EnsureDefaults()

	err := c.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func MustNewConfig(commands []*Entry) *Config {
	c, err := NewConfig(commands)
	if err != nil {
		panic(err)
	}

	return c
}

// EnsureDefaults fills missing fields with their defaults.
func (c *Config) EnsureDefaults() {
	if c.Launcher == nil {
		c.Launcher = execs.NewLauncherConfig()
	} else {
		c.Launcher.EnsureDefaults()
	}

	if c.Commands == nil {
		c.Commands = defaultCommands
	}
}

// Validate checks every entry and compiles every rule.
func (c *Config) Validate() error {
	if c.Launcher != nil {
		err := c.Launcher.Validate()
		if err != nil {
			return fmt.Errorf("launcher: %w", err)
		}
	}

	for i, entry := range c.Commands {
		err := entry.Validate()
		if err != nil {
			return fmt.Errorf("commands[%d]: %w", i, err)
		}
	}

	return nil
}

func (e *Entry) Validate() error {
	if e == nil || (e.Action == nil) == (e.Group == nil) {
		return ErrInvalidEntry
	}

	if e.Action != nil {
		err := e.Action.Compile()
		if err != nil {
			return fmt.Errorf("action %q: %w", e.Action.Name, err)
		}

		return nil
	}

	err := e.Group.Validate()
	if err != nil {
		return fmt.Errorf("group %q: %w", e.Group.Name, err)
	}

	return nil
}

func (g *GroupConfig) Validate() error {
	if g.Name == "" {
		return ErrEmptyGroupName
	}

	for i, pos := range g.Separators {
		if pos < 0 {
			return fmt.Errorf("separators[%d]: %w: %d", i, ErrNegativeSeparator, pos)
		}
	}

	for i, child := range g.Children {
		if child == nil {
			return fmt.Errorf("children[%d]: %w", i, rule.ErrEmptyName)
		}

		err := child.Compile()
		if err != nil {
			return fmt.Errorf("children[%d]: %w", i, err)
		}
	}

	return nil
}
