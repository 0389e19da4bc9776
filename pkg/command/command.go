package command

import (
	"context"
	"errors"
)

var (
	// ErrNotImplemented is returned for enumerator operations that are not
	// supported.
	ErrNotImplemented = errors.New("not implemented")

	// ErrDisabled is returned when an action is invoked for a selection it is
	// not enabled for.
	ErrDisabled = errors.New("command is disabled for the selection")
)

// Flags describe how the host should treat a [Command].
type Flags uint8

const (
	// FlagDefault marks a command that is invoked directly.
	FlagDefault Flags = 0
	// FlagHasSubCommands marks a command whose children are listed with
	// [Enumerable.Enumerate].
	FlagHasSubCommands Flags = 0x1
	// FlagIsSeparator marks a divider that is neither invoked nor enumerated.
	FlagIsSeparator Flags = 0x8
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Command is an entry displayed by the host.
type Command interface {
	// Title is the label shown for the command.
	Title() string
	// Icon returns the icon path, and false if the command has no icon.
	Icon() (string, bool)
	// IsEnabled reports whether the command applies to the selection.
	IsEnabled(paths []string) bool
	Flags() Flags
}

// Invoker is a [Command] that can be run.
type Invoker interface {
	Command
	Invoke(ctx context.Context, paths []string) error
}

// Enumerable is a [Command] with sub-commands.
type Enumerable interface {
	Command
	Enumerate() *Enumerator
}
