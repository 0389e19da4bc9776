package command

import (
	"context"
	"log/slog"

	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/icon"
	"github.com/senenv/shellmenu/pkg/log"
	"github.com/senenv/shellmenu/pkg/rule"
)

// Action runs the launcher with the arguments of a single [rule.Rule].
type Action struct {
	rule     *rule.Rule
	launcher execs.Launcher
	frame    *execs.LauncherConfig
	icons    icon.Resolver
	hasIcon  bool
}

// ActionOpt configures an [Action].
type ActionOpt func(*Action)

// WithIcon makes the action advertise the icon from r.
func WithIcon(r icon.Resolver) ActionOpt {
	return func(a *Action) {
		a.icons = r
		a.hasIcon = r != nil
	}
}

// NewAction creates an [Action] for r. The frame supplies the interpreter
// flag and executable used by [execs.LauncherConfig.CommandLine].
func NewAction(r *rule.Rule, frame *execs.LauncherConfig, launcher execs.Launcher, opts ...ActionOpt) *Action {
	a := &Action{
		rule:     r,
		frame:    frame,
		launcher: launcher,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *Action) Title() string {
	return a.rule.Name
}

func (a *Action) Icon() (string, bool) {
	if !a.hasIcon {
		return "", false
	}

	return resolveIcon(a.icons)
}

// IsEnabled reports whether every path matches the rule. An empty selection
// is enabled.
func (a *Action) IsEnabled(paths []string) bool {
	return a.rule.MatchAll(paths)
}

func (a *Action) Flags() Flags {
	return FlagDefault
}

// Rule returns the rule the action was built from.
func (a *Action) Rule() *rule.Rule {
	return a.rule
}

// CommandLine returns the command line passed to the launcher for paths.
func (a *Action) CommandLine(paths []string) string {
	fragments := make([]string, 0, len(paths))
	for _, path := range paths {
		fragments = append(fragments, a.rule.Build(path))
	}

	return a.frame.CommandLine(fragments...)
}

// Invoke starts the launcher for paths and returns without waiting for it.
// Launcher failures are logged, not returned. It returns [ErrDisabled] if the action is not enabled for
// paths.
func (a *Action) Invoke(ctx context.Context, paths []string) error {
	if !a.IsEnabled(paths) {
		return ErrDisabled
	}

	commandLine := a.CommandLine(paths)

	err := a.launcher.Launch(ctx, commandLine)
	if err != nil {
		log.WithContext(ctx).WarnContext(ctx, "launch failed",
			slog.String("action", a.Title()),
			slog.Any("err", err),
		)
	}

	return nil
}

func resolveIcon(r icon.Resolver) (string, bool) {
	if r == nil {
		return "", false
	}

	path, err := r.Path()
	if err != nil {
		slog.Debug("resolve icon", slog.Any("err", err))

		return "", false
	}

	return path, true
}
