package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/senenv/shellmenu/api/v1beta1/configs"
	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/config"
	"github.com/senenv/shellmenu/pkg/execs"
)

const separatorLabel = "────────"

var (
	enabledStyle   = lipgloss.NewStyle().Bold(true)
	disabledStyle  = lipgloss.NewStyle().Faint(true)
	separatorStyle = lipgloss.NewStyle().Faint(true)
	branchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type ListArgs struct {
	*RootArgs

	Batch int
	Watch bool
}

func NewListArgs(rootArgs *RootArgs) *ListArgs {
	return &ListArgs{RootArgs: rootArgs}
}

func (la *ListArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&la.Batch, "batch", 4, "Number of sub-commands fetched per enumeration step")
	cmd.Flags().BoolVarP(&la.Watch, "watch", "w", false, "Re-render the menu when the configuration changes")
}

func NewListCmd(la *ListArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "Show the menu for a selection",
		Long: `Show the menu tree for the selected paths. Commands that do not apply
to the selection are shown as disabled. Use "-" to read paths from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return list(cmd, la, args)
		},
	}
	la.AddFlags(cmd)

	return cmd
}

func list(cmd *cobra.Command, la *ListArgs, args []string) error {
	if la.Batch <= 0 {
		return fmt.Errorf("%w: --batch must be positive, got %d", errInvalidArgument, la.Batch)
	}

	ctx := cmd.Context()

	paths, err := readSelection(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, la.RootArgs)
	if err != nil {
		return err
	}

	mustN(fmt.Fprint(cmd.OutOrStdout(), renderMenu(newMenu(cfg, &execs.Recorder{}), paths, la.Batch)))

	if !la.Watch {
		return nil
	}

	return watchMenu(ctx, cmd.OutOrStdout(), la, paths)
}

func watchMenu(ctx context.Context, w io.Writer, la *ListArgs, paths []string) error {
	path := la.GetConfigPath()

	watcher, err := config.NewWatcher(path,
		func(ctx context.Context, path string) (*configs.Config, error) {
			return config.LoadFile(ctx, path, configs.New, configs.DefaultValidator)
		},
	)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	errc := make(chan error, 1)

	go func() {
		errc <- watcher.Run(ctx)
	}()

	slog.InfoContext(ctx, "watching configuration", slog.String("path", path))

	for update := range watcher.Updates() {
		if update.Err != nil {
			slog.ErrorContext(ctx, "reload config", slog.Any("err", update.Err))

			continue
		}

		mustN(fmt.Fprintln(w))
		mustN(fmt.Fprint(w, renderMenu(newMenu(update.Config, &execs.Recorder{}), paths, la.Batch)))
	}

	return <-errc
}

// renderMenu renders the menu as a tree. Groups are expanded through their
// enumerators, batch commands at a time.
func renderMenu(menu *command.Menu, paths []string, batch int) string {
	root := tree.New().EnumeratorStyle(branchStyle)

	for _, cmd := range menu.Commands() {
		group, ok := cmd.(command.Enumerable)
		if !ok {
			root.Child(label(cmd, paths))

			continue
		}

		node := tree.New().Root(label(cmd, paths)).EnumeratorStyle(branchStyle)
		for child := range group.Enumerate().All(batch) {
			node.Child(label(child, paths))
		}

		root.Child(node)
	}

	var b strings.Builder
	b.WriteString(root.String())
	b.WriteByte('\n')

	return b.String()
}

func label(cmd command.Command, paths []string) string {
	if cmd.Flags().Has(command.FlagIsSeparator) {
		return separatorStyle.Render(separatorLabel)
	}

	if cmd.IsEnabled(paths) {
		return enabledStyle.Render(cmd.Title())
	}

	return disabledStyle.Render(cmd.Title() + " (disabled)")
}
