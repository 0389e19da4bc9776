package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/execs"
)

type InvokeArgs struct {
	*RootArgs

	DryRun bool
}

func NewInvokeArgs(rootArgs *RootArgs) *InvokeArgs {
	return &InvokeArgs{RootArgs: rootArgs}
}

func (ia *InvokeArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&ia.DryRun, "dry-run", false, "Print the launcher command line instead of running it")
}

func NewInvokeCmd(ia *InvokeArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoke <title>[/<child>] [paths...]",
		Short: "Run a menu command on a selection",
		Long: `Run a top-level action, or a child of a group named as "Group/Child", on
the selected paths. The launcher is started and not waited for.
Use "-" to read paths from stdin.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: invokeCompletion(ia),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(cmd, ia, args[0], args[1:])
		},
	}
	ia.AddFlags(cmd)

	return cmd
}

func invoke(cmd *cobra.Command, ia *InvokeArgs, title string, args []string) error {
	ctx := cmd.Context()

	paths, err := readSelection(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, ia.RootArgs)
	if err != nil {
		return err
	}

	launcher := execs.Launcher(execs.NewProcessLauncher(cfg.Menu.Launcher, os.Environ()))
	if ia.DryRun {
		launcher = &execs.Recorder{}
	}

	action, err := newMenu(cfg, launcher).FindAction(title)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidArgument, err)
	}

	if ia.DryRun {
		if !action.IsEnabled(paths) {
			return fmt.Errorf("%q: %w", title, command.ErrDisabled)
		}

		return printCommandLine(cmd, cfg.Menu.Launcher, action.CommandLine(paths))
	}

	err = action.Invoke(ctx, paths)
	if err != nil {
		return fmt.Errorf("%q: %w", title, err)
	}

	return nil
}

// printCommandLine prints the command line, then the argv it splits into on
// platforms without cmd.exe.
func printCommandLine(cmd *cobra.Command, lc *execs.LauncherConfig, commandLine string) error {
	w := cmd.OutOrStdout()

	mustN(fmt.Fprintln(w, commandLine))

	argv, err := execs.SplitCommandLine(lc.InterpreterFlag, commandLine)
	if err != nil {
		return fmt.Errorf("split command line: %w", err)
	}

	for i, arg := range argv {
		mustN(fmt.Fprintf(w, "  [%d] %s\n", i, strconv.Quote(arg)))
	}

	return nil
}

func invokeCompletion(ia *InvokeArgs) func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}

		cfg, err := loadConfig(cmd.Context(), ia.RootArgs)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return commandTitles(newMenu(cfg, &execs.Recorder{})), cobra.ShellCompDirectiveNoFileComp
	}
}

// commandTitles lists the titles accepted by [command.Menu.Find] for
// invokable commands.
func commandTitles(menu *command.Menu) []cobra.Completion {
	var titles []cobra.Completion

	for _, cmd := range menu.Commands() {
		group, ok := cmd.(command.Enumerable)
		if !ok {
			titles = append(titles, cmd.Title())

			continue
		}

		for child := range group.Enumerate().All(command.DefaultBatch) {
			if child.Flags().Has(command.FlagIsSeparator) {
				continue
			}

			titles = append(titles, strings.Join([]string{cmd.Title(), child.Title()}, "/"))
		}
	}

	return titles
}
