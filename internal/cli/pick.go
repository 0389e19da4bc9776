package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/selection"
	"github.com/senenv/shellmenu/pkg/ui/picker"
)

type PickArgs struct {
	*RootArgs

	DryRun bool
}

func NewPickArgs(rootArgs *RootArgs) *PickArgs {
	return &PickArgs{RootArgs: rootArgs}
}

func (pa *PickArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&pa.DryRun, "dry-run", false, "Print the launcher command line instead of running it")
}

func NewPickCmd(pa *PickArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick [paths...]",
		Short: "Choose a menu command interactively",
		Long: `Open the menu in the terminal and run the chosen command on the selected
paths. Use "-" to read paths from stdin; keys are then read from the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pick(cmd, pa, args)
		},
	}
	pa.AddFlags(cmd)

	return cmd
}

func pick(cmd *cobra.Command, pa *PickArgs, args []string) error {
	ctx := cmd.Context()

	paths, err := readSelection(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, pa.RootArgs)
	if err != nil {
		return err
	}

	launcher := execs.Launcher(execs.NewProcessLauncher(cfg.Menu.Launcher, os.Environ()))
	if pa.DryRun {
		launcher = &execs.Recorder{}
	}

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(cmd.ErrOrStderr()),
	}
	if len(args) == 1 && args[0] == selection.Stdin {
		opts = append(opts, tea.WithInputTTY())
	} else {
		opts = append(opts, tea.WithInput(cmd.InOrStdin()))
	}

	m := picker.NewModel(picker.Config{
		Menu:     newMenu(cfg, launcher),
		KeyBinds: cfg.KeyBinds,
		Paths:    paths,
	})

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	action := final.(picker.Model).Selected() //nolint:forcetypeassert // Always a picker.Model.
	if action == nil {
		return nil
	}

	if pa.DryRun {
		return printCommandLine(cmd, cfg.Menu.Launcher, action.CommandLine(paths))
	}

	err = action.Invoke(ctx, paths)
	if err != nil {
		return fmt.Errorf("%q: %w", action.Title(), err)
	}

	return nil
}
