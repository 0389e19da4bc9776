package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/senenv/shellmenu/api/v1beta1/configs"
	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/config"
	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/icon"
	"github.com/senenv/shellmenu/pkg/log"
	"github.com/senenv/shellmenu/pkg/selection"
	"github.com/senenv/shellmenu/pkg/yaml"
)

const (
	cmdName = "shellmenu"
	cmdDesc = `Rule-based context menu for launching tools on selected files.`

	cmdExamples = `  # Show the menu for two files:
  shellmenu list ./data.rton ./level.json

  # Re-render the menu whenever the config changes:
  shellmenu list ./data.rton --watch

  # Run a group child on the selection:
  shellmenu invoke "Sen.Environment/Decode RTON" ./data.rton

  # Read the selection from stdin and print the command line:
  find . -name '*.rton' | shellmenu invoke "Sen.Environment/Decode RTON" - --dry-run

  # Choose a command interactively:
  shellmenu pick ./data.rton

  # Serve the menu to MCP clients on stdio:
  shellmenu mcp

  # Write the default configuration file and exit:
  shellmenu --write-config`
)

var (
	// ErrStdinTerminal is returned when the selection should be read from
	// stdin but stdin is a terminal.
	ErrStdinTerminal = errors.New("selection from stdin requires piped input")

	errInvalidArgument = errors.New("invalid argument")
)

type RootArgs struct {
	shutdownTracing func(context.Context) error

	LogLevel     string
	LogFormat    string
	ConfigPath   string
	OTLPEndpoint string
	WriteConfig  bool
	ShowConfig   bool
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	pf.StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	pf.StringVar(&ra.ConfigPath, "config", "", "Path to the shellmenu configuration file")
	pf.StringVar(&ra.OTLPEndpoint, "otlp-endpoint", "", "OTLP gRPC endpoint to export traces to")

	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	must(cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml"))
}

// GetConfigPath returns the --config value, or the default path.
func (ra *RootArgs) GetConfigPath() string {
	if ra.ConfigPath != "" {
		return ra.ConfigPath
	}

	return configs.GetPath()
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:                cmdName,
		Short:              cmdDesc,
		Example:            cmdExamples,
		Args:               cobra.NoArgs,
		PersistentPreRunE:  setup(args),
		PersistentPostRunE: teardown(args),
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case args.WriteConfig:
				return configs.WriteDefault(args.GetConfigPath(), false)
			case args.ShowConfig:
				return showConfig(cmd, args)
			}

			return cmd.Help()
		},
	}

	args.AddFlags(cmd)
	cmd.AddCommand(
		NewListCmd(NewListArgs(args)),
		NewInvokeCmd(NewInvokeArgs(args)),
		NewPickCmd(NewPickArgs(args)),
		NewMCPCmd(NewMCPArgs(args)),
	)

	bindEnvVars(cmd)

	return cmd
}

func setup(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		ra.shutdownTracing, err = setupTracing(cmd.Context(), ra.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}

		return nil
	}
}

func teardown(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if ra.shutdownTracing == nil {
			return nil
		}

		err := ra.shutdownTracing(context.WithoutCancel(cmd.Context()))
		if err != nil {
			return fmt.Errorf("shutdown tracing: %w", err)
		}

		return nil
	}
}

// loadConfig writes the default configuration if none exists, then loads the
// file. A file that cannot be read falls back to the defaults; a file that
// is invalid is an error.
func loadConfig(ctx context.Context, ra *RootArgs) (*configs.Config, error) {
	path := ra.GetConfigPath()

	err := configs.WriteDefault(path, false)
	if err != nil {
		slog.WarnContext(ctx, "write default config", slog.Any("err", err))
	}

	cfg, err := config.LoadFile(ctx, path, configs.New, configs.DefaultValidator, config.WithColor(isTerminal(os.Stderr)))
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		slog.WarnContext(ctx, "could not read config, using defaults", slog.Any("err", err))

		return configs.New(), nil
	}

	return nil, fmt.Errorf("invalid config %q: %w", path, err)
}

func showConfig(cmd *cobra.Command, ra *RootArgs) error {
	cfg, err := loadConfig(cmd.Context(), ra)
	if err != nil {
		return err
	}

	slog.InfoContext(cmd.Context(), "active configuration", slog.String("path", ra.GetConfigPath()))

	b, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	w := cmd.OutOrStdout()

	b, err = yaml.NewHighlighter(termenv.NewOutput(w).EnvColorProfile(), yaml.DefaultStyle).Highlight(b)
	if err != nil {
		return fmt.Errorf("highlight config yaml: %w", err)
	}

	mustN(w.Write(b))

	return nil
}

// newMenu builds the menu for cfg, launching through launcher.
func newMenu(cfg *configs.Config, launcher execs.Launcher) *command.Menu {
	var icons icon.Resolver = icon.Executable()
	if cfg.Menu.Icon != nil {
		icons = icon.Static(*cfg.Menu.Icon)
	}

	return command.NewMenu(cfg.Menu, launcher, icons)
}

// readSelection resolves the selection arguments. A single "-" reads
// newline-separated paths from stdin, which must not be a terminal.
func readSelection(cmd *cobra.Command, args []string) ([]string, error) {
	in := cmd.InOrStdin()

	if len(args) == 1 && args[0] == selection.Stdin {
		if f, ok := in.(*os.File); ok && isTerminal(f) {
			return nil, ErrStdinTerminal
		}
	}

	paths, err := selection.FromArgs(args, in).Paths()
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}

	return paths, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int.
}
