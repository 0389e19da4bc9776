package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/mcp"
)

type MCPArgs struct {
	*RootArgs

	Address     string
	AllowInvoke bool
}

func NewMCPArgs(rootArgs *RootArgs) *MCPArgs {
	return &MCPArgs{RootArgs: rootArgs}
}

func (ma *MCPArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ma.Address, "address", "", "Serve streamable HTTP at this address instead of stdio")
	cmd.Flags().BoolVar(&ma.AllowInvoke, "allow-invoke", false, "Allow clients to start the launcher")
}

func NewMCPCmd(ma *MCPArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the menu to MCP clients",
		Long: `Serve the menu as MCP tools. The configuration is reloaded for every tool
call. Clients can only start the launcher when --allow-invoke is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveMCP(cmd.Context(), ma)
		},
	}
	ma.AddFlags(cmd)

	return cmd
}

func serveMCP(ctx context.Context, ma *MCPArgs) error {
	load := func(ctx context.Context) (*command.Menu, error) {
		cfg, err := loadConfig(ctx, ma.RootArgs)
		if err != nil {
			return nil, err
		}

		return newMenu(cfg, execs.NewProcessLauncher(cfg.Menu.Launcher, os.Environ())), nil
	}

	server := mcp.NewServer(load,
		mcp.WithAddress(ma.Address),
		mcp.WithInvoke(ma.AllowInvoke),
	)

	err := server.Serve(ctx)
	if err != nil {
		return fmt.Errorf("MCP server: %w", err)
	}

	return nil
}
