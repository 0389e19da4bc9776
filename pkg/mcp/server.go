package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"

	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/version"
)

const tracerName = "github.com/senenv/shellmenu/pkg/mcp"

// MenuLoader returns the current menu. It is called once per tool call, so
// configuration changes apply to the next call.
type MenuLoader func(ctx context.Context) (*command.Menu, error)

// Server serves the menu over MCP.
type Server struct {
	server      *mcp.Server
	load        MenuLoader
	address     string
	allowInvoke bool
}

// ServerOpt configures a [Server].
type ServerOpt func(*Server)

// WithAddress serves streamable HTTP on address instead of stdio.
func WithAddress(address string) ServerOpt {
	return func(s *Server) {
		s.address = address
	}
}

// WithInvoke registers the invoke_command tool.
func WithInvoke(allow bool) ServerOpt {
	return func(s *Server) {
		s.allowInvoke = allow
	}
}

// NewServer creates a new MCP server for the menus returned by load.
func NewServer(load MenuLoader, opts ...ServerOpt) *Server {
	s := &Server{load: load}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}, &mcp.ServerOptions{
		Instructions: instructions,
	})

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	tracer := otel.Tracer(tracerName)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_commands",
		Description: "List the menu commands and whether each applies to the selected paths.",
	}, WithTracing(tracer, s.handleListCommands))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_command_line",
		Description: "Get the launcher command line for an enabled action. You MUST use a title from list_commands EXACTLY.",
	}, WithTracing(tracer, s.handleGetCommandLine))

	if s.allowInvoke {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "invoke_command",
			Description: "Start the launcher for an enabled action on the selected paths. Does not wait for it to finish.",
		}, WithTracing(tracer, s.handleInvokeCommand))
	}
}

func (s *Server) handleListCommands(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	params SelectionParams,
) (*mcp.CallToolResult, ListCommandsResult, error) {
	menu, err := s.load(ctx)
	if err != nil {
		return nil, ListCommandsResult{}, fmt.Errorf("load menu: %w", err)
	}

	result := ListCommandsResult{Commands: describe(menu, params.Paths)}

	return textResult(fmt.Sprintf("Found %d top-level commands.", len(result.Commands))), result, nil
}

func (s *Server) handleGetCommandLine(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	params CommandParams,
) (*mcp.CallToolResult, CommandLineResult, error) {
	action, err := s.enabledAction(ctx, params)
	if err != nil {
		return nil, CommandLineResult{}, err
	}

	result := CommandLineResult{
		Title:       params.Title,
		CommandLine: action.CommandLine(params.Paths),
	}

	return textResult(result.CommandLine), result, nil
}

func (s *Server) handleInvokeCommand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	params CommandParams,
) (*mcp.CallToolResult, InvokeResult, error) {
	action, err := s.enabledAction(ctx, params)
	if err != nil {
		return nil, InvokeResult{}, err
	}

	err = action.Invoke(ctx, params.Paths)
	if err != nil {
		return nil, InvokeResult{}, fmt.Errorf("invoke %q: %w", params.Title, err)
	}

	result := InvokeResult{
		Title:       params.Title,
		CommandLine: action.CommandLine(params.Paths),
		Launched:    true,
	}

	return textResult(fmt.Sprintf("Launched %q.", params.Title)), result, nil
}

func (s *Server) enabledAction(ctx context.Context, params CommandParams) (*command.Action, error) {
	menu, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}

	action, err := menu.FindAction(params.Title)
	if err != nil {
		return nil, fmt.Errorf("INVALID INPUT ERROR: %w. Use an EXACT title from the list_commands tool", err)
	}

	if !action.IsEnabled(params.Paths) {
		return nil, fmt.Errorf("%q: %w for the selected paths", params.Title, command.ErrDisabled)
	}

	return action, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// Server returns the underlying MCP server.
func (s *Server) Server() *mcp.Server {
	return s.server
}

// Serve runs the server until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	if s.address == "" {
		slog.InfoContext(ctx, "starting MCP server on stdio")

		err := s.server.Run(ctx, &mcp.StdioTransport{})
		if err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}

		return nil
	}

	slog.InfoContext(ctx, "starting MCP server", slog.String("address", s.address))

	err := s.serveHTTP(ctx)
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.ErrorContext(ctx, "shutdown MCP server", slog.Any("err", err))
		}
	}()

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
