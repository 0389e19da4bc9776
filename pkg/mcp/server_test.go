package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/execs"
	"github.com/senenv/shellmenu/pkg/icon"
	"github.com/senenv/shellmenu/pkg/mcp"
	"github.com/senenv/shellmenu/pkg/rule"
)

type fixture struct {
	recorder *execs.Recorder
	rton     string
	dir      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()

	f := &fixture{
		recorder: &execs.Recorder{},
		rton:     filepath.Join(dir, "data.rton"),
		dir:      filepath.Join(dir, "level.bundle"),
	}
	require.NoError(t, os.WriteFile(f.rton, []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(f.dir, 0o700))

	return f
}

func (f *fixture) load(context.Context) (*command.Menu, error) {
	cfg, err := command.NewConfig([]*command.Entry{
		{Group: &command.GroupConfig{
			Name: "Tools",
			Children: []*rule.Rule{
				rule.MustNew("Decode", "{}",
					rule.WithKind(rule.KindFile),
					rule.WithPattern(`\.rton$`),
					rule.WithMethod("popcap.rton.decode"),
				),
				rule.MustNew("Pack", "{}", rule.WithKind(rule.KindDirectory)),
			},
			Separators: []int{1},
		}},
		{Action: rule.MustNew("Run", "{}")},
	})
	if err != nil {
		return nil, err
	}

	cfg.Launcher = &execs.LauncherConfig{
		Interpreter:     "/bin/sh",
		InterpreterFlag: "/C",
		Executable:      "L.exe",
	}

	return command.NewMenu(cfg, f.recorder, icon.Static("/icons/menu.ico")), nil
}

func connect(t *testing.T, s *mcp.Server) *sdk.ClientSession {
	t.Helper()

	ctx := t.Context()
	serverTransport, clientTransport := sdk.NewInMemoryTransports()

	_, err := s.Server().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdk.NewClient(&sdk.Implementation{Name: "test", Version: "v0.0.0"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, session.Close())
	})

	return session
}

func callTool(t *testing.T, session *sdk.ClientSession, name string, args map[string]any) *sdk.CallToolResult {
	t.Helper()

	res, err := session.CallTool(t.Context(), &sdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)

	return res
}

func structured[T any](t *testing.T, res *sdk.CallToolResult) T {
	t.Helper()

	b, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)

	var out T
	require.NoError(t, json.Unmarshal(b, &out))

	return out
}

func text(t *testing.T, res *sdk.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, res.Content)

	tc, ok := res.Content[0].(*sdk.TextContent)
	require.True(t, ok)

	return tc.Text
}

func TestServer_Tools(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts []mcp.ServerOpt
		want []string
	}{
		"default": {
			want: []string{"get_command_line", "list_commands"},
		},
		"with invoke": {
			opts: []mcp.ServerOpt{mcp.WithInvoke(true)},
			want: []string{"get_command_line", "invoke_command", "list_commands"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			session := connect(t, mcp.NewServer(f.load, tc.opts...))

			res, err := session.ListTools(t.Context(), nil)
			require.NoError(t, err)

			names := make([]string, 0, len(res.Tools))
			for _, tool := range res.Tools {
				names = append(names, tool.Name)
			}

			assert.ElementsMatch(t, tc.want, names)
		})
	}
}

func TestServer_ListCommands(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	session := connect(t, mcp.NewServer(f.load))

	res := callTool(t, session, "list_commands", map[string]any{
		"paths": []string{f.rton},
	})
	require.False(t, res.IsError, text(t, res))

	got := structured[mcp.ListCommandsResult](t, res)
	require.Len(t, got.Commands, 2)

	tools := got.Commands[0]
	assert.Equal(t, "Tools", tools.Title)
	assert.Equal(t, "group", tools.Kind)
	assert.True(t, tools.Enabled)
	assert.Equal(t, []mcp.ChildInfo{
		{Title: "Decode", Kind: "action", Enabled: true},
		{Kind: "separator"},
		{Title: "Pack", Kind: "action", Enabled: false},
	}, tools.Children)

	run := got.Commands[1]
	assert.Equal(t, mcp.CommandInfo{Title: "Run", Kind: "action", Enabled: true}, run)
}

func TestServer_GetCommandLine(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	session := connect(t, mcp.NewServer(f.load))

	tcs := map[string]struct {
		title   string
		want    string
		paths   []string
		wantErr string
	}{
		"group child": {
			title: "Tools/Decode",
			paths: []string{f.rton},
			want:  `/C ""L.exe" "` + f.rton + `" "-method" "popcap.rton.decode" "-argument" "{}""`,
		},
		"empty selection": {
			title: "Run",
			want:  `/C ""L.exe""`,
		},
		"disabled": {
			title:   "Tools/Decode",
			paths:   []string{f.dir},
			wantErr: command.ErrDisabled.Error(),
		},
		"group": {
			title:   "Tools",
			wantErr: command.ErrNotInvokable.Error(),
		},
		"unknown": {
			title:   "Missing",
			wantErr: command.ErrNotFound.Error(),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			args := map[string]any{"title": tc.title}
			if tc.paths != nil {
				args["paths"] = tc.paths
			}

			res := callTool(t, session, "get_command_line", args)

			if tc.wantErr != "" {
				assert.True(t, res.IsError)
				assert.Contains(t, text(t, res), tc.wantErr)

				return
			}

			require.False(t, res.IsError, text(t, res))

			got := structured[mcp.CommandLineResult](t, res)
			assert.Equal(t, tc.title, got.Title)
			assert.Equal(t, tc.want, got.CommandLine)
		})
	}
}

func TestServer_InvokeCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	session := connect(t, mcp.NewServer(f.load, mcp.WithInvoke(true)))

	res := callTool(t, session, "invoke_command", map[string]any{
		"title": "Tools/Pack",
		"paths": []string{f.dir},
	})
	require.False(t, res.IsError, text(t, res))

	got := structured[mcp.InvokeResult](t, res)
	assert.True(t, got.Launched)

	want := `/C ""L.exe" "` + f.dir + `" "-argument" "{}""`
	assert.Equal(t, want, got.CommandLine)
	assert.Equal(t, []string{want}, f.recorder.CommandLines())

	res = callTool(t, session, "invoke_command", map[string]any{
		"title": "Tools/Pack",
		"paths": []string{f.rton},
	})
	assert.True(t, res.IsError)
	assert.Len(t, f.recorder.CommandLines(), 1)
}

func TestServer_LoadError(t *testing.T) {
	t.Parallel()

	errLoad := errors.New("bad config")
	s := mcp.NewServer(func(context.Context) (*command.Menu, error) {
		return nil, errLoad
	})
	session := connect(t, s)

	res := callTool(t, session, "list_commands", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "bad config")
}
