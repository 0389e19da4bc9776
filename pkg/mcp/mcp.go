// Package mcp exposes a shellmenu menu to MCP clients.
//
// Tools:
//   - list_commands: the menu tree, with enablement for a selection.
//   - get_command_line: the launcher command line an action would run.
//   - invoke_command: runs an action. Only registered with [WithInvoke].
package mcp

import (
	"github.com/senenv/shellmenu/pkg/command"
)

const (
	name         = "shellmenu"
	instructions = `MCP Server 'shellmenu' exposes the shellmenu context menu: rule-based commands that run an external launcher on selected files and directories.

REQUIRED workflow:
1. Use 'list_commands' with the selected paths to see which commands apply. Disabled commands cannot be run for that selection.
2. Use 'get_command_line' with the EXACT title from 'list_commands' output. Children of groups are addressed as "Group/Child".
3. Use 'invoke_command' only when it is available and the user asked to run the command.
`

	kindAction    = "action"
	kindGroup     = "group"
	kindSeparator = "separator"
)

// SelectionParams is the selection shared by all tools.
type SelectionParams struct {
	Paths []string `json:"paths,omitempty" jsonschema:"absolute paths of the selected files and directories"`
}

// CommandParams names a command and the selection it applies to.
type CommandParams struct {
	Title string   `json:"title"           jsonschema:"the command title; children of groups are written as Group/Child"`
	Paths []string `json:"paths,omitempty" jsonschema:"absolute paths of the selected files and directories"`
}

// CommandInfo describes a top-level menu entry.
type CommandInfo struct {
	Title    string      `json:"title"`
	Kind     string      `json:"kind"`
	Children []ChildInfo `json:"children,omitempty"`
	Enabled  bool        `json:"enabled"`
}

// ChildInfo describes an entry of a group.
type ChildInfo struct {
	Title   string `json:"title,omitempty"`
	Kind    string `json:"kind"`
	Enabled bool   `json:"enabled"`
}

// ListCommandsResult contains the menu for a selection.
type ListCommandsResult struct {
	Commands []CommandInfo `json:"commands"`
}

// CommandLineResult contains the command line for an action.
type CommandLineResult struct {
	Title       string `json:"title"`
	CommandLine string `json:"commandLine"`
}

// InvokeResult reports a launched action.
type InvokeResult struct {
	Title       string `json:"title"`
	CommandLine string `json:"commandLine"`
	Launched    bool   `json:"launched"`
}

func describe(menu *command.Menu, paths []string) []CommandInfo {
	infos := make([]CommandInfo, 0, len(menu.Commands()))

	for _, cmd := range menu.Commands() {
		info := CommandInfo{
			Title:   cmd.Title(),
			Kind:    kindAction,
			Enabled: cmd.IsEnabled(paths),
		}

		if group, ok := cmd.(command.Enumerable); ok {
			info.Kind = kindGroup

			for child := range group.Enumerate().All(command.DefaultBatch) {
				if child.Flags().Has(command.FlagIsSeparator) {
					info.Children = append(info.Children, ChildInfo{Kind: kindSeparator})

					continue
				}

				info.Children = append(info.Children, ChildInfo{
					Title:   child.Title(),
					Kind:    kindAction,
					Enabled: child.IsEnabled(paths),
				})
			}
		}

		infos = append(infos, info)
	}

	return infos
}
