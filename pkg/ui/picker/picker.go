// Package picker provides an interactive menu for choosing an action.
//
// The picker starts at the top-level commands. Selecting a group opens its
// sub-commands; selecting an enabled action ends the program, and the action
// is available from [Model.Selected]. Disabled commands are shown but cannot
// be selected.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/keys"
)

const (
	separatorLabel = "────────"
	crumbSeparator = " › "
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	disabledStyle = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// Config configures a [Model].
type Config struct {
	Menu     *command.Menu
	KeyBinds *KeyBinds
	Paths    []string
	// Batch is the number of sub-commands fetched per enumeration step.
	Batch int
}

type level struct {
	title    string
	commands []command.Command
	cursor   int
}

// Model is a [tea.Model] that walks the menu.
type Model struct {
	selected *command.Action
	help     *keys.KeyBindRenderer
	binds    map[string]key.Binding
	status   string
	paths    []string
	stack    []level
	batch    int
	width    int
	showHelp bool
}

// NewModel creates a picker positioned at the top-level commands.
func NewModel(c Config) Model {
	kb := c.KeyBinds
	if kb == nil {
		kb = NewKeyBinds()
	}

	batch := c.Batch
	if batch <= 0 {
		batch = command.DefaultBatch
	}

	kbr := &keys.KeyBindRenderer{}
	kbr.AddColumn(*kb.Up, *kb.Down)
	kbr.AddColumn(*kb.Select, *kb.Back)
	kbr.AddColumn(*kb.Help, *kb.Quit)

	m := Model{
		help:  kbr,
		paths: c.Paths,
		batch: batch,
		width: 80,
		binds: map[string]key.Binding{
			"up":     kb.Up.Binding(),
			"down":   kb.Down.Binding(),
			"select": kb.Select.Binding(),
			"back":   kb.Back.Binding(),
			"help":   kb.Help.Binding(),
			"quit":   kb.Quit.Binding(),
		},
	}
	m.push("", c.Menu.Commands())

	return m
}

// Selected returns the chosen action, or nil if the picker was quit.
func (m Model) Selected() *command.Action {
	return m.selected
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.binds["quit"]):
		return m, tea.Quit

	case key.Matches(msg, m.binds["up"]):
		m.move(-1)

	case key.Matches(msg, m.binds["down"]):
		m.move(1)

	case key.Matches(msg, m.binds["back"]):
		if len(m.stack) == 1 {
			return m, tea.Quit
		}

		m.stack = m.stack[:len(m.stack)-1]

	case key.Matches(msg, m.binds["help"]):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.binds["select"]):
		return m.selectCurrent()
	}

	return m, nil
}

func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	cur := m.current()
	if cur == nil || cur.Flags().Has(command.FlagIsSeparator) {
		return m, nil
	}

	if !cur.IsEnabled(m.paths) {
		m.status = fmt.Sprintf("%q does not apply to the selection", cur.Title())

		return m, nil
	}

	if group, ok := cur.(command.Enumerable); ok {
		var children []command.Command
		for child := range group.Enumerate().All(m.batch) {
			children = append(children, child)
		}

		m.push(cur.Title(), children)

		return m, nil
	}

	action, ok := cur.(*command.Action)
	if !ok {
		return m, nil
	}

	m.selected = action

	return m, tea.Quit
}

// push opens a level with the cursor on its first selectable command.
func (m *Model) push(title string, commands []command.Command) {
	lvl := level{title: title, commands: commands}
	for i, cmd := range commands {
		if !cmd.Flags().Has(command.FlagIsSeparator) {
			lvl.cursor = i

			break
		}
	}

	m.stack = append(m.stack, lvl)
}

// move steps the cursor by delta, skipping separators. The cursor stays put
// when no command lies in that direction.
func (m *Model) move(delta int) {
	lvl := &m.stack[len(m.stack)-1]

	for i := lvl.cursor + delta; i >= 0 && i < len(lvl.commands); i += delta {
		if !lvl.commands[i].Flags().Has(command.FlagIsSeparator) {
			lvl.cursor = i

			return
		}
	}
}

func (m Model) current() command.Command {
	lvl := m.stack[len(m.stack)-1]
	if lvl.cursor >= len(lvl.commands) {
		return nil
	}

	return lvl.commands[lvl.cursor]
}

func (m Model) View() string {
	var b strings.Builder

	crumbs := []string{"shellmenu"}
	for _, lvl := range m.stack[1:] {
		crumbs = append(crumbs, lvl.title)
	}

	b.WriteString(titleStyle.Render(strings.Join(crumbs, crumbSeparator)))
	fmt.Fprintf(&b, " (%d selected)\n\n", len(m.paths))

	lvl := m.stack[len(m.stack)-1]
	if len(lvl.commands) == 0 {
		b.WriteString(disabledStyle.Render("  (no commands)"))
		b.WriteByte('\n')
	}

	for i, cmd := range lvl.commands {
		b.WriteString(m.row(cmd, i == lvl.cursor))
		b.WriteByte('\n')
	}

	if m.status != "" {
		b.WriteByte('\n')
		b.WriteString(statusStyle.Render(m.status))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')

	if m.showHelp {
		b.WriteString(helpStyle.Render(m.help.Render(m.width)))
	} else {
		b.WriteString(helpStyle.Render(m.binds["help"].Help().Key + " help"))
	}

	b.WriteByte('\n')

	return b.String()
}

func (m Model) row(cmd command.Command, selected bool) string {
	if cmd.Flags().Has(command.FlagIsSeparator) {
		return "  " + disabledStyle.Render(separatorLabel)
	}

	label := cmd.Title()
	if cmd.Flags().Has(command.FlagHasSubCommands) {
		label += crumbSeparator
	}

	switch {
	case !cmd.IsEnabled(m.paths):
		label = disabledStyle.Render(label + " (disabled)")
	case selected:
		label = cursorStyle.Render(label)
	}

	if selected {
		return cursorStyle.Render("> ") + label
	}

	return "  " + label
}
