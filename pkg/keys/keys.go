// Package keys defines configurable key bindings and renders them as help.
package keys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/muesli/reflow/ansi"
)

// Ellipsis marks truncated help text.
const Ellipsis = "…"

// ErrDuplicateKey is returned when one key is bound to more than one action.
var ErrDuplicateKey = errors.New("duplicate key binding")

// Key represents a keyboard key with optional alias and visibility settings.
type Key struct {
	// Code is the key code identifier.
	Code string `json:"code" jsonschema:"title=Code"`
	// Alias is an alternative display name for the key.
	Alias string `json:"alias,omitempty" jsonschema:"title=Alias"`
	// Hidden determines if the key should be hidden from display.
	Hidden bool `json:"hidden,omitempty" jsonschema:"title=Hidden"`
}

type KeyOpt func(k *Key)

func New(code string, opts ...KeyOpt) Key {
	k := &Key{
		Code: code,
	}
	for _, opt := range opts {
		opt(k)
	}

	return *k
}

func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind represents a key binding with its description and associated keys.
type KeyBind struct {
	// Description provides a description of what the key binding does.
	Description string `json:"description,omitempty" jsonschema:"title=Description"`
	// Keys contains the list of keys that trigger this binding.
	Keys []Key `json:"keys" jsonschema:"title=Keys"`
}

func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{
		Description: description,
		Keys:        keys,
	}
}

// String joins the visible keys with "/".
func (kb *KeyBind) String() string {
	keys := []string{}
	for _, k := range kb.Keys {
		if k.Hidden {
			continue
		}

		keys = append(keys, k.String())
	}

	return strings.Join(keys, "/")
}

// StringRow renders the binding as a help row. keyWidth should generally be
// the maximum width of any keybind string in the column.
func (kb *KeyBind) StringRow(keyWidth, descWidth int) string {
	keys := kb.String()
	if keys == "" {
		return ""
	}

	truncDesc := truncateWithEllipsis(kb.Description, descWidth-2)

	keySpaces := strings.Repeat(" ", max(0, keyWidth-ansi.PrintableRuneWidth(keys)))
	descSpaces := strings.Repeat(" ", max(0, descWidth-ansi.PrintableRuneWidth(truncDesc)-2))

	return fmt.Sprintf("%s%s  %s%s", keys, keySpaces, truncDesc, descSpaces)
}

// Match checks if the key matches any of the keys in the binding.
func (kb *KeyBind) Match(key string) bool {
	for _, k := range kb.Keys {
		if k.Code == key {
			return true
		}
	}

	return false
}

// Binding converts the bind for use with [key.Matches].
func (kb *KeyBind) Binding() key.Binding {
	codes := make([]string, 0, len(kb.Keys))
	for _, k := range kb.Keys {
		codes = append(codes, k.Code)
	}

	return key.NewBinding(
		key.WithKeys(codes...),
		key.WithHelp(kb.String(), kb.Description),
	)
}

// KeyBindRenderer lays out key bindings in columns.
type KeyBindRenderer struct {
	columns [][]KeyBind
}

func (kbr *KeyBindRenderer) AddColumn(kbs ...KeyBind) {
	if len(kbs) == 0 {
		return
	}

	kbr.columns = append(kbr.columns, kbs)
}

// Height returns the number of rows [KeyBindRenderer.Render] produces.
func (kbr *KeyBindRenderer) Height() int {
	rows := 0
	for _, col := range kbr.columns {
		rows = max(rows, len(col))
	}

	return rows
}

// Render lays out the columns evenly across width.
func (kbr *KeyBindRenderer) Render(width int) string {
	numCols := len(kbr.columns)
	if numCols == 0 {
		return ""
	}

	colWidth := width / numCols
	colRemainder := width % numCols
	colWidth = max(6, colWidth-2)

	colRows := make([][]string, numCols)
	maxRows := 0

	for i, col := range kbr.columns {
		colRows[i] = stringColumn(colWidth, col...)
		maxRows = max(maxRows, len(colRows[i]))
	}

	var sb strings.Builder
	for row := range maxRows {
		for col := range colRows {
			rowContent := strings.Repeat(" ", colWidth)
			if row < len(colRows[col]) {
				rowContent = colRows[col][row]
			}

			sb.WriteString(" " + rowContent + " ")
		}

		sb.WriteString(strings.Repeat(" ", colRemainder))

		if row < maxRows-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func stringColumn(width int, kbs ...KeyBind) []string {
	maxKeyWidth := 0
	for _, kb := range kbs {
		maxKeyWidth = max(maxKeyWidth, ansi.PrintableRuneWidth(kb.String()))
	}

	rows := []string{}
	for _, kb := range kbs {
		row := kb.StringRow(maxKeyWidth, width-maxKeyWidth)
		if row != "" {
			rows = append(rows, row)
		}
	}

	return rows
}

// ValidateBinds reports keys that appear in more than one binding.
func ValidateBinds(kbs ...KeyBind) error {
	var errs []error

	seen := make(map[string]bool)
	for _, kb := range kbs {
		for _, key := range kb.Keys {
			if seen[key.Code] {
				errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateKey, key.Code))
			}

			seen[key.Code] = true
		}
	}

	return errors.Join(errs...)
}

// SetDefaultBind fills a nil bind, or the empty fields of one, from defaultKb.
func SetDefaultBind(kb **KeyBind, defaultKb KeyBind) {
	if *kb == nil {
		*kb = &defaultKb

		return
	}

	if len((*kb).Keys) == 0 {
		(*kb).Keys = defaultKb.Keys
	}

	if (*kb).Description == "" {
		(*kb).Description = defaultKb.Description
	}
}

func truncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		if s == "" {
			return ""
		}

		return Ellipsis
	}

	if ansi.PrintableRuneWidth(s) <= maxWidth {
		return s
	}

	availableWidth := maxWidth - ansi.PrintableRuneWidth(Ellipsis)

	var (
		truncated    strings.Builder
		currentWidth int
	)

	for _, r := range s {
		runeWidth := ansi.PrintableRuneWidth(string(r))
		if currentWidth+runeWidth > availableWidth {
			break
		}

		truncated.WriteRune(r)
		currentWidth += runeWidth
	}

	return truncated.String() + Ellipsis
}
