package yaml

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// DefaultStyle is the chroma style used by [NewHighlighter] for an unknown
// style name.
const DefaultStyle = "monokai"

// Highlighter renders YAML with terminal colors.
type Highlighter struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter creates a [Highlighter] for the given color profile. An
// [termenv.Ascii] profile leaves the source unchanged.
func NewHighlighter(profile termenv.Profile, styleName string) *Highlighter {
	formatterName := "noop"
	switch profile {
	case termenv.TrueColor:
		formatterName = "terminal16m"
	case termenv.ANSI256:
		formatterName = "terminal256"
	case termenv.ANSI:
		formatterName = "terminal8"
	case termenv.Ascii:
	}

	style, ok := styles.Registry[styleName]
	if !ok {
		style = styles.Get(DefaultStyle)
	}

	return &Highlighter{
		lexer:     chroma.Coalesce(lexers.Get("YAML")),
		formatter: formatters.Get(formatterName),
		style:     style,
	}
}

// Highlight returns src with color escape sequences.
func (h *Highlighter) Highlight(src []byte) ([]byte, error) {
	iterator, err := h.lexer.Tokenise(nil, string(src))
	if err != nil {
		return nil, fmt.Errorf("lexer tokenize: %w", err)
	}

	buf := &bytes.Buffer{}

	err = h.formatter.Format(buf, h.style, iterator)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	return buf.Bytes(), nil
}
