package yaml

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// ErrorWrapper applies a fixed set of [ErrorOpt]s to every [*Error] it wraps.
type ErrorWrapper struct {
	Opts []ErrorOpt
}

func NewErrorWrapper(opts ...ErrorOpt) *ErrorWrapper {
	return &ErrorWrapper{
		Opts: opts,
	}
}

// Wrap applies the wrapper's options, then opts, to err if it is an [*Error].
// Other errors are returned unmodified.
func (ew *ErrorWrapper) Wrap(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		for _, opt := range ew.Opts {
			opt(yamlErr)
		}

		for _, opt := range opts {
			opt(yamlErr)
		}

		return yamlErr
	}

	return err
}

// Error is a YAML error located either by a [*token.Token] from the parser or
// by a [*yaml.Path] from schema validation. When Source is set, the error
// message includes the surrounding lines.
type Error struct {
	Err     error
	Path    *yaml.Path
	Token   *token.Token
	Source  []byte
	Colored bool
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// WithColor renders the annotated source with ANSI colors.
func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	if e.Path == nil && e.Token == nil {
		return e.Err.Error()
	}

	tk := e.Token
	if tk == nil {
		if len(e.Source) == 0 {
			return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
		}

		var err error

		tk, err = getTokenFromPath(e.Source, e.Path)
		if err != nil {
			slog.Debug("annotate source",
				slog.String("path", e.Path.String()),
				slog.Any("err", err),
			)

			return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
		}
	}

	var pp printer.Printer

	return fmt.Sprintf("[%d:%d] %v\n%s",
		tk.Position.Line, tk.Position.Column, e.Err,
		pp.PrintErrorToken(tk, e.Colored),
	)
}

func getTokenFromPath(source []byte, path *yaml.Path) (*token.Token, error) {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil, fmt.Errorf("filter by path: %w", err)
	}

	// FilterFile returns the value node; point at the key when there is one.
	if keyToken := findKeyToken(file, path); keyToken != nil {
		return keyToken, nil
	}

	return node.GetToken(), nil
}

// findKeyToken returns the key token for the last segment of path, or nil if
// path ends in a sequence index or is the root.
func findKeyToken(file *ast.File, path *yaml.Path) *token.Token {
	pathStr := path.String()

	lastDot := strings.LastIndex(pathStr, ".")
	lastBracket := strings.LastIndex(pathStr, "[")

	if lastDot == -1 || lastDot <= lastBracket {
		return nil
	}

	parentPath, err := yaml.PathString(pathStr[:lastDot])
	if err != nil {
		return nil
	}

	parentNode, err := parentPath.FilterFile(file)
	if err != nil {
		return nil
	}

	mapping, ok := parentNode.(*ast.MappingNode)
	if !ok {
		return nil
	}

	lastSegment := pathStr[lastDot+1:]
	for _, val := range mapping.Values {
		if val.Key.String() == lastSegment {
			return val.Key.GetToken()
		}
	}

	return nil
}
