package rule

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/senenv/shellmenu/pkg/expr"
)

// Kind restricts a [Rule] to one kind of filesystem entry.
type Kind string

const (
	KindDirectory Kind = "directory"
	KindFile      Kind = "file"
)

const (
	flagMethod   = "-method"
	flagArgument = "-argument"
)

var (
	// ErrEmptyName is returned when a rule has no name.
	ErrEmptyName = errors.New("rule name is empty")

	// ErrUnknownKind is returned for a kind other than [KindDirectory] or [KindFile].
	ErrUnknownKind = errors.New("unknown kind")
)

// Rule binds an optional kind, pattern and CEL filter to the method and
// argument passed to the launcher.
type Rule struct {
	pattern *regexp.Regexp // Compiled Pattern.
	when    cel.Program    // Compiled When.

	// Name is the label shown for the action.
	Name string `json:"name" jsonschema:"title=Name,minLength=1"`
	// Kind restricts matches to directories or regular files.
	Kind *Kind `json:"kind,omitempty" jsonschema:"title=Kind,enum=directory,enum=file"`
	// Pattern is a regular expression that must match part of the path.
	Pattern *string `json:"pattern,omitempty" jsonschema:"title=Pattern,format=regex"`
	// When is a CEL expression over `path` that must return true.
	When *string `json:"when,omitempty" jsonschema:"title=When Expression"`
	// Method is passed to the launcher as `-method`, when set.
	Method *string `json:"method,omitempty" jsonschema:"title=Method"`
	// Argument is passed to the launcher verbatim as `-argument`.
	Argument string `json:"argument" jsonschema:"title=Argument"`
}

// RuleOpt configures a [Rule] created with [New].
type RuleOpt func(*Rule)

// WithKind restricts the rule to directories or regular files.
func WithKind(k Kind) RuleOpt {
	return func(r *Rule) {
		r.Kind = &k
	}
}

// WithPattern sets the regular expression a path must contain.
func WithPattern(pattern string) RuleOpt {
	return func(r *Rule) {
		r.Pattern = &pattern
	}
}

// WithWhen sets the CEL expression a path must satisfy.
func WithWhen(expression string) RuleOpt {
	return func(r *Rule) {
		r.When = &expression
	}
}

// WithMethod sets the method passed to the launcher.
func WithMethod(method string) RuleOpt {
	return func(r *Rule) {
		r.Method = &method
	}
}

// New creates and compiles a [Rule].
func New(name, argument string, opts ...RuleOpt) (*Rule, error) {
	r := &Rule{
		Name:     name,
		Argument: argument,
	}
	for _, opt := range opts {
		opt(r)
	}

	err := r.Compile()
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}

	return r, nil
}

// MustNew creates a new rule and panics if there's an error.
func MustNew(name, argument string, opts ...RuleOpt) *Rule {
	r, err := New(name, argument, opts...)
	if err != nil {
		panic(err)
	}

	return r
}

// Compile validates the rule and compiles its pattern and CEL expression.
// It is safe to call more than once.
func (r *Rule) Compile() error {
	if r.Name == "" {
		return ErrEmptyName
	}

	if r.Kind != nil && *r.Kind != KindDirectory && *r.Kind != KindFile {
		return fmt.Errorf("%w: %q", ErrUnknownKind, *r.Kind)
	}

	if r.Pattern != nil && r.pattern == nil {
		pattern, err := regexp.Compile(*r.Pattern)
		if err != nil {
			return fmt.Errorf("compile pattern %q: %w", *r.Pattern, err)
		}

		r.pattern = pattern
	}

	if r.When != nil && r.when == nil {
		env, err := expr.Default()
		if err != nil {
			return err //nolint:wrapcheck // Already wrapped by expr.
		}

		program, err := env.Compile(*r.When)
		if err != nil {
			return fmt.Errorf("when %q: %w", *r.When, err)
		}

		r.when = program
	}

	return nil
}

// Match reports whether path satisfies every filter on the rule.
// The kind check happens first, so a missing path fails before the pattern
// is considered.
func (r *Rule) Match(path string) bool {
	if r.Kind != nil && !matchKind(*r.Kind, path) {
		return false
	}

	if r.Pattern != nil {
		if r.pattern == nil {
			slog.Debug("rule pattern not compiled", slog.String("rule", r.Name))

			return false
		}

		if !r.pattern.MatchString(path) {
			return false
		}
	}

	if r.When != nil {
		if r.when == nil {
			slog.Debug("rule expression not compiled", slog.String("rule", r.Name))

			return false
		}

		ok, err := expr.EvalPath(r.when, path)
		if err != nil {
			slog.Debug("rule expression failed, treating as non-match",
				slog.String("rule", r.Name),
				slog.String("path", path),
				slog.Any("err", err),
			)

			return false
		}

		return ok
	}

	return true
}

// MatchAll reports whether every path matches. An empty selection matches.
func (r *Rule) MatchAll(paths []string) bool {
	for _, path := range paths {
		if !r.Match(path) {
			return false
		}
	}

	return true
}

// Build renders the launcher arguments for path:
//
//	"<path>" ["-method" "<method>"] "-argument" "<argument>"
//
// Values are quoted but not escaped.
func (r *Rule) Build(path string) string {
	words := make([]string, 0, 5)
	words = append(words, quote(path))

	if r.Method != nil {
		words = append(words, quote(flagMethod), quote(*r.Method))
	}

	words = append(words, quote(flagArgument), quote(r.Argument))

	return strings.Join(words, " ")
}

func (r *Rule) String() string {
	var b strings.Builder

	b.WriteString(r.Name)

	if r.Kind != nil {
		fmt.Fprintf(&b, " kind=%s", *r.Kind)
	}

	if r.Pattern != nil {
		fmt.Fprintf(&b, " pattern=%s", *r.Pattern)
	}

	if r.When != nil {
		fmt.Fprintf(&b, " when=%s", *r.When)
	}

	return b.String()
}

func matchKind(k Kind, path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}

	switch k {
	case KindDirectory:
		return fi.IsDir()
	case KindFile:
		return fi.Mode().IsRegular()
	}

	return false
}

func quote(s string) string {
	return `"` + s + `"`
}
