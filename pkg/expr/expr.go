package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// VarPath is the name of the CEL variable holding the selected path.
const VarPath = "path"

// ErrNotBool is returned when an expression does not evaluate to a boolean.
var ErrNotBool = errors.New("expression did not return a bool")

// Protect CEL environment creation and compilation from concurrent access.
var celMutex sync.Mutex

// Environment provides a thread-safe wrapper around a [*cel.Env].
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates a new [Environment] declaring the [VarPath] variable.
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	env, err := createEnvironment(opts...)
	if err != nil {
		return nil, err
	}

	return &Environment{env: env}, nil
}

// MustNewEnvironment creates a new [Environment] and panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

func createEnvironment(opts ...cel.EnvOption) (*cel.Env, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	opts = append(opts,
		cel.Variable(VarPath, cel.StringType),
		cel.Lib(&lib{}),
	)

	celEnv, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return celEnv, nil
}

// Compile compiles a CEL expression that must return a boolean.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	switch out := ast.OutputType().String(); out {
	case "bool", "dyn":
	default:
		return nil, fmt.Errorf("compile expression: %w, got %s", ErrNotBool, out)
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return program, nil
}

// EvalPath evaluates program with [VarPath] bound to path.
func EvalPath(program cel.Program, path string) (bool, error) {
	result, _, err := program.Eval(map[string]any{
		VarPath: path,
	})
	if err != nil {
		return false, fmt.Errorf("eval expression: %w", err)
	}

	b, ok := result.Value().(bool)
	if !ok {
		return false, ErrNotBool
	}

	return b, nil
}

var defaultEnv = sync.OnceValues(func() (*Environment, error) {
	return NewEnvironment()
})

// Default returns a shared [Environment] with no extra options.
func Default() (*Environment, error) {
	return defaultEnv()
}
