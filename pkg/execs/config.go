package execs

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultInterpreter     = `C:\Windows\System32\cmd.exe`
	DefaultInterpreterFlag = "/C"
	DefaultExecutable      = `C:\Users\Admin\Documents\Sen.Environment\Launcher.exe`
)

// ErrNoExecutable is returned when no launcher executable is configured.
var ErrNoExecutable = errors.New("launcher executable is empty")

// LauncherConfig describes the external launcher and how it is started.
type LauncherConfig struct {
	// Interpreter is the program that runs the command line.
	Interpreter string `json:"interpreter,omitempty" jsonschema:"title=Interpreter"`
	// InterpreterFlag prefixes the command line, e.g. "/C" for cmd.exe.
	InterpreterFlag string `json:"interpreterFlag,omitempty" jsonschema:"title=Interpreter Flag"`
	// Executable is the launcher program that receives the path arguments.
	Executable string `json:"executable,omitempty" jsonschema:"title=Executable"`
	// Env contains environment variable definitions.
	// When Env and EnvFrom are both empty, the caller's environment is inherited.
	Env []EnvVar `json:"env,omitempty" jsonschema:"title=Environment Variables"`
	// EnvFrom contains sources for inheriting environment variables.
	EnvFrom []EnvFromSource `json:"envFrom,omitempty" jsonschema:"title=Environment Variables From"`
}

// NewLauncherConfig returns a [LauncherConfig] with default values.
func NewLauncherConfig() *LauncherConfig {
	c := &LauncherConfig{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults fills empty fields with their default values.
func (c *LauncherConfig) EnsureDefaults() {
	if c.Interpreter == "" {
		c.Interpreter = DefaultInterpreter
	}

	if c.InterpreterFlag == "" {
		c.InterpreterFlag = DefaultInterpreterFlag
	}

	if c.Executable == "" {
		c.Executable = DefaultExecutable
	}
}

// Validate checks the config and compiles environment patterns.
func (c *LauncherConfig) Validate() error {
	if c.Executable == "" {
		return ErrNoExecutable
	}

	for i, envVar := range c.Env {
		if envVar.ValueFrom != nil && envVar.ValueFrom.CallerRef != nil {
			err := envVar.ValueFrom.CallerRef.Compile()
			if err != nil {
				return fmt.Errorf("env[%d]: %w", i, err)
			}
		}
	}

	for i, src := range c.EnvFrom {
		if src.CallerRef != nil {
			err := src.CallerRef.Compile()
			if err != nil {
				return fmt.Errorf("envFrom[%d]: %w", i, err)
			}
		}
	}

	return nil
}

// CommandLine wraps the per-path fragments in the interpreter frame:
//
//	<flag> ""<executable>" <fragment> <fragment>"
//
// Each fragment is preceded by a single space. With no fragments the
// executable is still launched.
func (c *LauncherConfig) CommandLine(fragments ...string) string {
	var b strings.Builder

	b.WriteString(c.InterpreterFlag)
	b.WriteString(` ""`)
	b.WriteString(c.Executable)
	b.WriteByte('"')

	for _, fragment := range fragments {
		b.WriteByte(' ')
		b.WriteString(fragment)
	}

	b.WriteByte('"')

	return b.String()
}

// Environment returns the environment for the launched process, or nil to
// inherit the caller's environment unchanged.
func (c *LauncherConfig) Environment(baseEnv []string) []string {
	if len(c.Env) == 0 && len(c.EnvFrom) == 0 {
		return nil
	}

	return buildEnv(baseEnv, c.Env, c.EnvFrom)
}
