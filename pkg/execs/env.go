package execs

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
)

// EnvFromSource represents a source for inheriting environment variables.
type EnvFromSource struct {
	// CallerRef specifies how to inherit environment variables from the caller process.
	CallerRef *CallerRef `json:"callerRef,omitempty" jsonschema:"title=Caller Reference"`
}

// CallerRef references environment variables of the calling process.
type CallerRef struct {
	compiledPattern *LazyRegexp

	// Pattern is a regex pattern for matching environment variable names.
	Pattern string `json:"pattern,omitempty" jsonschema:"title=Pattern,format=regex"`
	// Name is the specific environment variable name to inherit.
	Name string `json:"name,omitempty" jsonschema:"title=Name"`
}

// EnvVar represents an environment variable definition.
type EnvVar struct {
	// ValueFrom specifies a source for the environment variable value.
	ValueFrom *EnvVarSource `json:"valueFrom,omitempty" jsonschema:"title=Value From"`
	// Name is the environment variable name.
	Name string `json:"name" jsonschema:"title=Name"`
	// Value is the environment variable value.
	Value string `json:"value,omitempty" jsonschema:"title=Value"`
}

// EnvVarSource represents a source for an environment variable value.
type EnvVarSource struct {
	// CallerRef specifies how to get the value from the caller process environment.
	CallerRef *CallerRef `json:"callerRef,omitempty" jsonschema:"title=Caller Reference"`
}

// Compile compiles the pattern, if one is set.
func (c *CallerRef) Compile() error {
	if c.compiledPattern == nil {
		c.compiledPattern = NewLazyRegexp(c.Pattern)
	}

	_, err := c.compiledPattern.Get()

	return err
}

// essentialEnv lists the caller variables that are always passed through
// once an environment is configured.
func essentialEnv() []string {
	if runtime.GOOS == "windows" {
		return []string{
			"PATH", "PATHEXT", "SYSTEMROOT", "WINDIR", "COMSPEC",
			"TEMP", "TMP", "USERPROFILE", "APPDATA", "LOCALAPPDATA",
		}
	}

	return []string{"PATH", "HOME", "USER", "TERM", "COLORTERM"}
}

// buildEnv constructs environment variables for the launched process.
func buildEnv(baseEnv []string, env []EnvVar, envFrom []EnvFromSource) []string {
	base := parseEnv(baseEnv)
	envMap := make(map[string]string)

	essential := essentialEnv()
	for key, value := range base {
		if slices.ContainsFunc(essential, func(e string) bool {
			return strings.EqualFold(e, key)
		}) {
			envMap[key] = value
		}
	}

	applyEnvFrom(envMap, base, envFrom)
	applyEnv(envMap, env)

	result := make([]string, 0, len(envMap))
	for key, value := range envMap {
		result = append(result, fmt.Sprintf("%s=%s", key, value))
	}

	slices.Sort(result)

	return result
}

func parseEnv(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, envVar := range environ {
		// Skip the "=C:=C:\..." drive entries on Windows.
		if eqIdx := strings.Index(envVar, "="); eqIdx > 0 {
			m[envVar[:eqIdx]] = envVar[eqIdx+1:]
		}
	}

	return m
}

func applyEnvFrom(envMap, base map[string]string, envFrom []EnvFromSource) {
	for _, src := range envFrom {
		if src.CallerRef == nil {
			continue
		}

		if src.CallerRef.Pattern != "" {
			pattern := src.CallerRef.compiledPattern
			if pattern == nil {
				pattern = NewLazyRegexp(src.CallerRef.Pattern)
			}

			for key, value := range base {
				if pattern.MatchString(key) {
					envMap[key] = value
				}
			}
		}

		if name := src.CallerRef.Name; name != "" {
			if value, exists := base[name]; exists {
				envMap[name] = value
			}
		}
	}
}

func applyEnv(envMap map[string]string, env []EnvVar) {
	for _, envVar := range env {
		if envVar.Name == "" {
			continue
		}

		if envVar.Value != "" {
			envMap[envVar.Name] = envVar.Value

			continue
		}

		if envVar.ValueFrom != nil && envVar.ValueFrom.CallerRef != nil && envVar.ValueFrom.CallerRef.Name != "" {
			if value, exists := envMap[envVar.ValueFrom.CallerRef.Name]; exists {
				envMap[envVar.Name] = value
			}
		}
	}
}
