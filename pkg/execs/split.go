package execs

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// SplitCommandLine undoes the interpreter frame of a command line built by
// [LauncherConfig.CommandLine] and splits the rest into words.
//
// The flag prefix is removed (case-insensitively), then the outermost pair of
// quotes, the same way `cmd.exe /C` treats them. A frame that opens with a
// quote must close with one. The remainder is split with
// POSIX shell rules, so backslashes act as escapes.
func SplitCommandLine(flag, commandLine string) ([]string, error) {
	s := strings.TrimSpace(commandLine)

	if flag != "" && len(s) >= len(flag) && strings.EqualFold(s[:len(flag)], flag) {
		s = strings.TrimSpace(s[len(flag):])
	}

	if strings.HasPrefix(s, `"`) {
		if len(s) < 2 || !strings.HasSuffix(s, `"`) {
			return nil, fmt.Errorf("%w: %s", ErrUnterminatedFrame, commandLine)
		}

		s = s[1 : len(s)-1]
	}

	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false

	words, err := p.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("split command line: %w", err)
	}

	if len(words) == 0 || words[0] == "" {
		return nil, ErrEmptyCommandLine
	}

	return words, nil
}
