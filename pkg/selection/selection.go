// Package selection turns host input into the ordered list of selected paths.
//
// Paths keep the order they were given in, and are made absolute so that
// rule patterns see the same form regardless of the working directory.
package selection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Stdin is the argument that makes [FromArgs] read paths from a reader.
const Stdin = "-"

// ErrEmptyPath is returned for an empty path argument.
var ErrEmptyPath = errors.New("empty path")

// Source provides the paths of a selection, in a stable order.
type Source interface {
	Paths() ([]string, error)
}

// Args is a selection given as command line arguments.
type Args []string

func (a Args) Paths() ([]string, error) {
	paths := make([]string, 0, len(a))
	for i, arg := range a {
		path, err := resolve(arg)
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// Reader is a selection read as newline-separated paths.
// Blank lines are skipped.
type Reader struct {
	r io.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) Paths() ([]string, error) {
	var paths []string

	sc := bufio.NewScanner(r.r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(strings.TrimSuffix(sc.Text(), "\r"))
		if text == "" {
			continue
		}

		path, err := resolve(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		paths = append(paths, path)
	}

	err := sc.Err()
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}

	return paths, nil
}

// FromArgs returns a [Reader] over stdin when args is exactly [Stdin], and
// [Args] otherwise.
//
//nolint:ireturn // Either implementation may be returned.
func FromArgs(args []string, stdin io.Reader) Source {
	if len(args) == 1 && args[0] == Stdin {
		return NewReader(stdin)
	}

	return Args(args)
}

func resolve(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	return abs, nil
}
