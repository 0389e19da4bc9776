// Package icon resolves the icon path advertised by menu commands.
package icon

import (
	"fmt"
	"os"
	"sync"
)

// Resolver returns the path of an icon resource.
type Resolver interface {
	Path() (string, error)
}

// Lazy resolves its path on first use and caches the result, including
// any error.
type Lazy struct {
	resolve func() (string, error)
}

// NewLazy wraps resolve so it runs at most once.
func NewLazy(resolve func() (string, error)) *Lazy {
	return &Lazy{resolve: sync.OnceValues(resolve)}
}

// Static returns a [Lazy] that always resolves to path.
func Static(path string) *Lazy {
	return NewLazy(func() (string, error) {
		return path, nil
	})
}

// Executable returns a [Lazy] that resolves to the running executable, which
// carries the icon resource on Windows.
func Executable() *Lazy {
	return NewLazy(func() (string, error) {
		path, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("resolve executable: %w", err)
		}

		return path, nil
	})
}

func (l *Lazy) Path() (string, error) {
	return l.resolve()
}
