package execs

import (
	"fmt"
	"regexp"
	"sync"
)

// LazyRegexp compiles a pattern on first use. It is safe for concurrent use.
// An empty pattern compiles to a nil [*regexp.Regexp] and no error.
type LazyRegexp struct {
	err     error
	regex   *regexp.Regexp
	pattern string
	once    sync.Once
}

func NewLazyRegexp(pattern string) *LazyRegexp {
	return &LazyRegexp{
		pattern: pattern,
	}
}

// Get returns the compiled pattern, compiling it on the first call.
func (lr *LazyRegexp) Get() (*regexp.Regexp, error) {
	lr.once.Do(func() {
		if lr.pattern == "" {
			return
		}

		lr.regex, lr.err = regexp.Compile(lr.pattern)
		if lr.err != nil {
			lr.err = fmt.Errorf("compile pattern %q: %w", lr.pattern, lr.err)
		}
	})

	return lr.regex, lr.err
}

// MatchString reports whether s matches. A pattern that is empty or fails to
// compile matches nothing.
func (lr *LazyRegexp) MatchString(s string) bool {
	re, err := lr.Get()
	if err != nil || re == nil {
		return false
	}

	return re.MatchString(s)
}

func (lr *LazyRegexp) String() string {
	return lr.pattern
}
