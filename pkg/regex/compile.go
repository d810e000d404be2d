package regex

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

const matchTimeout = 2 * time.Second

var cache sync.Map

// Compile compiles pattern with .NET style semantics (lookarounds, backreferences).
func Compile(pattern string) (*Pattern, error) {
	if p, ok := cache.Load(pattern); ok {
		return p.(*Pattern), nil
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout

	p := &Pattern{
		Text:       pattern,
		Expression: re,
	}
	cache.Store(pattern, p)

	return p, nil
}

func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := Compile(pattern); err != nil {
			return err
		}
	}
	return nil
}

// MatchString reports whether s matches the pattern. Match errors (timeouts) count as no match.
func (p *Pattern) MatchString(s string) bool {
	ok, err := p.Expression.MatchString(s)
	if err != nil {
		return false
	}

	return ok
}
