package expression

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"

	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/regex"
)

type evalContext struct {
	*config.Torrent
}

func (e *evalContext) IsInactive() bool {
	if e.Torrent == nil {
		return false
	}
	return e.Torrent.IsInactive()
}

func (e *evalContext) HasAnyLabel(labels ...string) bool {
	if e.Torrent == nil {
		return false
	}
	return e.Torrent.HasAnyLabel(labels...)
}

func (e *evalContext) HasAllLabels(labels ...string) bool {
	if e.Torrent == nil {
		return false
	}
	return e.Torrent.HasAllLabels(labels...)
}

func (e *evalContext) RegexMatch(pattern string) bool {
	if e.Torrent == nil {
		return false
	}
	return e.Torrent.RegexMatch(pattern)
}

// matches RegexMatch("...") calls so their patterns can be validated up front
var regexCall = `RegexMatch\(\s*("(?:[^"\\]|\\.)*")\s*\)`

func Compile(filter *config.FilterConfiguration) (*Expressions, error) {
	exprEnv := &evalContext{}
	exp := new(Expressions)

	if filter == nil {
		return exp, nil
	}

	// validate all regex patterns in expressions
	patterns, err := regexPatterns(filter.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}

	if err := regex.ValidatePatterns(patterns); err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}

	// compile ignores
	for _, ignoreExpr := range filter.Ignore {
		program, err := expr.Compile(ignoreExpr, expr.Env(exprEnv), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile ignore expression: %q: %w", ignoreExpr, err)
		}

		exp.Ignores = append(exp.Ignores, CompiledExpression{
			Program: program,
			Text:    ignoreExpr,
		})
	}

	return exp, nil
}

func regexPatterns(expressions []string) ([]string, error) {
	finder, err := regex.Compile(regexCall)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, e := range expressions {
		m, err := finder.Expression.FindStringMatch(e)
		for m != nil && err == nil {
			pattern, uerr := strconv.Unquote(m.GroupByNumber(1).String())
			if uerr != nil {
				return nil, fmt.Errorf("unquote %s: %w", m.GroupByNumber(1).String(), uerr)
			}
			patterns = append(patterns, pattern)

			m, err = finder.Expression.FindNextMatch(m)
		}
		if err != nil {
			return nil, err
		}
	}

	return patterns, nil
}
