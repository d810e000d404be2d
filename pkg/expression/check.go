package expression

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/autobrr/transmission-cleanup/pkg/config"
)

// CheckTorrentSingleMatchWithReason returns true and the matching expression text when any expression matches.
func CheckTorrentSingleMatchWithReason(t *config.Torrent, expressions []CompiledExpression) (bool, string, error) {
	env := &evalContext{Torrent: t}

	for _, expression := range expressions {
		result, err := expr.Run(expression.Program, env)
		if err != nil {
			return false, "", fmt.Errorf("check expression: %q: %w", expression.Text, err)
		}

		expResult, ok := result.(bool)
		if !ok {
			return false, "", fmt.Errorf("type assert expression result: %q: %T", expression.Text, result)
		}

		if expResult {
			return true, expression.Text, nil
		}
	}

	return false, "", nil
}
