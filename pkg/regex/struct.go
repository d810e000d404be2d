package regex

import "github.com/dlclark/regexp2"

type Pattern struct {
	Text       string
	Expression *regexp2.Regexp
}
