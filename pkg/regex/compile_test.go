package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	p, err := Compile(`(?i)^ubuntu.*(?<!\.iso)$`)
	require.NoError(t, err)

	assert.True(t, p.MatchString("Ubuntu-24.04-desktop"))
	assert.False(t, p.MatchString("ubuntu-24.04.iso"))
	assert.False(t, p.MatchString("debian"))

	again, err := Compile(`(?i)^ubuntu.*(?<!\.iso)$`)
	require.NoError(t, err)
	assert.Same(t, p, again)
}

func TestValidatePatterns(t *testing.T) {
	assert.NoError(t, ValidatePatterns([]string{`^a`, `b$`}))
	assert.Error(t, ValidatePatterns([]string{`^a`, `(unclosed`}))
}
