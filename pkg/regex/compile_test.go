package regex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`(unclosed`)
	assert.Error(t, err)
	assert.Error(t, ValidatePatterns([]string{`^ok$`, `[bad`}))
	assert.NoError(t, ValidatePatterns([]string{`^ok$`, `\d+`}))
}

func TestPattern_MatchString(t *testing.T) {
	p := MustCompile(`^#[0-9a-fA-F]{6}$`)
	assert.True(t, p.MatchString("#00c100"))
	assert.False(t, p.MatchString("00c100"))
}

func TestPattern_ReplaceFunc(t *testing.T) {
	p, err := Compile(`\{\{\s*(\w+)\s*\}\}`)
	require.NoError(t, err)

	out, err := p.ReplaceFunc("deploy {{ branch }} to {{target}}", func(groups []string) string {
		return strings.ToUpper(groups[1])
	})
	require.NoError(t, err)
	assert.Equal(t, "deploy BRANCH to TARGET", out)
}
