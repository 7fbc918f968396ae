package regex

import (
	"github.com/dlclark/regexp2"
)

func Compile(pattern string) (*Pattern, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}

	return &Pattern{
		Expression: re,
	}, nil
}

func MustCompile(pattern string) *Pattern {
	return &Pattern{
		Expression: regexp2.MustCompile(pattern, regexp2.None),
	}
}

func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := Compile(pattern); err != nil {
			return err
		}
	}
	return nil
}

// MatchString reports whether s contains a match. Match timeouts count as no match.
func (p *Pattern) MatchString(s string) bool {
	ok, err := p.Expression.MatchString(s)
	return err == nil && ok
}

// ReplaceFunc replaces every match in s with the result of fn, which receives
// the match's capture groups (index 0 is the whole match).
func (p *Pattern) ReplaceFunc(s string, fn func(groups []string) string) (string, error) {
	return p.Expression.ReplaceFunc(s, func(m regexp2.Match) string {
		groups := m.Groups()
		values := make([]string, len(groups))
		for i, g := range groups {
			values[i] = g.String()
		}
		return fn(values)
	}, -1, -1)
}
