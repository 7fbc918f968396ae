package expression

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/autobrr/rocketdeploy/pkg/regex"
)

// HasVar reports whether a deploy var is set to a non-empty value.
func (e *Env) HasVar(name string) bool {
	if e == nil {
		return false
	}
	return strings.TrimSpace(e.Vars[strings.ToLower(name)]) != ""
}

// RegexMatch reports whether value matches pattern. Invalid patterns never match.
func (e *Env) RegexMatch(value string, pattern string) bool {
	p, err := regex.Compile(pattern)
	if err != nil {
		return false
	}
	return p.MatchString(value)
}

// Compile compiles a boolean expression. An empty text compiles to nil, which
// Check treats as always true.
func Compile(text string) (*CompiledExpression, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	program, err := expr.Compile(text, expr.Env(&Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile expression: %q: %w", text, err)
	}

	return &CompiledExpression{
		Program: program,
		Text:    text,
	}, nil
}
