package expression

import (
	"fmt"

	"github.com/expr-lang/expr"
)

func (ce *CompiledExpression) Check(env *Env) (bool, error) {
	if ce == nil {
		return true, nil
	}

	result, err := expr.Run(ce.Program, env)
	if err != nil {
		return false, fmt.Errorf("check expression: %w", err)
	}

	expResult, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("type assert expression result: %T", result)
	}

	return expResult, nil
}
