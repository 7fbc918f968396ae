package expression

import "github.com/expr-lang/expr/vm"

type CompiledExpression struct {
	Program *vm.Program
	Text    string
}

// Env is the evaluation environment for notification expressions.
type Env struct {
	Application string
	User        string
	Branch      string
	Target      string
	Kind        string
	Vars        map[string]string
}
