package spawk

import (
	"sync"

	"github.com/google/cel-go/cel"
)

// exprEnv is the shared CEL environment for EvalExpr predicates. The
// declared variables are what an expression can reference; data is dynamic
// so callers can expose maps or scalars without schema registration.
var exprEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("line", cel.StringType),
		cel.Variable("lineno", cel.IntType),
		cel.Variable("fields", cel.ListType(cel.StringType)),
		cel.Variable("data", cel.DynType),
	)
})

// compileExpr compiles a CEL expression into a Predicate at registration
// time, so malformed expressions fail immediately rather than at first
// match.
func compileExpr[T any](expr string) (Predicate[T], error) {
	env, err := exprEnv()
	if err != nil {
		return nil, &ExprError{Expr: expr, Message: err.Error()}
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, &ExprError{Expr: expr, Message: issues.Err().Error()}
	}
	prog, err := env.Program(ast)
	if err != nil {
		return nil, &ExprError{Expr: expr, Message: err.Error()}
	}

	return func(c *Context[T], line Line) (bool, error) {
		fields := line.Fields
		if fields == nil {
			fields = []string{}
		}
		out, _, err := prog.Eval(map[string]any{
			"line":   line.Text,
			"lineno": line.Number,
			"fields": fields,
			"data":   any(c.Data),
		})
		if err != nil {
			return false, err
		}
		// Non-boolean results are treated as no match.
		b, ok := out.Value().(bool)
		return ok && b, nil
	}, nil
}
