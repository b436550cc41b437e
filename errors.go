package spawk

import (
	"errors"
	"fmt"
)

// Continue is a sentinel an action can return to stop rule processing for
// the current line. Remaining rules are skipped and the run proceeds with
// the next line. It is not treated as a failure.
var Continue = errors.New("spawk: continue to next line")

// PatternError reports an invalid regular expression supplied at rule
// registration time.
type PatternError struct {
	Pattern string // Offending pattern
	Message string // Error description
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern error in %q: %s", e.Pattern, e.Message)
}

// ExprError reports an invalid CEL expression supplied to EvalExpr.
type ExprError struct {
	Expr    string // Offending expression
	Message string // Error description
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("expression error in %q: %s", e.Expr, e.Message)
}

// ActionError reports a failure inside a user-supplied action or predicate.
// It aborts the run immediately; the engine never retries an action.
type ActionError struct {
	Rule       string // Description of the rule that failed
	LineNumber int    // Input line being processed when it failed
	Err        error  // Underlying error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("rule %s: line %d: %v", e.Rule, e.LineNumber, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
