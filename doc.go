// Package spawk processes line-oriented text in the AWK "pattern → action"
// style: declarative rules bound to Go callbacks, evaluated in registration
// order against every input line.
//
// spawk provides:
//   - Pattern, Grep, Range, and Eval rules over an enriched line type
//     (line number, regex captures, split fields)
//   - A mutable, pipeline-scoped Context shared by all rules
//   - A rotation-safe FileFollower for "tail -F" style input
//   - CEL expression predicates as an alternative to Go predicates
//
// # Quick Start
//
//	eng := spawk.New(spawk.NewReaderSource(os.Stdin), struct{}{}, nil)
//	eng.Grep(`ERROR`)
//	err := eng.Run(context.Background())
//
// # Rules and Context
//
// Each Engine owns one [Context]. Its Data field is caller-supplied state the
// engine passes into every action and predicate without interpreting it:
//
//	type stats struct{ words int }
//
//	eng := spawk.New(src, &stats{}, nil)
//	eng.Every(func(c *spawk.Context[*stats], line spawk.Line) error {
//	    c.Data.words += len(strings.Fields(line.Text))
//	    return nil
//	})
//
// Range rules track multi-line regions. While a region is open the action
// sees c.Range with the region-local line number and an IsLastLine flag on
// the line matching the end pattern:
//
//	eng.Range(`CREATE TABLE`, `\);`, func(c *spawk.Context[*sql], line spawk.Line) error {
//	    c.Data.stmt = append(c.Data.stmt, line.Text)
//	    if c.Range.IsLastLine {
//	        c.Data.emit()
//	    }
//	    return nil
//	})
//
// # Following Files
//
// [FileFollower] is a Source that yields lines as a file grows, surviving
// truncation, rotation, and temporary removal of the file:
//
//	f := spawk.NewFileFollower("/var/log/syslog", nil)
//	eng := spawk.New(f, struct{}{}, nil)
//	eng.Grep(`sshd`)
//	err := eng.Run(ctx) // runs until ctx is cancelled
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [PatternError]: invalid regex supplied at rule registration
//   - [ExprError]: invalid CEL expression supplied to EvalExpr
//   - [ActionError]: an action or predicate failed; carries the rule and
//     the line number for diagnosis
//
// # Concurrency
//
// The dispatch loop is single-threaded: one line is fully enriched and
// matched against all rules before the next line is pulled, so actions may
// mutate Context data without locking. FileFollower polling honors the
// context passed to [Engine.Run].
package spawk
