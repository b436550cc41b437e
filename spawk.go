package spawk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/linsomniac/spawk/internal/rematch"
)

// Version is the spawk version string.
const Version = "0.1.0"

// Engine owns an ordered rule registry and the per-line dispatch loop.
// Construct one with [New], register rules, then call [Engine.Run].
//
// Rules are evaluated in registration order for each line; a line may match
// more than one rule, and each matching rule's action runs exactly once per
// line. An Engine is not safe for concurrent use.
type Engine[T any] struct {
	source      Source
	out         io.Writer
	log         zerolog.Logger
	ctx         *Context[T]
	enrichments []Enrichment
	begin       []func(*Context[T]) error
	rules       []*rule[T]
	nextID      int
}

// New creates an Engine consuming lines from source. data seeds
// Context.Data, the caller-owned state slot passed into every action and
// predicate. If config is nil, defaults are used.
func New[T any](source Source, data T, config *Config) *Engine[T] {
	if config == nil {
		config = &Config{}
	}
	cfg := *config
	cfg.applyDefaults()
	return &Engine[T]{
		source: source,
		out:    cfg.Output,
		log:    *cfg.Logger,
		ctx:    &Context[T]{Data: data},
	}
}

// Context returns the engine's pipeline context.
func (e *Engine[T]) Context() *Context[T] {
	return e.ctx
}

// Begin registers a handler run once at the start of Run, before any line
// is read. Handlers run in registration order; an error aborts the run.
func (e *Engine[T]) Begin(f func(*Context[T]) error) {
	e.begin = append(e.begin, f)
}

// Enrich registers an enrichment applied to every line before rule
// evaluation.
func (e *Engine[T]) Enrich(fn Enrichment) {
	e.enrichments = append(e.enrichments, fn)
}

// Split registers a field-splitting enrichment: Line.Fields is populated by
// splitting the text on sep. An empty sep splits on runs of whitespace,
// discarding leading and trailing whitespace. maxsplit caps the number of
// splits performed (-1 for unlimited), so the result has at most maxsplit+1
// fields.
func (e *Engine[T]) Split(sep string, maxsplit int) {
	e.Enrich(SplitFields(sep, maxsplit))
}

// Grep registers a rule that writes lines matching any of the patterns to
// the engine's output sink. It has no action.
func (e *Engine[T]) Grep(patterns ...string) (*Rule, error) {
	res, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	return e.register(&rule[T]{kind: ruleGrep, patterns: res},
		fmt.Sprintf("grep(%s)", quoteAll(patterns))), nil
}

// Filter registers a rule that stops rule processing for any line matching
// none of the patterns: later rules only ever see lines that passed the
// filter.
func (e *Engine[T]) Filter(patterns ...string) (*Rule, error) {
	res, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	return e.register(&rule[T]{kind: ruleFilter, patterns: res},
		fmt.Sprintf("filter(%s)", quoteAll(patterns))), nil
}

// Pattern registers a rule whose action runs on every line the pattern
// searches true against. The match, including capture groups, is available
// to the action as Context.Regex. An empty pattern matches every line.
func (e *Engine[T]) Pattern(pattern string, action Action[T]) (*Rule, error) {
	re, err := rematch.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Message: err.Error()}
	}
	return e.register(&rule[T]{kind: rulePattern, pattern: re, action: action},
		fmt.Sprintf("pattern(%q)", pattern)), nil
}

// Every registers a rule whose action runs on every line. Unlike a Pattern
// rule with an empty pattern, no match is produced: the action always sees
// Context.Regex == nil.
func (e *Engine[T]) Every(action Action[T]) *Rule {
	return e.register(&rule[T]{kind: ruleEvery, action: action}, "every()")
}

// Range registers a rule whose action runs on every line from one matching
// start through one matching end, inclusive. While the region is open the
// action sees Context.Range. Both patterns are required.
func (e *Engine[T]) Range(start, end string, action Action[T]) (*Rule, error) {
	if start == "" || end == "" {
		return nil, &PatternError{
			Pattern: start + ".." + end,
			Message: "range requires both a start and an end pattern",
		}
	}
	reStart, err := rematch.Compile(start)
	if err != nil {
		return nil, &PatternError{Pattern: start, Message: err.Error()}
	}
	reEnd, err := rematch.Compile(end)
	if err != nil {
		return nil, &PatternError{Pattern: end, Message: err.Error()}
	}
	return e.register(&rule[T]{kind: ruleRange, start: reStart, end: reEnd, action: action},
		fmt.Sprintf("range(%q, %q)", start, end)), nil
}

// Eval registers a rule whose action runs on every line the predicate
// reports true for. The predicate sees all Context state mutated by earlier
// rules, on this line or previous ones.
func (e *Engine[T]) Eval(pred Predicate[T], action Action[T]) *Rule {
	return e.register(&rule[T]{kind: ruleEval, pred: pred, action: action}, "eval()")
}

// EvalExpr is like Eval with the predicate supplied as a CEL expression
// over the variables line (string), lineno (int), fields (list of string),
// and data (the Context.Data value). The expression is compiled here; a
// malformed expression fails at registration, never at first match. A
// non-boolean result is treated as false.
func (e *Engine[T]) EvalExpr(expr string, action Action[T]) (*Rule, error) {
	pred, err := compileExpr[T](expr)
	if err != nil {
		return nil, err
	}
	return e.register(&rule[T]{kind: ruleEval, pred: pred, action: action},
		fmt.Sprintf("eval(%q)", expr)), nil
}

// Remove deregisters a rule by its handle. It reports whether the rule was
// found. Removing a Range rule discards any open region state.
func (e *Engine[T]) Remove(h *Rule) bool {
	for i, r := range e.rules {
		if r.handle == h {
			e.rules = append(e.rules[:i], e.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Run consumes the source until exhaustion, evaluating every rule against
// every line. For a following source it runs until ctx is cancelled.
//
// The first error encountered aborts the run: action and predicate errors
// are returned as [ActionError] with the rule and line number, source
// errors are returned as-is. No action is ever retried.
func (e *Engine[T]) Run(ctx context.Context) error {
	for _, f := range e.begin {
		if err := f(e.ctx); err != nil {
			return fmt.Errorf("begin handler: %w", err)
		}
	}
	e.begin = nil

	for {
		line, err := e.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			e.log.Debug().Int("rules", len(e.rules)).Msg("input exhausted")
			return nil
		}
		if err != nil {
			return err
		}

		for _, enrich := range e.enrichments {
			enrich(&line)
		}

		for _, r := range e.rules {
			err := r.dispatch(e.ctx, line, e.out)
			if err == nil {
				continue
			}
			if errors.Is(err, Continue) {
				break
			}
			return &ActionError{Rule: r.handle.desc, LineNumber: line.Number, Err: err}
		}
	}
}

func (e *Engine[T]) register(r *rule[T], desc string) *Rule {
	e.nextID++
	r.handle = &Rule{id: e.nextID, desc: desc}
	e.rules = append(e.rules, r)
	e.log.Debug().Str("rule", desc).Msg("rule registered")
	return r.handle
}

func compilePatterns(patterns []string) ([]*rematch.Regex, error) {
	if len(patterns) == 0 {
		return nil, &PatternError{Message: "at least one pattern is required"}
	}
	res := make([]*rematch.Regex, 0, len(patterns))
	for _, p := range patterns {
		re, err := rematch.Compile(p)
		if err != nil {
			return nil, &PatternError{Pattern: p, Message: err.Error()}
		}
		res = append(res, re)
	}
	return res, nil
}

func quoteAll(patterns []string) string {
	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return strings.Join(quoted, ", ")
}

// SplitFields returns an enrichment that populates Line.Fields, with the
// separator semantics described at [Engine.Split].
func SplitFields(sep string, maxsplit int) Enrichment {
	return func(l *Line) {
		if sep == "" {
			l.Fields = splitWhitespace(l.Text, maxsplit)
			return
		}
		if maxsplit < 0 {
			l.Fields = strings.Split(l.Text, sep)
			return
		}
		l.Fields = strings.SplitN(l.Text, sep, maxsplit+1)
	}
}

// splitWhitespace splits on runs of whitespace, performing at most maxsplit
// splits (-1 for unlimited). Leading and trailing whitespace yield no empty
// fields.
func splitWhitespace(s string, maxsplit int) []string {
	if maxsplit < 0 {
		return strings.Fields(s)
	}
	var fields []string
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for maxsplit > 0 && s != "" {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			break
		}
		fields = append(fields, s[:i])
		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
		maxsplit--
	}
	if s = strings.TrimRightFunc(s, unicode.IsSpace); s != "" {
		fields = append(fields, s)
	}
	return fields
}
