package spawk

import (
	"fmt"
	"io"

	"github.com/linsomniac/spawk/internal/rematch"
)

// Action is the callback bound to a rule. It receives the engine's Context
// and the current line. Returning an error aborts the run; returning the
// Continue sentinel skips the remaining rules for this line.
type Action[T any] func(*Context[T], Line) error

// Predicate decides whether an Eval rule fires for a line.
type Predicate[T any] func(*Context[T], Line) (bool, error)

// Enrichment transforms a line in place before rule evaluation, e.g. to
// populate Line.Fields. Enrichments run in registration order.
type Enrichment func(*Line)

// Rule is an opaque handle to a registered rule, usable with
// [Engine.Remove]. Its String method describes the rule for diagnostics.
type Rule struct {
	id   int
	desc string
}

func (r *Rule) String() string {
	return r.desc
}

type ruleKind int

const (
	ruleGrep ruleKind = iota
	ruleFilter
	rulePattern
	ruleEvery
	ruleRange
	ruleEval
)

// rule carries the matcher, action, and per-rule state for one registration.
type rule[T any] struct {
	handle   *Rule
	kind     ruleKind
	patterns []*rematch.Regex // grep, filter
	pattern  *rematch.Regex   // pattern
	start    *rematch.Regex   // range
	end      *rematch.Regex   // range
	pred     Predicate[T]     // eval
	action   Action[T]

	// range tracker state
	inRange bool
	rng     RangeInfo
}

// search runs re against s and builds the public Match, or nil on no match.
func search(re *rematch.Regex, s string) *Match {
	loc := re.SearchIndex(s)
	if loc == nil {
		return nil
	}
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return &Match{Text: groups[0], Groups: groups, Start: loc[0], End: loc[1]}
}

// dispatch evaluates the rule against line, invoking the action on a match.
// Scratch state on c is set before the action and cleared after, so one
// rule's state is never visible to another rule.
func (r *rule[T]) dispatch(c *Context[T], line Line, out io.Writer) error {
	switch r.kind {
	case ruleGrep:
		for _, re := range r.patterns {
			if re.Match(line.Text) {
				if _, err := fmt.Fprintln(out, line.Text); err != nil {
					return fmt.Errorf("writing match: %w", err)
				}
				break
			}
		}
		return nil

	case ruleFilter:
		for _, re := range r.patterns {
			if re.Match(line.Text) {
				return nil
			}
		}
		return Continue

	case rulePattern:
		m := search(r.pattern, line.Text)
		if m == nil {
			return nil
		}
		c.Regex = m
		err := r.action(c, line)
		c.Regex = nil
		return err

	case ruleEvery:
		// No match to expose: the action runs with Context.Regex unset.
		return r.action(c, line)

	case ruleEval:
		ok, err := r.pred(c, line)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return r.action(c, line)

	case ruleRange:
		return r.dispatchRange(c, line)
	}
	return nil
}

// dispatchRange implements the Outside/Inside region state machine.
//
// The end pattern is checked on the entry line too, so a line matching both
// start and end opens and closes the region in one step (LineNumber 1,
// IsLastLine true). The tracker returns to Outside strictly after the
// closing line's action, so a later start match opens a fresh region.
func (r *rule[T]) dispatchRange(c *Context[T], line Line) error {
	if !r.inRange {
		m := search(r.start, line.Text)
		if m == nil {
			return nil
		}
		r.inRange = true
		r.rng = RangeInfo{Regex: m}
	}

	r.rng.LineNumber++
	if m := search(r.end, line.Text); m != nil {
		r.rng.Regex = m
		r.rng.IsLastLine = true
	}

	c.Range = &r.rng
	err := r.action(c, line)
	c.Range = nil

	if r.rng.IsLastLine {
		r.inRange = false
		r.rng = RangeInfo{}
	}
	return err
}
