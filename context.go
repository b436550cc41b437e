package spawk

// Match holds the result of a successful regex search.
type Match struct {
	// Text is the matched portion of the line.
	Text string

	// Groups holds the capture groups. Groups[0] is the whole match;
	// groups that did not participate are empty strings.
	Groups []string

	// Start and End bound the whole match within the line text.
	Start, End int
}

// Group returns capture group i, or "" if the match is nil or i is out of
// range. Group(0) is the whole match.
func (m *Match) Group(i int) string {
	if m == nil || i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// RangeInfo is the region-local state a Range rule's action sees while a
// region is open.
type RangeInfo struct {
	// LineNumber is the 1-based ordinal of the current line within the
	// region. It resets to 1 on every region entry.
	LineNumber int

	// IsLastLine is true exactly on the line matching the end pattern.
	IsLastLine bool

	// Regex is the start pattern's match for every line of the region
	// except the closing line, where it is the end pattern's match.
	Regex *Match
}

// Context is the mutable, pipeline-scoped state shared across rule
// invocations. One Context exists per Engine, created at construction and
// never reset.
//
// Data is owned exclusively by the caller; the engine passes it into every
// action and predicate untouched. Regex and Range are engine-managed scratch
// state, valid only during the action invocation they were set for.
type Context[T any] struct {
	// Data is the caller-supplied state slot for accumulating cross-line
	// state.
	Data T

	// Regex is the match produced by the currently-firing Pattern rule.
	Regex *Match

	// Range is the region state of the currently-firing Range rule, nil
	// outside of an active region.
	Range *RangeInfo
}
