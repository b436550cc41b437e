package spawk

// Line is one unit of input text with positional and parsing metadata.
//
// Text never includes the trailing line terminator ("\n" or "\r\n").
// Number is the 1-based ordinal of the line within the overall input
// stream; it increases monotonically and is never reused, even across
// file-follower rotations.
//
// Fields is nil until a split enrichment has run (see [Engine.Split]).
type Line struct {
	Text   string
	Number int
	Fields []string
}

// String returns the line text.
func (l Line) String() string {
	return l.Text
}
