package spawk

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Source produces the lines an Engine consumes. Next returns io.EOF when
// the source is exhausted; sources that follow a live file never return
// io.EOF and instead block until new data arrives or ctx is cancelled.
type Source interface {
	Next(ctx context.Context) (Line, error)
}

// ReaderSource is a Source over an io.Reader (a static file, stdin, a
// bytes/strings reader). It terminates with io.EOF at end of input.
type ReaderSource struct {
	r      *bufio.Reader
	lineno int
	done   bool
}

// NewReaderSource creates a Source reading line-delimited text from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

// Next returns the next line. A final line without a trailing terminator
// is still yielded.
func (s *ReaderSource) Next(ctx context.Context) (Line, error) {
	if s.done {
		return Line{}, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return Line{}, err
	}

	text, err := s.r.ReadString('\n')
	if err == io.EOF {
		s.done = true
		if text == "" {
			return Line{}, io.EOF
		}
	} else if err != nil {
		return Line{}, err
	}

	s.lineno++
	return Line{Text: trimEOL(text), Number: s.lineno}, nil
}

// trimEOL strips a single trailing "\n" or "\r\n".
func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
