// Package linebuf assembles arbitrary byte chunks into complete lines.
//
// It is the framing layer under the file follower: content arrives in
// read-sized blocks that rarely end on a line boundary, and a trailing
// partial line must be held back until its terminator shows up (or the
// producer decides to flush it).
package linebuf

import "bytes"

// Buffer accumulates written chunks and emits complete lines.
// Line terminators ("\n" or "\r\n") are stripped from emitted lines.
// The zero value is ready to use.
type Buffer struct {
	partial []byte
}

// Write appends p to the buffer and returns all newly completed lines.
// Any trailing content without a terminator is retained for the next Write.
func (b *Buffer) Write(p []byte) []string {
	if len(p) == 0 {
		return nil
	}
	b.partial = append(b.partial, p...)

	var lines []string
	for {
		i := bytes.IndexByte(b.partial, '\n')
		if i < 0 {
			break
		}
		line := b.partial[:i]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		lines = append(lines, string(line))
		b.partial = b.partial[i+1:]
	}
	if len(b.partial) == 0 {
		b.partial = nil
	}
	return lines
}

// Flush returns the retained partial line, if any, and empties the buffer.
// Used when the underlying file goes away mid-line.
func (b *Buffer) Flush() (string, bool) {
	if len(b.partial) == 0 {
		return "", false
	}
	s := string(b.partial)
	b.partial = nil
	return s, true
}

// Pending returns the number of buffered bytes awaiting a terminator.
func (b *Buffer) Pending() int {
	return len(b.partial)
}
