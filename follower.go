package spawk

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/linsomniac/spawk/internal/linebuf"
)

// readBlockSize is the chunk size for follower reads.
const readBlockSize = 32 * 1024

// FileFollower is a Source that watches a file path and yields newly
// appended lines, "tail -F"-like. It transparently recovers from three
// disruptive events:
//
//   - truncation: the file shrinks in place; it is reopened at offset 0
//   - rotation: the file is replaced at the same path; detected via file
//     identity (device/inode) and the new file is read from its start,
//     after any remaining content from the old file has been drained
//   - removal: the path is missing; the follower polls until it reappears
//
// Line numbering is continuous across all of these; it never resets.
//
// A partial line at end of file (no terminator yet) is never yielded while
// the file is live; it is completed on a later poll. If the file is
// rotated, truncated, or removed with a partial line buffered, the partial
// is flushed as a final unterminated line rather than discarded.
//
// The sequence is infinite and non-restartable: Next never returns io.EOF,
// it blocks until new data arrives or ctx is cancelled. Following the same
// path again requires a new follower.
type FileFollower struct {
	path     string
	interval time.Duration
	start    StartPos
	window   time.Duration
	log      zerolog.Logger

	file    *os.File
	ident   os.FileInfo
	offset  int64
	opened  bool // a first open has succeeded; Start no longer applies
	lineno  int
	buf     linebuf.Buffer
	pending []string
	block   []byte
}

// NewFileFollower creates a follower for path. If config is nil, defaults
// are used. The file need not exist yet; the follower waits for it.
func NewFileFollower(path string, config *FollowerConfig) *FileFollower {
	if config == nil {
		config = &FollowerConfig{}
	}
	cfg := *config
	cfg.applyDefaults()
	return &FileFollower{
		path:     path,
		interval: cfg.PollInterval,
		start:    cfg.Start,
		window:   cfg.OpenRetryWindow,
		log:      *cfg.Logger,
		block:    make([]byte, readBlockSize),
	}
}

// Next returns the next line, blocking until one is available or ctx is
// cancelled. Cancellation is returned as ctx.Err().
func (f *FileFollower) Next(ctx context.Context) (Line, error) {
	for {
		if len(f.pending) > 0 {
			text := f.pending[0]
			f.pending = f.pending[1:]
			f.lineno++
			return Line{Text: text, Number: f.lineno}, nil
		}
		if err := ctx.Err(); err != nil {
			return Line{}, err
		}

		if f.file == nil {
			if err := f.open(ctx); err != nil {
				return Line{}, err
			}
			continue
		}

		n, err := f.file.Read(f.block)
		if n > 0 {
			f.offset += int64(n)
			f.pending = append(f.pending, f.buf.Write(f.block[:n])...)
			continue
		}
		if err != nil && err != io.EOF {
			f.close(true)
			return Line{}, fmt.Errorf("spawk: reading %s: %w", f.path, err)
		}

		// At end of the open handle. Re-stat the path to distinguish
		// "no new data yet" from removal, rotation, and truncation.
		st, serr := os.Stat(f.path)
		switch {
		case serr != nil:
			f.log.Debug().Str("path", f.path).Msg("followed file gone, waiting for recreation")
			f.close(true)
		case !os.SameFile(st, f.ident):
			f.log.Debug().Str("path", f.path).Msg("followed file rotated, reopening")
			f.close(true)
		case st.Size() < f.offset:
			f.log.Debug().Str("path", f.path).Int64("size", st.Size()).Msg("followed file truncated, reopening")
			f.close(true)
		default:
			if err := sleepCtx(ctx, f.interval); err != nil {
				return Line{}, err
			}
		}
	}
}

// open opens the path, retrying until it succeeds or ctx is cancelled.
// "Not found" is retried at the poll interval indefinitely; other errors
// (e.g. permission denied) are retried with exponential backoff and
// surfaced once the retry window is exhausted.
func (f *FileFollower) open(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = f.window

	for {
		fp, err := os.Open(f.path)
		if err == nil {
			st, serr := fp.Stat()
			if serr == nil {
				f.file = fp
				f.ident = st
				f.offset = 0
				if !f.opened && f.start == StartAtEnd {
					if off, err := fp.Seek(0, io.SeekEnd); err == nil {
						f.offset = off
					}
				}
				f.opened = true
				f.log.Debug().Str("path", f.path).Int64("offset", f.offset).Msg("following file")
				return nil
			}
			fp.Close()
			err = serr
		}

		if os.IsNotExist(err) {
			bo.Reset()
			if werr := sleepCtx(ctx, f.interval); werr != nil {
				return werr
			}
			continue
		}

		d := bo.NextBackOff()
		if d == backoff.Stop {
			return fmt.Errorf("spawk: opening %s: %w", f.path, err)
		}
		f.log.Debug().Err(err).Dur("retry_in", d).Msg("open failed, retrying")
		if werr := sleepCtx(ctx, d); werr != nil {
			return werr
		}
	}
}

// close releases the current handle. When flush is set, a buffered partial
// line is promoted to a pending complete line (the old file is gone, so no
// terminator is coming).
func (f *FileFollower) close(flush bool) {
	if f.file != nil {
		f.file.Close()
		f.file = nil
	}
	f.ident = nil
	f.offset = 0
	if flush {
		if s, ok := f.buf.Flush(); ok {
			f.pending = append(f.pending, s)
		}
	}
}

// sleepCtx sleeps for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
