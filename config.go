package spawk

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds configuration options for an Engine.
type Config struct {
	// Output is the sink for lines matched by Grep rules.
	// If nil, os.Stdout is used.
	Output io.Writer

	// Logger receives engine debug events (rule registration, run
	// completion). If nil, logging is disabled.
	Logger *zerolog.Logger
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
}

// StartPos selects where a FileFollower begins reading an existing file.
type StartPos int

const (
	// StartAtBeginning replays existing content, then continues with new
	// data. This is the default.
	StartAtBeginning StartPos = iota

	// StartAtEnd skips existing content and yields only data appended
	// after the follower opens the file.
	StartAtEnd
)

// FollowerConfig holds configuration options for a FileFollower.
type FollowerConfig struct {
	// PollInterval is how long the follower sleeps between polls when no
	// new data is available (default: 1s). It is a liveness tunable, not
	// a correctness constant.
	PollInterval time.Duration

	// Start selects the initial position within an already-existing file
	// (default: StartAtBeginning). It applies only to the first open;
	// files appearing after rotation or recreation are always read from
	// the start.
	Start StartPos

	// OpenRetryWindow bounds retries of open errors other than "not
	// found" (default: 30s). "Not found" is retried indefinitely, since
	// waiting for a file's future existence is the primary use case.
	OpenRetryWindow time.Duration

	// Logger receives follower debug events (opens, rotations,
	// truncations). If nil, logging is disabled.
	Logger *zerolog.Logger
}

// applyDefaults fills in default values for unset FollowerConfig fields.
func (c *FollowerConfig) applyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.OpenRetryWindow <= 0 {
		c.OpenRetryWindow = 30 * time.Second
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
}
