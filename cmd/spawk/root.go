package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/linsomniac/spawk"
)

func newRootCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:     "spawk",
		Short:   "AWK-style rule processing for line-oriented text",
		Long: `spawk processes line-oriented text with declarative rules: regex
patterns, start/end ranges, and boolean expressions bound to actions.
It can read static files or stdin, or follow a growing, possibly-rotated
file like tail -F.`,
		Version:       spawk.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbosity)
		},
	}
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv)")

	cmd.AddCommand(
		newGrepCmd(),
		newWhereCmd(),
		newRangeCmd(),
		newDedupCmd(),
		newFollowCmd(),
	)
	return cmd
}

// setupLogging configures the global zerolog logger by verbosity level.
func setupLogging(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()
}

// followFlags are the input flags shared by commands that can tail a file.
type followFlags struct {
	follow    bool
	fromStart bool
	interval  time.Duration
}

func (f *followFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.follow, "follow", "f", false, "follow the file as it grows (tail -F)")
	cmd.Flags().BoolVar(&f.fromStart, "from-start", false, "with --follow, replay existing content first")
	cmd.Flags().DurationVar(&f.interval, "interval", time.Second, "poll interval when following")
}

// openInput builds the line source for an optional FILE argument. An empty
// path or "-" means stdin. The returned func releases the source.
func openInput(path string, f followFlags) (spawk.Source, func(), error) {
	if f.follow {
		if path == "" || path == "-" {
			return nil, nil, errors.New("--follow requires a file path")
		}
		cfg := &spawk.FollowerConfig{
			PollInterval: f.interval,
			Start:        spawk.StartAtEnd,
			Logger:       &log.Logger,
		}
		if f.fromStart {
			cfg.Start = spawk.StartAtBeginning
		}
		return spawk.NewFileFollower(path, cfg), func() {}, nil
	}

	if path == "" || path == "-" {
		return spawk.NewReaderSource(os.Stdin), func() {}, nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return spawk.NewReaderSource(fp), func() { fp.Close() }, nil
}

// runEngine runs the engine, treating cancellation (Ctrl-C on a follow) as
// a clean exit.
func runEngine[T any](ctx context.Context, eng *spawk.Engine[T]) error {
	err := eng.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// optionalFileArg extracts the optional trailing FILE argument.
func optionalFileArg(args []string, fixed int) string {
	if len(args) > fixed {
		return args[fixed]
	}
	return ""
}

// printLine is the action used by commands that emit matching lines.
func printLine[T any](c *spawk.Context[T], line spawk.Line) error {
	_, err := fmt.Println(line.Text)
	return err
}
