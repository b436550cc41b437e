package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/linsomniac/spawk"
)

func newFollowCmd() *cobra.Command {
	var fromStart bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "follow PATH",
		Short: "Print a file's lines as it grows (tail -F)",
		Long: `Continuously print lines appended to PATH, surviving truncation,
rotation, and temporary removal of the file. The file need not exist
yet. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &spawk.FollowerConfig{
				PollInterval: interval,
				Start:        spawk.StartAtEnd,
				Logger:       &log.Logger,
			}
			if fromStart {
				cfg.Start = spawk.StartAtBeginning
			}

			eng := spawk.New(spawk.NewFileFollower(args[0], cfg), struct{}{}, nil)
			eng.Every(printLine[struct{}])
			return runEngine(cmd.Context(), eng)
		},
	}
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "replay existing content before following")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval")
	return cmd
}
