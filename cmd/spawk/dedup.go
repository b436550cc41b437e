package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linsomniac/spawk"
)

// dedupState tracks the last emitted line for adjacent-duplicate removal.
type dedupState struct {
	last string
	seen bool
}

func newDedupCmd() *cobra.Command {
	var ff followFlags

	cmd := &cobra.Command{
		Use:   "dedup [FILE]",
		Short: "Suppress adjacent duplicate lines (like uniq)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, done, err := openInput(optionalFileArg(args, 0), ff)
			if err != nil {
				return err
			}
			defer done()

			eng := spawk.New(src, &dedupState{}, nil)
			eng.Eval(
				func(c *spawk.Context[*dedupState], line spawk.Line) (bool, error) {
					return !c.Data.seen || c.Data.last != line.Text, nil
				},
				func(c *spawk.Context[*dedupState], line spawk.Line) error {
					c.Data.last = line.Text
					c.Data.seen = true
					_, err := fmt.Println(line.Text)
					return err
				},
			)
			return runEngine(cmd.Context(), eng)
		},
	}
	ff.register(cmd)
	return cmd
}
