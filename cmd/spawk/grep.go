package main

import (
	"github.com/spf13/cobra"

	"github.com/linsomniac/spawk"
)

func newGrepCmd() *cobra.Command {
	var extra []string
	var ff followFlags

	cmd := &cobra.Command{
		Use:   "grep PATTERN [FILE]",
		Short: "Print lines matching a regular expression",
		Long: `Print every line the pattern searches true against. Additional
patterns given with -e are combined as an "or": a line matching any of
them is printed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := append([]string{args[0]}, extra...)

			src, done, err := openInput(optionalFileArg(args, 1), ff)
			if err != nil {
				return err
			}
			defer done()

			eng := spawk.New(src, struct{}{}, nil)
			if _, err := eng.Grep(patterns...); err != nil {
				return err
			}
			return runEngine(cmd.Context(), eng)
		},
	}
	cmd.Flags().StringArrayVarP(&extra, "regexp", "e", nil, "additional pattern (any match prints)")
	ff.register(cmd)
	return cmd
}
