package main

import (
	"github.com/spf13/cobra"

	"github.com/linsomniac/spawk"
)

func newRangeCmd() *cobra.Command {
	var ff followFlags

	cmd := &cobra.Command{
		Use:   "range START END [FILE]",
		Short: "Print line regions bounded by start and end patterns",
		Long: `Print every line from one matching START through one matching END,
inclusive. Regions may repeat; a line matching both patterns forms a
one-line region.

Example (extract CREATE TABLE statements from a schema dump):
  spawk range 'CREATE TABLE' '\);' schema.sql`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, done, err := openInput(optionalFileArg(args, 2), ff)
			if err != nil {
				return err
			}
			defer done()

			eng := spawk.New(src, struct{}{}, nil)
			if _, err := eng.Range(args[0], args[1], printLine[struct{}]); err != nil {
				return err
			}
			return runEngine(cmd.Context(), eng)
		},
	}
	ff.register(cmd)
	return cmd
}
