package main

import (
	"github.com/spf13/cobra"

	"github.com/linsomniac/spawk"
)

func newWhereCmd() *cobra.Command {
	var fieldSep string
	var ff followFlags

	cmd := &cobra.Command{
		Use:   "where EXPR [FILE]",
		Short: "Print lines where a CEL expression is true",
		Long: `Evaluate a CEL expression against every line and print the lines it
is true for. The expression sees line (string), lineno (int), and, when
-F is given, fields (list of string).

Examples:
  spawk where 'lineno % 2 == 0' data.txt
  spawk where -F : 'fields[2] == "0"' /etc/passwd
  spawk where 'line.contains("timeout") && lineno > 100' app.log`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, done, err := openInput(optionalFileArg(args, 1), ff)
			if err != nil {
				return err
			}
			defer done()

			eng := spawk.New(src, struct{}{}, nil)
			if cmd.Flags().Changed("field-separator") {
				eng.Split(fieldSep, -1)
			}
			if _, err := eng.EvalExpr(args[0], printLine[struct{}]); err != nil {
				return err
			}
			return runEngine(cmd.Context(), eng)
		},
	}
	cmd.Flags().StringVarP(&fieldSep, "field-separator", "F", "", "split fields on this separator (empty = whitespace)")
	ff.register(cmd)
	return cmd
}
