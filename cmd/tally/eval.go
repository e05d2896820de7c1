package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tally/internal/diagfmt"
	"tally/internal/driver"
	"tally/internal/source"
)

// stdinName is the source name of programs that do not come from a file.
const stdinName = "<stdin>"

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [FILE]",
		Short: "Evaluate a program from a file, -e or stdin",
		Long: `Evaluate one program and print its value.
Without FILE (or with "-") the program is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: traced(runEval),
	}
	cmd.Flags().StringP("expr", "e", "", "evaluate EXPR instead of reading a file")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	fs, id, err := evalInput(cmd, args)
	if err != nil {
		return err
	}

	res := driver.Eval(cmd.Context(), fs, id, st.driverOptions(nil))
	defer st.printTimings(cmd, res.Timer)

	if st.format != diagfmt.FormatPretty {
		out := diagfmt.BuildResultOutput(res.File.Name(), res.Value, res.Diag, fs)
		if err := diagfmt.WriteResults(cmd.OutOrStdout(), st.format, []diagfmt.ResultOutput{out}); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		if res.Diag != nil {
			return errReported
		}
		return nil
	}
	if res.Diag != nil {
		return st.report(cmd, fs, res.Diag)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Value.String())
	return err
}

// evalInput registers the program text: -e wins, then FILE, then stdin.
func evalInput(cmd *cobra.Command, args []string) (*source.FileSet, source.FileID, error) {
	if cmd.Flags().Changed("expr") {
		if len(args) > 0 {
			return nil, 0, fmt.Errorf("eval: -e and FILE are mutually exclusive")
		}
		expr, _ := cmd.Flags().GetString("expr")
		fs := source.NewFileSet()
		return fs, fs.AddVirtual(stdinName, []byte(expr)), nil
	}
	if len(args) == 1 && args[0] != "-" {
		return driver.LoadFile(args[0])
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, 0, fmt.Errorf("read stdin: %w", err)
	}
	fs := source.NewFileSet()
	return fs, fs.AddVirtual(stdinName, data), nil
}
