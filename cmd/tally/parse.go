package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/diagfmt"
	"tally/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE:  traced(runParse),
	}
	cmd.Flags().Bool("sexpr", false, "print the tree as one s-expression")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	sexpr, err := cmd.Flags().GetBool("sexpr")
	if err != nil {
		return fmt.Errorf("failed to get sexpr flag: %w", err)
	}
	fs, id, err := driver.LoadFile(args[0])
	if err != nil {
		return err
	}

	res := driver.Parse(cmd.Context(), fs, id, st.driverOptions(nil))
	defer st.printTimings(cmd, res.Timer)
	if res.Diag != nil {
		return st.report(cmd, fs, res.Diag)
	}
	if sexpr {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), diagfmt.Sexpr(res.Tree))
		return err
	}
	if err := diagfmt.WriteTree(cmd.OutOrStdout(), st.format, res.Tree, fs); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}
