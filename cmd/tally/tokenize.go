package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/diagfmt"
	"tally/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize FILE",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE:  traced(runTokenize),
	}
}

func runTokenize(cmd *cobra.Command, args []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	fs, id, err := driver.LoadFile(args[0])
	if err != nil {
		return err
	}

	res := driver.Tokenize(cmd.Context(), fs, id, st.driverOptions(nil))
	defer st.printTimings(cmd, res.Timer)
	if res.Diag != nil {
		return st.report(cmd, fs, res.Diag)
	}
	if err := diagfmt.WriteTokens(cmd.OutOrStdout(), st.format, res.Tokens, fs); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}
	return nil
}
