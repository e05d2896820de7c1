package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"tally/internal/diag"
	"tally/internal/diagfmt"
	"tally/internal/driver"
	"tally/internal/interp"
)

const (
	replPrompt      = "tally > "
	historyFileName = ".tally_history"
)

const replHelp = `:tokens  toggle printing tokens
:tree    toggle printing the syntax tree
:vars    list bindings
:reset   drop all bindings
:quit    exit
`

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Read programs line by line and print their values.
Bindings made with var survive across lines.`,
		Args: cobra.NoArgs,
		RunE: traced(runRepl),
	}
	cmd.Flags().Bool("no-history", false, "do not read or write the history file")
	return cmd
}

// replState is one interactive session. Each line is a separate program
// named <stdin>; only the bindings carry over.
type replState struct {
	ctx        context.Context
	st         *settings
	session    *interp.Session
	out        io.Writer
	errOut     io.Writer
	showTokens bool
	showTree   bool
}

func newReplState(ctx context.Context, st *settings, out, errOut io.Writer) *replState {
	return &replState{
		ctx:     ctx,
		st:      st,
		session: interp.NewSession(st.cfg.Run.Root, interp.Options{}),
		out:     out,
		errOut:  errOut,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	noHistory, _ := cmd.Flags().GetBool("no-history")
	r := newReplState(cmd.Context(), st, cmd.OutOrStdout(), cmd.ErrOrStderr())

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return r.interactive(noHistory)
	}
	return r.scan(in)
}

// interactive reads lines through liner with editing and history.
func (r *replState) interactive(noHistory bool) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if !noHistory {
		historyPath = historyFile()
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	for {
		text, err := line.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}
		if r.processLine(text) {
			break
		}
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

// scan evaluates piped input without prompts.
func (r *replState) scan(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if r.processLine(scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// processLine handles one line and reports whether the session should end.
func (r *replState) processLine(line string) bool {
	command := strings.TrimSpace(line)
	switch command {
	case "":
		return false
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprint(r.out, replHelp)
		return false
	case ":tokens":
		r.showTokens = !r.showTokens
		fmt.Fprintf(r.out, "tokens %s\n", onOff(r.showTokens))
		return false
	case ":tree":
		r.showTree = !r.showTree
		fmt.Fprintf(r.out, "tree %s\n", onOff(r.showTree))
		return false
	case ":vars":
		symbols := r.session.Symbols()
		for _, name := range symbols.Names() {
			v, _ := symbols.Get(name)
			fmt.Fprintf(r.out, "%s = %s\n", name, v)
		}
		return false
	case ":reset":
		r.session.Reset()
		fmt.Fprintln(r.out, "bindings cleared")
		return false
	}
	if strings.HasPrefix(command, ":") {
		fmt.Fprintf(r.errOut, "unknown command %s (try :help)\n", command)
		return false
	}

	// Строку не обрезаем: колонки в диагностике должны совпадать с вводом
	res := driver.EvalSource(r.ctx, stdinName, line, r.st.driverOptions(r.session))
	if r.showTokens && res.Tokens != nil {
		_ = diagfmt.FormatTokensPretty(r.out, res.Tokens, res.FileSet)
	}
	if r.showTree && res.Tree != nil {
		_ = diagfmt.FormatTreePretty(r.out, res.Tree, res.FileSet)
	}
	if res.Diag != nil {
		_ = diagfmt.Pretty(r.errOut, []*diag.Diagnostic{res.Diag}, res.FileSet, diagfmt.PrettyOpts{Color: r.st.stderrColor})
	} else {
		fmt.Fprintln(r.out, res.Value.String())
	}
	if r.st.cfg.Output.Timings {
		printStageTimings(r.errOut, res.Timer)
	}
	return false
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
