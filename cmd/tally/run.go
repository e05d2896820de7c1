package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tally/internal/diag"
	"tally/internal/diagfmt"
	"tally/internal/driver"
	"tally/internal/observ"
	"tally/internal/source"
	"tally/internal/ui"
)

type runFlags struct {
	ui    autoSwitch
	short bool
	jobs  int
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{ui: switchAuto}
	cmd := &cobra.Command{
		Use:   "run DIR",
		Short: "Evaluate every source file under DIR",
		Long: `Evaluate every source file under DIR in parallel.
Each file is an independent program with its own bindings.`,
		Args: cobra.ExactArgs(1),
		RunE: traced(func(cmd *cobra.Command, args []string) error {
			return runDir(cmd, args, flags)
		}),
	}
	cmd.Flags().Var(&flags.ui, "ui", "show progress UI (auto|on|off)")
	cmd.Flags().BoolVar(&flags.short, "short", false, "print one line per diagnostic")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "max files evaluated in parallel (0 = config or GOMAXPROCS)")
	return cmd
}

func runDir(cmd *cobra.Command, args []string, flags *runFlags) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	jobs := st.cfg.Run.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = flags.jobs
	}

	dir := args[0]
	opts := driver.BatchOptions{
		Options: st.driverOptions(nil),
		Jobs:    jobs,
		Ext:     st.cfg.Run.Ext,
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	// прогресс рисуем в stderr, поэтому смотрим на него, а не на stdout
	if flags.ui.enabledFor(cmd.ErrOrStderr()) && st.format == diagfmt.FormatPretty {
		fileSet, results, err = runDirWithUI(cmd.Context(), cmd.ErrOrStderr(), dir, opts)
	} else {
		fileSet, results, err = driver.EvalDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return err
	}

	if err := writeBatch(cmd, st, fileSet, results, flags.short); err != nil {
		return err
	}
	if st.cfg.Output.Timings {
		printStageTimings(cmd.ErrOrStderr(), observ.Totals(driver.Timers(results)...))
	}
	if driver.Failed(results) > 0 {
		return errReported
	}
	return nil
}

type batchOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

func runDirWithUI(ctx context.Context, out io.Writer, dir string, opts driver.BatchOptions) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListSources(dir, opts.Ext)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		batch := opts
		batch.Sink = driver.ChannelSink{Ch: events}
		fs, results, err := driver.EvalDir(ctx, dir, batch)
		outcomeCh <- batchOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(out, "tally run "+dir, files, events)
	// UI мог выйти раньше: дочитываем, чтобы воркеры не встали на отправке
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

// writeBatch prints values to stdout and diagnostics to stderr in pretty
// mode; machine formats put everything into one result array on stdout.
func writeBatch(cmd *cobra.Command, st *settings, fs *source.FileSet, results []driver.FileResult, short bool) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	bag := diag.NewBag(st.maxDiagnostics)
	outputs := make([]diagfmt.ResultOutput, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "error: %v\n", r.Err)
			continue
		}
		res := r.Result
		if res.Diag != nil {
			bag.Add(res.Diag)
			if st.format == diagfmt.FormatPretty {
				continue
			}
		}
		outputs = append(outputs, diagfmt.BuildResultOutput(r.Path, res.Value, res.Diag, fs))
	}

	if err := diagfmt.WriteResults(stdout, st.format, outputs); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if st.format != diagfmt.FormatPretty {
		return nil
	}

	bag.Sort()
	if short {
		if text := diag.FormatShortDiagnostics(bag.Items(), fs); text != "" {
			if _, err := io.WriteString(stderr, text+"\n"); err != nil {
				return err
			}
		}
	} else if bag.Len() > 0 {
		if err := diagfmt.Pretty(stderr, bag.Items(), fs, diagfmt.PrettyOpts{Color: st.stderrColor}); err != nil {
			return fmt.Errorf("write diagnostics: %w", err)
		}
	}
	if failed := driver.Failed(results); failed > 0 {
		fmt.Fprintf(stderr, "%d of %d files failed\n", failed, len(results))
	}
	return nil
}
