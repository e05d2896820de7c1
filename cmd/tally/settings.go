package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tally/internal/diag"
	"tally/internal/diagfmt"
	"tally/internal/driver"
	"tally/internal/interp"
	"tally/internal/observ"
	"tally/internal/project"
	"tally/internal/source"
)

// settings is the project config with command-line overrides applied.
type settings struct {
	cfg            project.Config
	format         diagfmt.Format
	maxDiagnostics int
	stdoutColor    bool
	stderrColor    bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg project.Config
	if path != "" {
		cfg, err = project.Load(path)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		cfg, err = project.Discover(wd)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// Флаги перекрывают конфиг, только если заданы явно
	if flags.Changed("color") {
		cfg.Output.Color, _ = flags.GetString("color")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("timings") {
		cfg.Output.Timings, _ = flags.GetBool("timings")
	}
	if flags.Changed("max-depth") {
		cfg.Run.MaxDepth, _ = flags.GetInt("max-depth")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	format, err := diagfmt.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	maxDiags, _ := flags.GetInt("max-diagnostics")

	return &settings{
		cfg:            cfg,
		format:         format,
		maxDiagnostics: maxDiags,
		stdoutColor:    useColor(cfg.Output.Color, cmd.OutOrStdout()),
		stderrColor:    useColor(cfg.Output.Color, cmd.ErrOrStderr()),
	}, nil
}

// useColor resolves the colour setting for w; NO_COLOR turns auto off.
func useColor(mode string, w io.Writer) bool {
	sw, err := parseAutoSwitch(mode)
	if err != nil {
		return false
	}
	if sw == switchAuto && os.Getenv("NO_COLOR") != "" {
		return false
	}
	return sw.enabledFor(w)
}

func (s *settings) driverOptions(session *interp.Session) driver.Options {
	return driver.Options{
		RootName: s.cfg.Run.Root,
		MaxDepth: s.cfg.Run.MaxDepth,
		Session:  session,
	}
}

// report prints d and returns errReported. Pretty output goes to stderr,
// machine formats to stdout so they can be piped.
func (s *settings) report(cmd *cobra.Command, fs *source.FileSet, d *diag.Diagnostic) error {
	w, color := cmd.ErrOrStderr(), s.stderrColor
	if s.format != diagfmt.FormatPretty {
		w, color = cmd.OutOrStdout(), false
	}
	if err := diagfmt.WriteDiagnostics(w, s.format, []*diag.Diagnostic{d}, fs, color); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	return errReported
}

func (s *settings) printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if !s.cfg.Output.Timings || timer == nil {
		return
	}
	printStageTimings(cmd.ErrOrStderr(), timer)
}
