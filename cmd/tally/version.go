package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"tally/internal/diagfmt"
	"tally/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool" msgpack:"tool"`
	Version   string `json:"version" msgpack:"version"`
	GitCommit string `json:"git_commit,omitempty" msgpack:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" msgpack:"build_date,omitempty"`
	Platform  string `json:"platform" msgpack:"platform"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tally build information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	colorMode, _ := cmd.Flags().GetString("color")

	out := cmd.OutOrStdout()
	switch format {
	case diagfmt.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(collectVersion())
	case diagfmt.FormatMsgpack:
		return msgpack.NewEncoder(out).Encode(collectVersion())
	}
	_, err = fmt.Fprintln(out, version.Banner(useColor(colorMode, out)))
	return err
}

func collectVersion() versionPayload {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionPayload{
		Tool:      "tally",
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

