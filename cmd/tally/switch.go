package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// autoSwitch is an auto|on|off setting; auto defers to whether the output
// is a terminal. It backs --ui and the colour setting.
type autoSwitch string

const (
	switchAuto autoSwitch = "auto"
	switchOn   autoSwitch = "on"
	switchOff  autoSwitch = "off"
)

func parseAutoSwitch(value string) (autoSwitch, error) {
	switch v := autoSwitch(strings.TrimSpace(strings.ToLower(value))); v {
	case "":
		return switchAuto, nil
	case switchAuto, switchOn, switchOff:
		return v, nil
	}
	return "", fmt.Errorf("invalid value %q (expected auto|on|off)", value)
}

// Set implements pflag.Value.
func (s *autoSwitch) Set(value string) error {
	v, err := parseAutoSwitch(value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s *autoSwitch) String() string { return string(*s) }

func (s *autoSwitch) Type() string { return "auto|on|off" }

// enabledFor resolves the switch for output written to w.
func (s autoSwitch) enabledFor(w io.Writer) bool {
	switch s {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
