package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota
	LevelError        // ring only, dumped when a command fails
	LevelPhase        // driver + stage boundaries
	LevelDetail       // per-file spans of batch runs
	LevelDebug        // everything including node-level
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// finestScope is the deepest scope each level records; zero means none.
var finestScope = [...]Scope{
	LevelPhase:  ScopeStage,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a string to a Level (case-insensitive).
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == want {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope are written at this level.
// LevelError writes nothing directly; it only feeds the ring.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(finestScope) {
		return false
	}
	return scope <= finestScope[l]
}
