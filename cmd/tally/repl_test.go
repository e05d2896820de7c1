package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/project"
)

func newTestRepl(t *testing.T) (*replState, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	st := &settings{cfg: project.Defaults()}
	return newReplState(context.Background(), st, &out, &errOut), &out, &errOut
}

func TestReplBindingsPersist(t *testing.T) {
	r, out, errOut := newTestRepl(t)

	for _, line := range []string{"var x = 5", "x * 2", "var y = x / 2", ":vars"} {
		require.False(t, r.processLine(line), line)
	}
	assert.Equal(t, "5\n10\n2.5\nx = 5\ny = 2.5\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestReplReset(t *testing.T) {
	r, out, errOut := newTestRepl(t)

	r.processLine("var x = 1")
	r.processLine(":reset")
	r.processLine("x")
	assert.Equal(t, "1\nbindings cleared\n", out.String())
	assert.Contains(t, errOut.String(), "'x' is not defined")
}

func TestReplErrorKeepsSession(t *testing.T) {
	r, out, errOut := newTestRepl(t)

	r.processLine("var a = 3")
	r.processLine("a / 0")
	r.processLine("a + 1")
	assert.Equal(t, "3\n4\n", out.String())
	// каждая строка - отдельная программа <stdin> с новым корневым кадром
	assert.Contains(t, errOut.String(), "File <stdin>, line 1\n")
	assert.Contains(t, errOut.String(), "  in <program>, at 1\n")
	assert.Contains(t, errOut.String(), "a / 0\n    ^")

	// строка с ошибкой не оставляет вложенных привязок
	r.processLine("var b = (var c = 1) / 0")
	out.Reset()
	r.processLine(":vars")
	assert.Equal(t, "a = 3\n", out.String())
}

func TestReplCommands(t *testing.T) {
	r, out, errOut := newTestRepl(t)

	assert.False(t, r.processLine("   "))
	assert.False(t, r.processLine(":tree"))
	assert.False(t, r.processLine("1"))
	assert.True(t, strings.HasPrefix(out.String(), "tree on\n"), out.String())
	assert.Contains(t, out.String(), "Number 1")

	out.Reset()
	assert.False(t, r.processLine(":tokens"))
	assert.False(t, r.processLine(":tree"))
	assert.False(t, r.processLine("2"))
	assert.Contains(t, out.String(), "tokens on\n")
	assert.Contains(t, out.String(), "IntLit")

	assert.False(t, r.processLine(":bogus"))
	assert.Contains(t, errOut.String(), "unknown command :bogus")

	assert.True(t, r.processLine(":quit"))
	assert.True(t, r.processLine(" :q "))
}

func TestReplFromPipe(t *testing.T) {
	res := runCLI(t, "var y = 2\ny + 1\n:quit\n9\n", "repl", "--no-history")
	require.NoError(t, res.err)
	assert.Equal(t, "2\n3\n", res.stdout)
}
