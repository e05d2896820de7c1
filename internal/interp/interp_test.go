package interp_test

import (
	"strings"
	"testing"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/interp"
	"tally/internal/lexer"
	"tally/internal/parser"
	"tally/internal/source"
	"tally/internal/trace"
)

func mustTree(t *testing.T, input string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	toks, lexErr := lexer.TokenizeSource(fs, "test.tly", input)
	if lexErr != nil {
		t.Fatalf("tokenize %q: %v", input, lexErr)
	}
	tree, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return tree
}

func spanText(input string, sp source.Span) string {
	return input[sp.Start.Offset:sp.End.Offset]
}

func TestEvaluateValues(t *testing.T) {
	tests := []struct {
		input string
		want  string
		float bool
	}{
		{"42", "42", false},
		{"2 + 3 * 4", "14", false},
		{"(2 + 3) * 4", "20", false},
		{"10 - 4 - 3", "3", false},
		{"--5", "5", false},
		{"-(2 - 7)", "5", false},
		{"7 / 2", "3.5", true},
		{"4 / 2", "2.0", true},
		{"1.5 * 2", "3.0", true},
		{"1 + 0.5", "1.5", true},
		{"0.1 + 0.2", "0.30000000000000004", true},
		{"var a = 5", "5", false},
		{"var a = var b = 3", "3", false},
		{"(var a = 2) * a", "4", false},
		{"1 / 3 * 3", "1.0", true},
		{"-0.0", "-0.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := interp.Evaluate(mustTree(t, tt.input), "<stdin>")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			if got.IsFloat() != tt.float {
				t.Errorf("IsFloat = %v, want %v", got.IsFloat(), tt.float)
			}
		})
	}
}

func TestResultCarriesNodeSpan(t *testing.T) {
	input := " 2 + 3 * 4 "
	tree := mustTree(t, input)
	root := interp.NewRootContext("<stdin>")
	got, err := interp.New(nil, interp.Options{}).Eval(tree, root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := spanText(input, got.Span); s != "2 + 3 * 4" {
		t.Errorf("span text %q", s)
	}
	if got.Context != root {
		t.Errorf("value context is not the root frame")
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		code     diag.Code
		msg      string
		at       string
		frames   []string
		frameAts []string
	}{
		{
			name: "div zero int", input: "5 / 0",
			code: diag.RunDivisionByZero, msg: "Division by zero", at: "0",
			frames: []string{"<stdin>"}, frameAts: []string{"0"},
		},
		{
			name: "div zero float", input: "1 + 5 / (2 - 2.0)",
			code: diag.RunDivisionByZero, msg: "Division by zero", at: "2 - 2.0",
			frames: []string{"<stdin>"}, frameAts: []string{"2 - 2.0"},
		},
		{
			name: "div negative zero", input: "1 / -0.0",
			code: diag.RunDivisionByZero, msg: "Division by zero", at: "-0.0",
			frames: []string{"<stdin>"}, frameAts: []string{"-0.0"},
		},
		{
			name: "undefined", input: "x + 1",
			code: diag.RunUndefinedName, msg: "'x' is not defined", at: "x",
			frames: []string{"<stdin>"}, frameAts: []string{"x"},
		},
		{
			name: "overflow add", input: "9223372036854775807 + 1",
			code: diag.RunIntegerOverflow, msg: "Integer overflow", at: "9223372036854775807 + 1",
			frames: []string{"<stdin>"}, frameAts: []string{"9223372036854775807 + 1"},
		},
		{
			name: "overflow sub", input: "-9223372036854775807 - 2",
			code: diag.RunIntegerOverflow, msg: "Integer overflow", at: "-9223372036854775807 - 2",
			frames: []string{"<stdin>"}, frameAts: []string{"-9223372036854775807 - 2"},
		},
		{
			name: "inside var", input: "var a = 1 / 0",
			code: diag.RunDivisionByZero, msg: "Division by zero", at: "0",
			frames: []string{"<stdin>", "a"}, frameAts: []string{"var a = 1 / 0", "0"},
		},
		{
			name: "nested var", input: "var a = var b = y",
			code: diag.RunUndefinedName, msg: "'y' is not defined", at: "y",
			frames:   []string{"<stdin>", "a", "b"},
			frameAts: []string{"var a = var b = y", "var b = y", "y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interp.Evaluate(mustTree(t, tt.input), "<stdin>")
			if err == nil {
				t.Fatal("expected runtime error")
			}
			if err.Kind != diag.RuntimeError {
				t.Errorf("kind = %s", err.Kind)
			}
			if err.Code != tt.code {
				t.Errorf("code = %s, want %s", err.Code.ID(), tt.code.ID())
			}
			if err.Message != tt.msg {
				t.Errorf("message = %q, want %q", err.Message, tt.msg)
			}
			if s := spanText(tt.input, err.Span); s != tt.at {
				t.Errorf("span text = %q, want %q", s, tt.at)
			}
			if len(err.Traceback) != len(tt.frames) {
				t.Fatalf("traceback has %d frames, want %d", len(err.Traceback), len(tt.frames))
			}
			for i, fr := range err.Traceback {
				if fr.Name != tt.frames[i] {
					t.Errorf("frame %d name = %q, want %q", i, fr.Name, tt.frames[i])
				}
				if s := spanText(tt.input, fr.Span); s != tt.frameAts[i] {
					t.Errorf("frame %d at %q, want %q", i, s, tt.frameAts[i])
				}
			}
		})
	}
}

func TestLeftOperandFailsFirst(t *testing.T) {
	input := "a / 0"
	_, err := interp.Evaluate(mustTree(t, input), "")
	if err == nil || err.Code != diag.RunUndefinedName {
		t.Fatalf("expected undefined name, got %v", err)
	}
	if err.Traceback[0].Name != interp.DefaultRootName {
		t.Errorf("root frame %q", err.Traceback[0].Name)
	}
}

func TestContextTraceback(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t", []byte("abcdef\nghi"))
	sp := func(a, b uint32) source.Span {
		f := fs.Get(id)
		return source.NewSpan(id, f.PositionAt(a), f.PositionAt(b))
	}
	root := interp.NewRootContext("<program>")
	child := root.Child("f", sp(0, 3))
	inner := child.Child("g", sp(7, 8))

	if inner.Depth() != 2 || inner.Root() != root {
		t.Fatalf("bad chain: depth %d", inner.Depth())
	}
	frames := inner.Traceback(sp(8, 9))
	if len(frames) != 3 {
		t.Fatalf("got %d frames", len(frames))
	}
	wantNames := []string{"<program>", "f", "g"}
	wantOffsets := []uint32{0, 7, 8}
	for i, fr := range frames {
		if fr.Name != wantNames[i] || fr.Span.Start.Offset != wantOffsets[i] {
			t.Errorf("frame %d = %s@%d", i, fr.Name, fr.Span.Start.Offset)
		}
	}
	if frames[2].Span.Start.Line != 1 {
		t.Errorf("innermost line = %d", frames[2].Span.Start.Line)
	}
}

func TestSessionKeepsBindings(t *testing.T) {
	s := interp.NewSession("<stdin>", interp.Options{})

	if _, err := s.Eval(mustTree(t, "var x = 4")); err != nil {
		t.Fatalf("assign: %v", err)
	}
	got, err := s.Eval(mustTree(t, "x * x"))
	if err != nil || got.String() != "16" {
		t.Fatalf("x*x = %v, %v", got, err)
	}

	// неудачное присваивание ничего не связывает
	if _, err := s.Eval(mustTree(t, "var y = 1 / 0")); err == nil {
		t.Fatal("expected division error")
	}
	if _, err := s.Eval(mustTree(t, "y")); err == nil || err.Code != diag.RunUndefinedName {
		t.Fatalf("y should stay undefined, got %v", err)
	}

	// вложенный var перед ошибкой тоже откатывается
	if _, err := s.Eval(mustTree(t, "var q = 1 + (var p = 2) / 0")); err == nil || err.Code != diag.RunDivisionByZero {
		t.Fatalf("expected division error, got %v", err)
	}
	for _, name := range []string{"p", "q"} {
		if _, ok := s.Symbols().Get(name); ok {
			t.Errorf("%s bound after failed line", name)
		}
	}
	if v, _ := s.Symbols().Get("x"); v.String() != "4" {
		t.Errorf("failed line changed x to %s", v)
	}

	if _, err := s.Eval(mustTree(t, "var x = 2.5")); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Symbols().Get("x"); v.String() != "2.5" {
		t.Errorf("rebinding: x = %s", v)
	}
	if names := strings.Join(s.Symbols().Names(), ","); names != "x" {
		t.Errorf("names = %s", names)
	}

	s.Reset()
	if s.Symbols().Len() != 0 {
		t.Error("reset kept bindings")
	}
}

func TestEvaluateIsolatesBindings(t *testing.T) {
	if _, err := interp.Evaluate(mustTree(t, "var z = 1"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := interp.Evaluate(mustTree(t, "z"), ""); err == nil {
		t.Fatal("binding leaked between evaluations")
	}
}

func TestNodeTracePoints(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	in := interp.New(nil, interp.Options{Tracer: ring})
	if _, err := in.Eval(mustTree(t, "1 + 2 * 3"), interp.NewRootContext("<stdin>")); err != nil {
		t.Fatal(err)
	}
	if in.Steps() != 5 {
		t.Errorf("steps = %d, want 5", in.Steps())
	}
	events := ring.Snapshot()
	if len(events) != 5 {
		t.Fatalf("got %d events", len(events))
	}
	last := events[len(events)-1]
	if last.Scope != trace.ScopeNode || last.Name != "BinOp" || !strings.Contains(last.Detail, "= 7") {
		t.Errorf("last event = %+v", last)
	}
}
