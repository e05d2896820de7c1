package fuzztests

import (
	"context"
	"testing"

	"tally/internal/diag"
	"tally/internal/driver"
	"tally/internal/lexer"
	"tally/internal/parser"
	"tally/internal/source"
	"tally/internal/testkit"
)

func FuzzParser(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.tly", input))
		toks, d := lexer.Tokenize(file)
		if d != nil {
			return
		}
		if driver.CheckDepth(toks, driver.DefaultMaxDepth) != nil {
			return
		}
		tree, d := parser.Parse(toks)
		if d != nil {
			if tree != nil {
				t.Fatalf("tree returned alongside %v", d)
			}
			if d.Kind != diag.InvalidSyntax {
				t.Fatalf("parser reported %s", d.Kind)
			}
			return
		}
		if err := testkit.CheckSpanInvariants(tree, file); err != nil {
			t.Fatal(err)
		}
	})
}

func FuzzEval(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		opts := driver.Options{MaxDepth: driver.DefaultMaxDepth}

		first := driver.EvalSource(context.Background(), "fuzz", string(input), opts)
		second := driver.EvalSource(context.Background(), "fuzz", string(input), opts)

		if first.OK() != second.OK() {
			t.Fatalf("non-deterministic outcome for %q", input)
		}
		if first.OK() {
			if !first.Value.Equal(second.Value) {
				t.Fatalf("values differ: %s vs %s", first.Value, second.Value)
			}
			return
		}
		if first.Diag.Code != second.Diag.Code || first.Diag.Span != second.Diag.Span {
			t.Fatalf("diagnostics differ: %v vs %v", first.Diag, second.Diag)
		}
		if first.Diag.Kind == diag.RuntimeError && len(first.Diag.Traceback) == 0 {
			t.Fatalf("runtime error without traceback: %v", first.Diag)
		}
	})
}
