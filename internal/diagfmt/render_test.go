package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tally/internal/diag"
	"tally/internal/source"
)

func spanOf(f *source.File, start, end uint32) source.Span {
	return source.NewSpan(f.ID, f.PositionAt(start), f.PositionAt(end))
}

func TestStringWithArrows(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		start, end uint32
		want       string
	}{
		{
			name: "single token",
			src:  "5 / 0", start: 4, end: 5,
			want: "5 / 0\n    ^",
		},
		{
			name: "wide span",
			src:  "1 + foo", start: 4, end: 7,
			want: "1 + foo\n    ^^^",
		},
		{
			name: "empty span gets one caret",
			src:  "(1 + 2", start: 6, end: 6,
			want: "(1 + 2\n      ^",
		},
		{
			name: "second line",
			src:  "1 +\n2 $", start: 6, end: 7,
			want: "2 $\n  ^",
		},
		{
			name: "multi line",
			src:  "(1 +\n 2)", start: 0, end: 8,
			want: "(1 +\n^^^^\n 2)\n^^^",
		},
		{
			name: "tabs stripped after placing carets",
			src:  "\t1 / 0", start: 5, end: 6,
			want: "1 / 0\n     ^",
		},
		{
			name: "multibyte columns",
			src:  "éé $", start: 5, end: 6,
			want: "éé $\n   ^",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			f := fs.Get(fs.AddVirtual("t", []byte(tt.src)))
			got := StringWithArrows(f, spanOf(f, tt.start, tt.end))
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderRuntimeError(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<stdin>", []byte("var a = 1 / 0")))
	errSpan := spanOf(f, 12, 13)
	d := diag.Runtime(diag.RunDivisionByZero, errSpan, "Division by zero", []diag.Frame{
		{Name: "<stdin>", Span: spanOf(f, 0, 13)},
		{Name: "a", Span: errSpan},
	})

	want := strings.Join([]string{
		"Runtime Error: Division by zero",
		"File <stdin>, line 1",
		"Traceback (most recent call last):",
		"  in <stdin>, at 1",
		"  in a, at 1",
		"",
		"var a = 1 / 0",
		"            ^",
	}, "\n")
	if got := Render(d, fs); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderSyntaxErrorHasNoTraceback(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("prog.tly", []byte("1\n(1 + 2")))
	d := diag.New(diag.SynUnclosedParen, spanOf(f, 8, 8), "Expected ')', got end of input")

	got := Render(d, fs)
	if strings.Contains(got, "Traceback") {
		t.Errorf("unexpected traceback:\n%s", got)
	}
	if !strings.HasPrefix(got, "Invalid Syntax: Expected ')'") {
		t.Errorf("header: %q", got)
	}
	if !strings.Contains(got, "File prog.tly, line 2") {
		t.Errorf("missing location line:\n%s", got)
	}
	if !strings.HasSuffix(got, "(1 + 2\n      ^") {
		t.Errorf("excerpt:\n%s", got)
	}
}

func TestPrettyColorKeepsText(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t", []byte("5 $")))
	d := diag.New(diag.LexUnknownChar, spanOf(f, 2, 3), "'$'")

	var plain, colored bytes.Buffer
	if err := Pretty(&plain, []*diag.Diagnostic{d, d}, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := Pretty(&colored, []*diag.Diagnostic{d}, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Count(plain.String(), "Illegal Character: '$'") != 2 {
		t.Errorf("plain output:\n%s", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", colored.String())
	}
	if !strings.Contains(colored.String(), "Illegal Character: '$'") {
		t.Errorf("colored output lost text: %q", colored.String())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPretty, "JSON": FormatJSON, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
