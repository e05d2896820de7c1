package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"tally/internal/ast"
	"tally/internal/lexer"
	"tally/internal/parser"
	"tally/internal/source"
	"tally/internal/token"
)

func parseForTest(t *testing.T, src string) (*ast.Tree, []token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	toks, lexErr := lexer.TokenizeSource(fs, "t.tly", src)
	if lexErr != nil {
		t.Fatalf("tokenize: %v", lexErr)
	}
	tree, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree, toks, fs
}

func TestFormatTreePretty(t *testing.T) {
	tree, _, fs := parseForTest(t, "var a = 2 + 3 * -x")
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, tree, fs); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"t.tly (span: 1:1-1:19)",
		"└─ VarAssign a (span: 1:1-1:19)",
		"   └─ BinOp + (span: 1:9-1:19)",
		"      ├─ Number 2 (span: 1:9-1:10)",
		"      └─ BinOp * (span: 1:13-1:19)",
		"         ├─ Number 3 (span: 1:13-1:14)",
		"         └─ UnaryOp - (span: 1:17-1:19)",
		"            └─ VarAccess x (span: 1:18-1:19)",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSexpr(t *testing.T) {
	tests := map[string]string{
		"2 + 3 * 4":   "(+ 2 (* 3 4))",
		"(2 + 3) * 4": "(* (+ 2 3) 4)",
		"--5":         "(- (- 5))",
		"var a = 2.0": "(var a 2.0)",
		"1.5 / b":     "(/ 1.5 b)",
		"10 - 4 - 3":  "(- (- 10 4) 3)",
	}
	for src, want := range tests {
		tree, _, _ := parseForTest(t, src)
		if got := Sexpr(tree); got != want {
			t.Errorf("Sexpr(%q) = %s, want %s", src, got, want)
		}
	}
}

func TestTreeJSONAndMsgpackAgree(t *testing.T) {
	tree, _, _ := parseForTest(t, "1 / 2.5")

	var jsonBuf bytes.Buffer
	if err := FormatTreeJSON(&jsonBuf, tree); err != nil {
		t.Fatal(err)
	}
	var fromJSON struct {
		Type     string `json:"type"`
		Op       string `json:"op"`
		Children []struct {
			Type  string  `json:"type"`
			Value float64 `json:"value"`
		} `json:"children"`
	}
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if fromJSON.Type != "BinOp" || fromJSON.Op != "/" || len(fromJSON.Children) != 2 {
		t.Fatalf("json: %+v", fromJSON)
	}
	if fromJSON.Children[1].Value != 2.5 {
		t.Errorf("right value = %v", fromJSON.Children[1].Value)
	}

	var mpBuf bytes.Buffer
	if err := FormatTreeMsgpack(&mpBuf, tree); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack ASTNodeOutput
	if err := msgpack.Unmarshal(mpBuf.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}
	if fromMsgpack.Op != "/" || len(fromMsgpack.Children) != 2 || fromMsgpack.Children[0].Type != "Number" {
		t.Errorf("msgpack: %+v", fromMsgpack)
	}
}

func TestFormatTokens(t *testing.T) {
	_, toks, fs := parseForTest(t, "var x = 12")

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(pretty.String(), "\n"), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("got %d lines for %d tokens:\n%s", len(lines), len(toks), pretty.String())
	}
	if !strings.Contains(lines[3], `"12"`) || !strings.Contains(lines[3], "at 1:9-1:11") {
		t.Errorf("int line: %q", lines[3])
	}

	out := BuildTokensOutput(toks)
	if out[len(out)-1].Kind != token.EOF.String() {
		t.Errorf("last token %s", out[len(out)-1].Kind)
	}
	if v, ok := out[3].Value.(int64); !ok || v != 12 {
		t.Errorf("int value = %#v", out[3].Value)
	}
}
