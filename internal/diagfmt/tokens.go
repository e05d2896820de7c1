package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"tally/internal/source"
	"tally/internal/token"
)

type TokenOutput struct {
	Kind  string  `json:"kind" msgpack:"kind"`
	Text  string  `json:"text,omitempty" msgpack:"text,omitempty"`
	Value any     `json:"value,omitempty" msgpack:"value,omitempty"`
	Span  SpanOut `json:"span" msgpack:"span"`
}

// SpanOut is a span with 1-based line/col for machine output.
type SpanOut struct {
	Start     uint32 `json:"start" msgpack:"start"`
	End       uint32 `json:"end" msgpack:"end"`
	StartLine uint32 `json:"start_line" msgpack:"start_line"`
	StartCol  uint32 `json:"start_col" msgpack:"start_col"`
	EndLine   uint32 `json:"end_line" msgpack:"end_line"`
	EndCol    uint32 `json:"end_col" msgpack:"end_col"`
}

func makeSpanOut(sp source.Span) SpanOut {
	start, end := sp.Start.Human(), sp.End.Human()
	return SpanOut{
		Start:     sp.Start.Offset,
		End:       sp.End.Offset,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}

// BuildTokensOutput converts tokens up to and including EOF.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Value: tokenValue(tok),
			Span:  makeSpanOut(tok.Span),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// tokenValue is the decoded literal; non-finite floats are left to Text
// because JSON cannot carry them.
func tokenValue(tok token.Token) any {
	switch tok.Kind {
	case token.IntLit:
		return tok.Int
	case token.FloatLit:
		if math.IsInf(tok.Float, 0) || math.IsNaN(tok.Float) {
			return nil
		}
		return tok.Float
	}
	return nil
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}

// FormatTokensMsgpack writes the token list as a msgpack array.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token) error {
	return msgpack.NewEncoder(w).Encode(BuildTokensOutput(tokens))
}

// WriteTokens dispatches on format.
func WriteTokens(w io.Writer, format Format, tokens []token.Token, fs *source.FileSet) error {
	switch format {
	case FormatJSON:
		return FormatTokensJSON(w, tokens)
	case FormatMsgpack:
		return FormatTokensMsgpack(w, tokens)
	default:
		return FormatTokensPretty(w, tokens, fs)
	}
}
