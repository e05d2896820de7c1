package lexer

import (
	"fmt"
	"unicode/utf8"

	"tally/internal/diag"
	"tally/internal/source"
	"tally/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	err    *diag.Diagnostic // первая ошибка; после неё лексер стоит
	done   bool
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next returns the next token. After EOF it keeps returning EOF;
// after a failure it keeps returning the same diagnostic.
func (lx *Lexer) Next() (token.Token, *diag.Diagnostic) {
	if lx.err != nil {
		return token.Token{}, lx.err
	}

	lx.skipWhitespace()

	if lx.cursor.EOF() {
		lx.done = true
		return token.Token{
			Kind: token.EOF,
			Span: source.PointSpan(lx.file.ID, lx.cursor.Pos),
		}, nil
	}

	ch := lx.cursor.Peek()
	var (
		tok token.Token
		err *diag.Diagnostic
	)
	switch {
	case isDec(ch):
		tok, err = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok, err = lx.scanNumber()
	case isLetter(ch):
		tok = lx.scanIdentOrKeyword()
	default:
		tok, err = lx.scanOperatorOrPunct()
	}
	if err != nil {
		lx.err = err
		return token.Token{}, err
	}
	return tok, nil
}

// Done reports whether EOF has been produced.
func (lx *Lexer) Done() bool { return lx.done }

// Tokenize converts the whole file into tokens terminated by EOF.
// On the first illegal character it returns no tokens and the diagnostic.
func Tokenize(file *source.File) ([]token.Token, *diag.Diagnostic) {
	lx := New(file)
	out := make([]token.Token, 0, len(file.Content)/2+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out, nil
		}
	}
}

// TokenizeSource registers text under name in fs and tokenizes it.
func TokenizeSource(fs *source.FileSet, name, text string) ([]token.Token, *diag.Diagnostic) {
	id := fs.AddVirtual(name, []byte(text))
	return Tokenize(fs.Get(id))
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// illegal fails on the rune under the cursor; the span covers exactly that rune.
func (lx *Lexer) illegal() *diag.Diagnostic {
	start := lx.cursor.Mark()
	r, size := lx.cursor.PeekRune()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)

	var shown string
	if r == utf8.RuneError && size == 1 {
		shown = fmt.Sprintf("\\x%02x", lx.file.Content[start.Offset])
	} else {
		shown = string(r)
	}
	return diag.New(diag.LexUnknownChar, sp, "'"+shown+"'")
}
