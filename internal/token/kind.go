package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never emits it.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// IntLit is an integer literal without a dot.
	IntLit
	// FloatLit is a numeric literal with exactly one dot.
	FloatLit
	// Ident is a name.
	Ident
	// KwVar is the assignment keyword.
	KwVar // var

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Assign // =
	LParen // (
	RParen // )
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	IntLit:   "IntLit",
	FloatLit: "FloatLit",
	Ident:    "Ident",
	KwVar:    "KwVar",
	Plus:     "Plus",
	Minus:    "Minus",
	Star:     "Star",
	Slash:    "Slash",
	Assign:   "Assign",
	LParen:   "LParen",
	RParen:   "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindLexemes = map[Kind]string{
	KwVar:  "var",
	Plus:   "+",
	Minus:  "-",
	Star:   "*",
	Slash:  "/",
	Assign: "=",
	LParen: "(",
	RParen: ")",
}

// Describe returns a user-facing name for the kind, used in syntax errors.
func (k Kind) Describe() string {
	if lx, ok := kindLexemes[k]; ok {
		return "'" + lx + "'"
	}
	switch k {
	case EOF:
		return "end of input"
	case IntLit:
		return "integer"
	case FloatLit:
		return "float"
	case Ident:
		return "identifier"
	default:
		return "invalid token"
	}
}
