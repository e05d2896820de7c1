package diag

// Kind is the terminal error category of a pipeline stage.
type Kind uint8

const (
	// IllegalCharacter is reported by the lexer.
	IllegalCharacter Kind = iota + 1
	// InvalidSyntax is reported by the parser.
	InvalidSyntax
	// RuntimeError is reported by the interpreter.
	RuntimeError
)

// String returns the display name used in diagnostic headers.
func (k Kind) String() string {
	switch k {
	case IllegalCharacter:
		return "Illegal Character"
	case InvalidSyntax:
		return "Invalid Syntax"
	case RuntimeError:
		return "Runtime Error"
	}
	return "Error"
}

// Slug is the machine-readable form used in JSON output.
func (k Kind) Slug() string {
	switch k {
	case IllegalCharacter:
		return "illegal_character"
	case InvalidSyntax:
		return "invalid_syntax"
	case RuntimeError:
		return "runtime_error"
	}
	return "error"
}
