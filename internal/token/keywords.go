package token

var keywords = map[string]Kind{
	"var": KwVar,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: "VAR" и "Var" остаются идентификаторами.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupOperator maps a single operator or punctuation byte to its kind.
func LookupOperator(ch byte) (Kind, bool) {
	switch ch {
	case '+':
		return Plus, true
	case '-':
		return Minus, true
	case '*':
		return Star, true
	case '/':
		return Slash, true
	case '=':
		return Assign, true
	case '(':
		return LParen, true
	case ')':
		return RParen, true
	default:
		return Invalid, false
	}
}
