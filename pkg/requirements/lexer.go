package requirements

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLBracket
	tokRBracket
	tokComma
	tokSemicolon
	tokAt
	tokOperator
	tokOther
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer splits a requirement specifier into the handful of tokens needed
// to find its name, extras and the boundaries of the version, URL and
// marker parts. Whitespace separates tokens and is never returned.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) next() token {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: l.pos}
	}

	start := l.pos
	c := l.input[l.pos]
	switch {
	case isIdentByte(c):
		for l.pos < len(l.input) && isIdentByte(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.input[start:l.pos], pos: start}
	case isOperatorByte(c):
		for l.pos < len(l.input) && isOperatorByte(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokOperator, text: l.input[start:l.pos], pos: start}
	}

	l.pos++
	kind := tokOther
	switch c {
	case '[':
		kind = tokLBracket
	case ']':
		kind = tokRBracket
	case ',':
		kind = tokComma
	case ';':
		kind = tokSemicolon
	case '@':
		kind = tokAt
	}
	return token{kind: kind, text: l.input[start:l.pos], pos: start}
}

// rest returns the unconsumed input.
func (l *lexer) rest() string {
	return l.input[l.pos:]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentByte(c byte) bool {
	return isAlnum(c) || c == '.' || c == '_' || c == '-'
}

func isOperatorByte(c byte) bool {
	return c == '<' || c == '>' || c == '=' || c == '!' || c == '~'
}
