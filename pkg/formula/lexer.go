package formula

import (
	"strconv"
	"unicode"
)

// Lexer tokenizes a formula string. The caller strips any leading "=" before
// handing the source over.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the entire input and returns all tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return l.tokens, nil
}

// next returns the next token from the input.
func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]

	if ch == '"' {
		return l.readString()
	}

	if ch >= '0' && ch <= '9' {
		return l.readNumber()
	}

	// A leading '.' is numeric only when a digit follows immediately.
	if ch == '.' && l.pos+1 < len(l.input) && l.input[l.pos+1] >= '0' && l.input[l.pos+1] <= '9' {
		return l.readNumber()
	}

	// Two-character operators match greedily before single characters.
	if l.pos+1 < len(l.input) {
		switch l.input[l.pos : l.pos+2] {
		case "<=":
			l.pos += 2
			return Token{Type: TokenLte, Value: "<=", Pos: l.pos - 2}, nil
		case ">=":
			l.pos += 2
			return Token{Type: TokenGte, Value: ">=", Pos: l.pos - 2}, nil
		case "<>":
			l.pos += 2
			return Token{Type: TokenNeq, Value: "<>", Pos: l.pos - 2}, nil
		}
	}

	switch ch {
	case '+':
		l.pos++
		return Token{Type: TokenPlus, Value: "+", Pos: l.pos - 1}, nil
	case '-':
		l.pos++
		return Token{Type: TokenMinus, Value: "-", Pos: l.pos - 1}, nil
	case '*':
		l.pos++
		return Token{Type: TokenStar, Value: "*", Pos: l.pos - 1}, nil
	case '/':
		l.pos++
		return Token{Type: TokenSlash, Value: "/", Pos: l.pos - 1}, nil
	case '&':
		l.pos++
		return Token{Type: TokenAmp, Value: "&", Pos: l.pos - 1}, nil
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: l.pos - 1}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: l.pos - 1}, nil
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: l.pos - 1}, nil
	case ':':
		l.pos++
		return Token{Type: TokenColon, Value: ":", Pos: l.pos - 1}, nil
	case '<':
		l.pos++
		return Token{Type: TokenLt, Value: "<", Pos: l.pos - 1}, nil
	case '>':
		l.pos++
		return Token{Type: TokenGt, Value: ">", Pos: l.pos - 1}, nil
	case '=':
		l.pos++
		return Token{Type: TokenEq, Value: "=", Pos: l.pos - 1}, nil
	}

	if isIdentStart(ch) {
		return l.readIdentifier(), nil
	}

	return Token{}, &UnexpectedCharError{Char: rune(ch), Pos: l.pos}
}

// readString reads a double-quoted string literal. A doubled quote inside
// the literal decodes to one quote character.
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	l.pos++ // skip opening quote

	var sb []byte
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '"' {
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == '"' {
				sb = append(sb, '"')
				l.pos += 2
				continue
			}
			l.pos++ // skip closing quote
			return Token{
				Type:   TokenString,
				Value:  l.input[start:l.pos],
				StrVal: string(sb),
				Pos:    start,
			}, nil
		}
		sb = append(sb, ch)
		l.pos++
	}

	return Token{}, &UnterminatedStringError{Pos: start}
}

// readNumber reads a digit sequence with at most one decimal point.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	sawDot := false

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch >= '0' && ch <= '9' {
			l.pos++
		} else if ch == '.' && !sawDot {
			sawDot = true
			l.pos++
		} else {
			break
		}
	}

	raw := l.input[start:l.pos]
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Token{}, &UnexpectedCharError{Char: rune(raw[0]), Pos: start}
	}
	return Token{Type: TokenNumber, Value: raw, NumVal: f, Pos: start}, nil
}

// readIdentifier reads an identifier: letters, digits, underscores, and the
// absolute-reference anchor marker.
func (l *Lexer) readIdentifier() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenIdent, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
