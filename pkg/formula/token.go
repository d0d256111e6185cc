// Package formula implements the spreadsheet formula language: tokenizer,
// recursive descent parser, and the expression AST the evaluator walks.
package formula

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Literals
	TokenNumber TokenType = iota // numeric literal
	TokenString                  // double-quoted string literal

	// Identifiers: bare names, function names, and cell references all
	// arrive as TokenIdent; the parser disambiguates.
	TokenIdent

	// Punctuation
	TokenLParen // (
	TokenRParen // )
	TokenComma  // ,
	TokenColon  // :

	// Arithmetic and concatenation
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /
	TokenAmp   // &

	// Comparison
	TokenEq  // =
	TokenNeq // <>
	TokenLt  // <
	TokenGt  // >
	TokenLte // <=
	TokenGte // >=

	// Special
	TokenEOF // end of formula
)

// Token represents a single lexical token.
type Token struct {
	Type   TokenType
	Value  string  // raw source text
	NumVal float64 // parsed number (for TokenNumber)
	StrVal string  // decoded string (for TokenString, "" escapes resolved)
	Pos    int     // byte offset in source
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenIdent:
		return "IDENT"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenComma:
		return "COMMA"
	case TokenColon:
		return "COLON"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenAmp:
		return "AMP"
	case TokenEq:
		return "EQ"
	case TokenNeq:
		return "NEQ"
	case TokenLt:
		return "LT"
	case TokenGt:
		return "GT"
	case TokenLte:
		return "LTE"
	case TokenGte:
		return "GTE"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}
