package formula

import "fmt"

// UnexpectedCharError reports a character the tokenizer cannot match.
type UnexpectedCharError struct {
	Char rune
	Pos  int
}

func (e *UnexpectedCharError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

// UnterminatedStringError reports a string literal with no closing quote.
type UnterminatedStringError struct {
	Pos int
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string starting at position %d", e.Pos)
}

// SyntaxError reports a grammar violation: a missing or unexpected token.
type SyntaxError struct {
	Expected string
	Found    string
	Pos      int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, found %s at position %d", e.Expected, e.Found, e.Pos)
}
