package formula

import (
	"strings"

	"github.com/benchwise/sheetcalc/pkg/ref"
)

// Parser is a recursive descent parser for spreadsheet formulas.
//
// Precedence (low to high):
//
//	= <> < > <= >=
//	&
//	+ -
//	* /
//	unary + -
//	primary (literals, parens, calls, refs, ranges, names)
type Parser struct {
	tokens []Token
	pos    int
}

// Parse parses a complete formula string. The leading "=" must already be
// stripped by the caller.
func Parse(input string) (Node, error) {
	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	p := &Parser{tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != TokenEOF {
		return nil, &SyntaxError{Expected: "end of formula", Found: tok.Type.String(), Pos: tok.Pos}
	}

	return node, nil
}

// current returns the current token.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// peek returns the next token without consuming it.
func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos+1]
}

// advance consumes the current token and returns it.
func (p *Parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

// expect consumes a token of the expected type or returns a SyntaxError.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, &SyntaxError{Expected: tt.String(), Found: tok.Type.String(), Pos: tok.Pos}
	}
	p.advance()
	return tok, nil
}

func (p *Parser) parseExpression() (Node, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	for isComparisonOp(p.current().Type) {
		op := p.advance().Type
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseConcat() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAmp {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: TokenAmp, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		op := p.advance().Type
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenStar || p.current().Type == TokenSlash {
		op := p.advance().Type
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		op := p.advance().Type
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: op, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current()

	switch tok.Type {
	case TokenNumber:
		p.advance()
		return &NumberNode{Value: tok.NumVal}, nil
	case TokenString:
		p.advance()
		return &TextNode{Value: tok.StrVal}, nil
	case TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenIdent:
		return p.parseIdent()
	default:
		return nil, &SyntaxError{Expected: "expression", Found: tok.Type.String(), Pos: tok.Pos}
	}
}

// parseIdent disambiguates identifiers: a following '(' makes a function
// call, a following ':' plus identifier makes a range, reference-shaped
// text makes a cell reference, anything else is a bare name.
func (p *Parser) parseIdent() (Node, error) {
	tok := p.advance()

	switch p.current().Type {
	case TokenLParen:
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &CallNode{Name: strings.ToUpper(tok.Value), Args: args}, nil
	case TokenColon:
		if p.peek().Type == TokenIdent {
			p.advance() // consume ':'
			to := p.advance()
			return &RangeNode{From: tok.Value, To: to.Value}, nil
		}
	}

	if ref.IsCellRef(tok.Value) {
		return &CellNode{Ref: tok.Value}, nil
	}
	return &NameNode{Name: tok.Value}, nil
}

// parseArgList parses (expr, expr, ...), zero or more arguments.
func (p *Parser) parseArgList() ([]Node, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var args []Node
	for p.current().Type != TokenRParen {
		if len(args) > 0 {
			if _, err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return args, nil
}

func isComparisonOp(tt TokenType) bool {
	switch tt {
	case TokenEq, TokenNeq, TokenLt, TokenGt, TokenLte, TokenGte:
		return true
	}
	return false
}
