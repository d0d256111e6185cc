package formula

import (
	"errors"
	"testing"
)

func parse(t *testing.T, input string) Node {
	t.Helper()
	node, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return node
}

func TestParseLiterals(t *testing.T) {
	if n, ok := parse(t, "42").(*NumberNode); !ok || n.Value != 42 {
		t.Errorf("expected NumberNode 42, got %#v", parse(t, "42"))
	}
	if n, ok := parse(t, `"hi"`).(*TextNode); !ok || n.Value != "hi" {
		t.Errorf("expected TextNode hi")
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1+2*3 parses as 1+(2*3)
	n, ok := parse(t, "1+2*3").(*BinaryNode)
	if !ok || n.Op != TokenPlus {
		t.Fatalf("expected + at root, got %#v", n)
	}
	right, ok := n.Right.(*BinaryNode)
	if !ok || right.Op != TokenStar {
		t.Fatalf("expected * on the right, got %#v", n.Right)
	}

	// comparison binds loosest: 1&2=3 parses as (1&2)=3
	n, ok = parse(t, `1&2="12"`).(*BinaryNode)
	if !ok || n.Op != TokenEq {
		t.Fatalf("expected = at root, got %#v", n)
	}
	left, ok := n.Left.(*BinaryNode)
	if !ok || left.Op != TokenAmp {
		t.Fatalf("expected & on the left, got %#v", n.Left)
	}

	// concat binds looser than additive: 1+2&3 parses as (1+2)&3
	n, ok = parse(t, "1+2&3").(*BinaryNode)
	if !ok || n.Op != TokenAmp {
		t.Fatalf("expected & at root, got %#v", n)
	}
}

func TestParseParens(t *testing.T) {
	n, ok := parse(t, "(1+2)*3").(*BinaryNode)
	if !ok || n.Op != TokenStar {
		t.Fatalf("expected * at root, got %#v", n)
	}
	if inner, ok := n.Left.(*BinaryNode); !ok || inner.Op != TokenPlus {
		t.Fatalf("expected + inside parens, got %#v", n.Left)
	}
}

func TestParseUnary(t *testing.T) {
	n, ok := parse(t, "-A1").(*UnaryNode)
	if !ok || n.Op != TokenMinus {
		t.Fatalf("expected unary minus, got %#v", parse(t, "-A1"))
	}
	if _, ok := n.Operand.(*CellNode); !ok {
		t.Fatalf("expected cell operand, got %#v", n.Operand)
	}

	// unary binds tighter than *: -2*3 is (-2)*3
	b, ok := parse(t, "-2*3").(*BinaryNode)
	if !ok || b.Op != TokenStar {
		t.Fatalf("expected * at root, got %#v", parse(t, "-2*3"))
	}
	if _, ok := b.Left.(*UnaryNode); !ok {
		t.Fatalf("expected unary on the left, got %#v", b.Left)
	}
}

func TestParseIdentDisambiguation(t *testing.T) {
	tests := []struct {
		input string
		check func(Node) bool
	}{
		{"A1", func(n Node) bool { c, ok := n.(*CellNode); return ok && c.Ref == "A1" }},
		{"$B$2", func(n Node) bool { c, ok := n.(*CellNode); return ok && c.Ref == "$B$2" }},
		{"D4:D5", func(n Node) bool { r, ok := n.(*RangeNode); return ok && r.From == "D4" && r.To == "D5" }},
		{"total", func(n Node) bool { b, ok := n.(*NameNode); return ok && b.Name == "total" }},
		{"part_name", func(n Node) bool { _, ok := n.(*NameNode); return ok }},
		{"sum(1)", func(n Node) bool { c, ok := n.(*CallNode); return ok && c.Name == "SUM" && len(c.Args) == 1 }},
		{"IF(1,2,3)", func(n Node) bool { c, ok := n.(*CallNode); return ok && c.Name == "IF" && len(c.Args) == 3 }},
		{"NOW()", func(n Node) bool { c, ok := n.(*CallNode); return ok && c.Name == "NOW" && len(c.Args) == 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if !tt.check(parse(t, tt.input)) {
				t.Errorf("wrong node for %q: %#v", tt.input, parse(t, tt.input))
			}
		})
	}
}

func TestParseNestedCalls(t *testing.T) {
	n, ok := parse(t, `IF(SUM(A1:A3)>10, "big", TRIM(B1))`).(*CallNode)
	if !ok || n.Name != "IF" || len(n.Args) != 3 {
		t.Fatalf("expected IF call with 3 args, got %#v", n)
	}
	cond, ok := n.Args[0].(*BinaryNode)
	if !ok || cond.Op != TokenGt {
		t.Fatalf("expected > condition, got %#v", n.Args[0])
	}
	if inner, ok := cond.Left.(*CallNode); !ok || inner.Name != "SUM" {
		t.Fatalf("expected SUM inside condition, got %#v", cond.Left)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	inputs := []string{
		"(1+2",      // unbalanced paren
		"SUM(1 2)",  // missing comma
		"1+",        // dangling operator
		"1 2",       // trailing tokens
		")",         // no expression
		"SUM(1,)",   // trailing comma
		"A1:",       // colon with nothing usable after (lexes, fails to parse)
		"",          // empty formula
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected SyntaxError for %q, got %v", input, err)
			}
		})
	}
}

func TestParseColonWithoutIdentIsError(t *testing.T) {
	// ident ':' non-ident cannot form a range and must not silently parse.
	_, err := Parse("A1:5")
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

func TestCacheParsesOnce(t *testing.T) {
	c := NewCache()
	n1, err := c.Get("SUM(D4:D5)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n2, err := c.Get("SUM(D4:D5)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n1 != n2 {
		t.Error("expected the same cached node")
	}
	if c.Len() != 1 {
		t.Errorf("got %d entries, want 1", c.Len())
	}
}

func TestCacheRemembersFailures(t *testing.T) {
	c := NewCache()
	if _, err := c.Get("(1+"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := c.Get("(1+"); err == nil {
		t.Fatal("expected cached parse error")
	}
	if c.Len() != 1 {
		t.Errorf("got %d entries, want 1", c.Len())
	}
}
