package formula

// Node is the interface for all expression AST nodes. Trees are pure data:
// they carry no evaluation state, so a parsed formula is safe to cache and
// share across evaluation sessions.
type Node interface {
	nodeType() string
}

// NumberNode represents a numeric literal.
type NumberNode struct {
	Value float64
}

func (n *NumberNode) nodeType() string { return "Number" }

// TextNode represents a string literal.
type TextNode struct {
	Value string
}

func (n *TextNode) nodeType() string { return "Text" }

// CellNode represents a single cell reference. Ref keeps the raw source
// text, anchors included; normalization happens at lookup time.
type CellNode struct {
	Ref string
}

func (n *CellNode) nodeType() string { return "Cell" }

// RangeNode represents a rectangular range between two corner references,
// both kept as raw source text.
type RangeNode struct {
	From string
	To   string
}

func (n *RangeNode) nodeType() string { return "Range" }

// UnaryNode represents a prefix operation (+x, -x).
type UnaryNode struct {
	Op      TokenType
	Operand Node
}

func (n *UnaryNode) nodeType() string { return "Unary" }

// BinaryNode represents a binary operation.
type BinaryNode struct {
	Op    TokenType
	Left  Node
	Right Node
}

func (n *BinaryNode) nodeType() string { return "Binary" }

// CallNode represents a function call. Name is uppercased at parse time for
// registry lookup.
type CallNode struct {
	Name string
	Args []Node
}

func (n *CallNode) nodeType() string { return "Call" }

// NameNode represents a bare identifier that is neither a cell reference
// nor a function call. Unresolved names evaluate to empty text, not errors.
type NameNode struct {
	Name string
}

func (n *NameNode) nodeType() string { return "Name" }
