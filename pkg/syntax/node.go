// Package syntax defines the concrete syntax tree produced by the
// parser: a tagged-variant node set whose members retain references to
// their originating token spans.
package syntax

//go:generate stringer -type=Kind -trimprefix=Node

// Kind tags a syntax tree node variant.
type Kind uint16

const (
	NodeInvalid Kind = iota

	// Module level.
	NodeModule        // the whole file
	NodeAttributeForm // -module(x). -export([f/1]). -define(...). etc.
	NodeFunctionForm  // all clauses of one function, joined by ';'
	NodeFunctionClause

	// Bodies / blocks.
	NodeBlock // an ordered, comma-free sequence of expressions (a clause body)
	NodeBeginEnd
	NodeParen

	// Binding forms.
	NodeMatch // Pattern = Expression
	NodeCatch // catch Expression

	// Operators.
	NodeBinaryOp
	NodeUnaryOp

	// Calls.
	NodeCall   // f(Args) or Mod:f(Args)
	NodeRemote // Mod:Name, used as a call's callee

	// Collections.
	NodeList
	NodeTuple
	NodeMap
	NodeMapField
	NodeRecord
	NodeRecordField
	NodeBinaryLit // <<...>> bitstring literal
	NodeBinaryElement
	NodeComprehension // [Expr || Qualifiers] or <<Expr || Qualifiers>>
	NodeGenerator     // Pattern <- Expr or Pattern <= Expr
	NodeFilter        // a boolean qualifier expression in a comprehension

	// fun.
	NodeFun     // fun Clauses end
	NodeFunRef  // fun Name/Arity or fun Mod:Name/Arity

	// Control constructs.
	NodeIf
	NodeIfClause
	NodeCase
	NodeCaseClause
	NodeReceive
	NodeReceiveClause
	NodeAfterClause
	NodeTry
	NodeTryClause // a catch-section clause inside try/catch

	// Guards.
	NodeGuardSequence // semicolon-separated disjunction of guard clauses
	NodeGuardClause   // comma-separated conjunction of guard tests

	// Types.
	NodeTypeAnnotation // Expr :: Type

	// Macros.
	NodeMacroUse // ?NAME or ?NAME(Args)

	// Atomic leaves.
	NodeAtom
	NodeVariable
	NodeInteger
	NodeFloat
	NodeString
	NodeChar
)

// Node is a tagged-variant syntax tree node. Children are held in an
// intrusive doubly-linked sibling list, the same shape as a lossless
// markup AST: no back-pointer is needed for "previous sibling" lookups
// that only need token-index arithmetic, but Prev/Next make tree
// surgery and format-tree traversal symmetric.
type Node struct {
	Kind Kind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// FirstToken and LastToken are inclusive indices into the owning
	// token.Stream. Both are -1 for synthetic nodes with no direct
	// source span, such as an empty Block the parser creates where a
	// construct has no tokens of its own (an empty module root, for one).
	FirstToken int
	LastToken  int

	// Op holds the operator or keyword text for nodes where that is
	// the node's defining attribute: BinaryOp/UnaryOp carry the
	// operator symbol, Generator carries "<-" or "<=".
	Op string

	// Name holds an identifying atom for nodes where one is the
	// node's defining attribute: Call/Remote callee name, Record name,
	// MacroUse name, AttributeForm directive name.
	Name string

	// Leading is the comment trivia attached before this node because
	// no earlier significant token claimed it.
	Leading []Comment

	// Trailing is comment trivia on the same source line as this
	// node's last token.
	Trailing []Comment

	// BlankLineBefore records whether at least one blank source line
	// separated this node from the previous sibling/token. Only
	// meaningful for nodes the builder treats as blank-line-sensitive
	// (top-level forms); ignored elsewhere.
	BlankLineBefore bool
}

// Comment is a single preserved comment, carried verbatim including
// its leading '%' marker.
type Comment struct {
	Text            string
	Line            int
	BlankLineBefore bool
}

// NewNode allocates a bare node of the given kind with no token span.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind, FirstToken: -1, LastToken: -1}
}

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns n's direct children in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.Next {
		count++
	}
	return count
}

// AppendChild appends child to parent's child list, detaching it from
// any previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}
	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil
	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild detaches child from parent. No-op if child is not a
// direct child of parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}
	child.Parent, child.Prev, child.Next = nil, nil, nil
}
