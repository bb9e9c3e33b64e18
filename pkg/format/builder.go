package format

import (
	"strings"

	"github.com/efmtlang/elfmt/pkg/layout"
	"github.com/efmtlang/elfmt/pkg/syntax"
	"github.com/efmtlang/elfmt/pkg/token"
)

// builder translates a *syntax.Node tree into a layout.Doc, one
// dispatch per node kind. It mirrors the node-kind dispatch style of a
// formatter walking its own AST and switching on item kind and token
// adjacency, translated into building a layout document instead of
// writing text directly.
type builder struct {
	stream *token.Stream
}

func newBuilder(stream *token.Stream) *builder {
	return &builder{stream: stream}
}

// build renders n, including any attached leading/trailing comments.
func (b *builder) build(n *syntax.Node) layout.Doc {
	if n == nil {
		return layout.Cat()
	}
	return b.withTrivia(n, b.buildBare(n))
}

func (b *builder) withTrivia(n *syntax.Node, doc layout.Doc) layout.Doc {
	if len(n.Leading) == 0 && len(n.Trailing) == 0 {
		return doc
	}
	parts := make([]layout.Doc, 0, len(n.Leading)*2+len(n.Trailing)*2+1)
	for _, c := range n.Leading {
		if c.BlankLineBefore {
			parts = append(parts, layout.HardBreak{})
		}
		parts = append(parts, layout.Comment{S: c.Text, Kind: layout.CommentLine})
	}
	parts = append(parts, doc)
	for _, c := range n.Trailing {
		parts = append(parts, layout.Txt("  "), layout.Comment{S: c.Text, Kind: layout.CommentLine})
	}
	return layout.Cat(parts...)
}

func (b *builder) buildBare(n *syntax.Node) layout.Doc {
	switch n.Kind {
	case syntax.NodeModule:
		return b.buildSiblings(n.Children())

	case syntax.NodeAttributeForm:
		return b.buildAttributeForm(n)
	case syntax.NodeFunctionForm:
		return b.buildFunctionForm(n)
	case syntax.NodeFunctionClause:
		return b.buildFunctionClause(n)

	case syntax.NodeBlock:
		return b.buildBlock(n)
	case syntax.NodeBeginEnd:
		body := n.FirstChild
		return layout.Cat(
			layout.Txt("begin"),
			layout.Ind(layout.Cat(layout.HardBreak{}, b.buildBody(body))),
			layout.HardBreak{}, layout.Txt("end"),
		)
	case syntax.NodeParen:
		return layout.Cat(layout.Txt("("), b.build(n.FirstChild), layout.Txt(")"))

	case syntax.NodeCatch:
		return layout.Cat(layout.Txt("catch "), b.build(n.FirstChild))

	case syntax.NodeBinaryOp:
		left, right := n.FirstChild, n.FirstChild.Next
		return layout.Grp(layout.Cat(
			b.build(left), layout.Txt(" "+n.Op),
			layout.Ind(layout.Cat(layout.Line{}, b.build(right))),
		))
	case syntax.NodeUnaryOp:
		sep := ""
		if isWordOperator(n.Op) || needsUnarySeparator(n.Op, n.FirstChild) {
			sep = " "
		}
		return layout.Cat(layout.Txt(n.Op+sep), b.build(n.FirstChild))

	case syntax.NodeCall:
		return b.buildCall(n)
	case syntax.NodeRemote:
		return layout.Cat(b.build(n.FirstChild), layout.Txt(":"+n.Name))

	case syntax.NodeList:
		return b.buildList(n)
	case syntax.NodeTuple:
		return b.buildBracketed("{", "}", n.Children())
	case syntax.NodeMap:
		return b.buildMapOrRecord(n, "#", "")
	case syntax.NodeRecord:
		return b.buildMapOrRecord(n, "#"+n.Name, n.Name)
	case syntax.NodeMapField:
		return layout.Cat(b.build(n.FirstChild), layout.Txt(" "+n.Op+" "), b.build(n.FirstChild.Next))
	case syntax.NodeRecordField:
		return b.buildRecordField(n)
	case syntax.NodeBinaryLit:
		return b.buildBracketed("<<", ">>", n.Children())
	case syntax.NodeBinaryElement:
		return b.buildBinaryElement(n)
	case syntax.NodeComprehension:
		return b.buildComprehension(n)
	case syntax.NodeGenerator:
		return layout.Cat(b.build(n.FirstChild), layout.Txt(" "+n.Op+" "), b.build(n.FirstChild.Next))
	case syntax.NodeFilter:
		return b.build(n.FirstChild)

	case syntax.NodeFun:
		return b.buildFun(n)
	case syntax.NodeFunRef:
		return layout.Txt("fun " + n.Name + "/" + n.Op)

	case syntax.NodeIf:
		return b.buildIf(n)
	case syntax.NodeIfClause:
		return b.buildArrowClause(nil, n.FirstChild, n.FirstChild.Next)
	case syntax.NodeCase:
		return b.buildCase(n)
	case syntax.NodeCaseClause, syntax.NodeReceiveClause:
		return b.buildPatternClause(n)
	case syntax.NodeReceive:
		return b.buildReceive(n)
	case syntax.NodeAfterClause:
		return layout.Cat(
			layout.Txt("after "), b.build(n.FirstChild), layout.Txt(" ->"),
			layout.Ind(layout.Cat(layout.HardBreak{}, b.buildBody(n.FirstChild.Next))),
		)
	case syntax.NodeTry:
		return b.buildTry(n)
	case syntax.NodeTryClause:
		return b.buildTryClause(n)

	case syntax.NodeGuardSequence:
		return b.buildGuardSequence(n)
	case syntax.NodeGuardClause:
		return b.buildGuardClause(n)

	case syntax.NodeMacroUse:
		return b.buildMacroUse(n)

	case syntax.NodeAtom, syntax.NodeVariable, syntax.NodeInteger,
		syntax.NodeFloat, syntax.NodeString, syntax.NodeChar:
		return layout.Txt(n.Op)

	case syntax.NodeTypeAnnotation, syntax.NodeMatch:
		// Not produced by the parser: match ("=") and type annotation
		// ("::") are both handled uniformly as NodeBinaryOp, since
		// nothing about their layout differs from any other binary
		// operator.
		return layout.Cat()

	default:
		return layout.Cat()
	}
}

func (b *builder) buildSiblings(children []*syntax.Node) layout.Doc {
	parts := make([]layout.Doc, 0, len(children)*2)
	for i, c := range children {
		if i > 0 {
			parts = append(parts, layout.HardBreak{})
			// A blank line before a leading comment is already rendered by
			// withTrivia from the comment's own BlankLineBefore, which
			// covers the same gap the node's own flag would report here.
			// Only fall back to the node's flag when there's no leading
			// comment to carry that information.
			if len(c.Leading) == 0 && c.BlankLineBefore {
				parts = append(parts, layout.HardBreak{})
			}
		}
		parts = append(parts, b.build(c))
	}
	return layout.Cat(parts...)
}

func (b *builder) buildAttributeForm(n *syntax.Node) layout.Doc {
	head := layout.Txt("-" + n.Name)
	if n.Op != "paren" {
		return layout.Cat(head, layout.Txt("."))
	}
	args := n.Children()
	argDocs := make([]layout.Doc, len(args))
	for i, a := range args {
		argDocs[i] = b.build(a)
	}
	body := layout.Grp(layout.Cat(
		layout.Txt("("),
		layout.Ind(layout.Cat(layout.SoftBreak{}, layout.Join(layout.Cat(layout.Txt(","), layout.Line{}), argDocs))),
		layout.SoftBreak{}, layout.Txt(")"),
	))
	return layout.Cat(head, body, layout.Txt("."))
}

func (b *builder) buildFunctionForm(n *syntax.Node) layout.Doc {
	clauses := n.Children()
	parts := make([]layout.Doc, 0, len(clauses)*3+1)
	for i, c := range clauses {
		if i > 0 {
			parts = append(parts, layout.Txt(";"), layout.HardBreak{})
		}
		parts = append(parts, b.build(c))
	}
	parts = append(parts, layout.Txt("."))
	return layout.Cat(parts...)
}

func (b *builder) buildFunctionClause(n *syntax.Node) layout.Doc {
	children := n.Children()
	patterns := children[0]
	var guard, body *syntax.Node
	for _, c := range children[1:] {
		if c.Kind == syntax.NodeGuardSequence {
			guard = c
		} else {
			body = c
		}
	}
	parts := make([]layout.Doc, 0, 6)
	if n.Name != "" {
		parts = append(parts, layout.Txt(n.Name))
	}
	parts = append(parts, b.buildParenList(patterns.Children()))
	if guard != nil {
		parts = append(parts, layout.Txt(" when "), b.build(guard))
	}
	parts = append(parts, layout.Txt(" ->"))
	parts = append(parts, layout.Ind(layout.Cat(layout.HardBreak{}, b.buildBody(body))))
	return layout.Cat(parts...)
}

func (b *builder) buildParenList(items []*syntax.Node) layout.Doc {
	docs := make([]layout.Doc, len(items))
	for i, it := range items {
		docs[i] = b.build(it)
	}
	if len(docs) == 0 {
		return layout.Txt("()")
	}
	return layout.Grp(layout.Cat(
		layout.Txt("("),
		layout.Ind(layout.Cat(layout.SoftBreak{}, layout.Join(layout.Cat(layout.Txt(","), layout.Line{}), docs))),
		layout.SoftBreak{}, layout.Txt(")"),
	))
}

func (b *builder) buildBody(block *syntax.Node) layout.Doc {
	stmts := block.Children()
	docs := make([]layout.Doc, len(stmts))
	for i, s := range stmts {
		docs[i] = b.build(s)
	}
	return layout.Join(layout.Cat(layout.Txt(","), layout.HardBreak{}), docs)
}

func (b *builder) buildBlock(n *syntax.Node) layout.Doc {
	if !n.HasChildren() {
		if n.FirstToken >= 0 {
			return layout.Txt(n.Text(b.stream))
		}
		return layout.Cat()
	}
	return b.buildBody(n)
}

func (b *builder) buildExprList(items []*syntax.Node) layout.Doc {
	docs := make([]layout.Doc, len(items))
	for i, it := range items {
		docs[i] = b.build(it)
	}
	return layout.Join(layout.Cat(layout.Txt(","), layout.Line{}), docs)
}

func (b *builder) buildBracketed(open, close string, items []*syntax.Node) layout.Doc {
	if len(items) == 0 {
		return layout.Txt(open + close)
	}
	return layout.Cat(
		layout.Txt(open),
		layout.Grp(layout.Cat(
			layout.Ind(layout.Cat(layout.SoftBreak{}, b.buildExprList(items))),
			layout.SoftBreak{},
		)),
		layout.Txt(close),
	)
}

func (b *builder) buildCall(n *syntax.Node) layout.Doc {
	callee := n.FirstChild
	args := make([]*syntax.Node, 0, n.ChildCount()-1)
	for c := callee.Next; c != nil; c = c.Next {
		args = append(args, c)
	}
	return layout.Cat(b.build(callee), b.buildBracketed("(", ")", args))
}

func (b *builder) buildList(n *syntax.Node) layout.Doc {
	var elems []*syntax.Node
	var tail *syntax.Node
	for c := n.FirstChild; c != nil; c = c.Next {
		if c.Op == "tail" {
			tail = c
			continue
		}
		elems = append(elems, c)
	}
	if tail == nil {
		return b.buildBracketed("[", "]", elems)
	}
	if len(elems) == 0 {
		return layout.Cat(layout.Txt("["), b.build(tail.FirstChild), layout.Txt("]"))
	}
	return layout.Cat(
		layout.Txt("["),
		layout.Grp(layout.Cat(
			layout.Ind(layout.Cat(
				layout.SoftBreak{}, b.buildExprList(elems),
				layout.Txt(" |"), layout.Line{}, b.build(tail.FirstChild),
			)),
			layout.SoftBreak{},
		)),
		layout.Txt("]"),
	)
}

func (b *builder) buildMapOrRecord(n *syntax.Node, prefixNoBase, recordName string) layout.Doc {
	fields := n.Children()
	var base *syntax.Node
	isField := func(k *syntax.Node) bool {
		if recordName != "" {
			return k.Kind == syntax.NodeRecordField
		}
		return k.Kind == syntax.NodeMapField
	}
	if len(fields) > 0 && !isField(fields[0]) {
		base = fields[0]
		fields = fields[1:]
	}
	prefix := layout.Txt(prefixNoBase)
	if base != nil {
		prefix = layout.Cat(b.build(base), layout.Txt(prefixNoBase))
	}
	return layout.Cat(prefix, b.buildBracketed("{", "}", fields))
}

func (b *builder) buildRecordField(n *syntax.Node) layout.Doc {
	if strings.Contains(n.Name, ".") {
		if n.FirstChild != nil {
			return layout.Cat(b.build(n.FirstChild), layout.Txt("#"+n.Name))
		}
		return layout.Txt("#" + n.Name)
	}
	name := n.Name
	if name == "" {
		name = "_"
	}
	if n.FirstChild == nil {
		return layout.Txt(name)
	}
	return layout.Cat(layout.Txt(name+" = "), b.build(n.FirstChild))
}

func (b *builder) buildBinaryElement(n *syntax.Node) layout.Doc {
	children := n.Children()
	value := children[0]
	var size, typespec *syntax.Node
	for _, c := range children[1:] {
		if c.Kind == syntax.NodeBlock {
			typespec = c
		} else {
			size = c
		}
	}
	parts := []layout.Doc{b.build(value)}
	if size != nil {
		parts = append(parts, layout.Txt(":"), b.build(size))
	}
	if typespec != nil {
		parts = append(parts, layout.Txt("/"), b.build(typespec))
	}
	return layout.Cat(parts...)
}

func (b *builder) buildComprehension(n *syntax.Node) layout.Doc {
	open, close := "[", "]"
	if n.Op == "<<>>" {
		open, close = "<<", ">>"
	}
	head := n.FirstChild
	quals := make([]*syntax.Node, 0, n.ChildCount()-1)
	for c := head.Next; c != nil; c = c.Next {
		quals = append(quals, c)
	}
	return layout.Cat(
		layout.Txt(open), b.build(head), layout.Txt(" || "),
		b.buildExprList(quals), layout.Txt(close),
	)
}

func (b *builder) buildFun(n *syntax.Node) layout.Doc {
	clauses := n.Children()
	parts := make([]layout.Doc, 0, len(clauses)*3+2)
	parts = append(parts, layout.Txt("fun"))
	for i, c := range clauses {
		if i > 0 {
			parts = append(parts, layout.Txt(";"))
		}
		parts = append(parts, layout.Ind(layout.Cat(layout.HardBreak{}, b.build(c))))
	}
	parts = append(parts, layout.HardBreak{}, layout.Txt("end"))
	return layout.Cat(parts...)
}

func (b *builder) buildIf(n *syntax.Node) layout.Doc {
	clauses := n.Children()
	return layout.Cat(
		layout.Txt("if"),
		layout.Ind(layout.Cat(layout.HardBreak{}, b.buildSemiClauses(clauses))),
		layout.HardBreak{}, layout.Txt("end"),
	)
}

func (b *builder) buildArrowClause(lead layout.Doc, guardOrPattern, body *syntax.Node) layout.Doc {
	parts := make([]layout.Doc, 0, 4)
	if lead != nil {
		parts = append(parts, lead)
	}
	parts = append(parts, b.build(guardOrPattern), layout.Txt(" ->"))
	parts = append(parts, layout.Ind(layout.Cat(layout.HardBreak{}, b.buildBody(body))))
	return layout.Cat(parts...)
}

func (b *builder) buildCase(n *syntax.Node) layout.Doc {
	subject := n.FirstChild
	clauses := make([]*syntax.Node, 0, n.ChildCount()-1)
	for c := subject.Next; c != nil; c = c.Next {
		clauses = append(clauses, c)
	}
	return layout.Cat(
		layout.Txt("case "), b.build(subject), layout.Txt(" of"),
		layout.Ind(layout.Cat(layout.HardBreak{}, b.buildSemiClauses(clauses))),
		layout.HardBreak{}, layout.Txt("end"),
	)
}

func (b *builder) buildPatternClause(n *syntax.Node) layout.Doc {
	children := n.Children()
	pattern := children[0]
	var guard, body *syntax.Node
	for _, c := range children[1:] {
		if c.Kind == syntax.NodeGuardSequence {
			guard = c
		} else {
			body = c
		}
	}
	parts := []layout.Doc{b.build(pattern)}
	if guard != nil {
		parts = append(parts, layout.Txt(" when "), b.build(guard))
	}
	parts = append(parts, layout.Txt(" ->"), layout.Ind(layout.Cat(layout.HardBreak{}, b.buildBody(body))))
	return layout.Cat(parts...)
}

func (b *builder) buildReceive(n *syntax.Node) layout.Doc {
	var clauses []*syntax.Node
	var after *syntax.Node
	for c := n.FirstChild; c != nil; c = c.Next {
		if c.Kind == syntax.NodeAfterClause {
			after = c
			continue
		}
		clauses = append(clauses, c)
	}
	var inner []layout.Doc
	if len(clauses) > 0 {
		inner = append(inner, b.buildSemiClauses(clauses))
	}
	if after != nil {
		if len(inner) > 0 {
			inner = append(inner, layout.HardBreak{})
		}
		inner = append(inner, b.build(after))
	}
	parts := []layout.Doc{layout.Txt("receive")}
	if len(inner) > 0 {
		parts = append(parts, layout.Ind(layout.Cat(append([]layout.Doc{layout.HardBreak{}}, inner...)...)))
	}
	parts = append(parts, layout.HardBreak{}, layout.Txt("end"))
	return layout.Cat(parts...)
}

func (b *builder) buildSemiClauses(clauses []*syntax.Node) layout.Doc {
	parts := make([]layout.Doc, 0, len(clauses)*3)
	for i, c := range clauses {
		if i > 0 {
			parts = append(parts, layout.Txt(";"), layout.HardBreak{})
		}
		parts = append(parts, b.build(c))
	}
	return layout.Cat(parts...)
}

func (b *builder) buildTry(n *syntax.Node) layout.Doc {
	children := n.Children()
	body := children[0]
	var ofBlock, catchBlock, afterBlock *syntax.Node
	for _, c := range children[1:] {
		if !c.HasChildren() {
			continue
		}
		switch c.FirstChild.Kind {
		case syntax.NodeCaseClause:
			ofBlock = c
		case syntax.NodeTryClause:
			catchBlock = c
		default:
			afterBlock = c
		}
	}
	parts := []layout.Doc{
		layout.Txt("try"),
		layout.Ind(layout.Cat(layout.HardBreak{}, b.buildBody(body))),
	}
	if ofBlock != nil {
		parts = append(parts, layout.HardBreak{}, layout.Txt("of"),
			layout.Ind(layout.Cat(layout.HardBreak{}, b.buildSemiClauses(ofBlock.Children()))))
	}
	if catchBlock != nil {
		parts = append(parts, layout.HardBreak{}, layout.Txt("catch"),
			layout.Ind(layout.Cat(layout.HardBreak{}, b.buildSemiClauses(catchBlock.Children()))))
	}
	if afterBlock != nil {
		parts = append(parts, layout.HardBreak{}, layout.Txt("after"),
			layout.Ind(layout.Cat(layout.HardBreak{}, b.buildBody(afterBlock))))
	}
	parts = append(parts, layout.HardBreak{}, layout.Txt("end"))
	return layout.Cat(parts...)
}

func (b *builder) buildTryClause(n *syntax.Node) layout.Doc {
	children := n.Children()
	pattern := children[0]
	var guard, body *syntax.Node
	for _, c := range children[1:] {
		if c.Kind == syntax.NodeGuardSequence {
			guard = c
		} else {
			body = c
		}
	}
	parts := make([]layout.Doc, 0, 6)
	if n.Op != "" {
		parts = append(parts, layout.Txt(n.Op+":"))
	}
	parts = append(parts, b.build(pattern))
	if guard != nil {
		parts = append(parts, layout.Txt(" when "), b.build(guard))
	}
	parts = append(parts, layout.Txt(" ->"), layout.Ind(layout.Cat(layout.HardBreak{}, b.buildBody(body))))
	return layout.Cat(parts...)
}

func (b *builder) buildGuardSequence(n *syntax.Node) layout.Doc {
	parts := make([]layout.Doc, 0, n.ChildCount()*2)
	for i, c := range n.Children() {
		if i > 0 {
			parts = append(parts, layout.Txt("; "))
		}
		parts = append(parts, b.build(c))
	}
	return layout.Cat(parts...)
}

func (b *builder) buildGuardClause(n *syntax.Node) layout.Doc {
	parts := make([]layout.Doc, 0, n.ChildCount()*2)
	for i, c := range n.Children() {
		if i > 0 {
			parts = append(parts, layout.Txt(", "))
		}
		parts = append(parts, b.build(c))
	}
	return layout.Cat(parts...)
}

func (b *builder) buildMacroUse(n *syntax.Node) layout.Doc {
	head := layout.Txt("?" + n.Name)
	if n.Op != "paren" {
		return head
	}
	return layout.Cat(head, b.buildBracketed("(", ")", n.Children()))
}

func isWordOperator(op string) bool {
	switch op {
	case "not", "bnot":
		return true
	}
	return false
}

// needsUnarySeparator reports whether op, emitted with no separator
// directly before child's own rendering, would re-lex as a different
// token than the two that were actually parsed. The parser allows a
// symbolic prefix operator to nest directly inside another of the
// same kind ("- -X", "+ +X") with no parentheses required, and the
// lexer matches symbols longest-first, so writing them back to back
// ("--X", "++X") would scan as the two-character "--"/"++" symbol
// followed by a bare name instead of the original pair of unary
// operators.
func needsUnarySeparator(op string, child *syntax.Node) bool {
	if child == nil || child.Kind != syntax.NodeUnaryOp {
		return false
	}
	return child.Op == op
}
