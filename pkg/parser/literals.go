package parser

import (
	"github.com/efmtlang/elfmt/pkg/syntax"
	"github.com/efmtlang/elfmt/pkg/token"
)

// parsePrimary dispatches on the current token to one of: an atomic
// leaf, a bracketed collection, a control construct, a macro use, or a
// bare record/map literal.
func (p *Parser) parsePrimary() (*syntax.Node, error) {
	c := p.cur()
	switch c.Kind {
	case token.KindInteger:
		return p.leaf(syntax.NodeInteger), nil
	case token.KindFloat:
		return p.leaf(syntax.NodeFloat), nil
	case token.KindString:
		return p.leaf(syntax.NodeString), nil
	case token.KindChar:
		return p.leaf(syntax.NodeChar), nil
	case token.KindVariable:
		return p.leaf(syntax.NodeVariable), nil
	case token.KindAtom:
		return p.leaf(syntax.NodeAtom), nil
	case token.KindKeyword:
		switch c.Text {
		case "begin":
			return p.parseBeginEnd()
		case "if":
			return p.parseIf()
		case "case":
			return p.parseCase()
		case "receive":
			return p.parseReceive()
		case "try":
			return p.parseTry()
		case "fun":
			return p.parseFun()
		}
		return nil, p.failure([]string{"expression"})
	}

	switch {
	case c.Kind == token.KindSymbol && c.Text == "(":
		return p.parseParen()
	case c.Kind == token.KindSymbol && c.Text == "[":
		return p.parseListOrComprehension()
	case c.Kind == token.KindSymbol && c.Text == "{":
		return p.parseTuple()
	case c.Kind == token.KindSymbol && c.Text == "<<":
		return p.parseBinaryLitOrComprehension()
	case c.Kind == token.KindSymbol && c.Text == "#":
		return p.parseRecordOrMapSuffix(nil, p.mark())
	case c.Kind == token.KindSymbol && c.Text == "?":
		return p.parseMacroUse()
	}
	return nil, p.failure([]string{"expression"})
}

// leaf consumes the current token as a childless node carrying its own
// text in Op, for uniform access regardless of leaf kind.
func (p *Parser) leaf(kind syntax.Kind) *syntax.Node {
	start := p.mark()
	t := p.advance()
	n := syntax.NewNode(kind)
	n.Op = t.Text
	n.FirstToken, n.LastToken = start, start
	return n
}

func (p *Parser) parseParen() (*syntax.Node, error) {
	start := p.mark()
	p.advance()
	inner, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	node := syntax.NewNode(syntax.NodeParen)
	syntax.AppendChild(node, inner)
	return p.finish(node, start), nil
}

func (p *Parser) parseTuple() (*syntax.Node, error) {
	start := p.mark()
	p.advance()
	tup := syntax.NewNode(syntax.NodeTuple)
	if !p.atSymbol("}") {
		for {
			el, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			syntax.AppendChild(tup, el)
			if p.atSymbol(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	return p.finish(tup, start), nil
}

// parseListOrComprehension parses "[" "]" (empty list), "[" Exprs ["|"
// Tail] "]" (list literal, optionally improper), or "[" Expr "||"
// Qualifiers "]" (comprehension).
func (p *Parser) parseListOrComprehension() (*syntax.Node, error) {
	start := p.mark()
	p.advance()
	if p.atSymbol("]") {
		p.advance()
		return p.finish(syntax.NewNode(syntax.NodeList), start), nil
	}

	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.atSymbol("||") {
		return p.parseComprehensionTail(syntax.NodeComprehension, first, start, "]")
	}

	list := syntax.NewNode(syntax.NodeList)
	syntax.AppendChild(list, first)
	for p.atSymbol(",") {
		p.advance()
		el, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(list, el)
	}
	if p.atSymbol("|") {
		p.advance()
		tail, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		tailNode := syntax.NewNode(syntax.NodeBlock)
		tailNode.Op = "tail"
		syntax.AppendChild(tailNode, tail)
		syntax.AppendChild(list, tailNode)
	}
	if _, err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	return p.finish(list, start), nil
}

func (p *Parser) parseBinaryLitOrComprehension() (*syntax.Node, error) {
	start := p.mark()
	p.advance()
	if p.atSymbol(">>") {
		p.advance()
		return p.finish(syntax.NewNode(syntax.NodeBinaryLit), start), nil
	}

	first, err := p.parseBinaryElement()
	if err != nil {
		return nil, err
	}
	if p.atSymbol("||") {
		return p.parseComprehensionTail(syntax.NodeComprehension, first, start, ">>")
	}

	lit := syntax.NewNode(syntax.NodeBinaryLit)
	syntax.AppendChild(lit, first)
	for p.atSymbol(",") {
		p.advance()
		el, err := p.parseBinaryElement()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(lit, el)
	}
	if _, err := p.expectSymbol(">>"); err != nil {
		return nil, err
	}
	return p.finish(lit, start), nil
}

// parseBinaryElement parses Expr [":" Size] ["/" TypeSpec]. TypeSpec is
// kept as an opaque raw token span rather than broken into its
// dash-separated segments: it is vocabulary the layout engine never
// breaks across lines, so there is no structural benefit to parsing it
// further.
func (p *Parser) parseBinaryElement() (*syntax.Node, error) {
	start := p.mark()
	val, err := p.parseExpr(catchPrecedence + 1)
	if err != nil {
		return nil, err
	}
	el := syntax.NewNode(syntax.NodeBinaryElement)
	syntax.AppendChild(el, val)
	if p.atSymbol(":") {
		p.advance()
		size, err := p.parseExpr(catchPrecedence + 1)
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(el, size)
	}
	if p.atSymbol("/") {
		p.advance()
		rawStart := p.pos
		for !p.atEOF() && !p.atSymbol(",") && !p.atSymbol(">>") {
			p.advance()
		}
		if p.pos > rawStart {
			raw := syntax.NewNode(syntax.NodeBlock)
			raw.FirstToken = p.sig[rawStart]
			raw.LastToken = p.sig[p.pos-1]
			syntax.AppendChild(el, raw)
		}
	}
	return p.finish(el, start), nil
}

// parseComprehensionTail parses "||" Qualifiers close, where a
// qualifier is a generator (Pattern "<-" Expr or Pattern "<=" Expr) or
// a filter (an ordinary boolean expression).
func (p *Parser) parseComprehensionTail(kind syntax.Kind, head *syntax.Node, start int, close string) (*syntax.Node, error) {
	p.advance() // '||'
	node := syntax.NewNode(kind)
	if close == ">>" {
		node.Op = "<<>>"
	} else {
		node.Op = "[]"
	}
	syntax.AppendChild(node, head)
	for {
		q, err := p.parseQualifier()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(node, q)
		if p.atSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectSymbol(close); err != nil {
		return nil, err
	}
	return p.finish(node, start), nil
}

func (p *Parser) parseQualifier() (*syntax.Node, error) {
	start := p.mark()
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.atSymbol("<-") || p.atSymbol("<=") {
		op := p.cur().Text
		p.advance()
		src, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		gen := syntax.NewNode(syntax.NodeGenerator)
		gen.Op = op
		syntax.AppendChild(gen, expr)
		syntax.AppendChild(gen, src)
		return p.finish(gen, start), nil
	}
	filter := syntax.NewNode(syntax.NodeFilter)
	syntax.AppendChild(filter, expr)
	return p.finish(filter, start), nil
}

// parseMacroUse parses "?" Name ["(" Args ")"]. Arguments are parsed as
// expressions when possible; a macro invocation whose arguments are
// not valid expression syntax is rare enough in practice that we let
// that surface as an ordinary parse failure rather than special-casing
// it the way -define bodies are special-cased.
func (p *Parser) parseMacroUse() (*syntax.Node, error) {
	start := p.mark()
	p.advance() // '?'
	nameTok := p.cur()
	if nameTok.Kind != token.KindAtom && nameTok.Kind != token.KindVariable {
		return nil, p.failure([]string{"macro name"})
	}
	p.advance()
	use := syntax.NewNode(syntax.NodeMacroUse)
	use.Name = nameTok.Text
	if p.atSymbol("(") {
		use.Op = "paren"
		p.advance()
		if !p.atSymbol(")") {
			for {
				arg, err := p.parseExpr(0)
				if err != nil {
					return nil, err
				}
				syntax.AppendChild(use, arg)
				if p.atSymbol(",") {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
	}
	return p.finish(use, start), nil
}
