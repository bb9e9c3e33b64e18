package parser

import (
	"github.com/efmtlang/elfmt/pkg/syntax"
	"github.com/efmtlang/elfmt/pkg/token"
)

// parseExpr implements Pratt-style operator-precedence parsing:
// parsePrimary produces a left operand, then this loop absorbs
// binary operators whose precedence is at least minPrec, recursing with
// a raised floor for left-associative and non-associative operators
// and the same floor for right-associative ones.
func (p *Parser) parseExpr(minPrec int) (*syntax.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryRHS(left, minPrec)
}

func (p *Parser) parseBinaryRHS(left *syntax.Node, minPrec int) (*syntax.Node, error) {
	for {
		opTok := p.cur()
		if !isOperatorToken(opTok) {
			return left, nil
		}
		info, ok := binaryOps[opTok.Text]
		if !ok || info.precedence < minPrec {
			return left, nil
		}

		// A non-associative operator may not chain with another
		// operator at the same precedence without parentheses.
		if info.assoc == assocNone && left.Kind == syntax.NodeBinaryOp {
			if prevInfo, found := binaryOps[left.Op]; found && prevInfo.precedence == info.precedence {
				return nil, &AmbiguousOperator{Span: spanOf(opTok), Op: opTok.Text}
			}
		}

		start := left.FirstToken
		p.advance()

		nextMin := info.precedence + 1
		if info.assoc == assocRight {
			nextMin = info.precedence
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		right, err = p.parseBinaryRHS(right, nextMin)
		if err != nil {
			return nil, err
		}

		node := syntax.NewNode(syntax.NodeBinaryOp)
		node.Op = opTok.Text
		syntax.AppendChild(node, left)
		syntax.AppendChild(node, right)
		node.FirstToken = start
		node.LastToken = p.lastConsumedRaw()
		left = node
	}
}

func isOperatorToken(t token.Token) bool {
	return t.Kind == token.KindSymbol || t.Kind == token.KindKeyword
}

// parseUnary handles prefix operators and catch, then falls through to
// a postfix-decorated primary.
func (p *Parser) parseUnary() (*syntax.Node, error) {
	c := p.cur()
	if c.Kind == token.KindKeyword && c.Text == "catch" {
		start := p.mark()
		p.advance()
		operand, err := p.parseExpr(catchPrecedence)
		if err != nil {
			return nil, err
		}
		node := syntax.NewNode(syntax.NodeCatch)
		syntax.AppendChild(node, operand)
		return p.finish(node, start), nil
	}
	if unaryOps[c.Text] && isOperatorToken(c) {
		start := p.mark()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node := syntax.NewNode(syntax.NodeUnaryOp)
		node.Op = c.Text
		syntax.AppendChild(node, operand)
		return p.finish(node, start), nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression and then absorbs any
// trailing call-argument lists, remote (Mod:Name) qualifiers, record
// field/update suffixes, and map update suffixes.
func (p *Parser) parsePostfix() (*syntax.Node, error) {
	start := p.mark()
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.atSymbol(":"):
			p.advance()
			nameTok := p.cur()
			if nameTok.Kind != token.KindAtom {
				return nil, p.failure([]string{"atom after ':'"})
			}
			p.advance()
			remote := syntax.NewNode(syntax.NodeRemote)
			remote.Name = nameTok.Text
			syntax.AppendChild(remote, expr)
			expr = p.finish(remote, start)
			if p.atSymbol("(") {
				expr, err = p.parseCallArgs(expr, start)
				if err != nil {
					return nil, err
				}
			}
		case p.atSymbol("("):
			expr, err = p.parseCallArgs(expr, start)
			if err != nil {
				return nil, err
			}
		case p.atSymbol("#"):
			expr, err = p.parseRecordOrMapSuffix(expr, start)
			if err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseCallArgs(callee *syntax.Node, start int) (*syntax.Node, error) {
	p.advance() // '('
	call := syntax.NewNode(syntax.NodeCall)
	if callee.Kind == syntax.NodeRemote {
		call.Name = callee.Name
	} else if callee.Kind == syntax.NodeAtom {
		call.Name = callee.Op
	}
	syntax.AppendChild(call, callee)
	if !p.atSymbol(")") {
		for {
			arg, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			syntax.AppendChild(call, arg)
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
	return p.finish(call, start), nil
}

// parseRecordOrMapSuffix handles the family of postfix forms built on
// '#': record creation Base#Name{Fields}, record field access
// Base#Name.field, and map literal/update Base#{Pairs} where Base may
// be absent (bare "#Name{...}" / "#{...}").
func (p *Parser) parseRecordOrMapSuffix(base *syntax.Node, start int) (*syntax.Node, error) {
	p.advance() // '#'
	if p.atSymbol("{") {
		return p.parseMapBody(base, start)
	}
	nameTok := p.cur()
	if nameTok.Kind != token.KindAtom {
		return nil, p.failure([]string{"record name or '{'"})
	}
	p.advance()
	if p.atSymbol(".") {
		p.advance()
		fieldTok := p.cur()
		if fieldTok.Kind != token.KindAtom {
			return nil, p.failure([]string{"record field name"})
		}
		p.advance()
		access := syntax.NewNode(syntax.NodeRecordField)
		access.Name = nameTok.Text + "." + fieldTok.Text
		syntax.AppendChild(access, base)
		return p.finish(access, start), nil
	}
	rec := syntax.NewNode(syntax.NodeRecord)
	rec.Name = nameTok.Text
	syntax.AppendChild(rec, base)
	if _, err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	if !p.atSymbol("}") {
		for {
			field, err := p.parseRecordFieldInit()
			if err != nil {
				return nil, err
			}
			syntax.AppendChild(rec, field)
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
	return p.finish(rec, start), nil
}

func (p *Parser) parseRecordFieldInit() (*syntax.Node, error) {
	start := p.mark()
	field := syntax.NewNode(syntax.NodeRecordField)
	if p.atKind(token.KindAtom) || (p.atKind(token.KindVariable) && p.cur().Text == "_") {
		nameTok := p.cur()
		field.Name = nameTok.Text
		p.advance()
	}
	if _, err := p.expectSymbol("="); err != nil {
		return nil, err
	}
	val, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	syntax.AppendChild(field, val)
	return p.finish(field, start), nil
}

func (p *Parser) parseMapBody(base *syntax.Node, start int) (*syntax.Node, error) {
	if _, err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	m := syntax.NewNode(syntax.NodeMap)
	if base != nil {
		syntax.AppendChild(m, base)
	}
	if !p.atSymbol("}") {
		for {
			field, err := p.parseMapField()
			if err != nil {
				return nil, err
			}
			syntax.AppendChild(m, field)
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
	return p.finish(m, start), nil
}

func (p *Parser) parseMapField() (*syntax.Node, error) {
	start := p.mark()
	key, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	field := syntax.NewNode(syntax.NodeMapField)
	switch {
	case p.atSymbol("=>"):
		field.Op = "=>"
	case p.atSymbol(":="):
		field.Op = ":="
	default:
		return nil, p.failure([]string{"=>", ":="})
	}
	p.advance()
	val, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	syntax.AppendChild(field, key)
	syntax.AppendChild(field, val)
	return p.finish(field, start), nil
}
