package parser

import (
	"github.com/efmtlang/elfmt/pkg/syntax"
	"github.com/efmtlang/elfmt/pkg/token"
)

var blockStopAtSemiEnd = []string{";", "end"}
var blockStopAtEnd = []string{"end"}

func (p *Parser) parseBeginEnd() (*syntax.Node, error) {
	start := p.mark()
	if _, err := p.expectKeyword("begin"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(blockStopAtEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	node := syntax.NewNode(syntax.NodeBeginEnd)
	syntax.AppendChild(node, body)
	return p.finish(node, start), nil
}

func (p *Parser) parseIf() (*syntax.Node, error) {
	start := p.mark()
	if _, err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	ifNode := syntax.NewNode(syntax.NodeIf)
	for {
		clause, err := p.parseIfClause()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(ifNode, clause)
		if p.atSymbol(";") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return p.finish(ifNode, start), nil
}

func (p *Parser) parseIfClause() (*syntax.Node, error) {
	start := p.mark()
	guard, err := p.parseGuardSequence()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol("->"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(blockStopAtSemiEnd)
	if err != nil {
		return nil, err
	}
	clause := syntax.NewNode(syntax.NodeIfClause)
	syntax.AppendChild(clause, guard)
	syntax.AppendChild(clause, body)
	return p.finish(clause, start), nil
}

func (p *Parser) parseCase() (*syntax.Node, error) {
	start := p.mark()
	if _, err := p.expectKeyword("case"); err != nil {
		return nil, err
	}
	subject, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("of"); err != nil {
		return nil, err
	}
	caseNode := syntax.NewNode(syntax.NodeCase)
	syntax.AppendChild(caseNode, subject)
	for {
		clause, err := p.parseCaseClause(blockStopAtSemiEnd)
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(caseNode, clause)
		if p.atSymbol(";") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return p.finish(caseNode, start), nil
}

func (p *Parser) parseCaseClause(bodyStop []string) (*syntax.Node, error) {
	start := p.mark()
	pattern, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	clause := syntax.NewNode(syntax.NodeCaseClause)
	syntax.AppendChild(clause, pattern)
	if p.atKeyword("when") {
		p.advance()
		guard, err := p.parseGuardSequence()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(clause, guard)
	}
	if _, err := p.expectSymbol("->"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(bodyStop)
	if err != nil {
		return nil, err
	}
	syntax.AppendChild(clause, body)
	return p.finish(clause, start), nil
}

var receiveClauseStop = []string{";", "after", "end"}

func (p *Parser) parseReceive() (*syntax.Node, error) {
	start := p.mark()
	if _, err := p.expectKeyword("receive"); err != nil {
		return nil, err
	}
	recv := syntax.NewNode(syntax.NodeReceive)
	if !p.atKeyword("after") && !p.atKeyword("end") {
		for {
			clause, err := p.parseCaseClause(receiveClauseStop)
			if err != nil {
				return nil, err
			}
			clause.Kind = syntax.NodeReceiveClause
			syntax.AppendChild(recv, clause)
			if p.atSymbol(";") {
				p.advance()
				continue
			}
			break
		}
	}
	if p.atKeyword("after") {
		p.advance()
		timeout, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol("->"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock(blockStopAtEnd)
		if err != nil {
			return nil, err
		}
		after := syntax.NewNode(syntax.NodeAfterClause)
		syntax.AppendChild(after, timeout)
		syntax.AppendChild(after, body)
		syntax.AppendChild(recv, after)
	}
	if _, err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return p.finish(recv, start), nil
}

var tryBodyStop = []string{"of", "catch", "after", "end"}

func (p *Parser) parseTry() (*syntax.Node, error) {
	start := p.mark()
	if _, err := p.expectKeyword("try"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(tryBodyStop)
	if err != nil {
		return nil, err
	}
	tryNode := syntax.NewNode(syntax.NodeTry)
	syntax.AppendChild(tryNode, body)

	if p.atKeyword("of") {
		p.advance()
		ofBlock := syntax.NewNode(syntax.NodeBlock)
		for {
			clause, err := p.parseCaseClause([]string{";", "catch", "after", "end"})
			if err != nil {
				return nil, err
			}
			syntax.AppendChild(ofBlock, clause)
			if p.atSymbol(";") {
				p.advance()
				continue
			}
			break
		}
		syntax.AppendChild(tryNode, ofBlock)
	}

	if p.atKeyword("catch") {
		p.advance()
		catchBlock := syntax.NewNode(syntax.NodeBlock)
		for {
			clause, err := p.parseTryClause()
			if err != nil {
				return nil, err
			}
			syntax.AppendChild(catchBlock, clause)
			if p.atSymbol(";") {
				p.advance()
				continue
			}
			break
		}
		syntax.AppendChild(tryNode, catchBlock)
	}

	if p.atKeyword("after") {
		p.advance()
		afterBlock, err := p.parseBlock(blockStopAtEnd)
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(tryNode, afterBlock)
	}

	if _, err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return p.finish(tryNode, start), nil
}

// parseTryClause parses [Class ":"] Pattern ["when" GuardSequence]
// "->" Block, where Class is an exception class atom or a binding
// variable.
func (p *Parser) parseTryClause() (*syntax.Node, error) {
	start := p.mark()
	clause := syntax.NewNode(syntax.NodeTryClause)

	if (p.atKind(token.KindAtom) || p.atKind(token.KindVariable)) && p.symbolAhead(1, ":") {
		classTok := p.advance()
		p.advance() // ':'
		clause.Op = classTok.Text
	}

	pattern, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	syntax.AppendChild(clause, pattern)

	if p.atKeyword("when") {
		p.advance()
		guard, err := p.parseGuardSequence()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(clause, guard)
	}
	if _, err := p.expectSymbol("->"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock([]string{";", "after", "end"})
	if err != nil {
		return nil, err
	}
	syntax.AppendChild(clause, body)
	return p.finish(clause, start), nil
}

func (p *Parser) symbolAhead(n int, text string) bool {
	t := p.peekN(n)
	return t.Kind == token.KindSymbol && t.Text == text
}

// parseFun parses a fun reference ("fun name/arity" or "fun
// mod:name/arity") or an anonymous/named fun expression ("fun
// [Name](Args) [when Guard] -> Body end", possibly with ';'-joined
// clauses).
func (p *Parser) parseFun() (*syntax.Node, error) {
	start := p.mark()
	if _, err := p.expectKeyword("fun"); err != nil {
		return nil, err
	}

	if p.atKind(token.KindAtom) {
		if p.symbolAhead(1, "/") {
			nameTok := p.advance()
			p.advance() // '/'
			arityTok := p.cur()
			p.advance()
			ref := syntax.NewNode(syntax.NodeFunRef)
			ref.Name = nameTok.Text
			ref.Op = arityTok.Text
			return p.finish(ref, start), nil
		}
		if p.symbolAhead(1, ":") {
			modTok := p.advance()
			p.advance() // ':'
			nameTok := p.cur()
			p.advance()
			if _, err := p.expectSymbol("/"); err != nil {
				return nil, err
			}
			arityTok := p.cur()
			p.advance()
			ref := syntax.NewNode(syntax.NodeFunRef)
			ref.Name = modTok.Text + ":" + nameTok.Text
			ref.Op = arityTok.Text
			return p.finish(ref, start), nil
		}
	}

	fun := syntax.NewNode(syntax.NodeFun)
	for {
		clause, err := p.parseFunClause()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(fun, clause)
		if p.atSymbol(";") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return p.finish(fun, start), nil
}

func (p *Parser) parseFunClause() (*syntax.Node, error) {
	start := p.mark()
	clause := syntax.NewNode(syntax.NodeFunctionClause)
	if p.atKind(token.KindVariable) && p.symbolAhead(1, "(") {
		nameTok := p.advance()
		clause.Name = nameTok.Text
	}
	if _, err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	patterns := syntax.NewNode(syntax.NodeBlock)
	if !p.atSymbol(")") {
		for {
			pat, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			syntax.AppendChild(patterns, pat)
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
	syntax.AppendChild(clause, patterns)

	if p.atKeyword("when") {
		p.advance()
		guard, err := p.parseGuardSequence()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(clause, guard)
	}
	if _, err := p.expectSymbol("->"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(blockStopAtSemiEnd)
	if err != nil {
		return nil, err
	}
	syntax.AppendChild(clause, body)
	return p.finish(clause, start), nil
}

// parseBlock parses a ','-separated sequence of expressions (a clause
// body), stopping before whichever terminator in stop appears next
// without consuming it. It is a parse failure for the block to end on
// anything other than one of stop's tokens.
func (p *Parser) parseBlock(stop []string) (*syntax.Node, error) {
	start := p.mark()
	block := syntax.NewNode(syntax.NodeBlock)
	for {
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(block, expr)
		if p.atSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	if !p.atAny(stop) {
		return nil, p.failure(stop)
	}
	return p.finish(block, start), nil
}
