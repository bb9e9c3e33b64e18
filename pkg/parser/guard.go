package parser

import "github.com/efmtlang/elfmt/pkg/syntax"

// parseGuardSequence parses a ';'-separated disjunction of guard
// clauses, stopping naturally at '->' since that is not a separator.
func (p *Parser) parseGuardSequence() (*syntax.Node, error) {
	start := p.mark()
	seq := syntax.NewNode(syntax.NodeGuardSequence)
	for {
		clause, err := p.parseGuardClause()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(seq, clause)
		if p.atSymbol(";") {
			p.advance()
			continue
		}
		break
	}
	return p.finish(seq, start), nil
}

// parseGuardClause parses a ','-separated conjunction of guard tests.
func (p *Parser) parseGuardClause() (*syntax.Node, error) {
	start := p.mark()
	clause := syntax.NewNode(syntax.NodeGuardClause)
	for {
		test, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(clause, test)
		if p.atSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	return p.finish(clause, start), nil
}
