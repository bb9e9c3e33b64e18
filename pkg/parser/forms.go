package parser

import (
	"github.com/efmtlang/elfmt/pkg/syntax"
	"github.com/efmtlang/elfmt/pkg/token"
)

// parseForm parses one top-level form: an attribute form ("-module(x).")
// or a function form (one or more ';'-joined clauses terminated by '.').
func (p *Parser) parseForm() (*syntax.Node, error) {
	if p.atSymbol("-") {
		return p.parseAttributeForm()
	}
	if p.atKind(token.KindAtom) {
		return p.parseFunctionForm()
	}
	return nil, p.failure([]string{"attribute form", "function clause"})
}

// parseAttributeForm parses "-" Name "(" Args ")" ".".
//
// Argument expressions are parsed with the full expression grammar so
// that e.g. -export([f/1, g/2]). gets list-literal formatting like any
// other list. -define bodies are the one exception: a macro replacement
// is not reliably valid expression syntax, so everything after the
// macro name/params is preserved as an opaque token run rather than
// forced through parseExpr.
func (p *Parser) parseAttributeForm() (*syntax.Node, error) {
	start := p.mark()
	if _, err := p.expectSymbol("-"); err != nil {
		return nil, err
	}
	nameTok := p.cur()
	if nameTok.Kind != token.KindAtom && nameTok.Kind != token.KindKeyword {
		return nil, p.failure([]string{"attribute name"})
	}
	p.advance()

	form := syntax.NewNode(syntax.NodeAttributeForm)
	form.Name = nameTok.Text

	if p.atSymbol("(") {
		form.Op = "paren"
		p.advance()
		if form.Name == "define" {
			if err := p.parseDefineArgs(form); err != nil {
				return nil, err
			}
		} else {
			if err := p.parseGenericAttributeArgs(form); err != nil {
				return nil, err
			}
		}
		if _, err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expectSymbol("."); err != nil {
		return nil, err
	}
	return p.finish(form, start), nil
}

// parseGenericAttributeArgs parses a top-level-comma-separated argument
// list as expressions, appending each as a child of form.
func (p *Parser) parseGenericAttributeArgs(form *syntax.Node) error {
	if p.atSymbol(")") {
		return nil
	}
	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return err
		}
		syntax.AppendChild(form, arg)
		if p.atSymbol(",") {
			p.advance()
			continue
		}
		return nil
	}
}

// parseDefineArgs parses "(" MacroNameOrCall "," RawReplacement ")" for
// a -define attribute. MacroNameOrCall is parsed as an expression
// (atom, or call-shaped NAME(Params)); the replacement is everything up
// to the matching top-level ')' and is stored verbatim as a single
// opaque raw node.
func (p *Parser) parseDefineArgs(form *syntax.Node) error {
	nameExpr, err := p.parseExpr(0)
	if err != nil {
		return err
	}
	syntax.AppendChild(form, nameExpr)

	if !p.atSymbol(",") {
		return nil
	}
	p.advance()

	rawStart := p.pos
	depth := 0
	for {
		if p.atEOF() {
			return &UnexpectedEOF{Expected: []string{")"}}
		}
		if depth == 0 && p.atSymbol(")") {
			break
		}
		switch {
		case p.atSymbol("(") || p.atSymbol("[") || p.atSymbol("{") || p.atSymbol("<<"):
			depth++
		case p.atSymbol(")") || p.atSymbol("]") || p.atSymbol("}") || p.atSymbol(">>"):
			depth--
		}
		p.advance()
	}
	if p.pos > rawStart {
		raw := syntax.NewNode(syntax.NodeBlock)
		raw.FirstToken = p.sig[rawStart]
		raw.LastToken = p.sig[p.pos-1]
		syntax.AppendChild(form, raw)
	}
	return nil
}

// parseFunctionForm parses one or more ';'-separated clauses sharing a
// name, terminated by '.'.
func (p *Parser) parseFunctionForm() (*syntax.Node, error) {
	start := p.mark()
	form := syntax.NewNode(syntax.NodeFunctionForm)

	for {
		clause, err := p.parseFunctionClause()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(form, clause)
		if p.atSymbol(";") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectSymbol("."); err != nil {
		return nil, err
	}
	form.Name = form.FirstChild.Name
	return p.finish(form, start), nil
}

// parseFunctionClause parses Name "(" Patterns ")" ["when" GuardSequence] "->" Block.
func (p *Parser) parseFunctionClause() (*syntax.Node, error) {
	start := p.mark()
	nameTok := p.cur()
	if nameTok.Kind != token.KindAtom {
		return nil, p.failure([]string{"function name"})
	}
	p.advance()

	clause := syntax.NewNode(syntax.NodeFunctionClause)
	clause.Name = nameTok.Text

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
	body, err := p.parseBlock(clauseBodyTerminators)
	if err != nil {
		return nil, err
	}
	syntax.AppendChild(clause, body)

	return p.finish(clause, start), nil
}

// clauseBodyTerminators are the symbols/keywords that end a clause
// body without being part of an expression: ';' (next clause) and '.'
// (end of form).
var clauseBodyTerminators = []string{";", "."}
