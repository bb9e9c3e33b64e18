// Package parser implements a recursive-descent parser with bounded
// lookahead, a Pratt operator table for expressions, and second-pass
// trivia attachment performed by trivia.go after the tree is complete.
package parser

import (
	"github.com/efmtlang/elfmt/pkg/syntax"
	"github.com/efmtlang/elfmt/pkg/token"
)

// maxLookahead bounds backtracking distance, keeping worst-case
// parsing linear.
const maxLookahead = 3

// Parser holds the cursor state for one parse of one token stream.
// Trivia is skipped transparently: the cursor only ever stops on
// significant tokens.
type Parser struct {
	toks []token.Token
	sig  []int // indices into toks of every significant token, in order
	pos  int   // cursor into sig
}

// Parse parses a complete module from a significant-and-trivia token
// slice produced by the lexer. On success it returns a fully-built
// tree; on failure it returns nil and the error — never a partial
// tree.
func Parse(toks []token.Token) (*syntax.Node, error) {
	p := newParser(toks)
	root := syntax.NewNode(syntax.NodeModule)
	if len(p.sig) == 0 {
		root.FirstToken, root.LastToken = -1, -1
		return attachTrivia(root, toks)
	}
	root.FirstToken = p.sig[0]

	for !p.atEOF() {
		form, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		syntax.AppendChild(root, form)
	}
	root.LastToken = p.lastConsumedRaw()
	return attachTrivia(root, toks)
}

func newParser(toks []token.Token) *Parser {
	sig := make([]int, 0, len(toks))
	for i, t := range toks {
		if t.Kind.IsSignificant() {
			sig = append(sig, i)
		}
	}
	return &Parser{toks: toks, sig: sig}
}

// cur returns the current significant token, or an EOF sentinel.
func (p *Parser) cur() token.Token {
	return p.peekN(0)
}

// peekN looks ahead n significant tokens from the cursor, returning
// the EOF sentinel past the end of the stream. It does not check n
// against maxLookahead; callers keep within that bound themselves.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i < 0 || i >= len(p.sig) {
		return p.eofToken()
	}
	return p.toks[p.sig[i]]
}

func (p *Parser) eofToken() token.Token {
	line, col := 1, 1
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		line, col = last.Line, last.Column+last.Len()
	}
	end := len(p.toks)
	offset := 0
	if end > 0 {
		offset = p.toks[end-1].EndOffset
	}
	return token.Token{Kind: token.KindEOF, StartOffset: offset, EndOffset: offset, Line: line, Column: col}
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.sig)
}

// curRawIndex returns the raw token-slice index of the current
// significant token, or len(p.toks) at EOF.
func (p *Parser) curRawIndex() int {
	if p.pos >= len(p.sig) {
		return len(p.toks)
	}
	return p.sig[p.pos]
}

// lastConsumedRaw returns the raw index of the most recently consumed
// significant token, or -1 if nothing has been consumed.
func (p *Parser) lastConsumedRaw() int {
	if p.pos == 0 {
		return -1
	}
	return p.sig[p.pos-1]
}

// advance consumes and returns the current significant token.
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.sig) {
		p.pos++
	}
	return t
}

func (p *Parser) atKind(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) atSymbol(text string) bool {
	c := p.cur()
	return c.Kind == token.KindSymbol && c.Text == text
}

func (p *Parser) atKeyword(text string) bool {
	c := p.cur()
	return c.Kind == token.KindKeyword && c.Text == text
}

// atAny reports whether the current token is one of the given symbol
// or keyword texts, whichever kind each happens to be.
func (p *Parser) atAny(texts []string) bool {
	for _, s := range texts {
		if p.atSymbol(s) || p.atKeyword(s) {
			return true
		}
	}
	return false
}

// expectSymbol consumes the given symbol or returns a parse-failure.
func (p *Parser) expectSymbol(text string) (token.Token, error) {
	if p.atSymbol(text) {
		return p.advance(), nil
	}
	return token.Token{}, p.failure([]string{text})
}

func (p *Parser) expectKeyword(text string) (token.Token, error) {
	if p.atKeyword(text) {
		return p.advance(), nil
	}
	return token.Token{}, p.failure([]string{text})
}

func (p *Parser) failure(expected []string) error {
	c := p.cur()
	if c.Kind == token.KindEOF {
		return &UnexpectedEOF{Expected: expected}
	}
	return &ParseFailure{Span: spanOf(c), Expected: expected, Found: c.Text}
}

// mark records the raw start index for a node about to be parsed.
func (p *Parser) mark() int {
	return p.curRawIndex()
}

// finish sets a node's token span from a previously recorded start to
// the last consumed token, and appends it nowhere (caller attaches).
func (p *Parser) finish(n *syntax.Node, start int) *syntax.Node {
	n.FirstToken = start
	n.LastToken = p.lastConsumedRaw()
	if n.LastToken < n.FirstToken {
		n.LastToken = n.FirstToken
	}
	return n
}
