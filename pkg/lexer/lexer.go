// Package lexer implements the raw tokenizer for the input language.
//
// No third-party tokenizer exists for this language in the Go
// ecosystem, so this package fills that role directly. It is a
// single-pass, byte-oriented scanner in the same style as a hand-rolled
// Markdown tokenizer: a cursor over the raw bytes, a sequence of
// "try this construct" probes, and an emit() that appends a
// token.Token. It never backtracks past a token boundary it has
// already emitted.
package lexer

import (
	"fmt"

	"github.com/efmtlang/elfmt/pkg/token"
)

// Error reports a malformed token.
type Error struct {
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

var keywords = map[string]bool{
	"after": true, "and": true, "andalso": true, "band": true,
	"begin": true, "bnot": true, "bor": true, "bsl": true, "bsr": true,
	"bxor": true, "case": true, "catch": true, "cond": true, "div": true,
	"end": true, "fun": true, "if": true, "let": true, "not": true,
	"of": true, "or": true, "orelse": true, "receive": true, "rem": true,
	"try": true, "when": true, "xor": true,
}

// IsKeyword reports whether text is a reserved word of the input
// language. Exported so the parser can classify an already-scanned
// atom-shaped token without re-scanning.
func IsKeyword(text string) bool {
	return keywords[text]
}

type lexer struct {
	src    []byte
	pos    int
	line   int
	column int
	tokens []token.Token
}

// Tokenize scans src into a contiguous, non-overlapping token stream
// covering [0, len(src)). Returns a *Error wrapped as the standard
// error interface on the first malformed token; the partial token
// slice up to that point is still returned so callers can report a
// precise span.
func Tokenize(src []byte) ([]token.Token, error) {
	if len(src) == 0 {
		return nil, nil
	}
	lx := &lexer{src: src, line: 1, column: 1, tokens: make([]token.Token, 0, len(src)/3)}
	for lx.pos < len(lx.src) {
		if err := lx.next(); err != nil {
			return lx.tokens, err
		}
	}
	return lx.tokens, nil
}

func (lx *lexer) peek() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *lexer) peekAt(off int) byte {
	i := lx.pos + off
	if i >= len(lx.src) {
		return 0
	}
	return lx.src[i]
}

// advance consumes one byte, tracking line/column. Newlines are
// handled separately (by next for a newline token, by advanceRaw
// inside literals) so column bookkeeping here only needs to cover the
// common case.
func (lx *lexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++
	lx.column++
	return c
}

func (lx *lexer) emit(kind token.Kind, start int, startLine, startCol int) {
	lx.tokens = append(lx.tokens, token.Token{
		Kind:        kind,
		Text:        string(lx.src[start:lx.pos]),
		StartOffset: start,
		EndOffset:   lx.pos,
		Line:        startLine,
		Column:      startCol,
	})
}

func (lx *lexer) next() error {
	start := lx.pos
	startLine, startCol := lx.line, lx.column
	c := lx.peek()

	switch {
	case c == '\n':
		lx.pos++
		lx.emit(token.KindNewline, start, startLine, startCol)
		lx.line++
		lx.column = 1
		return nil
	case c == ' ' || c == '\t' || c == '\r':
		lx.scanWhitespace()
		lx.emit(token.KindWhitespace, start, startLine, startCol)
		return nil
	case c == '%':
		lx.scanLineComment()
		lx.emit(token.KindLineComment, start, startLine, startCol)
		return nil
	case c == '"':
		return lx.scanString(start, startLine, startCol)
	case c == '\'':
		return lx.scanQuotedAtom(start, startLine, startCol)
	case c == '$':
		return lx.scanChar(start, startLine, startCol)
	case isDigit(c):
		lx.scanNumber()
		kind := token.KindInteger
		if containsAny(lx.src[start:lx.pos], '.', 'e', 'E') && !isBasedInteger(lx.src[start:lx.pos]) {
			kind = token.KindFloat
		}
		lx.emit(kind, start, startLine, startCol)
		return nil
	case isUpper(c) || c == '_':
		lx.scanIdent()
		lx.emit(token.KindVariable, start, startLine, startCol)
		return nil
	case isLower(c):
		lx.scanIdent()
		text := string(lx.src[start:lx.pos])
		if IsKeyword(text) {
			lx.emit(token.KindKeyword, start, startLine, startCol)
		} else {
			lx.emit(token.KindAtom, start, startLine, startCol)
		}
		return nil
	default:
		if ok := lx.scanSymbol(); ok {
			lx.emit(token.KindSymbol, start, startLine, startCol)
			return nil
		}
		lx.pos++
		lx.emit(token.KindOther, start, startLine, startCol)
		return &Error{Offset: start, Line: startLine, Column: startCol,
			Msg: fmt.Sprintf("unexpected byte %q", c)}
	}
}

func (lx *lexer) scanWhitespace() {
	for {
		c := lx.peek()
		if c == ' ' || c == '\t' || c == '\r' {
			lx.advance()
			continue
		}
		return
	}
}

func (lx *lexer) scanLineComment() {
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.advance()
	}
}

func (lx *lexer) scanString(start int, startLine, startCol int) error {
	lx.advance() // opening quote
	for {
		if lx.pos >= len(lx.src) {
			return &Error{Offset: start, Line: startLine, Column: startCol, Msg: "unterminated string"}
		}
		c := lx.peek()
		if c == '\\' {
			lx.advance()
			if lx.pos < len(lx.src) {
				lx.advanceRaw()
			}
			continue
		}
		if c == '"' {
			lx.advance()
			lx.emit(token.KindString, start, startLine, startCol)
			return nil
		}
		lx.advanceRaw()
	}
}

func (lx *lexer) scanQuotedAtom(start int, startLine, startCol int) error {
	lx.advance() // opening quote
	for {
		if lx.pos >= len(lx.src) {
			return &Error{Offset: start, Line: startLine, Column: startCol, Msg: "unterminated quoted atom"}
		}
		c := lx.peek()
		if c == '\\' {
			lx.advance()
			if lx.pos < len(lx.src) {
				lx.advanceRaw()
			}
			continue
		}
		if c == '\'' {
			lx.advance()
			lx.emit(token.KindAtom, start, startLine, startCol)
			return nil
		}
		lx.advanceRaw()
	}
}

func (lx *lexer) scanChar(start int, startLine, startCol int) error {
	lx.advance() // '$'
	if lx.pos >= len(lx.src) {
		return &Error{Offset: start, Line: startLine, Column: startCol, Msg: "unterminated character literal"}
	}
	if lx.peek() == '\\' {
		lx.advance()
		if lx.pos < len(lx.src) {
			lx.advanceRaw()
		}
	} else {
		lx.advanceRaw()
	}
	lx.emit(token.KindChar, start, startLine, startCol)
	return nil
}

// advanceRaw consumes one byte inside a string, quoted atom or
// character literal. Unlike advance it recognizes a newline and moves
// to the next line, so a literal that spans several source lines is
// accepted and later tokens keep correct line/column positions.
func (lx *lexer) advanceRaw() {
	if lx.src[lx.pos] == '\n' {
		lx.line++
		lx.column = 1
		lx.pos++
		return
	}
	lx.advance()
}

func (lx *lexer) scanNumber() {
	for isDigit(lx.peek()) {
		lx.advance()
	}
	// Based integer: 16#1F, 2#101.
	if lx.peek() == '#' && isAlnum(lx.peekAt(1)) {
		lx.advance()
		for isAlnum(lx.peek()) {
			lx.advance()
		}
		return
	}
	if lx.peek() == '.' && isDigit(lx.peekAt(1)) {
		lx.advance()
		for isDigit(lx.peek()) {
			lx.advance()
		}
	}
	if lx.peek() == 'e' || lx.peek() == 'E' {
		save := lx.pos
		lx.advance()
		if lx.peek() == '+' || lx.peek() == '-' {
			lx.advance()
		}
		if isDigit(lx.peek()) {
			for isDigit(lx.peek()) {
				lx.advance()
			}
		} else {
			lx.pos = save
		}
	}
}

func (lx *lexer) scanIdent() {
	for isAlnum(lx.peek()) || lx.peek() == '@' {
		lx.advance()
	}
}

// symbols is checked longest-first so multi-character operators are
// never split into their single-character prefixes.
var symbols = []string{
	"=:=", "=/=", "->", "<-", "<=", "=>", ":=", "==", "/=", "=<", ">=",
	"++", "--", "||", "<<", ">>", "::",
	"(", ")", "[", "]", "{", "}", ",", ";", ":", ".", "|", "!", "?",
	"#", "=", "<", ">", "+", "-", "*", "/",
}

func (lx *lexer) scanSymbol() bool {
	for _, sym := range symbols {
		if matchAt(lx.src, lx.pos, sym) {
			for range sym {
				lx.advance()
			}
			return true
		}
	}
	return false
}

func matchAt(src []byte, pos int, sym string) bool {
	if pos+len(sym) > len(src) {
		return false
	}
	return string(src[pos:pos+len(sym)]) == sym
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isAlnum(c byte) bool {
	return isDigit(c) || isUpper(c) || isLower(c) || c == '_'
}

func containsAny(b []byte, chars ...byte) bool {
	for _, c := range b {
		for _, want := range chars {
			if c == want {
				return true
			}
		}
	}
	return false
}

func isBasedInteger(b []byte) bool {
	for _, c := range b {
		if c == '#' {
			return true
		}
	}
	return false
}
