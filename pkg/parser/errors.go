package parser

import (
	"fmt"

	"github.com/efmtlang/elfmt/pkg/token"
)

// Span identifies a byte range for error reporting.
type Span struct {
	StartOffset int
	EndOffset   int
	Line        int
	Column      int
}

func spanOf(t token.Token) Span {
	return Span{StartOffset: t.StartOffset, EndOffset: t.EndOffset, Line: t.Line, Column: t.Column}
}

// ParseFailure is returned when the token stream does not match any
// production the parser tried.
type ParseFailure struct {
	Span     Span
	Expected []string
	Found    string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse failure at %d:%d: expected %v, found %q",
		e.Span.Line, e.Span.Column, e.Expected, e.Found)
}

// UnexpectedEOF is returned when the input ends inside an open
// construct.
type UnexpectedEOF struct {
	Expected []string
}

func (e *UnexpectedEOF) Error() string {
	return fmt.Sprintf("unexpected end of input: expected %v", e.Expected)
}

// AmbiguousOperator is returned when a chain of non-associative,
// equal-precedence operators appears without disambiguating
// parentheses.
type AmbiguousOperator struct {
	Span Span
	Op   string
}

func (e *AmbiguousOperator) Error() string {
	return fmt.Sprintf("ambiguous use of non-associative operator %q at %d:%d", e.Op, e.Span.Line, e.Span.Column)
}

// CommentUnattachable is returned by the trivia pass when a comment
// cannot be attached to any AST edge.
// This indicates a bug in this package, not a malformed input file.
type CommentUnattachable struct {
	Span Span
}

func (e *CommentUnattachable) Error() string {
	return fmt.Sprintf("internal: comment at %d:%d could not be attached to any node", e.Span.Line, e.Span.Column)
}
