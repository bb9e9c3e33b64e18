package format

import (
	"fmt"

	"github.com/efmtlang/elfmt/pkg/lexer"
	"github.com/efmtlang/elfmt/pkg/parser"
)

// Error kinds. Every error Format returns is a *Error
// whose Kind is one of these five constants.
const (
	KindLexError            = "lex-error"
	KindParseFailure        = "parse-failure"
	KindUnexpectedEOF       = "unexpected-eof"
	KindCommentUnattachable = "comment-unattachable"
	KindInternal            = "internal"
)

// Error is the uniform error type Format returns, carrying the
// underlying lexer or parser error alongside its classified Kind so
// callers (the runner, the reporter) never need to know about the
// lexer/parser packages directly.
type Error struct {
	Kind  string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Location reports the line and column of the underlying lexer or
// parser error, when it carries one. UnexpectedEOF and internal
// errors have no fixed position, so ok is false for those.
func (e *Error) Location() (line, col int, ok bool) {
	switch c := e.Cause.(type) {
	case *lexer.Error:
		return c.Line, c.Column, true
	case *parser.ParseFailure:
		return c.Span.Line, c.Span.Column, true
	case *parser.AmbiguousOperator:
		return c.Span.Line, c.Span.Column, true
	case *parser.CommentUnattachable:
		return c.Span.Line, c.Span.Column, true
	default:
		return 0, 0, false
	}
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *lexer.Error:
		return &Error{Kind: KindLexError, Cause: err}
	case *parser.ParseFailure, *parser.AmbiguousOperator:
		return &Error{Kind: KindParseFailure, Cause: err}
	case *parser.UnexpectedEOF:
		return &Error{Kind: KindUnexpectedEOF, Cause: err}
	case *parser.CommentUnattachable:
		return &Error{Kind: KindCommentUnattachable, Cause: err}
	default:
		return &Error{Kind: KindInternal, Cause: err}
	}
}
