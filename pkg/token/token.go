// Package token defines the lexical token vocabulary for the input
// language and the classification rules that separate significant
// tokens from trivia.
package token

//go:generate stringer -type=Kind -trimprefix=Kind

// Kind classifies a single lexical token.
type Kind uint16

const (
	// KindEOF is the sentinel kind returned for out-of-range queries.
	KindEOF Kind = iota

	// Significant kinds: contribute to the AST.
	KindAtom
	KindVariable
	KindInteger
	KindFloat
	KindString
	KindChar
	KindKeyword
	KindSymbol // punctuation and operators: ( ) [ ] { } , ; : -> := | || etc.

	// Trivia kinds: attached to AST edges after parsing, never consumed
	// directly by the parser. Macro directives (-define, -include, ...)
	// are NOT trivia: they tokenize as ordinary symbol/atom/string runs
	// and are parsed as their own top-level forms.
	KindWhitespace
	KindNewline
	KindLineComment

	// KindOther is a fallback for bytes the lexer could not classify,
	// always reported as a lex-error rather than silently emitted.
	KindOther
)

// Token is an immutable lexical unit.
type Token struct {
	Kind Kind

	// Text is the literal source text of the token.
	Text string

	// StartOffset and EndOffset are byte offsets into the source,
	// [StartOffset, EndOffset).
	StartOffset int
	EndOffset   int

	// Line and Column are 1-based and refer to the token's start.
	Line   int
	Column int
}

// Len returns the byte length of the token.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsTrivia reports whether a token kind is whitespace, a comment, or a
// newline — i.e. does not contribute to the AST.
func (k Kind) IsTrivia() bool {
	switch k {
	case KindWhitespace, KindNewline, KindLineComment:
		return true
	default:
		return false
	}
}

// IsSignificant is the complement of IsTrivia, excluding KindEOF and
// KindOther (neither contributes to the AST either).
func (k Kind) IsSignificant() bool {
	switch k {
	case KindEOF, KindOther:
		return false
	default:
		return !k.IsTrivia()
	}
}
