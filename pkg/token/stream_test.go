package token_test

import (
	"testing"

	"github.com/efmtlang/elfmt/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleTokens() (src []byte, toks []token.Token) {
	src = []byte("a b")
	toks = []token.Token{
		{Kind: token.KindAtom, Text: "a", StartOffset: 0, EndOffset: 1, Line: 1, Column: 1},
		{Kind: token.KindWhitespace, Text: " ", StartOffset: 1, EndOffset: 2, Line: 1, Column: 2},
		{Kind: token.KindAtom, Text: "b", StartOffset: 2, EndOffset: 3, Line: 1, Column: 3},
	}
	return
}

func TestStreamAtOutOfRangeReturnsEOF(t *testing.T) {
	src, toks := simpleTokens()
	s := token.New(src, toks)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, token.KindAtom, s.At(0).Kind)
	assert.Equal(t, token.KindEOF, s.At(-1).Kind)
	assert.Equal(t, token.KindEOF, s.At(100).Kind)
}

func TestStreamNextPrevSignificantSkipTrivia(t *testing.T) {
	src, toks := simpleTokens()
	s := token.New(src, toks)

	assert.Equal(t, 0, s.NextSignificant(0))
	assert.Equal(t, 2, s.NextSignificant(1))
	assert.Equal(t, 0, s.PrevSignificant(1))
	assert.Equal(t, -1, s.PrevSignificant(-1))
}

func TestStreamSpanText(t *testing.T) {
	src, toks := simpleTokens()
	s := token.New(src, toks)

	assert.Equal(t, "a b", s.SpanText(0, 2))
	assert.Equal(t, "a", s.SpanText(0, 0))
	assert.Equal(t, "", s.SpanText(2, 0))
}

func TestValidateDetectsGaps(t *testing.T) {
	src, toks := simpleTokens()
	assert.True(t, token.Validate(src, toks))

	gappy := make([]token.Token, len(toks))
	copy(gappy, toks)
	gappy[2].StartOffset = 5
	gappy[2].EndOffset = 6
	assert.False(t, token.Validate(src, gappy))

	assert.True(t, token.Validate(nil, nil))
}

func TestKindTriviaClassification(t *testing.T) {
	assert.True(t, token.KindWhitespace.IsTrivia())
	assert.True(t, token.KindNewline.IsTrivia())
	assert.True(t, token.KindLineComment.IsTrivia())
	assert.False(t, token.KindAtom.IsTrivia())

	assert.True(t, token.KindAtom.IsSignificant())
	assert.False(t, token.KindEOF.IsSignificant())
	assert.False(t, token.KindWhitespace.IsSignificant())
}
