package syntax

import "github.com/efmtlang/elfmt/pkg/token"

// Range is a byte range [StartOffset, EndOffset) in the source.
type Range struct {
	StartOffset int
	EndOffset   int
}

// Len returns the length of the range in bytes.
func (r Range) Len() int { return r.EndOffset - r.StartOffset }

// SourceRange returns the byte range spanned by n's tokens, using the
// given stream to resolve token indices to offsets. Returns a zero
// Range for a synthetic node with no token span.
func (n *Node) SourceRange(stream *token.Stream) Range {
	if n == nil || n.FirstToken < 0 || n.LastToken < 0 {
		return Range{}
	}
	start := stream.At(n.FirstToken).StartOffset
	end := stream.At(n.LastToken).EndOffset
	return Range{StartOffset: start, EndOffset: end}
}

// Text returns the exact source text spanned by n, using stream to
// resolve offsets and source for the bytes.
func (n *Node) Text(stream *token.Stream) string {
	return stream.SpanText(n.FirstToken, n.LastToken)
}
