package parser

import (
	"github.com/efmtlang/elfmt/pkg/syntax"
	"github.com/efmtlang/elfmt/pkg/token"
)

// attachTrivia runs as a second pass over the already-built tree,
// assigning every comment token to the Leading or Trailing slice of
// whichever node owns it. A comment on the same source
// line as the previous significant token is trailing; otherwise it is
// leading on whatever comes next.
//
// Ownership prefers a node whose FirstToken/LastToken exactly matches
// the deciding index. Separator tokens (a clause-joining ';', an
// argument-joining ',') are never any node's
// own span boundary, so a comment following one falls back to the
// innermost node that *contains* that token index (the enclosing
// call, clause, or form), not the module root — the root is only used
// when no node's span covers the index at all, i.e. a comment before
// the first token or after the last one in the file.
//
// When several nodes share the token index that decides ownership
// (e.g. a module and its first form both start at the file's first
// significant token), ownership resolves to the outermost node. A
// comment block at the very top or bottom of a file is therefore
// module-scoped rather than attached to the adjacent form; this is a
// deliberate, documented convention, not an accident of traversal
// order.
func attachTrivia(root *syntax.Node, toks []token.Token) (*syntax.Node, error) {
	firstOwner := map[int]*syntax.Node{}
	lastOwner := map[int]*syntax.Node{}
	_ = syntax.Walk(root, func(n *syntax.Node) error {
		if n.FirstToken >= 0 {
			if _, ok := firstOwner[n.FirstToken]; !ok {
				firstOwner[n.FirstToken] = n
			}
		}
		if n.LastToken >= 0 {
			if _, ok := lastOwner[n.LastToken]; !ok {
				lastOwner[n.LastToken] = n
			}
		}
		return nil
	})

	enclosing := innermostOwners(root, len(toks))
	ownerAt := func(idx int) *syntax.Node {
		if idx < 0 {
			return root
		}
		if owner := lastOwner[idx]; owner != nil {
			return owner
		}
		if owner := enclosing[idx]; owner != nil {
			return owner
		}
		return root
	}

	prevSignificant := -1
	for i := 0; i < len(toks); i++ {
		t := toks[i]

		if t.Kind == token.KindLineComment {
			next := i + 1
			for next < len(toks) && !toks[next].Kind.IsSignificant() {
				next++
			}
			nextSigIdx := -1
			if next < len(toks) {
				nextSigIdx = next
			}

			comment := syntax.Comment{Text: t.Text, Line: t.Line}
			sameLineAsPrev := prevSignificant >= 0 && toks[prevSignificant].Line == t.Line

			switch {
			case sameLineAsPrev:
				owner := ownerAt(prevSignificant)
				owner.Trailing = append(owner.Trailing, comment)
			case nextSigIdx >= 0:
				comment.BlankLineBefore = countNewlinesBetween(toks, prevSignificant, i) >= 2
				owner := firstOwner[nextSigIdx]
				if owner == nil {
					owner = enclosing[nextSigIdx]
				}
				if owner == nil {
					owner = root
				}
				owner.Leading = append(owner.Leading, comment)
			default:
				owner := ownerAt(prevSignificant)
				owner.Trailing = append(owner.Trailing, comment)
			}
			continue
		}

		if t.Kind.IsSignificant() {
			if owner := firstOwner[i]; owner != nil && owner.Parent == root {
				owner.BlankLineBefore = prevSignificant >= 0 && countNewlinesBetween(toks, prevSignificant, i) >= 2
			}
			prevSignificant = i
		}
	}
	return root, nil
}

// innermostOwners returns, for every raw token index, the deepest
// node in the tree whose [FirstToken, LastToken] span covers it. It
// visits children before their parent so a child's claim on its own
// tokens always wins; whatever tokens remain unclaimed within a
// node's span after its children are visited (separators the parser
// consumes itself, like a call's commas or a clause list's
// semicolons) are attributed to that node.
func innermostOwners(root *syntax.Node, n int) []*syntax.Node {
	owner := make([]*syntax.Node, n)
	var visit func(nd *syntax.Node)
	visit = func(nd *syntax.Node) {
		for c := nd.FirstChild; c != nil; c = c.Next {
			visit(c)
		}
		if nd.FirstToken < 0 || nd.LastToken < 0 {
			return
		}
		last := nd.LastToken
		if last >= n {
			last = n - 1
		}
		for i := nd.FirstToken; i <= last; i++ {
			if owner[i] == nil {
				owner[i] = nd
			}
		}
	}
	visit(root)
	return owner
}

// countNewlinesBetween counts newline tokens strictly between raw
// indices lo and hi; lo may be -1 to mean "from the start of the file".
func countNewlinesBetween(toks []token.Token, lo, hi int) int {
	count := 0
	for j := lo + 1; j < hi; j++ {
		if toks[j].Kind == token.KindNewline {
			count++
		}
	}
	return count
}
