package parser_test

import (
	"testing"

	"github.com/efmtlang/elfmt/pkg/lexer"
	"github.com/efmtlang/elfmt/pkg/parser"
	"github.com/efmtlang/elfmt/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *syntax.Node {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(src))
	require.NoError(t, err)
	tree, err := parser.Parse(toks)
	require.NoError(t, err)
	return tree
}

func TestParseModuleAttribute(t *testing.T) {
	tree := parse(t, "-module(foo).\n")
	require.Equal(t, syntax.NodeModule, tree.Kind)
	require.Equal(t, 1, tree.ChildCount())

	form := tree.FirstChild
	assert.Equal(t, syntax.NodeAttributeForm, form.Kind)
	assert.Equal(t, "module", form.Name)
	assert.Equal(t, "paren", form.Op)
	require.Equal(t, 1, form.ChildCount())
	assert.Equal(t, syntax.NodeAtom, form.FirstChild.Kind)
	assert.Equal(t, "foo", form.FirstChild.Op)
}

func TestParseSimpleFunction(t *testing.T) {
	tree := parse(t, "add(X, Y) -> X + Y.\n")
	form := tree.FirstChild
	require.Equal(t, syntax.NodeFunctionForm, form.Kind)
	require.Equal(t, 1, form.ChildCount())

	clause := form.FirstChild
	assert.Equal(t, "add", clause.Name)
	patterns := clause.FirstChild
	assert.Equal(t, 2, patterns.ChildCount())

	body := clause.LastChild
	require.Equal(t, 1, body.ChildCount())
	binop := body.FirstChild
	assert.Equal(t, syntax.NodeBinaryOp, binop.Kind)
	assert.Equal(t, "+", binop.Op)
}

func TestParseMultiClauseFunction(t *testing.T) {
	tree := parse(t, "f(0) -> zero;\nf(N) -> N.\n")
	form := tree.FirstChild
	assert.Equal(t, 2, form.ChildCount())
}

func TestOperatorPrecedence(t *testing.T) {
	tree := parse(t, "f() -> 1 + 2 * 3.\n")
	body := tree.FirstChild.FirstChild.LastChild
	top := body.FirstChild
	require.Equal(t, syntax.NodeBinaryOp, top.Kind)
	assert.Equal(t, "+", top.Op)
	right := top.LastChild
	assert.Equal(t, syntax.NodeBinaryOp, right.Kind)
	assert.Equal(t, "*", right.Op)
}

func TestAmbiguousNonAssociativeOperatorFails(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("f() -> A == B == C.\n"))
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	var amb *parser.AmbiguousOperator
	require.ErrorAs(t, err, &amb)
}

func TestParseListTupleMapRecord(t *testing.T) {
	tree := parse(t, "f() -> {[1, 2 | T], #{a => 1}, #rec{x = 1}}.\n")
	body := tree.FirstChild.FirstChild.LastChild
	tuple := body.FirstChild
	require.Equal(t, syntax.NodeTuple, tuple.Kind)
	require.Equal(t, 3, tuple.ChildCount())

	list := tuple.FirstChild
	assert.Equal(t, syntax.NodeList, list.Kind)

	m := list.Next
	assert.Equal(t, syntax.NodeMap, m.Kind)

	rec := m.Next
	assert.Equal(t, syntax.NodeRecord, rec.Kind)
	assert.Equal(t, "rec", rec.Name)
}

func TestParseCaseExpression(t *testing.T) {
	src := `f(X) ->
    case X of
        1 -> a;
        _ -> b
    end.
`
	tree := parse(t, src)
	body := tree.FirstChild.FirstChild.LastChild
	caseNode := body.FirstChild
	require.Equal(t, syntax.NodeCase, caseNode.Kind)
	assert.Equal(t, 3, caseNode.ChildCount()) // subject + 2 clauses
}

func TestParseComprehension(t *testing.T) {
	tree := parse(t, "f(L) -> [X * 2 || X <- L, X > 0].\n")
	body := tree.FirstChild.FirstChild.LastChild
	comp := body.FirstChild
	require.Equal(t, syntax.NodeComprehension, comp.Kind)
	assert.Equal(t, "[]", comp.Op)
}

func TestParseMacroUse(t *testing.T) {
	tree := parse(t, "-define(MAX, 100).\nf() -> ?MAX.\n")
	form := tree.FirstChild.Next
	body := form.FirstChild.LastChild
	macro := body.FirstChild
	require.Equal(t, syntax.NodeMacroUse, macro.Kind)
	assert.Equal(t, "MAX", macro.Name)
}

func TestCommentAttachment(t *testing.T) {
	src := "% leading comment\n-module(foo).\n"
	tree := parse(t, src)
	require.NotEmpty(t, tree.Leading)
	assert.Equal(t, "% leading comment", tree.Leading[0].Text)
}

func TestTrailingCommentSameLine(t *testing.T) {
	src := "-module(foo). % trailing\n-export([]).\n"
	tree := parse(t, src)
	form := tree.FirstChild
	require.NotEmpty(t, form.Trailing)
	assert.Equal(t, "% trailing", form.Trailing[0].Text)
}

func TestUnexpectedEOF(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("f(X) -> X +"))
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	var eofErr *parser.UnexpectedEOF
	require.ErrorAs(t, err, &eofErr)
}

func TestBlockRejectsStrayTokenBeforeReceiveTerminators(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("f() -> receive X -> Y stray end."))
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	var failure *parser.ParseFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "stray", failure.Found)
	assert.ElementsMatch(t, []string{";", "after", "end"}, failure.Expected)
}
