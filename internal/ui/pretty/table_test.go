package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/efmtlang/elfmt/internal/ui/pretty"
	"github.com/efmtlang/elfmt/pkg/format"
	"github.com/efmtlang/elfmt/pkg/runner"
)

func TestFormatTable_Empty(t *testing.T) {
	styles := pretty.NewStyles(false)
	tf := pretty.NewTableFormatter(styles, false, 0)

	assert.Empty(t, tf.FormatTable(nil))
	assert.Empty(t, tf.FormatTable(&runner.Result{}))
}

func TestFormatTable_OnlyUnchangedFiles(t *testing.T) {
	styles := pretty.NewStyles(false)
	tf := pretty.NewTableFormatter(styles, false, 0)

	result := &runner.Result{Files: []runner.FileOutcome{{Path: "a.erl"}}}

	assert.Empty(t, tf.FormatTable(result))
}

func TestFormatTable_MixedOutcomes(t *testing.T) {
	styles := pretty.NewStyles(false)
	tf := pretty.NewTableFormatter(styles, false, 0)

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "unchanged.erl"},
			{Path: "changed.erl", Changed: true, Written: true},
			{Path: "broken.erl", Err: &format.Error{Kind: format.KindParseFailure, Cause: errors.New("bad syntax")}},
		},
	}

	out := tf.FormatTable(result)

	assert.Contains(t, out, "changed.erl")
	assert.Contains(t, out, "reformatted")
	assert.Contains(t, out, "broken.erl")
	assert.Contains(t, out, "parse-failure")
	assert.NotContains(t, out, "unchanged.erl")
	assert.Contains(t, out, "1 unchanged file not shown")
}

func TestFileOutcomeToTableRow(t *testing.T) {
	row := pretty.FileOutcomeToTableRow(runner.FileOutcome{
		Path: "a.erl",
		Err:  &format.Error{Kind: format.KindLexError, Cause: errors.New("bad token")},
	})

	assert.Equal(t, "a.erl", row.File)
	assert.Equal(t, "error", row.Status)
	assert.Equal(t, format.KindLexError, row.Kind)
	assert.Contains(t, row.Message, "bad token")
}
