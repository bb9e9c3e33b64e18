package reporter

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efmtlang/elfmt/pkg/analysis"
)

func TestSummaryRenderer_EmptyReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := Options{
		Writer: &buf,
		Color:  "never",
	}

	renderer := NewSummaryRenderer(opts)
	report := &analysis.Report{
		Totals: analysis.Totals{},
	}

	err := renderer.Render(context.Background(), report)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "No issues found")
}

func TestSummaryRenderer_ShowsErrorKindTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := Options{
		Writer: &buf,
		Color:  "never",
	}

	renderer := NewSummaryRenderer(opts)
	report := &analysis.Report{
		ByErrorKind: []analysis.ErrorKindAnalysis{
			{Kind: "parse-failure", Count: 3, Files: []string{"a.erl", "b.erl", "c.erl"}},
			{Kind: "lex-error", Count: 1, Files: []string{"d.erl"}},
		},
		Files: []analysis.FileEntry{
			{Path: "a.erl", Errored: true, Kind: "parse-failure"},
			{Path: "changed.erl", Changed: true},
		},
		Totals: analysis.Totals{Files: 5, Changed: 1, Errored: 4},
	}

	err := renderer.Render(context.Background(), report)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Errors Summary")
	assert.Contains(t, output, "parse-failure")
	assert.Contains(t, output, "lex-error")
	assert.Contains(t, output, "Files Summary")
	assert.Contains(t, output, "a.erl")
	assert.Contains(t, output, "changed.erl")
}

func TestSummaryRenderer_ShowsTotals(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := Options{
		Writer: &buf,
		Color:  "never",
	}

	renderer := NewSummaryRenderer(opts)
	report := &analysis.Report{
		ByErrorKind: []analysis.ErrorKindAnalysis{
			{Kind: "parse-failure", Count: 2, Files: []string{"a.erl", "b.erl"}},
		},
		Files: []analysis.FileEntry{
			{Path: "a.erl", Errored: true, Kind: "parse-failure"},
		},
		Totals: analysis.Totals{
			Files:   10,
			Changed: 3,
			Written: 3,
			Errored: 2,
		},
	}

	err := renderer.Render(context.Background(), report)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "10 files checked")
	assert.Contains(t, output, "3 changed")
	assert.Contains(t, output, "3 written")
	assert.Contains(t, output, "2 errored")
}

func TestSummaryRenderer_OnlyChangesNoErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := Options{
		Writer: &buf,
		Color:  "never",
	}

	renderer := NewSummaryRenderer(opts)
	report := &analysis.Report{
		Files: []analysis.FileEntry{
			{Path: "changed.erl", Changed: true},
		},
		Totals: analysis.Totals{Files: 1, Changed: 1},
	}

	err := renderer.Render(context.Background(), report)
	require.NoError(t, err)

	output := buf.String()
	assert.NotContains(t, output, "Errors Summary")
	assert.Contains(t, output, "Files Summary")
	assert.Contains(t, output, "changed.erl")
}
