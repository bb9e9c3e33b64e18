// Package fix turns a formatted result into a file-system effect: a
// diff for display, or an edit applied via an atomic write. The
// formatter never produces partial, rule-scoped edits the way a
// linter's autofixer does — each write-back is exactly one
// whole-file replacement — but it still goes through the same
// TextEdit/validate/apply pipeline a multi-edit fixer would use, so
// the write path gets the same offset checks for free.
package fix

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// EditBuilder accumulates text edits for a file. Write-back only ever
// needs one edit (ReplaceFile), but it is built through the same
// accumulator so PrepareEdits/ApplyEdits stay the single code path for
// turning edits into bytes, independent of how many there are.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// ReplaceFile adds the single edit that replaces an entire file's
// contents, given its original length. This is the only edit shape
// the formatter's write-back path ever produces.
func (b *EditBuilder) ReplaceFile(originalLen int, newText string) {
	b.ReplaceRange(0, originalLen, newText)
}
