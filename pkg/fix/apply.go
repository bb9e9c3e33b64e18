package fix

import "bytes"

// ApplyEdits applies a sorted, validated slice of edits to content.
// Edits must be prepared with PrepareEdits before calling. For the
// formatter's own write-back path edits is always a single
// whole-file TextEdit, but the general splice logic is what a
// multi-edit fixer would need too, so it isn't special-cased away.
// Returns the modified content.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	// Estimate result size.
	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		// Copy content before this edit.
		out.Write(content[cursor:e.StartOffset])
		// Write replacement text.
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	// Copy remaining content.
	out.Write(content[cursor:])

	return out.Bytes()
}

// ReplaceFile runs original through the same build/validate/apply
// pipeline a multi-edit fixer would use, specialized to the one edit
// shape the formatter ever needs: swap the whole file for formatted.
// Returns the result of applying that edit, or an error if the single
// edit somehow fails validation (it cannot, for any original/formatted
// pair produced by format.Format, since the edit's range is exactly
// [0, len(original)]).
func ReplaceFile(original []byte, formatted string) ([]byte, error) {
	b := NewEditBuilder()
	b.ReplaceFile(len(original), formatted)

	prepared, err := PrepareEdits(b.Edits, len(original))
	if err != nil {
		return nil, err
	}

	return ApplyEdits(original, prepared), nil
}
