package layout

import "strings"

// mode records whether a document region is rendering flat (all soft
// breaks collapse to spaces) or broken (soft breaks become newlines).
type mode int

const (
	modeFlat mode = iota
	modeBreak
)

// item is one pending unit of work: render doc at the given indent and
// mode.
type item struct {
	indent int
	mode   mode
	doc    Doc
}

// Options configures the renderer.
type Options struct {
	MaxLineWidth int
	IndentUnit   int
}

// Render lays out doc into a string, choosing for every Group whether
// its flat or broken form keeps the current line within
// opts.MaxLineWidth.
func Render(doc Doc, opts Options) string {
	var out strings.Builder
	col := 0
	items := []item{{indent: 0, mode: modeBreak, doc: doc}}

	for len(items) > 0 {
		it := items[0]
		items = items[1:]

		switch d := it.doc.(type) {
		case nil:
			// no-op

		case Text:
			out.WriteString(d.S)
			col += displayWidth(d.S)

		case Comment:
			out.WriteString(d.S)
			col += displayWidth(d.S)
			if d.Kind == CommentLine {
				col = writeNewline(&out, it.indent)
			}

		case Concat:
			items = prepend(items, it.indent, it.mode, d.Docs...)

		case Line:
			if it.mode == modeFlat {
				out.WriteByte(' ')
				col++
			} else {
				col = writeNewline(&out, it.indent)
			}

		case SoftBreak:
			if it.mode == modeBreak {
				col = writeNewline(&out, it.indent)
			}

		case HardBreak:
			col = writeNewline(&out, it.indent)

		case Group:
			rest := items
			flatItem := item{indent: it.indent, mode: modeFlat, doc: d.Doc}
			if fits(opts.MaxLineWidth-col, append([]item{flatItem}, rest...)) {
				items = append([]item{flatItem}, rest...)
			} else {
				items = append([]item{{indent: it.indent, mode: modeBreak, doc: d.Doc}}, rest...)
			}

		case Indent:
			items = prepend(items, it.indent+opts.IndentUnit, it.mode, d.Doc)

		case Align:
			items = prepend(items, col, it.mode, d.Doc)

		case IfBroken:
			chosen := d.Flat
			if it.mode == modeBreak {
				chosen = d.Broken
			}
			items = prepend(items, it.indent, it.mode, chosen)
		}
	}
	return out.String()
}

func prepend(items []item, indent int, m mode, docs ...Doc) []item {
	head := make([]item, len(docs))
	for i, d := range docs {
		head[i] = item{indent: indent, mode: m, doc: d}
	}
	return append(head, items...)
}

func writeNewline(out *strings.Builder, indent int) int {
	out.WriteByte('\n')
	if indent > 0 {
		out.WriteString(strings.Repeat(" ", indent))
	}
	return indent
}

// fits reports whether the sequence of items can be rendered without
// exceeding w columns before the first unconditional line end. A
// HardBreak, a line Comment, or a broken Line/SoftBreak ends the
// search successfully: whatever follows starts a new line and so
// cannot affect whether the current one fits.
func fits(w int, items []item) bool {
	for {
		if w < 0 {
			return false
		}
		if len(items) == 0 {
			return true
		}
		it := items[0]
		items = items[1:]

		switch d := it.doc.(type) {
		case Text:
			w -= displayWidth(d.S)
		case Comment:
			w -= displayWidth(d.S)
			if d.Kind == CommentLine {
				return true
			}
		case Concat:
			items = prepend(items, it.indent, it.mode, d.Docs...)
		case Line:
			if it.mode == modeFlat {
				w--
			} else {
				return true
			}
		case SoftBreak:
			if it.mode == modeBreak {
				return true
			}
		case HardBreak:
			return true
		case Group:
			items = prepend(items, it.indent, it.mode, d.Doc)
		case Indent:
			items = prepend(items, it.indent, it.mode, d.Doc)
		case Align:
			items = prepend(items, it.indent, it.mode, d.Doc)
		case IfBroken:
			chosen := d.Flat
			if it.mode == modeBreak {
				chosen = d.Broken
			}
			items = prepend(items, it.indent, it.mode, chosen)
		}
	}
}
