package printkit

import "strings"

// writeItem is one token of the writer's output. The post-pass expands the
// token list into the final string; it never re-measures anything.
type writeItem struct {
	kind   writeItemKind
	text   *StringContainer
	indent int
}

type writeItemKind uint8

const (
	writeString writeItemKind = iota
	writeIndent
	writeNewLine
	writeTab
	writeSpace
)

// printWriteItems expands write items into a string: Indent becomes tabs or
// spaces depending on the options, NewLine becomes the configured newline
// text, everything else is literal.
func printWriteItems(items []writeItem, opts Options) string {
	var sb strings.Builder
	for _, item := range items {
		switch item.kind {
		case writeString:
			sb.WriteString(item.text.Text)
		case writeIndent:
			if opts.UseTabs {
				for range item.indent {
					sb.WriteString("\t")
				}
			} else {
				for range item.indent * opts.IndentWidth {
					sb.WriteString(" ")
				}
			}
		case writeNewLine:
			sb.WriteString(opts.NewLineText)
		case writeTab:
			sb.WriteString("\t")
		case writeSpace:
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
