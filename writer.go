package printkit

import "github.com/teleivo/printkit/internal/assert"

// writer builds the output as an append-only list of write items while
// tracking line, column, and indentation. A snapshot is the item count plus
// the scalar state, so restoring is a truncation.
//
// Indentation after a newline is written lazily: the Indent item is only
// appended once a non-newline item follows, so empty lines never carry
// trailing whitespace.
type writer struct {
	indentWidth          int
	items                []writeItem
	line                 int
	column               int
	indentLevel          int
	ignoreIndentCount    int
	lineStartColumn      int
	lineStartIndentLevel int
	pendingIndent        bool
}

func newWriter(indentWidth int) *writer {
	return &writer{indentWidth: indentWidth, pendingIndent: true}
}

func (w *writer) reset(indentWidth int) {
	items := w.items[:cap(w.items)]
	// drop references to caller-owned strings from the previous job
	clear(items)
	*w = writer{indentWidth: indentWidth, items: items[:0], pendingIndent: true}
}

// flushIndent writes the pending indentation of a fresh line. Indentation is
// suppressed entirely while ignore-indent is active.
func (w *writer) flushIndent() {
	if !w.pendingIndent {
		return
	}
	w.pendingIndent = false
	level := w.indentLevel
	if w.ignoreIndentCount > 0 {
		level = 0
	}
	if level > 0 {
		w.items = append(w.items, writeItem{kind: writeIndent, indent: level})
	}
	w.column = level * w.indentWidth
	w.lineStartColumn = w.column
	w.lineStartIndentLevel = level
}

func (w *writer) writeString(sc *StringContainer) {
	w.flushIndent()
	w.items = append(w.items, writeItem{kind: writeString, text: sc})
	w.column += sc.Width
}

func (w *writer) newLine() {
	w.items = append(w.items, writeItem{kind: writeNewLine})
	w.line++
	w.column = 0
	w.lineStartColumn = 0
	w.pendingIndent = true
}

func (w *writer) tab() {
	w.flushIndent()
	w.items = append(w.items, writeItem{kind: writeTab})
	w.column += w.indentWidth
}

func (w *writer) space() {
	w.flushIndent()
	w.items = append(w.items, writeItem{kind: writeSpace})
	w.column++
}

func (w *writer) singleIndent() {
	w.flushIndent()
	w.items = append(w.items, writeItem{kind: writeIndent, indent: 1})
	w.column += w.indentWidth
}

func (w *writer) startIndent() {
	w.indentLevel++
}

func (w *writer) finishIndent() {
	assert.That(w.indentLevel > 0, "unbalanced FinishIndent: indentation level is already 0")
	w.indentLevel--
}

func (w *writer) startIgnoringIndent() {
	w.ignoreIndentCount++
}

func (w *writer) finishIgnoringIndent() {
	assert.That(w.ignoreIndentCount > 0, "unbalanced FinishIgnoringIndent: not ignoring indentation")
	w.ignoreIndentCount--
}

// columnNumber accounts for indentation that has not been flushed yet so
// width checks on a fresh line see where text would actually start.
func (w *writer) columnNumber() int {
	if w.pendingIndent {
		level := w.indentLevel
		if w.ignoreIndentCount > 0 {
			level = 0
		}
		return level * w.indentWidth
	}
	return w.column
}

func (w *writer) lineNumber() int {
	return w.line
}

func (w *writer) isStartOfLine() bool {
	return w.pendingIndent || w.column == w.lineStartColumn
}

func (w *writer) isStartOfLineIndented() bool {
	return w.isStartOfLine() && w.lineStartIndentLevel > w.indentLevel
}

func (w *writer) measurement() Measurement {
	return Measurement{
		Line:          w.line,
		Column:        w.columnNumber(),
		IndentLevel:   w.indentLevel,
		IsStartOfLine: w.isStartOfLine(),
	}
}

// writerSnapshot captures the writer state in O(1). Restoring truncates the
// item list in place; nothing is copied.
type writerSnapshot struct {
	itemCount            int
	line                 int
	column               int
	indentLevel          int
	ignoreIndentCount    int
	lineStartColumn      int
	lineStartIndentLevel int
	pendingIndent        bool
}

func (w *writer) snapshot() writerSnapshot {
	return writerSnapshot{
		itemCount:            len(w.items),
		line:                 w.line,
		column:               w.column,
		indentLevel:          w.indentLevel,
		ignoreIndentCount:    w.ignoreIndentCount,
		lineStartColumn:      w.lineStartColumn,
		lineStartIndentLevel: w.lineStartIndentLevel,
		pendingIndent:        w.pendingIndent,
	}
}

func (w *writer) restore(s writerSnapshot) {
	assert.That(s.itemCount <= len(w.items), "restore to a snapshot from a rolled-back region")
	w.items = w.items[:s.itemCount]
	w.line = s.line
	w.column = s.column
	w.indentLevel = s.indentLevel
	w.ignoreIndentCount = s.ignoreIndentCount
	w.lineStartColumn = s.lineStartColumn
	w.lineStartIndentLevel = s.lineStartIndentLevel
	w.pendingIndent = s.pendingIndent
}
