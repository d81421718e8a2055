// Package printkit implements a width-aware interpreter for print items, a
// declarative intermediate representation of layout intent.
//
// Front ends describe how text should be laid out as a linked graph of
// [Items]: literal strings, control [Signal]s, measurement probes ([Info]),
// and predicate-gated branches ([Condition]) whose truth value may depend on
// measurements of output that has not been produced yet. [Print] walks the
// graph, resolves every branch and line-break decision against a maximum
// line width, and expands the result into a single string.
//
// The interpreter supports cheap speculative printing: line-break decisions
// and condition branches are revisited by rolling the output back to a
// snapshot and replaying, and every such retry is bounded so printing always
// terminates, even for predicates that never resolve or flip on every call.
//
// A [Condition] predicate runs against a [ResolverContext] and must be pure
// with respect to observable state; the interpreter may invoke it any number
// of times per visit. The [layout] package offers a chaining builder on top
// of this package for the common cases.
package printkit

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/teleivo/printkit/internal/width"
)

// Signal is a control token interpreted by the printer.
type Signal int

const (
	// NewLine writes an unconditional newline.
	NewLine Signal = iota
	// Tab writes a literal tab. It advances the column by the indent width.
	Tab
	// Space writes a literal space.
	Space
	// PossibleNewLine marks a position where the printer may insert a newline
	// if the line would otherwise exceed the maximum width before the next
	// newline.
	PossibleNewLine
	// SpaceOrNewLine writes a space, unless the space would push the line past
	// the maximum width, in which case the line breaks: at the line's earlier
	// newline candidate when that one belongs to the same or a deeper newline
	// group, otherwise at this position. Like
	// [PossibleNewLine] the position is remembered so a later overflow on the
	// same line can still turn it into a newline.
	SpaceOrNewLine
	// ExpectNewLine requests that the next SpaceOrNewLine or PossibleNewLine
	// within the enclosing newline group becomes a newline.
	ExpectNewLine
	// StartIndent increments the indentation level.
	StartIndent
	// FinishIndent decrements the indentation level.
	FinishIndent
	// StartNewLineGroup starts a region whose line-break decisions are probed
	// together. A newline candidate from an enclosing region is kept over one
	// inside the group, so breaks happen at the outermost position first.
	StartNewLineGroup
	// FinishNewLineGroup ends the region started by StartNewLineGroup.
	FinishNewLineGroup
	// SingleIndent writes a single indentation level worth of whitespace.
	SingleIndent
	// StartIgnoringIndent stops indentation from being written at the start of
	// new lines until a matching FinishIgnoringIndent.
	StartIgnoringIndent
	// FinishIgnoringIndent ends the region started by StartIgnoringIndent.
	FinishIgnoringIndent
	// StartForceNoNewLines starts a region in which newline signals degrade:
	// NewLine is ignored, SpaceOrNewLine writes a space and PossibleNewLine
	// writes nothing. [ResolverContext.IsForcingNoNewlines] reports it.
	StartForceNoNewLines
	// FinishForceNoNewLines ends the region started by StartForceNoNewLines.
	FinishForceNoNewLines
)

var signalNames = [...]string{
	NewLine:               "newLine",
	Tab:                   "tab",
	Space:                 "space",
	PossibleNewLine:       "possibleNewLine",
	SpaceOrNewLine:        "spaceOrNewLine",
	ExpectNewLine:         "expectNewLine",
	StartIndent:           "startIndent",
	FinishIndent:          "finishIndent",
	StartNewLineGroup:     "startNewLineGroup",
	FinishNewLineGroup:    "finishNewLineGroup",
	SingleIndent:          "singleIndent",
	StartIgnoringIndent:   "startIgnoringIndent",
	FinishIgnoringIndent:  "finishIgnoringIndent",
	StartForceNoNewLines:  "startForceNoNewLines",
	FinishForceNoNewLines: "finishForceNoNewLines",
}

func (s Signal) String() string {
	if int(s) < len(signalNames) {
		return signalNames[s]
	}
	return fmt.Sprintf("signal(%d)", int(s))
}

// StringContainer is a run of printable characters together with its
// precomputed display width. The width is computed once at construction; the
// interpreter never re-measures a string.
type StringContainer struct {
	Text  string
	Width int
}

// NewStringContainer measures text and wraps it for printing. The text must
// not contain newlines; line breaks are expressed with [NewLine] signals.
func NewStringContainer(text string) *StringContainer {
	return &StringContainer{Text: text, Width: width.String(text)}
}

// item is one variant of the print-item IR. Branches live only inside
// [Condition] items; every node has at most one successor.
type item interface {
	isItem()
}

func (*StringContainer) isItem() {}
func (Signal) isItem()           {}
func (*Condition) isItem()       {}
func (*Info) isItem()            {}
func (*Reevaluation) isItem()    {}
func (*Items) isItem()           {}

// node links one item to its successor.
type node struct {
	item item
	next *node
}

// Items is an ordered sequence of print items. Build it with the Push
// methods and hand it to [Print]. The zero value is not usable; create one
// with [NewItems].
type Items struct {
	first *node
	last  *node
}

// NewItems creates an empty print-item sequence.
func NewItems() *Items {
	return &Items{}
}

// FromString creates a sequence holding a single string item.
func FromString(text string) *Items {
	items := NewItems()
	items.PushString(text)
	return items
}

// IsEmpty reports whether no items have been pushed.
func (it *Items) IsEmpty() bool {
	return it.first == nil
}

func (it *Items) push(v item) {
	n := &node{item: v}
	if it.first == nil {
		it.first = n
	} else {
		it.last.next = n
	}
	it.last = n
}

// PushString appends a run of text. Its display width is measured once.
func (it *Items) PushString(text string) {
	it.push(NewStringContainer(text))
}

// PushStringContainer appends an already measured string.
func (it *Items) PushStringContainer(sc *StringContainer) {
	it.push(sc)
}

// PushSignal appends a control signal.
func (it *Items) PushSignal(s Signal) {
	it.push(s)
}

// PushCondition appends a predicate-gated branch.
func (it *Items) PushCondition(c *Condition) {
	it.push(c)
}

// PushInfo appends a measurement probe. When the printer visits it, the
// writer's position is recorded and becomes available to condition resolvers
// via [ResolverContext.ResolvedMeasurement].
func (it *Items) PushInfo(i *Info) {
	it.push(i)
}

// PushReevaluation appends a reevaluation marker. The marker must be pushed
// at or after the condition it was created from.
func (it *Items) PushReevaluation(r *Reevaluation) {
	it.push(r)
}

// PushPath appends a nested item sequence. A nil or empty path is a no-op.
func (it *Items) PushPath(path *Items) {
	if path == nil || path.IsEmpty() {
		return
	}
	it.push(path)
}

// PushItems appends every item of other by linking to its nodes. other must
// not be modified afterwards.
func (it *Items) PushItems(other *Items) {
	if other == nil || other.first == nil {
		return
	}
	if it.first == nil {
		it.first = other.first
	} else {
		it.last.next = other.first
	}
	it.last = other.last
}

// idCounter assigns ids to conditions and infos. Ids only need to be unique,
// so a single process-wide counter keeps them stable across graphs without
// coordination.
var idCounter atomic.Uint32

func nextID() uint32 {
	return idCounter.Add(1)
}

// String renders the graph structure as HTML-like markup, showing every item
// including condition sub-paths. Useful for debugging why a layout resolves
// the way it does.
func (it *Items) String() string {
	var sb strings.Builder
	dumpItems(&sb, it, 0)
	return sb.String()
}

func dumpItems(w *strings.Builder, items *Items, indent int) {
	for n := items.first; n != nil; n = n.next {
		switch v := n.item.(type) {
		case *StringContainer:
			dumpIndent(w, indent)
			fmt.Fprintf(w, "<string width=%d text=%q/>\n", v.Width, v.Text)
		case Signal:
			dumpIndent(w, indent)
			fmt.Fprintf(w, "<signal kind=%q/>\n", v)
		case *Condition:
			dumpIndent(w, indent)
			fmt.Fprintf(w, "<condition name=%q>\n", v.name)
			if v.truePath != nil {
				dumpIndent(w, indent+1)
				fmt.Fprint(w, "<true>\n")
				dumpItems(w, v.truePath, indent+2)
				dumpIndent(w, indent+1)
				fmt.Fprint(w, "</true>\n")
			}
			if v.falsePath != nil {
				dumpIndent(w, indent+1)
				fmt.Fprint(w, "<false>\n")
				dumpItems(w, v.falsePath, indent+2)
				dumpIndent(w, indent+1)
				fmt.Fprint(w, "</false>\n")
			}
			dumpIndent(w, indent)
			fmt.Fprint(w, "</condition>\n")
		case *Info:
			dumpIndent(w, indent)
			fmt.Fprintf(w, "<info name=%q/>\n", v.name)
		case *Reevaluation:
			dumpIndent(w, indent)
			fmt.Fprintf(w, "<reevaluation condition=%q/>\n", v.condition.name)
		case *Items:
			dumpIndent(w, indent)
			fmt.Fprint(w, "<path>\n")
			dumpItems(w, v, indent+1)
			dumpIndent(w, indent)
			fmt.Fprint(w, "</path>\n")
		}
	}
}

func dumpIndent(w *strings.Builder, columns int) {
	for range columns {
		w.WriteString("\t")
	}
}
