// Package layout provides a declarative builder for composing print-item
// graphs.
//
// A [Doc] is built by chaining method calls that append print items:
//   - [Doc.Text]: adds literal text content
//   - [Doc.Space]: adds a single space
//   - [Doc.Break]: adds one or more newlines
//   - [Doc.SpaceOrBreak]: adds a space that turns into a newline when the
//     line would exceed the maximum width
//   - [Doc.PossibleBreak]: marks a position where a newline may be inserted
//   - [Doc.Group]: marks a sequence whose break decisions are probed together
//   - [Doc.Indent]: increases indentation for a sequence
//
// The resulting graph is interpreted by [printkit.Print], which decides which
// breaks to take based on the maximum line width. Breaking prefers the
// outermost candidate position, so a group breaks before its nested groups
// do.
package layout

import (
	"io"

	"github.com/teleivo/printkit"
)

// Doc accumulates print items for one document. Build it by chaining method
// calls and render it with [Doc.Print] or [Doc.Render]. A Doc is reusable:
// rendering leaves the built items unchanged; it only drops a still pending
// space (see [Doc.Items]).
type Doc struct {
	items *printkit.Items
	// pendingSpace indicates a space whose emission is delayed so consecutive
	// spaces merge into one
	pendingSpace bool
}

// New creates an empty document.
func New() *Doc {
	return &Doc{items: printkit.NewItems()}
}

// Items returns the print-item graph built so far. A space still pending at
// this point would be trailing and is dropped.
func (d *Doc) Items() *printkit.Items {
	d.pendingSpace = false
	return d.items
}

func (d *Doc) flushSpace() {
	if d.pendingSpace {
		d.pendingSpace = false
		d.items.PushSignal(printkit.Space)
	}
}

// Text adds literal text content. The text must not contain newlines; use
// [Doc.Break] for line breaks.
func (d *Doc) Text(content string) *Doc {
	d.flushSpace()
	d.items.PushString(content)
	return d
}

// Space adds a single space. Consecutive spaces merge into one.
func (d *Doc) Space() *Doc {
	d.pendingSpace = true
	return d
}

// Break adds count newlines. The count must be positive.
func (d *Doc) Break(count int) *Doc {
	if count <= 0 {
		panic("Break: count must be positive")
	}
	d.pendingSpace = false // a space before a break would be trailing
	for range count {
		d.items.PushSignal(printkit.NewLine)
	}
	return d
}

// SpaceOrBreak adds a space, unless the space would push the line past the
// maximum width, in which case it breaks the line.
func (d *Doc) SpaceOrBreak() *Doc {
	d.pendingSpace = false
	d.items.PushSignal(printkit.SpaceOrNewLine)
	return d
}

// PossibleBreak marks a position where the line may be broken if it would
// otherwise exceed the maximum width.
func (d *Doc) PossibleBreak() *Doc {
	d.flushSpace()
	d.items.PushSignal(printkit.PossibleNewLine)
	return d
}

// ExpectBreak requests that the next SpaceOrBreak or PossibleBreak within the
// enclosing group becomes a newline.
func (d *Doc) ExpectBreak() *Doc {
	d.flushSpace()
	d.items.PushSignal(printkit.ExpectNewLine)
	return d
}

// Group marks a sequence of content whose break decisions are probed
// together: the group's break candidates are only taken when its content
// does not fit within the maximum width.
func (d *Doc) Group(body func(*Doc)) *Doc {
	d.flushSpace()
	d.items.PushSignal(printkit.StartNewLineGroup)
	body(d)
	d.items.PushSignal(printkit.FinishNewLineGroup)
	return d
}

// Indent increases the indentation by levels for the content added in body.
// Indentation is applied at the start of each line, including the first one
// when nothing has been written yet. The levels must be positive.
func (d *Doc) Indent(levels int, body func(*Doc)) *Doc {
	if levels <= 0 {
		panic("Indent: levels must be positive")
	}
	d.flushSpace()
	for range levels {
		d.items.PushSignal(printkit.StartIndent)
	}
	body(d)
	for range levels {
		d.items.PushSignal(printkit.FinishIndent)
	}
	return d
}

// Condition adds a predicate-gated branch. Either body may be nil.
func (d *Doc) Condition(name string, resolver printkit.Resolver, trueBody, falseBody func(*Doc)) *Doc {
	d.flushSpace()
	d.items.PushCondition(printkit.NewCondition(name, resolver, buildPath(trueBody), buildPath(falseBody)))
	return d
}

func buildPath(body func(*Doc)) *printkit.Items {
	if body == nil {
		return nil
	}
	path := New()
	body(path)
	return path.Items()
}

// Print renders the document to a string.
func (d *Doc) Print(opts printkit.Options) string {
	return printkit.Print(d.Items(), opts)
}

// Render writes the rendered document to w.
func (d *Doc) Render(w io.Writer, opts printkit.Options) error {
	_, err := io.WriteString(w, d.Print(opts))
	return err
}
