package printkit

import (
	"github.com/teleivo/printkit/internal/arena"
	"github.com/teleivo/printkit/internal/assert"
	"github.com/teleivo/printkit/internal/collections"
)

// reevaluationBudget bounds how often a single condition may be rolled back
// and replayed within one print job. Once spent, the condition's most recent
// resolution is frozen and further flips are ignored.
const reevaluationBudget = 2

// savePoint remembers a position where a newline may still be inserted: the
// most recent SpaceOrNewLine or PossibleNewLine on the current line, unless an
// earlier one from an enclosing newline group is kept instead (see
// markPossibleNewLine). When a
// later write crosses the maximum width, the printer rewinds to the save
// point, writes the newline there, and replays.
//
// Save points and continuation nodes live in the job's arena; a rewind is a
// handful of pointer and length assignments.
type savePoint struct {
	writer               writerSnapshot
	journalLen           int
	stack                collections.Mark[*node]
	resume               *node
	newLineGroupDepth    int
	forceNoNewLinesDepth int
	expectNewLine        bool
}

// conditionSnapshot captures the interpreter state at a condition's visit so
// a reevaluation marker can rewind to it and replay the condition with a new
// answer.
type conditionSnapshot struct {
	writer               writerSnapshot
	journalLen           int
	stack                collections.Mark[*node]
	node                 *node
	savePoint            *savePoint
	newLineGroupDepth    int
	forceNoNewLinesDepth int
	expectNewLine        bool
}

// journalEntry remembers what a recorded measurement or condition resolution
// replaced, so a rewind can undo recordings in reverse insertion order.
type journalEntry struct {
	isInfo              bool
	id                  uint32
	hadPrevious         bool
	previousBool        bool
	previousMeasurement Measurement
}

// printer interprets a print-item graph into write items. It is single
// threaded; [Print] pools printers so their arenas and maps are reused
// across jobs.
type printer struct {
	maxWidth int
	writer   *writer
	// current is the next node to interpret. When a condition splices a
	// sub-path, the node following the condition is pushed onto continuations
	// and popped once the sub-path is exhausted.
	current            *node
	continuations      *collections.NodeStack[*node]
	resolvedConditions *collections.DenseMap[bool]
	resolvedInfos      *collections.DenseMap[Measurement]
	conditionSnapshots *collections.DenseMap[conditionSnapshot]
	reevaluationCounts *collections.DenseMap[int]
	journal            []journalEntry
	savePoints         *arena.Arena[savePoint]
	// savePoint is the newline candidate decisions on the current line can
	// still fall back to. It is discarded whenever a newline is written.
	savePoint            *savePoint
	newLineGroupDepth    int
	forceNoNewLinesDepth int
	expectNewLine        bool
	ctx                  ResolverContext
}

func newPrinter() *printer {
	capacity := idCounter.Load() + 1
	p := &printer{
		writer:             newWriter(0),
		continuations:      collections.NewNodeStack[*node](),
		resolvedConditions: collections.NewDenseMap[bool](capacity),
		resolvedInfos:      collections.NewDenseMap[Measurement](capacity),
		conditionSnapshots: collections.NewDenseMap[conditionSnapshot](capacity),
		reevaluationCounts: collections.NewDenseMap[int](capacity),
		savePoints:         arena.New[savePoint](),
	}
	p.ctx.p = p
	return p
}

// reset releases everything the previous job recorded while keeping the
// backing storage for reuse.
func (p *printer) reset() {
	p.writer.reset(0)
	p.current = nil
	p.continuations.Reset()
	p.resolvedConditions.Clear()
	p.resolvedInfos.Clear()
	p.conditionSnapshots.Clear()
	p.reevaluationCounts.Clear()
	p.journal = p.journal[:0]
	p.savePoints.Reset()
	p.savePoint = nil
	p.newLineGroupDepth = 0
	p.forceNoNewLinesDepth = 0
	p.expectNewLine = false
}

// print interprets the graph and returns the writer's items. The returned
// slice is owned by the printer and only valid until the next reset.
func (p *printer) print(items *Items, opts Options) []writeItem {
	p.maxWidth = opts.MaxWidth
	p.writer.reset(opts.IndentWidth)
	p.current = items.first

	for {
		if p.current == nil {
			next, ok := p.continuations.Pop()
			if !ok {
				break
			}
			p.current = next
			continue
		}
		n := p.current
		p.current = n.next
		p.handle(n)
	}
	return p.writer.items
}

func (p *printer) handle(n *node) {
	switch v := n.item.(type) {
	case *StringContainer:
		p.writer.writeString(v)
		p.checkExceededMaxWidth()
	case Signal:
		p.handleSignal(v)
	case *Condition:
		p.handleCondition(v, n)
	case *Info:
		p.recordInfo(v)
	case *Reevaluation:
		p.handleReevaluation(v)
	case *Items:
		p.splice(v)
	}
}

// splice diverts printing into path, remembering where to pick the outer
// stream back up.
func (p *printer) splice(path *Items) {
	if path == nil || path.first == nil {
		return
	}
	if p.current != nil {
		p.continuations.Push(p.current)
	}
	p.current = path.first
}

func (p *printer) handleSignal(s Signal) {
	switch s {
	case NewLine:
		p.writeNewLine()
	case Tab:
		p.writer.tab()
		p.checkExceededMaxWidth()
	case Space:
		p.writer.space()
		p.checkExceededMaxWidth()
	case PossibleNewLine:
		p.markPossibleNewLine()
	case SpaceOrNewLine:
		p.handleSpaceOrNewLine()
	case ExpectNewLine:
		p.handleExpectNewLine()
	case StartIndent:
		p.writer.startIndent()
	case FinishIndent:
		p.writer.finishIndent()
	case StartNewLineGroup:
		p.newLineGroupDepth++
	case FinishNewLineGroup:
		assert.That(p.newLineGroupDepth > 0, "unbalanced FinishNewLineGroup: no newline group is open")
		// discharge a still pending break request before the group closes; the
		// revert replays this signal
		if p.expectNewLine {
			if sp := p.savePoint; sp != nil && sp.newLineGroupDepth >= p.newLineGroupDepth {
				p.revertToSavePoint(sp)
				return
			}
		}
		p.newLineGroupDepth--
		p.expectNewLine = false
	case SingleIndent:
		p.writer.singleIndent()
		p.checkExceededMaxWidth()
	case StartIgnoringIndent:
		p.writer.startIgnoringIndent()
	case FinishIgnoringIndent:
		p.writer.finishIgnoringIndent()
	case StartForceNoNewLines:
		p.forceNoNewLinesDepth++
	case FinishForceNoNewLines:
		assert.That(p.forceNoNewLinesDepth > 0, "unbalanced FinishForceNoNewLines: not forcing")
		p.forceNoNewLinesDepth--
	}
}

func (p *printer) handleSpaceOrNewLine() {
	if p.forceNoNewLinesDepth > 0 {
		p.writer.space()
		return
	}
	if p.isAboveMaxWidth(1) {
		// a candidate from a shallower group means the enclosing group already
		// had its chance to break; break here instead of rewinding past the
		// nested content
		if sp := p.savePoint; sp != nil && sp.newLineGroupDepth >= p.newLineGroupDepth {
			p.revertToSavePoint(sp)
		} else {
			p.writeNewLine()
		}
		return
	}
	p.markPossibleNewLine()
	p.writer.space()
}

// handleExpectNewLine turns the line's newline candidate into a newline right
// away. Without a candidate the request is remembered so the next
// SpaceOrNewLine or PossibleNewLine within the enclosing group breaks.
func (p *printer) handleExpectNewLine() {
	if p.forceNoNewLinesDepth > 0 {
		return
	}
	if sp := p.savePoint; sp != nil && sp.newLineGroupDepth >= p.newLineGroupDepth {
		p.revertToSavePoint(sp)
		return
	}
	p.expectNewLine = true
}

// markPossibleNewLine records the current position as the line's newline
// candidate. A candidate from an enclosing group is kept in favour of one in
// a nested group, so breaks happen at the outermost position first.
func (p *printer) markPossibleNewLine() {
	if p.forceNoNewLinesDepth > 0 {
		return
	}
	if p.savePoint != nil && p.newLineGroupDepth > p.savePoint.newLineGroupDepth {
		return
	}
	p.savePoint = p.savePoints.Alloc(savePoint{
		writer:               p.writer.snapshot(),
		journalLen:           len(p.journal),
		stack:                p.continuations.Mark(),
		resume:               p.current,
		newLineGroupDepth:    p.newLineGroupDepth,
		forceNoNewLinesDepth: p.forceNoNewLinesDepth,
		expectNewLine:        p.expectNewLine,
	})
}

func (p *printer) writeNewLine() {
	if p.forceNoNewLinesDepth > 0 {
		return
	}
	p.writer.newLine()
	p.expectNewLine = false
	// break decisions on the finished line are final
	p.savePoint = nil
}

func (p *printer) isAboveMaxWidth(offset int) bool {
	return p.expectNewLine || p.writer.columnNumber()+offset > p.maxWidth
}

// checkExceededMaxWidth runs after every column-advancing write. Crossing the
// maximum width rewinds to the line's newline candidate; without one the
// overflow is accepted since tokens are never split.
func (p *printer) checkExceededMaxWidth() {
	if p.forceNoNewLinesDepth > 0 || !p.isAboveMaxWidth(0) {
		return
	}
	if sp := p.savePoint; sp != nil {
		p.revertToSavePoint(sp)
	}
}

// revertToSavePoint rewinds the writer, the recorded measurements and
// resolutions, and the continuation stack to the save point, then writes the
// newline that the save point's signal declined.
func (p *printer) revertToSavePoint(sp *savePoint) {
	p.writer.restore(sp.writer)
	p.rollbackJournal(sp.journalLen)
	p.continuations.Restore(sp.stack)
	p.newLineGroupDepth = sp.newLineGroupDepth
	p.forceNoNewLinesDepth = sp.forceNoNewLinesDepth
	p.expectNewLine = sp.expectNewLine
	p.savePoint = nil
	p.current = sp.resume
	p.writeNewLine()
}

func (p *printer) handleCondition(c *Condition, n *node) {
	if c.needsReevaluation {
		p.conditionSnapshots.Insert(c.id, conditionSnapshot{
			writer:               p.writer.snapshot(),
			journalLen:           len(p.journal),
			stack:                p.continuations.Mark(),
			node:                 n,
			savePoint:            p.savePoint,
			newLineGroupDepth:    p.newLineGroupDepth,
			forceNoNewLinesDepth: p.forceNoNewLinesDepth,
			expectNewLine:        p.expectNewLine,
		})
	}

	res := c.resolver(&p.ctx)
	if res != Unresolved {
		p.recordCondition(c.id, res == ResolvedTrue)
	}
	path := c.falsePath
	if res == ResolvedTrue {
		path = c.truePath
	}
	p.splice(path)
}

func (p *printer) handleReevaluation(r *Reevaluation) {
	c := r.condition
	assert.That(c != nil, "reevaluation is not bound to a condition")

	snap, visited := p.conditionSnapshots.Get(c.id)
	if !visited {
		// the condition sits in a branch that was not printed
		return
	}
	count, _ := p.reevaluationCounts.Get(c.id)
	if count >= reevaluationBudget {
		return
	}

	res := c.resolver(&p.ctx)
	prev, resolved := p.resolvedConditions.Get(c.id)
	unchanged := res == Unresolved && !resolved ||
		res != Unresolved && resolved && (res == ResolvedTrue) == prev
	if unchanged {
		return
	}

	p.reevaluationCounts.Insert(c.id, count+1)
	p.writer.restore(snap.writer)
	p.rollbackJournal(snap.journalLen)
	p.continuations.Restore(snap.stack)
	p.savePoint = snap.savePoint
	p.newLineGroupDepth = snap.newLineGroupDepth
	p.forceNoNewLinesDepth = snap.forceNoNewLinesDepth
	p.expectNewLine = snap.expectNewLine

	// re-enter the condition with the new answer instead of re-running the
	// resolver, so the resolution reflects the context the reevaluation saw
	if res != Unresolved {
		p.recordCondition(c.id, res == ResolvedTrue)
	}
	path := c.falsePath
	if res == ResolvedTrue {
		path = c.truePath
	}
	p.current = snap.node.next
	p.splice(path)
}

func (p *printer) recordInfo(info *Info) {
	prev, ok := p.resolvedInfos.Get(info.id)
	p.journal = append(p.journal, journalEntry{
		isInfo:              true,
		id:                  info.id,
		hadPrevious:         ok,
		previousMeasurement: prev,
	})
	p.resolvedInfos.Insert(info.id, p.writer.measurement())
}

func (p *printer) recordCondition(id uint32, value bool) {
	prev, ok := p.resolvedConditions.Get(id)
	p.journal = append(p.journal, journalEntry{
		id:           id,
		hadPrevious:  ok,
		previousBool: prev,
	})
	p.resolvedConditions.Insert(id, value)
}

// rollbackJournal undoes every recording made after the journal had the given
// length, in reverse order.
func (p *printer) rollbackJournal(length int) {
	for i := len(p.journal) - 1; i >= length; i-- {
		e := p.journal[i]
		if e.isInfo {
			if e.hadPrevious {
				p.resolvedInfos.Insert(e.id, e.previousMeasurement)
			} else {
				p.resolvedInfos.Remove(e.id)
			}
		} else {
			if e.hadPrevious {
				p.resolvedConditions.Insert(e.id, e.previousBool)
			} else {
				p.resolvedConditions.Remove(e.id)
			}
		}
	}
	p.journal = p.journal[:length]
}
