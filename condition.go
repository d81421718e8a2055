package printkit

// Resolution is the answer of a condition [Resolver].
type Resolution uint8

const (
	// Unresolved means the predicate cannot be answered yet, typically because
	// it reads a measurement that has not been recorded. The printer selects
	// the false path and records no resolution.
	Unresolved Resolution = iota
	// ResolvedTrue selects the condition's true path.
	ResolvedTrue
	// ResolvedFalse selects the condition's false path.
	ResolvedFalse
)

// ResolvedBool converts a bool into a [Resolution].
func ResolvedBool(b bool) Resolution {
	if b {
		return ResolvedTrue
	}
	return ResolvedFalse
}

// Resolver decides which path of a condition to print. It must be pure with
// respect to observable state: the printer may invoke it any number of times
// per visit and must not depend on the invocation count. Resolvers read the
// writer's position and recorded measurements through ctx only.
type Resolver func(ctx *ResolverContext) Resolution

// Condition is a named print item that selects between two optional
// sub-paths based on a [Resolver]. The chosen path is spliced into the item
// stream at the condition's position.
type Condition struct {
	id                uint32
	name              string
	resolver          Resolver
	truePath          *Items
	falsePath         *Items
	needsReevaluation bool
}

// NewCondition creates a condition. Either path may be nil, meaning nothing
// is printed for that branch. The name only shows up in debug output.
func NewCondition(name string, resolver Resolver, truePath, falsePath *Items) *Condition {
	return &Condition{
		id:        nextID(),
		name:      name,
		resolver:  resolver,
		truePath:  truePath,
		falsePath: falsePath,
	}
}

// Name returns the condition's debug name.
func (c *Condition) Name() string {
	return c.name
}

// CreateReevaluation returns a marker that re-runs this condition when
// printed. If the answer changed since the condition was visited, the output
// is rewound to the condition's position and replayed with the new branch.
// The marker must be pushed at or after the condition itself.
func (c *Condition) CreateReevaluation() *Reevaluation {
	c.needsReevaluation = true
	return &Reevaluation{condition: c}
}

// Reevaluation re-runs the condition it was created from. See
// [Condition.CreateReevaluation].
type Reevaluation struct {
	condition *Condition
}

// Info is a named marker that records the writer's position at the moment it
// is visited. Condition resolvers read it back through
// [ResolverContext.ResolvedMeasurement].
type Info struct {
	id   uint32
	name string
}

// NewInfo creates a measurement probe. The name only shows up in debug
// output.
func NewInfo(name string) *Info {
	return &Info{id: nextID(), name: name}
}

// Name returns the info's debug name.
func (i *Info) Name() string {
	return i.name
}

// Measurement is the writer position recorded when an [Info] is visited.
// Line and column are zero-based; the column counts display widths, not
// bytes.
type Measurement struct {
	Line          int
	Column        int
	IndentLevel   int
	IsStartOfLine bool
}

// ResolverContext is the read-only view a [Resolver] gets of the print job:
// the writer's current position plus every measurement and condition
// resolution recorded so far.
type ResolverContext struct {
	p *printer
}

// LineNumber returns the zero-based line the writer is on.
func (c *ResolverContext) LineNumber() int {
	return c.p.writer.lineNumber()
}

// ColumnNumber returns the current column in display widths.
func (c *ResolverContext) ColumnNumber() int {
	return c.p.writer.columnNumber()
}

// IndentLevel returns the current logical indentation level.
func (c *ResolverContext) IndentLevel() int {
	return c.p.writer.indentLevel
}

// IsStartOfLine reports whether nothing but indentation has been written on
// the current line.
func (c *ResolverContext) IsStartOfLine() bool {
	return c.p.writer.isStartOfLine()
}

// IsStartOfLineIndented reports whether the writer is at the start of a line
// whose indentation is deeper than the current indentation level.
func (c *ResolverContext) IsStartOfLineIndented() bool {
	return c.p.writer.isStartOfLineIndented()
}

// IsForcingNoNewlines reports whether printing is inside a region bounded by
// [StartForceNoNewLines] and [FinishForceNoNewLines].
func (c *ResolverContext) IsForcingNoNewlines() bool {
	return c.p.forceNoNewLinesDepth > 0
}

// Measurement returns the writer's current position as a [Measurement].
func (c *ResolverContext) Measurement() Measurement {
	return c.p.writer.measurement()
}

// ResolvedMeasurement returns the position recorded for info, if the info has
// been visited.
func (c *ResolverContext) ResolvedMeasurement(info *Info) (Measurement, bool) {
	return c.p.resolvedInfos.Get(info.id)
}

// ResolvedLineNumber returns the line recorded for info, if the info has been
// visited.
func (c *ResolverContext) ResolvedLineNumber(info *Info) (int, bool) {
	m, ok := c.p.resolvedInfos.Get(info.id)
	return m.Line, ok
}

// ResolvedColumnNumber returns the column recorded for info, if the info has
// been visited.
func (c *ResolverContext) ResolvedColumnNumber(info *Info) (int, bool) {
	m, ok := c.p.resolvedInfos.Get(info.id)
	return m.Column, ok
}

// ResolvedCondition returns how cond resolved, if it has been visited and
// resolved. A condition whose resolver returned [Unresolved] is not present.
func (c *ResolverContext) ResolvedCondition(cond *Condition) (bool, bool) {
	return c.p.resolvedConditions.Get(cond.id)
}
