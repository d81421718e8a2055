package printkit

// Stock resolvers for the common condition predicates. They close over
// nothing and may be shared freely across graphs and jobs.
var (
	// TrueResolver always selects the true path.
	TrueResolver Resolver = func(*ResolverContext) Resolution {
		return ResolvedTrue
	}

	// FalseResolver always selects the false path.
	FalseResolver Resolver = func(*ResolverContext) Resolution {
		return ResolvedFalse
	}

	// StartOfLineResolver resolves to whether the writer is at the start of a
	// line.
	StartOfLineResolver Resolver = func(ctx *ResolverContext) Resolution {
		return ResolvedBool(ctx.IsStartOfLine())
	}

	// NotStartOfLineResolver is the negation of [StartOfLineResolver].
	NotStartOfLineResolver Resolver = func(ctx *ResolverContext) Resolution {
		return ResolvedBool(!ctx.IsStartOfLine())
	}

	// StartOfLineIndentedResolver resolves to whether the writer is at the
	// start of a line that is indented past the current indentation level.
	StartOfLineIndentedResolver Resolver = func(ctx *ResolverContext) Resolution {
		return ResolvedBool(ctx.IsStartOfLineIndented())
	}

	// ForcingNoNewlinesResolver resolves to whether printing is inside a
	// force-no-newlines region.
	ForcingNoNewlinesResolver Resolver = func(ctx *ResolverContext) Resolution {
		return ResolvedBool(ctx.IsForcingNoNewlines())
	}
)

// MultipleLinesResolver returns a resolver that reports whether printing has
// moved past the line recorded for start. It stays [Unresolved] until start
// has been visited, so it is typically paired with a reevaluation after the
// content in question.
func MultipleLinesResolver(start *Info) Resolver {
	return func(ctx *ResolverContext) Resolution {
		m, ok := ctx.ResolvedMeasurement(start)
		if !ok {
			return Unresolved
		}
		return ResolvedBool(ctx.LineNumber() > m.Line)
	}
}

// IfTrueOr creates a condition that prints truePath when resolver answers
// true and falsePath otherwise.
func IfTrueOr(name string, resolver Resolver, truePath, falsePath *Items) *Condition {
	return NewCondition(name, resolver, truePath, falsePath)
}

// IfTrue creates a condition that prints path only when resolver answers
// true.
func IfTrue(name string, resolver Resolver, path *Items) *Condition {
	return NewCondition(name, resolver, path, nil)
}

// IfFalse creates a condition that prints path only when resolver answers
// false or stays unresolved.
func IfFalse(name string, resolver Resolver, path *Items) *Condition {
	return NewCondition(name, resolver, nil, path)
}

// WithIndent wraps items in a StartIndent/FinishIndent pair.
func WithIndent(items *Items) *Items {
	wrapped := NewItems()
	wrapped.PushSignal(StartIndent)
	wrapped.PushItems(items)
	wrapped.PushSignal(FinishIndent)
	return wrapped
}

// WithNewLineGroup wraps items in a newline group so their break decisions
// are probed together.
func WithNewLineGroup(items *Items) *Items {
	wrapped := NewItems()
	wrapped.PushSignal(StartNewLineGroup)
	wrapped.PushItems(items)
	wrapped.PushSignal(FinishNewLineGroup)
	return wrapped
}
