package printkit

// Action returns items that invoke fn with the resolver context when
// printed. Actions print nothing themselves; they exist so front ends can
// observe the writer's position at a point in the stream.
func Action(name string, fn func(*ResolverContext)) *Items {
	items := NewItems()
	items.PushCondition(NewCondition(name, func(ctx *ResolverContext) Resolution {
		fn(ctx)
		return ResolvedTrue
	}, nil, nil))
	return items
}

// IfColumnNumberChanges returns items that invoke fn when a replay shifts the
// column at this position: the column recorded on the first pass is compared
// against the column seen on reevaluation.
func IfColumnNumberChanges(fn func(*ResolverContext)) *Items {
	columnNumber := NewInfo("columnNumber")
	items := NewItems()
	action := NewCondition("actionIfColChanges", func(ctx *ResolverContext) Resolution {
		if column, ok := ctx.ResolvedColumnNumber(columnNumber); ok && column != ctx.ColumnNumber() {
			fn(ctx)
		}
		return ResolvedTrue
	}, nil, nil)
	items.PushCondition(action)
	items.PushInfo(columnNumber)
	items.PushReevaluation(action.CreateReevaluation())
	return items
}
