package printkit

import "sync"

// Options configures a print job.
type Options struct {
	// MaxWidth is the line width in display columns the printer tries to stay
	// under. It is a soft cap: a single token wider than MaxWidth is written
	// as is, tokens are never split. Defaults to 80.
	MaxWidth int
	// IndentWidth is the number of columns one indentation level occupies. It
	// is used for column accounting even when UseTabs is set. Defaults to 2.
	IndentWidth int
	// UseTabs renders each indentation level as a tab instead of IndentWidth
	// spaces.
	UseTabs bool
	// NewLineText is the literal newline written by the post-pass, for
	// example "\n" or "\r\n". Defaults to "\n".
	NewLineText string
}

func (o Options) withDefaults() Options {
	if o.MaxWidth == 0 {
		o.MaxWidth = 80
	}
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	if o.NewLineText == "" {
		o.NewLineText = "\n"
	}
	return o
}

// printers pools per-job interpreter state so arenas, maps, and the writer's
// token buffer are reused across jobs. Jobs on separate goroutines each get
// their own printer; nothing is shared while printing.
var printers = sync.Pool{
	New: func() any {
		return newPrinter()
	},
}

// Format builds a fresh print-item graph and prints it. It is a convenience
// wrapper around [Print] for callers that construct the graph on the fly.
func Format(build func() *Items, opts Options) string {
	return Print(build(), opts)
}

// Print interprets the print-item graph and returns the rendered string. Any
// well-formed graph produces a string; Print is deterministic and total. The
// graph is not modified and the caller keeps ownership of it.
func Print(items *Items, opts Options) string {
	opts = opts.withDefaults()

	p := printers.Get().(*printer)
	result := printWriteItems(p.print(items, opts), opts)
	p.reset()
	printers.Put(p)
	return result
}
