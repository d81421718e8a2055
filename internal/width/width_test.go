package width_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/printkit/internal/width"
)

func TestString(t *testing.T) {
	tests := map[string]struct {
		in   string
		want int
	}{
		"Empty":             {"", 0},
		"ASCII":             {"hello", 5},
		"ASCIIPunctuation":  {"foo(bar, baz)", 13},
		"WideEastAsian":     {"日本語", 6},
		"MixedASCIIAndWide": {"go言語", 6},
		"CombiningMark":     {"é", 1},
		"Emoji":             {"🙂", 2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equals(t, width.String(tc.in), tc.want, "width of %q", tc.in)
		})
	}
}
