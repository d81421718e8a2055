// Package width measures the display width of strings in terminal columns.
package width

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// String returns the number of display columns s occupies. ASCII-only strings
// take a fast path; anything else is measured per grapheme cluster so that
// combining marks and wide East Asian characters are counted correctly.
func String(s string) int {
	if isASCII(s) {
		return len(s)
	}
	return uniseg.StringWidth(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
