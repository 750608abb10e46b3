package sourcestats

import "errors"

// ErrSyntaxUnavailable is returned when syntax counting is unavailable due to missing CGO.
var ErrSyntaxUnavailable = errors.New("syntax counting requires CGO (tree-sitter)")

// countMasked counts the lines of src. A line is significant when it holds
// a non-whitespace byte whose comment flag is false. Line totals follow the
// same rules as CountLines.
func countMasked(src []byte, comment []bool) LineCount {
	var lc LineCount
	start := 0
	for start < len(src) {
		end := start
		for end < len(src) && src[end] != '\n' {
			end++
		}
		lc.Total++
		for i := start; i < end; i++ {
			if !isSpace(src[i]) && !comment[i] {
				lc.Sloc++
				break
			}
		}
		start = end + 1
	}
	return lc
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}
