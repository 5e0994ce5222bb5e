package table

import "strings"

// Align controls how cell content is positioned inside its column.
type Align int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Align = iota
	// AlignRight pads on the left.
	AlignRight
	// AlignCenter splits padding, extra space on the right.
	AlignCenter
)

const ellipsis = "..."

// Truncate shortens s to at most max visible columns. Strings that
// already fit are returned unchanged, styling included. On the
// truncating path styling is stripped: reopening escape sequences
// across an arbitrary cut point is not worth the complexity here, and
// callers that want colored truncated cells colorize after truncation
// via a column Color callback. When max >= 4 the result ends in "...".
func Truncate(s string, max int) string {
	if VisibleWidth(s) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	if max <= len(ellipsis) {
		return takeVisible(s, max)
	}
	return takeVisible(s, max-len(ellipsis)) + ellipsis
}

// Pad extends s with spaces to exactly width visible columns. Strings
// at or over width are returned unchanged; Pad never truncates.
// Styling inside s is preserved byte-for-byte.
func Pad(s string, width int, align Align) string {
	gap := width - VisibleWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
