// Package table renders column-aligned tables to a terminal, sizing
// flexible columns to the available width and keeping ANSI styling and
// OSC 8 hyperlink sequences out of the width math.
//
// Width measurement skips every OSC string (ESC ']' through BEL or
// ESC '\'), not only the OSC 8 hyperlinks that cell values actually
// carry: terminals render no OSC payload as visible columns, so
// counting any of them would overstate a cell's width.
package table

import "strings"

const esc = '\x1b'

// VisibleWidth returns the number of terminal columns s occupies.
// CSI styling sequences (ESC '[' ... final byte) and OSC strings
// (ESC ']' ... terminated by BEL or ESC '\', hyperlinks being the case
// that matters here) count as zero columns. Every other rune counts as
// one column; wide-rune handling is intentionally out of scope for
// this renderer.
func VisibleWidth(s string) int {
	n := 0
	scanVisible(s, func(rune) bool {
		n++
		return true
	})
	return n
}

// stripSequences returns s with all escape sequences removed.
func stripSequences(s string) string {
	if !strings.ContainsRune(s, esc) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	scanVisible(s, func(r rune) bool {
		b.WriteRune(r)
		return true
	})
	return b.String()
}

// takeVisible returns the first n visible runes of s with escape
// sequences stripped.
func takeVisible(s string, n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	taken := 0
	scanVisible(s, func(r rune) bool {
		b.WriteRune(r)
		taken++
		return taken < n
	})
	return b.String()
}

// scanVisible walks the visible runes of s, skipping escape sequences,
// and calls fn for each. fn returns false to stop early.
func scanVisible(s string, fn func(rune) bool) {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == esc {
			i += seqLen(runes[i:]) - 1
			continue
		}
		if !fn(runes[i]) {
			return
		}
	}
}

// seqLen returns the length in runes of the escape sequence starting at
// rs[0] (which must be ESC), including the terminator. A bare ESC with
// no recognizable introducer consumes only itself.
func seqLen(rs []rune) int {
	if len(rs) < 2 {
		return 1
	}
	switch rs[1] {
	case '[':
		// CSI: parameter bytes 0x30-0x3F, intermediates 0x20-0x2F,
		// then one final byte 0x40-0x7E.
		for i := 2; i < len(rs); i++ {
			if rs[i] >= 0x40 && rs[i] <= 0x7e {
				return i + 1
			}
		}
		return len(rs)
	case ']':
		// OSC: runs to BEL or the ESC '\' string terminator.
		for i := 2; i < len(rs); i++ {
			if rs[i] == '\a' {
				return i + 1
			}
			if rs[i] == esc && i+1 < len(rs) && rs[i+1] == '\\' {
				return i + 2
			}
		}
		return len(rs)
	default:
		return 1
	}
}
