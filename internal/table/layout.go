package table

import "strconv"

// layoutResult is recomputed on every render: the final visible width
// of each column, plus the row-number column when enabled.
type layoutResult struct {
	number int   // 0 when row numbers are disabled
	widths []int // parallel to the column slice
}

// computeLayout sizes every column for the given terminal width.
//
// Fixed-width columns and the row-number column are authoritative and
// are never resized; overflow in them is handled by per-cell
// truncation. Flexible columns start at their clamped content width
// and then absorb the remaining slack in proportion to their Flex
// weight, bounded by MaxWidth when growing and by MinWidth (hard floor
// 1) when shrinking. When even the floors do not fit, the table is
// allowed to exceed the terminal width.
func computeLayout(cols []Column, rows []Row, termWidth int, numberHeader string, numbered bool) layoutResult {
	res := layoutResult{widths: make([]int, len(cols))}

	for i, c := range cols {
		if c.Width > 0 {
			res.widths[i] = c.Width
			continue
		}
		w := contentWidth(c, rows)
		if c.MinWidth > 0 && w < c.MinWidth {
			w = c.MinWidth
		}
		if c.MaxWidth > 0 && w > c.MaxWidth {
			w = c.MaxWidth
		}
		res.widths[i] = w
	}

	if numbered {
		res.number = numberWidth(numberHeader, len(rows))
	}

	slack := termWidth - res.total(len(cols))
	if slack > 0 {
		growFlex(cols, res.widths, slack)
	} else if slack < 0 {
		shrinkFlex(cols, res.widths, -slack)
	}
	return res
}

// total returns the full rendered width: cell widths, one padding
// space on each side of every cell, and a divider glyph between
// columns and at both edges.
func (l layoutResult) total(ncols int) int {
	cells := ncols
	if l.number > 0 {
		cells++
	}
	w := l.number
	for _, cw := range l.widths {
		w += cw
	}
	return w + 2*cells + cells + 1
}

func contentWidth(c Column, rows []Row) int {
	w := VisibleWidth(c.Header)
	for _, r := range rows {
		if cw := VisibleWidth(r.Get(c.Key)); cw > w {
			w = cw
		}
	}
	return w
}

// numberWidth sizes the row-number column: wide enough for the header
// and for the largest 1-based index plus one column of slack.
func numberWidth(header string, rowCount int) int {
	w := len(strconv.Itoa(rowCount)) + 1
	if hw := VisibleWidth(header); hw > w {
		w = hw
	}
	return w
}

// growFlex hands out slack to flexible columns in proportion to their
// weights, never pushing a column past its MaxWidth. Slack left over
// once every flexible column is capped stays unused.
func growFlex(cols []Column, widths []int, slack int) {
	for slack > 0 {
		eligible, totalWeight := flexBelowCap(cols, widths)
		if len(eligible) == 0 {
			return
		}
		granted := 0
		for _, i := range eligible {
			share := slack * cols[i].Flex / totalWeight
			if limit := cols[i].MaxWidth; limit > 0 && widths[i]+share > limit {
				share = limit - widths[i]
			}
			widths[i] += share
			granted += share
		}
		if granted == 0 {
			// All proportional shares rounded to zero; grant single
			// columns so the loop terminates.
			widths[eligible[0]]++
			granted = 1
		}
		slack -= granted
	}
}

// shrinkFlex reclaims deficit from flexible columns in proportion to
// their weights, never going below MinWidth (hard floor 1). Fixed
// columns are untouched.
func shrinkFlex(cols []Column, widths []int, deficit int) {
	for deficit > 0 {
		eligible, totalWeight := flexAboveFloor(cols, widths)
		if len(eligible) == 0 {
			return
		}
		taken := 0
		for _, i := range eligible {
			share := deficit * cols[i].Flex / totalWeight
			if floor := flexFloor(cols[i]); widths[i]-share < floor {
				share = widths[i] - floor
			}
			widths[i] -= share
			taken += share
		}
		if taken == 0 {
			widths[eligible[0]]--
			taken = 1
		}
		deficit -= taken
	}
}

func flexBelowCap(cols []Column, widths []int) (idx []int, totalWeight int) {
	for i, c := range cols {
		if c.Flex <= 0 {
			continue
		}
		if c.MaxWidth > 0 && widths[i] >= c.MaxWidth {
			continue
		}
		idx = append(idx, i)
		totalWeight += c.Flex
	}
	return idx, totalWeight
}

func flexAboveFloor(cols []Column, widths []int) (idx []int, totalWeight int) {
	for i, c := range cols {
		if c.Flex <= 0 || widths[i] <= flexFloor(c) {
			continue
		}
		idx = append(idx, i)
		totalWeight += c.Flex
	}
	return idx, totalWeight
}

func flexFloor(c Column) int {
	if c.MinWidth > 0 {
		return c.MinWidth
	}
	return 1
}
