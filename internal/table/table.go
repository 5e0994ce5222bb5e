package table

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// defaultWidth is assumed when no terminal width is available, for
// example when output is piped.
const defaultWidth = 80

// Border glyphs.
const (
	glyphTopLeft     = "╭"
	glyphTopRight    = "╮"
	glyphBottomLeft  = "╰"
	glyphBottomRight = "╯"
	glyphHorizontal  = "─"
	glyphVertical    = "│"
	glyphTopTee      = "┬"
	glyphBottomTee   = "┴"
	glyphLeftTee     = "├"
	glyphRightTee    = "┤"
	glyphCross       = "┼"
)

// Options configures a Table. The zero value renders row numbers under
// a "#" header and truncates overflowing cells.
type Options struct {
	// Title is an optional heading line above the table.
	Title string
	// NoRowNumbers disables the leading 1-based row-number column.
	NoRowNumbers bool
	// RowNumberHeader overrides the row-number column header ("#").
	RowNumberHeader string
	// NoTruncate leaves overflowing cells intact, letting the table
	// exceed the terminal width.
	NoTruncate bool
	// Width supplies the terminal column count for layout. When nil
	// the table asks the output terminal, falling back to 80 columns
	// for non-terminal sinks. Tests inject a constant here.
	Width func() int
}

// Table accumulates rows and renders them column-aligned. A Table is
// built once per command invocation, populated via AddRow, rendered,
// and discarded; it owns its row buffer exclusively and is not safe
// for concurrent mutation.
type Table struct {
	columns []Column
	opts    Options
	rows    []Row

	// lineCount is the number of lines emitted by the last render,
	// used by the resize watcher to clear before redrawing.
	lineCount int
}

// New validates the column declarations and returns an empty table.
// Invalid declarations (width and flex both set, non-positive flex,
// min above max) are configuration errors and fail here rather than
// being silently corrected.
func New(columns []Column, opts Options) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table: at least one column is required")
	}
	for _, c := range columns {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("table: %w", err)
		}
	}
	if opts.RowNumberHeader == "" {
		opts.RowNumberHeader = "#"
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, opts: opts}, nil
}

// AddRow appends a row to the buffer. The map is copied so later
// mutation by the caller cannot affect rendered output.
func (t *Table) AddRow(row Row) {
	cp := make(Row, len(row))
	for k, v := range row {
		cp[k] = v
	}
	t.rows = append(t.rows, cp)
}

// Len returns the number of buffered rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render lays the table out against the current terminal width and
// writes it to w, one line at a time. Rendering is idempotent: the
// same rows and width produce the same output. An empty row buffer
// still renders the title, borders, and header.
func (t *Table) Render(w io.Writer) error {
	return t.render(w, t.terminalWidth(w))
}

func (t *Table) render(w io.Writer, termWidth int) error {
	lay := computeLayout(t.columns, t.rows, termWidth, t.opts.RowNumberHeader, !t.opts.NoRowNumbers)

	lines := make([]string, 0, len(t.rows)+5)
	if t.opts.Title != "" {
		lines = append(lines, t.opts.Title)
	}
	lines = append(lines, t.rule(lay, glyphTopLeft, glyphTopTee, glyphTopRight))
	lines = append(lines, t.headerLine(lay))
	lines = append(lines, t.rule(lay, glyphLeftTee, glyphCross, glyphRightTee))
	for i := range t.rows {
		lines = append(lines, t.rowLine(lay, i))
	}
	lines = append(lines, t.rule(lay, glyphBottomLeft, glyphBottomTee, glyphBottomRight))

	t.lineCount = len(lines)
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// rule draws a horizontal border with the given corner and junction
// glyphs.
func (t *Table) rule(lay layoutResult, left, tee, right string) string {
	var b strings.Builder
	b.WriteString(left)
	first := true
	if lay.number > 0 {
		b.WriteString(strings.Repeat(glyphHorizontal, lay.number+2))
		first = false
	}
	for _, w := range lay.widths {
		if !first {
			b.WriteString(tee)
		}
		b.WriteString(strings.Repeat(glyphHorizontal, w+2))
		first = false
	}
	b.WriteString(right)
	return b.String()
}

func (t *Table) headerLine(lay layoutResult) string {
	cells := make([]string, 0, len(t.columns)+1)
	if lay.number > 0 {
		cells = append(cells, Pad(Truncate(t.opts.RowNumberHeader, lay.number), lay.number, AlignRight))
	}
	for i, c := range t.columns {
		cells = append(cells, Pad(Truncate(c.Header, lay.widths[i]), lay.widths[i], c.Align))
	}
	return joinCells(cells)
}

func (t *Table) rowLine(lay layoutResult, idx int) string {
	row := t.rows[idx]
	cells := make([]string, 0, len(t.columns)+1)
	if lay.number > 0 {
		cells = append(cells, Pad(strconv.Itoa(idx+1), lay.number, AlignRight))
	}
	for i, c := range t.columns {
		value := row.Get(c.Key)
		if !t.opts.NoTruncate && VisibleWidth(value) > lay.widths[i] {
			value = Truncate(value, lay.widths[i])
		}
		if c.Color != nil {
			value = c.Color(value, row)
		}
		cells = append(cells, Pad(value, lay.widths[i], c.Align))
	}
	return joinCells(cells)
}

func joinCells(cells []string) string {
	var b strings.Builder
	b.WriteString(glyphVertical)
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(c)
		b.WriteString(" ")
		b.WriteString(glyphVertical)
	}
	return b.String()
}

// terminalWidth resolves the layout width: the injected provider wins,
// then the sink's terminal size, then the 80-column default.
func (t *Table) terminalWidth(w io.Writer) int {
	if t.opts.Width != nil {
		if tw := t.opts.Width(); tw > 0 {
			return tw
		}
		return defaultWidth
	}
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return defaultWidth
}
