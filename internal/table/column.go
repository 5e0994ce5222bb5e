package table

import (
	"fmt"
	"strconv"
)

// Column declares one table column. Exactly one of Width and Flex must
// be set: Width fixes the visible width regardless of content, Flex is
// a positive weight for distributing the terminal width that remains
// after fixed columns are placed.
type Column struct {
	// Key selects the row field rendered in this column.
	Key string
	// Header is the display text for the header line.
	Header string
	// Width is a fixed visible width. Mutually exclusive with Flex.
	Width int
	// Flex is an elastic sizing weight. Mutually exclusive with Width.
	Flex int
	// MinWidth and MaxWidth clamp flexible sizing. Ignored for fixed
	// columns.
	MinWidth int
	MaxWidth int
	// Align positions cell content inside the column.
	Align Align
	// Color, when set, maps the (already truncated) display value and
	// its full row to a styled string. It must be pure: called once per
	// cell per render, no side effects.
	Color func(value string, row Row) string
}

// validate reports configuration errors. These fail fast at table
// construction rather than being silently corrected.
func (c Column) validate() error {
	if c.Key == "" {
		return fmt.Errorf("column %q: missing key", c.Header)
	}
	if c.Width > 0 && c.Flex > 0 {
		return fmt.Errorf("column %q: width and flex are mutually exclusive", c.Key)
	}
	if c.Width == 0 && c.Flex <= 0 {
		return fmt.Errorf("column %q: flex must be positive", c.Key)
	}
	if c.Width < 0 {
		return fmt.Errorf("column %q: width must be positive", c.Key)
	}
	if c.MinWidth > 0 && c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
		return fmt.Errorf("column %q: min width %d exceeds max width %d", c.Key, c.MinWidth, c.MaxWidth)
	}
	return nil
}

// Row maps field keys to cell values. Values for declared columns are
// rendered via Stringify; keys with no matching column are carried
// along untouched so Color callbacks can consult them (for example a
// raw numeric score behind a formatted percentage).
type Row map[string]any

// Get returns the display string for a field. Missing keys render as
// the empty string; that is not an error.
func (r Row) Get(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return Stringify(v)
}

// Stringify renders a cell value the way the table does. Strings pass
// through unchanged (they may carry escape sequences); numbers use
// their shortest decimal form.
func Stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
