package table

import "testing"

func TestComputeLayoutFixedAndFlex(t *testing.T) {
	cols := []Column{
		{Key: "name", Header: "Name", Flex: 1, MinWidth: 10},
		{Key: "id", Header: "ID", Width: 5},
	}
	rows := []Row{{"name": "Introduction to CS", "id": "101"}}

	lay := computeLayout(cols, rows, 40, "#", true)

	if lay.widths[1] != 5 {
		t.Errorf("fixed column width = %d, want 5", lay.widths[1])
	}
	if lay.widths[0] < 18 {
		t.Errorf("flex column width = %d, want at least content width 18", lay.widths[0])
	}
	if lay.number < 2 {
		t.Errorf("row-number width = %d, want at least 2", lay.number)
	}
	if total := lay.total(len(cols)); total > 40 {
		t.Errorf("total rendered width = %d, exceeds terminal width 40", total)
	}
}

func TestComputeLayoutFlexRatio(t *testing.T) {
	cols := []Column{
		{Key: "a", Header: "A", Flex: 2},
		{Key: "b", Header: "B", Flex: 1},
	}

	// Natural width is 1 per column (headers only, no rows). Slack is
	// distributed 2:1.
	lay := computeLayout(cols, nil, 41, "#", false)

	extraA := lay.widths[0] - 1
	extraB := lay.widths[1] - 1
	if extraB == 0 {
		t.Fatalf("weight-1 column received no slack: widths %v", lay.widths)
	}
	ratio := float64(extraA) / float64(extraB)
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("slack ratio = %.2f (extra %d vs %d), want about 2.0", ratio, extraA, extraB)
	}
	if total := lay.total(len(cols)); total > 41 {
		t.Errorf("total rendered width = %d, exceeds terminal width 41", total)
	}
}

func TestComputeLayoutMaxWidthCapsGrowth(t *testing.T) {
	cols := []Column{
		{Key: "a", Header: "A", Flex: 1, MaxWidth: 8},
		{Key: "b", Header: "B", Width: 4},
	}

	lay := computeLayout(cols, nil, 200, "#", false)

	if lay.widths[0] != 8 {
		t.Errorf("capped flex width = %d, want 8", lay.widths[0])
	}
	// Leftover slack beyond every cap stays unused: the table renders
	// narrower than the terminal.
	if total := lay.total(len(cols)); total >= 200 {
		t.Errorf("total rendered width = %d, want well under 200", total)
	}
}

func TestComputeLayoutShrinkRespectsMinWidth(t *testing.T) {
	cols := []Column{
		{Key: "long", Header: "Long", Flex: 1, MinWidth: 10},
		{Key: "id", Header: "ID", Width: 6},
	}
	rows := []Row{{"long": "an extremely long cell value that cannot possibly fit", "id": "7"}}

	lay := computeLayout(cols, rows, 30, "#", false)

	if lay.widths[0] < 10 {
		t.Errorf("flex column shrank to %d, below its min width 10", lay.widths[0])
	}
	if lay.widths[1] != 6 {
		t.Errorf("fixed column width = %d, want 6 (never shrunk)", lay.widths[1])
	}
}

func TestComputeLayoutHardFloorWithoutMinWidth(t *testing.T) {
	cols := []Column{
		{Key: "a", Header: "A", Flex: 1},
		{Key: "b", Header: "B", Flex: 1},
	}
	rows := []Row{{"a": "aaaaaaaaaaaaaaaaaaaa", "b": "bbbbbbbbbbbbbbbbbbbb"}}

	// Terminal narrower than the floors plus overhead: columns stop at
	// 1 and the table is allowed to overflow.
	lay := computeLayout(cols, rows, 5, "#", false)

	for i, w := range lay.widths {
		if w < 1 {
			t.Errorf("column %d width = %d, below hard floor 1", i, w)
		}
	}
}

func TestNumberWidth(t *testing.T) {
	tests := []struct {
		header string
		rows   int
		want   int
	}{
		{header: "#", rows: 0, want: 2},
		{header: "#", rows: 9, want: 2},
		{header: "#", rows: 100, want: 4},
		{header: "Row", rows: 1, want: 3},
	}
	for _, tt := range tests {
		if got := numberWidth(tt.header, tt.rows); got != tt.want {
			t.Errorf("numberWidth(%q, %d) = %d, want %d", tt.header, tt.rows, got, tt.want)
		}
	}
}
