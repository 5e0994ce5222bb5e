package output

import (
	"context"

	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
	"github.com/sageleaf-labs/canvas-cli/internal/table"
)

// Tabular is implemented by result types that know how to lay
// themselves out as an adaptive table.
type Tabular interface {
	Columns() []table.Column
	Rows() []table.Row
}

// PrintTable renders a tabular result regardless of the context
// format. Commands use this to force table rendering for interactive
// text output.
func (p *Printer) PrintTable(ctx context.Context, tab Tabular) error {
	return p.renderTable(ctx, tab)
}

func (p *Printer) printTable(ctx context.Context, data interface{}) error {
	tab, ok := data.(Tabular)
	if !ok {
		return clierrors.NewUserError(
			"table output is not supported for this result",
			"Use --output json|yaml|text instead",
		)
	}
	return p.renderTable(ctx, tab)
}

// renderTable builds an adaptive table from the result's column
// declarations and renders it against the current terminal width.
func (p *Printer) renderTable(ctx context.Context, tab Tabular) error {
	t, err := table.New(tab.Columns(), table.Options{
		NoRowNumbers: NoNumbersFromContext(ctx),
		NoTruncate:   WideFromContext(ctx),
		Width:        TableWidthFromContext(ctx),
	})
	if err != nil {
		return err
	}
	for _, row := range tab.Rows() {
		t.AddRow(row)
	}
	return t.Render(p.w)
}
