package cmd

import (
	"context"

	"github.com/sageleaf-labs/canvas-cli/internal/output"
	"github.com/sageleaf-labs/canvas-cli/internal/table"
)

// tableView is a pre-built adaptive table: commands declare columns
// (with color callbacks bound to the current UI) and rows, and hand
// both to the output layer.
type tableView struct {
	cols []table.Column
	rows []table.Row
}

func (v tableView) Columns() []table.Column { return v.cols }
func (v tableView) Rows() []table.Row       { return v.rows }

// printList renders a list result. Machine formats (json, ndjson,
// yaml, filtered or quiet text) print the raw data; table output and
// interactive text render the adaptive table view.
func printList(ctx context.Context, data interface{}, view output.Tabular) error {
	printer := printerForContext(ctx)

	switch output.FormatFromContext(ctx) {
	case output.FormatTable:
		return printer.PrintTable(ctx, view)
	case output.FormatText:
		if output.QueryFromContext(ctx) == "" &&
			!output.QuietFromContext(ctx) &&
			isTerminal(stdoutFromContext(ctx)) {
			return printer.PrintTable(ctx, view)
		}
	}
	return printer.Print(ctx, data)
}

// applyListLimit truncates a fetched list to the global --limit.
func applyListLimit[T any](ctx context.Context, items []T) []T {
	limit := output.LimitFromContext(ctx)
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
