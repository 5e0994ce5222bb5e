package cmd

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/sageleaf-labs/canvas-cli/internal/iocontext"
	"github.com/sageleaf-labs/canvas-cli/internal/output"
)

func stdoutFromContext(ctx context.Context) io.Writer {
	return iocontext.Stdout(ctx)
}

func stderrFromContext(ctx context.Context) io.Writer {
	return iocontext.Stderr(ctx)
}

func printerForContext(ctx context.Context) *output.Printer {
	return output.NewPrinter(stdoutFromContext(ctx))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
