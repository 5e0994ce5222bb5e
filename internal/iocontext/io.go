// Package iocontext carries the command's output streams through the
// context. cnv keeps stdout reserved for command output (tables, JSON,
// downloaded file content) and stderr for diagnostics, and both must be
// swappable for buffers in tests, so the streams travel with the
// request context instead of being read from the process globals at
// every call site.
package iocontext

import (
	"context"
	"io"
	"os"
)

type (
	stdoutKey struct{}
	stderrKey struct{}
)

// WithIO returns a context carrying the given output streams.
func WithIO(ctx context.Context, stdout, stderr io.Writer) context.Context {
	ctx = context.WithValue(ctx, stdoutKey{}, stdout)
	return context.WithValue(ctx, stderrKey{}, stderr)
}

// Stdout returns the command-output stream. Outside an injected
// context (early startup, direct helper calls) it falls back to the
// process's stdout.
func Stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok && w != nil {
		return w
	}
	return os.Stdout
}

// Stderr returns the diagnostics stream, falling back to the process's
// stderr when none was injected.
func Stderr(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stderrKey{}).(io.Writer); ok && w != nil {
		return w
	}
	return os.Stderr
}
