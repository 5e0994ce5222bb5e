// Package logging configures cnv's diagnostic logger. Diagnostics
// always go to stderr so stdout stays clean for command output that
// may be piped (JSON, NDJSON, downloaded file content). The Canvas
// client logs retries and rate-limit waits through the default slog
// logger set up here.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// FormatEnvVar switches diagnostic output to JSON lines when set to
// "json", for capture by log shippers in scripted use. The default is
// human-readable text.
const FormatEnvVar = "CANVAS_LOG_FORMAT"

// Setup installs the default slog logger. --debug lowers the level to
// Debug, which makes the Canvas client's retry and rate-limit traces
// visible. A nil writer logs to os.Stderr.
func Setup(debug bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv(FormatEnvVar), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
