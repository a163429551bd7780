package cli

import (
	"log/slog"
	"os"

	slogctx "github.com/veqryn/slog-context"
)

// initLogger sends diagnostics to stderr so they never mix with the report.
// Swallowed API errors are only visible with --verbose.
func initLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(slogctx.NewHandler(h, nil)))
}
