package main

import (
	"io"
	"log/slog"
)

// logger is discarded until initLogger enables it.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// initLogger sends debug-level text logs to w when enabled, and discards them
// otherwise.
func initLogger(w io.Writer, enabled bool) {
	if !enabled {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
