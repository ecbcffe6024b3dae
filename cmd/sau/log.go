package main

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

const levelDebug = charmlog.DebugLevel

// newLogger returns a slog logger backed by a charmbracelet/log handler
// writing to w.
func newLogger(w io.Writer, level charmlog.Level) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:  level,
		Prefix: "sau",
	})
	return slog.New(handler)
}
