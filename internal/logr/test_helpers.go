package logr

import (
	"io"
	"log/slog"

	"github.com/go-logr/logr"
)

// NewTestLogger returns a logger writing text records at every level to w.
func NewTestLogger(w io.Writer) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(-8)})
	return Logger{Logger: logr.FromSlogHandler(h), Format: TextFormat}
}
