package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"storefront-demo/internal/config"
)

// New builds a slog.Logger from the log config. Format "text" selects the
// text handler, anything else JSON.
func New(w io.Writer, cfg config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupDefault installs the logger as slog's default. A nil writer means stdout.
func SetupDefault(w io.Writer, cfg config.Log) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	l := New(w, cfg)
	slog.SetDefault(l)
	return l
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
