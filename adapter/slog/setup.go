package slogadapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/dappkitty"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for a slog-backed sink.
type Config struct {
	Writer             io.Writer            // default: os.Stdout
	MinLevel           dappkitty.Level      // default debug
	Format             Format               // JSON (default) or Text
	HandlerOptions     *slog.HandlerOptions // optional; Level is managed by Use via LevelVar
	TimestampFieldName string               // default "ts"
}

// Use builds a slog-backed sink from cfg and a host option installing it.
func Use(cfg Config) (*Sink, dappkitty.HostOption) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.MinLevel == dappkitty.LevelUnset {
		cfg.MinLevel = dappkitty.LevelDebug
	}
	opts := cfg.HandlerOptions
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	var lv slog.LevelVar
	lv.Set(toSlog(cfg.MinLevel))
	opts.Level = &lv

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	s := NewWithTimestampKey(slog.New(h), &lv, cfg.TimestampFieldName)
	return s, dappkitty.WithSink(s)
}
