package zerologadapter

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/dappkitty"
)

// Config is an explicit, code-first configuration for a zerolog-backed sink.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	MinLevel          dappkitty.Level
	Console           bool   // pretty console output instead of JSON
	ConsoleTimeFormat string // only used if Console==true; default time.RFC3339Nano
}

// Use builds a zerolog-backed sink from cfg and a host option installing it.
func Use(cfg Config) (*Sink, dappkitty.HostOption) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.MinLevel == dappkitty.LevelUnset {
		cfg.MinLevel = dappkitty.LevelDebug
	}

	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339Nano}
		if cfg.ConsoleTimeFormat != "" {
			cw.TimeFormat = cfg.ConsoleTimeFormat
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}

	s := New(zl)
	s.SetMinLevel(cfg.MinLevel)
	return s, dappkitty.WithSink(s)
}
