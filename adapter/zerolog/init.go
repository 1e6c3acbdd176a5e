package zerologadapter

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/dappkitty"
)

// Env:
//
//	DAPPKITTY_SINK_LEVEL: debug|info|warn|error (default debug)
//	DAPPKITTY_CONSOLE=1 : enable ConsoleWriter (pretty output)
//	DAPPKITTY_CONSOLE_TIMEFORMAT=... : optional console time layout (default RFC3339Nano)
func init() {
	dappkitty.RegisterDefaultSinkFactory(func(w io.Writer) dappkitty.Sink {
		if w == nil {
			w = os.Stdout
		}
		level := envToZlLevel(os.Getenv("DAPPKITTY_SINK_LEVEL"))

		if os.Getenv("DAPPKITTY_CONSOLE") == "1" {
			cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339Nano}
			if tf := os.Getenv("DAPPKITTY_CONSOLE_TIMEFORMAT"); tf != "" {
				cw.TimeFormat = tf
			}
			return New(zerolog.New(cw).Level(level))
		}
		return New(zerolog.New(w).Level(level))
	})
}

func envToZlLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.DebugLevel
	}
}
