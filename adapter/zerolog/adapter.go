package zerologadapter

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/dappkitty"
)

// Sink bridges panel lines to rs/zerolog.
//
//   - Fast pre-check using GetLevel() to avoid allocating a zerolog.Event
//     when the severity is disabled.
//   - Uses Logger.WithLevel(...) to avoid a level switch at call sites.
type Sink struct {
	l     zerolog.Logger
	clock xclock.Clock
}

func New(l zerolog.Logger) *Sink {
	return &Sink{l: l, clock: xclock.Default()}
}

// WithClock replaces the timestamp source.
func (s *Sink) WithClock(c xclock.Clock) *Sink {
	if c != nil {
		s.clock = c
	}
	return s
}

func (s *Sink) EnsurePanel() error { return nil }

// AppendLine emits one entry with the sink timestamp passed as "ts".
func (s *Sink) AppendLine(text, class string) error {
	zlvl := mapLevel(dappkitty.ClassLevel(class))

	// Fast path: drop early if below logger's min level (no Event allocation).
	if zlvl < s.l.GetLevel() {
		return nil
	}

	// A string keeps RFC3339Nano precision without touching zerolog globals.
	s.l.WithLevel(zlvl).
		Str("ts", s.clock.Now().UTC().Format(time.RFC3339Nano)).
		Str("class", class).
		Msg(text)
	return nil
}

// SetMinLevel propagates a dappkitty ceiling into zerolog.
func (s *Sink) SetMinLevel(l dappkitty.Level) {
	s.l = s.l.Level(mapLevel(l))
}

func mapLevel(l dappkitty.Level) zerolog.Level {
	switch l {
	case dappkitty.LevelError:
		return zerolog.ErrorLevel
	case dappkitty.LevelWarn:
		return zerolog.WarnLevel
	case dappkitty.LevelDebug, dappkitty.LevelKitty:
		return zerolog.DebugLevel
	case dappkitty.LevelOff:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
