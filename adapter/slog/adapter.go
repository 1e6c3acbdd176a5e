package slogadapter

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/dappkitty"
)

// Sink adapts panel lines to the Go slog API (Adapter Strategy).
// It builds slog.Attrs directly and uses LogAttrs.
type Sink struct {
	l     *slog.Logger
	lv    *slog.LevelVar // optional, enables SetMinLevel
	clock xclock.Clock
	tsKey string
}

func toSlog(l dappkitty.Level) slog.Level {
	switch l {
	case dappkitty.LevelError:
		return slog.LevelError
	case dappkitty.LevelWarn:
		return slog.LevelWarn
	case dappkitty.LevelDebug, dappkitty.LevelKitty:
		return slog.LevelDebug
	case dappkitty.LevelOff:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

func New(l *slog.Logger) *Sink {
	return NewWithTimestampKey(l, nil, "ts")
}

// NewWithTimestampKey wires an optional LevelVar and a custom timestamp key.
func NewWithTimestampKey(l *slog.Logger, lv *slog.LevelVar, tsKey string) *Sink {
	if l == nil {
		l = slog.Default()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Sink{l: l, lv: lv, clock: xclock.Default(), tsKey: tsKey}
}

// WithClock replaces the timestamp source.
func (s *Sink) WithClock(c xclock.Clock) *Sink {
	if c != nil {
		s.clock = c
	}
	return s
}

func (s *Sink) EnsurePanel() error { return nil }

func (s *Sink) AppendLine(text, class string) error {
	// Use LogAttrs for minimal allocations
	s.l.LogAttrs(context.Background(), toSlog(dappkitty.ClassLevel(class)), text,
		slog.Time(s.tsKey, s.clock.Now()),
		slog.String("class", class),
	)
	return nil
}

func (s *Sink) SetMinLevel(l dappkitty.Level) {
	if s.lv == nil {
		return
	}
	s.lv.Set(toSlog(l))
}
