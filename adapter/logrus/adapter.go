package logrusadapter

import (
	"github.com/sirupsen/logrus"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/dappkitty"
)

// Sink bridges panel lines to sirupsen/logrus. Hooks registered on the
// logger see every line with its class in the "class" field.
type Sink struct {
	l     *logrus.Logger
	clock xclock.Clock
}

func New(l *logrus.Logger) *Sink {
	if l == nil {
		l = logrus.StandardLogger()
	}
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

func (s *Sink) AppendLine(text, class string) error {
	lvl := toLogrusLevel(dappkitty.ClassLevel(class))
	if !s.l.IsLevelEnabled(lvl) {
		return nil
	}
	s.l.WithTime(s.clock.Now()).WithField("class", class).Log(lvl, text)
	return nil
}

// SetMinLevel maps a dappkitty ceiling onto the logrus level.
func (s *Sink) SetMinLevel(l dappkitty.Level) {
	if l == dappkitty.LevelOff {
		s.l.SetLevel(logrus.PanicLevel)
		return
	}
	s.l.SetLevel(toLogrusLevel(l))
}

func toLogrusLevel(l dappkitty.Level) logrus.Level {
	switch l {
	case dappkitty.LevelError:
		return logrus.ErrorLevel
	case dappkitty.LevelWarn:
		return logrus.WarnLevel
	case dappkitty.LevelDebug, dappkitty.LevelKitty:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}
