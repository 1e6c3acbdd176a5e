package zapadapter

import (
	"time"

	"github.com/trickstertwo/xclock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/dappkitty"
)

// Sink bridges panel lines to go.uber.org/zap.
//
//   - Uses Logger.Check(level, msg) so disabled severities cost nothing.
//   - Writes the sink clock's timestamp as an RFC3339Nano string field.
//   - Keeps the panel class list as a "class" field.
type Sink struct {
	l     *zap.Logger
	al    *zap.AtomicLevel // optional, enables SetMinLevel
	clock xclock.Clock
	tsKey string // timestamp field key; default "ts"
}

// New creates a sink for the provided zap logger.
func New(l *zap.Logger) *Sink {
	return NewWithTimestampKey(l, nil, "ts")
}

// NewWithAtomicLevel wires a zap.AtomicLevel so SetMinLevel can adjust the
// backend's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Sink {
	return NewWithTimestampKey(l, al, "ts")
}

// NewWithTimestampKey lets callers override the timestamp field key (default "ts").
func NewWithTimestampKey(l *zap.Logger, al *zap.AtomicLevel, tsKey string) *Sink {
	if l == nil {
		l = zap.NewNop()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Sink{l: l, al: al, clock: xclock.Default(), tsKey: tsKey}
}

// WithClock replaces the timestamp source.
func (s *Sink) WithClock(c xclock.Clock) *Sink {
	if c != nil {
		s.clock = c
	}
	return s
}

// EnsurePanel is a no-op; the zap core is the panel.
func (s *Sink) EnsurePanel() error { return nil }

// AppendLine emits one entry at the severity carried by class.
func (s *Sink) AppendLine(text, class string) error {
	ce := s.l.Check(toZapLevel(dappkitty.ClassLevel(class)), text)
	if ce == nil {
		return nil
	}
	ce.Write(
		zap.String(s.tsKey, s.clock.Now().UTC().Format(time.RFC3339Nano)),
		zap.String("class", class),
	)
	return nil
}

// Sync flushes buffered zap output.
func (s *Sink) Sync() error { return s.l.Sync() }

// SetMinLevel updates the backend filter when an AtomicLevel was supplied.
func (s *Sink) SetMinLevel(l dappkitty.Level) {
	if s.al == nil {
		return
	}
	s.al.SetLevel(toZapLevel(l))
}

func toZapLevel(l dappkitty.Level) zapcore.Level {
	switch l {
	case dappkitty.LevelError:
		return zapcore.ErrorLevel
	case dappkitty.LevelWarn:
		return zapcore.WarnLevel
	case dappkitty.LevelDebug, dappkitty.LevelKitty:
		return zapcore.DebugLevel
	case dappkitty.LevelOff:
		// Above every level the sink emits.
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
