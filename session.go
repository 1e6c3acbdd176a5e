package dappkitty

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/trickstertwo/xclock"
)

// Session is one activated overlay: an effective configuration routing
// events into the host sink.
type Session struct {
	host  *Host
	cfg   *Config
	sink  Sink
	clock xclock.Clock
	id    string

	// ceiling starts at cfg.LogLevel and drops to off on the first
	// internal failure.
	ceiling   atomic.Int32
	closed    atomic.Bool
	failed    atomic.Bool
	reporting atomic.Bool

	// Observers: lock-free reads via atomic.Value; synchronized updates via obsMu.
	// Stored value is []Observer and MUST be treated as immutable by readers.
	observers atomic.Value // holds []Observer
	obsMu     sync.Mutex

	// Lines are queued in routing order and handed to the sink by whichever
	// goroutine holds drainMu, so an emit never blocks on another one and
	// a sink or observer calling back into the session cannot deadlock.
	queueMu sync.Mutex
	queue   []pending
	drainMu sync.Mutex
	// dispatching is set while the sink or an observer runs. Console and
	// other intercepted events raised meanwhile are not mirrored.
	dispatching atomic.Bool
}

type pending struct {
	at     time.Time
	msg    string
	level  Level
	origin Origin
}

func newSession(h *Host, cfg *Config, sink Sink, clock xclock.Clock, observers []Observer) *Session {
	if clock == nil {
		clock = xclock.Default()
	}
	s := &Session{
		host:  h,
		cfg:   cfg,
		sink:  sink,
		clock: clock,
		id:    uuid.NewString(),
	}
	s.ceiling.Store(int32(cfg.LogLevel))
	if len(observers) > 0 {
		obs := make([]Observer, len(observers))
		copy(obs, observers)
		s.observers.Store(obs)
	} else {
		s.observers.Store(([]Observer)(nil))
	}
	return s
}

// Config returns the effective configuration of the session.
func (s *Session) Config() *Config {
	if s == nil {
		return nil
	}
	return s.cfg
}

// ID identifies the session in the intro banner and observer entries.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Level is the ceiling currently in force; off after an internal failure.
func (s *Session) Level() Level {
	if s == nil {
		return LevelOff
	}
	return Level(s.ceiling.Load())
}

// Enabled reports whether a message at level from origin would be emitted.
// Use to avoid formatting in hot paths when disabled.
func (s *Session) Enabled(level Level, origin Origin) bool {
	if s == nil || s.closed.Load() {
		return false
	}
	return allowed(level, s.Level(), origin)
}

// Direct, severity-named entry points.

func (s *Session) Error(msg string) { s.emit(msg, LevelError, Direct) }
func (s *Session) Warn(msg string)  { s.emit(msg, LevelWarn, Direct) }
func (s *Session) Info(msg string)  { s.emit(msg, LevelInfo, Direct) }
func (s *Session) Debug(msg string) { s.emit(msg, LevelDebug, Direct) }

func (s *Session) Errorf(format string, args ...any) { s.emitf(LevelError, Direct, format, args...) }
func (s *Session) Warnf(format string, args ...any)  { s.emitf(LevelWarn, Direct, format, args...) }
func (s *Session) Infof(format string, args ...any)  { s.emitf(LevelInfo, Direct, format, args...) }
func (s *Session) Debugf(format string, args ...any) { s.emitf(LevelDebug, Direct, format, args...) }

// Log is the generic direct entry point.
func (s *Session) Log(msg string, level Level) { s.emit(msg, level, Direct) }

func (s *Session) AddObserver(o Observer) {
	if s == nil || o == nil {
		return
	}
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	cur := s.snapshotObservers()
	cur = append(cur, o)
	s.observers.Store(cur)
}

func (s *Session) snapshotObservers() []Observer {
	v := s.observers.Load()
	if v == nil {
		return nil
	}
	cur := v.([]Observer)
	if len(cur) == 0 {
		return nil
	}
	out := make([]Observer, len(cur))
	copy(out, cur)
	return out
}

// Close detaches the session from its host. Events still in flight, such
// as responses of pending requests, are dropped silently afterwards.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.closed.Store(true)
	s.host.active.CompareAndSwap(s, nil)
	return nil
}

func (s *Session) emitf(level Level, origin Origin, format string, args ...any) {
	if !s.Enabled(level, origin) {
		return
	}
	s.emit(fmt.Sprintf(format, args...), level, origin)
}

func (s *Session) emit(msg string, level Level, origin Origin) {
	if s == nil || s.closed.Load() {
		return
	}
	if !allowed(level, s.Level(), origin) {
		return
	}
	// Feedback from a sink or observer logging to the host console.
	if origin == Intercepted && s.dispatching.Load() {
		return
	}

	// Single authoritative timestamp from the session clock.
	p := pending{at: s.clock.Now(), msg: msg, level: level, origin: origin}
	s.queueMu.Lock()
	s.queue = append(s.queue, p)
	s.queueMu.Unlock()
	s.drain()
}

// drain dispatches queued lines until the queue is empty. When another
// goroutine, or a caller further up this stack, is already draining, the
// line is left to it.
func (s *Session) drain() {
	for {
		if !s.drainMu.TryLock() {
			return
		}
		for {
			p, ok := s.next()
			if !ok {
				break
			}
			s.dispatch(p)
		}
		s.drainMu.Unlock()
		// A line queued between the last next() and Unlock has no drainer.
		if s.queued() == 0 {
			return
		}
	}
}

func (s *Session) next() (pending, bool) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	if len(s.queue) == 0 {
		return pending{}, false
	}
	p := s.queue[0]
	s.queue[0] = pending{}
	s.queue = s.queue[1:]
	if len(s.queue) == 0 {
		s.queue = nil
	}
	return p, true
}

func (s *Session) queued() int {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return len(s.queue)
}

// dispatch routes p against the current ceiling, so lines queued before a
// failure are dropped with it.
func (s *Session) dispatch(p pending) {
	if s.closed.Load() {
		return
	}
	line, ok := route(p.msg, p.level, s.Level(), p.origin)
	if !ok {
		return
	}
	s.dispatching.Store(true)
	defer s.dispatching.Store(false)
	defer func() {
		if r := recover(); r != nil {
			s.fail(fmt.Errorf("emit: %v", r), nil)
		}
	}()

	if err := s.sink.AppendLine(line.Text, line.Class); err != nil {
		s.fail(fmt.Errorf("append line: %w", err), nil)
		return
	}

	v := s.observers.Load()
	if v == nil {
		return
	}
	obs := v.([]Observer)
	if len(obs) == 0 {
		return
	}
	entry := Entry{
		At:      p.at,
		Level:   line.Level,
		Origin:  p.origin,
		Message: p.msg,
		Text:    line.Text,
		Class:   line.Class,
		Session: s.id,
	}
	for _, o := range obs {
		o.OnLog(entry)
	}
}

// appendDirect writes text straight to the sink under the drain lock,
// bypassing routing. Lines queued meanwhile follow it.
func (s *Session) appendDirect(text, class string) error {
	err := s.appendLocked(text, class)
	s.drain()
	return err
}

func (s *Session) appendLocked(text, class string) error {
	s.drainMu.Lock()
	defer s.drainMu.Unlock()
	s.dispatching.Store(true)
	defer s.dispatching.Store(false)
	return s.sink.AppendLine(text, class)
}

// fail turns the session off and reports err once through report, or the
// original console's error method when report is nil.
func (s *Session) fail(err error, report func(...any)) {
	s.ceiling.Store(int32(LevelOff))
	if !s.failed.CompareAndSwap(false, true) {
		return
	}
	if !s.reporting.CompareAndSwap(false, true) {
		return
	}
	defer s.reporting.Store(false)
	defer func() { _ = recover() }()
	if report == nil {
		report = s.host.OriginalConsole().Error
	}
	report("[logKitty failed]", err)
}
