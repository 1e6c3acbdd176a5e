package dappkitty

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"
)

var testTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type sinkLine struct {
	Text  string
	Class string
}

// stubSink records appended lines. failAppend and panicAppend switch on
// failure modes after construction.
type stubSink struct {
	mu          sync.Mutex
	ensured     int
	lines       []sinkLine
	ensureErr   error
	failAppend  bool
	panicAppend bool
}

func (s *stubSink) EnsurePanel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensured++
	return s.ensureErr
}

func (s *stubSink) AppendLine(text, class string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panicAppend {
		panic("sink exploded")
	}
	if s.failAppend {
		return errors.New("sink full")
	}
	s.lines = append(s.lines, sinkLine{Text: text, Class: class})
	return nil
}

// logLines are the appended lines without the intro banner.
func (s *stubSink) logLines() []sinkLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sinkLine
	for _, l := range s.lines {
		if l.Class != IntroClass {
			out = append(out, l)
		}
	}
	return out
}

func (s *stubSink) texts() []string {
	var out []string
	for _, l := range s.logLines() {
		out = append(out, l.Text)
	}
	return out
}

func (s *stubSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

type consoleCall struct {
	Method string
	Args   []any
}

// stubConsole records calls instead of printing them.
type stubConsole struct {
	mu    sync.Mutex
	calls []consoleCall
}

func (c *stubConsole) record(m string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, consoleCall{Method: m, Args: args})
}

func (c *stubConsole) Log(args ...any)   { c.record("log", args) }
func (c *stubConsole) Error(args ...any) { c.record("error", args) }
func (c *stubConsole) Warn(args ...any)  { c.record("warn", args) }
func (c *stubConsole) Info(args ...any)  { c.record("info", args) }
func (c *stubConsole) Debug(args ...any) { c.record("debug", args) }

func (c *stubConsole) failures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if len(call.Args) > 0 && call.Args[0] == "[logKitty failed]" {
			n++
		}
	}
	return n
}

func newTestHost(rawURL string, opts ...HostOption) (*Host, *stubSink, *stubConsole) {
	sink := &stubSink{}
	con := &stubConsole{}
	opts = append([]HostOption{WithSink(sink), WithConsole(con)}, opts...)
	return NewHost(rawURL, opts...), sink, con
}

// startSession activates a dev session at level and clears the sink.
func startSession(t *testing.T, level Level, opts ...HostOption) (*Host, *Session, *stubSink, *stubConsole) {
	t.Helper()
	h, sink, con := newTestHost("http://localhost:3000/?envkitty=dev", opts...)
	s, err := NewBuilder(h).
		WithLevel(level).
		WithClock(xclock.NewFrozen(testTime)).
		Build()
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	sink.reset()
	return h, s, sink, con
}

func containsLine(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}
