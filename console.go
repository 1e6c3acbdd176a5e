package dappkitty

import (
	"fmt"
	"io"
	"sync"
)

// Console is the logging surface the host exposes to application code.
type Console interface {
	Log(args ...any)
	Error(args ...any)
	Warn(args ...any)
	Info(args ...any)
	Debug(args ...any)
}

// WriterConsole is a Console printing one line per call to an io.Writer.
type WriterConsole struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterConsole(w io.Writer) *WriterConsole {
	return &WriterConsole{w: w}
}

func (c *WriterConsole) Log(args ...any)   { c.write("", args) }
func (c *WriterConsole) Error(args ...any) { c.write("error: ", args) }
func (c *WriterConsole) Warn(args ...any)  { c.write("warn: ", args) }
func (c *WriterConsole) Info(args ...any)  { c.write("info: ", args) }
func (c *WriterConsole) Debug(args ...any) { c.write("debug: ", args) }

func (c *WriterConsole) write(prefix string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.w, prefix+fmt.Sprintln(args...))
}

// interceptedConsole mirrors every call into the active session after
// the original console has handled it.
type interceptedConsole struct {
	host *Host
	orig Console
}

func (c *interceptedConsole) Log(args ...any) {
	c.orig.Log(args...)
	c.relay("log", c.orig.Log, args)
}

func (c *interceptedConsole) Error(args ...any) {
	c.orig.Error(args...)
	c.relay("error", c.orig.Error, args)
}

func (c *interceptedConsole) Warn(args ...any) {
	c.orig.Warn(args...)
	c.relay("warn", c.orig.Warn, args)
}

func (c *interceptedConsole) Info(args ...any) {
	c.orig.Info(args...)
	c.relay("info", c.orig.Info, args)
}

func (c *interceptedConsole) Debug(args ...any) {
	c.orig.Debug(args...)
	c.relay("debug", c.orig.Debug, args)
}

// relay never lets a failure reach the caller; problems are reported
// through the original method of the same severity.
func (c *interceptedConsole) relay(method string, original func(...any), args []any) {
	s := c.host.session()
	level := levelOf(method)
	if !s.Enabled(level, Intercepted) {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail(fmt.Errorf("relay console.%s: %v", method, r), original)
		}
	}()
	s.emit(formatArgs(args), level, Intercepted)
}

// InstallConsoleIntercept wraps the host console. It reports whether this
// call installed the wrapper; later calls are no-ops.
func InstallConsoleIntercept(h *Host) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.consolePatched {
		return false
	}
	h.consolePatched = true
	if _, ok := h.console.(*interceptedConsole); ok {
		return false
	}
	h.original = h.console
	h.console = &interceptedConsole{host: h, orig: h.console}
	return true
}
