package dappkitty

import (
	"fmt"
	"runtime"
	"strings"
)

// ErrorEvent describes an uncaught error.
type ErrorEvent struct {
	Message  string
	Filename string
	Lineno   int
	Colno    int
	Err      error
}

func (e ErrorEvent) location() string {
	if e.Filename == "" {
		return ""
	}
	if e.Colno > 0 {
		return fmt.Sprintf(" at %s:%d:%d", e.Filename, e.Lineno, e.Colno)
	}
	return fmt.Sprintf(" at %s:%d", e.Filename, e.Lineno)
}

// RejectionEvent describes an asynchronous failure nobody handled.
type RejectionEvent struct {
	Reason any
}

// AddErrorListener subscribes fn to uncaught errors.
func (h *Host) AddErrorListener(fn func(ErrorEvent)) {
	h.sigMu.Lock()
	defer h.sigMu.Unlock()
	h.errorListeners = append(h.errorListeners, fn)
}

// AddRejectionListener subscribes fn to unhandled rejections.
func (h *Host) AddRejectionListener(fn func(RejectionEvent)) {
	h.sigMu.Lock()
	defer h.sigMu.Unlock()
	h.rejectionListeners = append(h.rejectionListeners, fn)
}

// DispatchError delivers ev to every error listener. A panicking listener
// does not stop the others.
func (h *Host) DispatchError(ev ErrorEvent) {
	h.sigMu.Lock()
	ls := append([]func(ErrorEvent)(nil), h.errorListeners...)
	h.sigMu.Unlock()
	for _, fn := range ls {
		func() {
			defer func() { _ = recover() }()
			fn(ev)
		}()
	}
}

// DispatchRejection delivers reason to every rejection listener.
func (h *Host) DispatchRejection(reason any) {
	h.sigMu.Lock()
	ls := append([]func(RejectionEvent)(nil), h.rejectionListeners...)
	h.sigMu.Unlock()
	ev := RejectionEvent{Reason: reason}
	for _, fn := range ls {
		func() {
			defer func() { _ = recover() }()
			fn(ev)
		}()
	}
}

// Recover reports a panic in flight as an uncaught error and panics again
// with the same value. Use it as `defer host.Recover()`.
func (h *Host) Recover() {
	r := recover()
	if r == nil {
		return
	}
	ev := ErrorEvent{Message: formatArg(r)}
	if err, ok := r.(error); ok {
		ev.Err = err
	}
	ev.Filename, ev.Lineno = panicSite()
	h.DispatchError(ev)
	panic(r)
}

// Go runs fn on its own goroutine. A returned error is reported as an
// unhandled rejection; a panic is reported and then crashes the process
// as it would have without the host.
func (h *Host) Go(fn func() error) {
	go func() {
		defer h.Recover()
		if err := fn(); err != nil {
			h.DispatchRejection(err)
		}
	}()
}

// panicSite finds the first non-runtime frame below runtime.gopanic.
func panicSite() (string, int) {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	panicking := false
	for {
		f, more := frames.Next()
		if panicking && !strings.HasPrefix(f.Function, "runtime.") {
			return f.File, f.Line
		}
		if f.Function == "runtime.gopanic" {
			panicking = true
		}
		if !more {
			return "", 0
		}
	}
}

func describeReason(reason any) string {
	if reason == nil {
		return "undefined"
	}
	return formatArg(reason)
}

// InstallErrorListener subscribes the overlay to the host error signals
// once. It reports whether this call subscribed.
func InstallErrorListener(h *Host) bool {
	h.mu.Lock()
	if h.listening {
		h.mu.Unlock()
		return false
	}
	h.listening = true
	h.mu.Unlock()

	h.AddErrorListener(func(ev ErrorEvent) {
		h.session().emitf(LevelError, Intercepted, "[window.error] %s%s", ev.Message, ev.location())
	})
	h.AddRejectionListener(func(ev RejectionEvent) {
		h.session().emitf(LevelError, Intercepted, "[unhandledrejection] %s", describeReason(ev.Reason))
	})
	return true
}
