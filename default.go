package dappkitty

import (
	"io"
	"os"
	"sync/atomic"
)

// defaultSinkFactory is set by a sink package (e.g. adapter/writer) in its
// init() to avoid import cycles. Hosts without a sink use it.
var defaultSinkFactory atomic.Pointer[func(io.Writer) Sink]

// RegisterDefaultSinkFactory registers the constructor used when a host
// has no sink of its own. Adapters call this from init():
//
//	func init() {
//	  dappkitty.RegisterDefaultSinkFactory(func(w io.Writer) dappkitty.Sink {
//	    return writer.New(w, writer.Options{Format: writer.FormatText})
//	  })
//	}
func RegisterDefaultSinkFactory(f func(io.Writer) Sink) {
	if f == nil {
		defaultSinkFactory.Store(nil)
		return
	}
	defaultSinkFactory.Store(&f)
}

// defaultSink builds a sink writing to stderr, or nil when no factory is
// registered.
func defaultSink() Sink {
	f := defaultSinkFactory.Load()
	if f == nil {
		return nil
	}
	return (*f)(os.Stderr)
}
