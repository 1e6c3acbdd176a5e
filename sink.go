package dappkitty

import (
	"io"

	"github.com/hashicorp/go-multierror"
)

// Sink is the render surface (Strategy). The core only ever asks it to make
// sure a panel exists and to append one line with a class list.
//
// Appends run on whichever goroutine drains the session queue. A sink that
// prints diagnostics should use Host.OriginalConsole; calls it makes to the
// intercepted console are printed but not mirrored back into the panel.
type Sink interface {
	EnsurePanel() error
	AppendLine(text, class string) error
}

// Themed is implemented by sinks that render the panel chrome. The session
// hands them the resolved theme and toggle icons before EnsurePanel.
type Themed interface {
	ApplyTheme(theme, expandIcon, collapseIcon string)
}

// SinkFunc adapts an append function to Sink; EnsurePanel is a no-op.
type SinkFunc func(text, class string) error

func (f SinkFunc) EnsurePanel() error                  { return nil }
func (f SinkFunc) AppendLine(text, class string) error { return f(text, class) }

// Tee fans lines out to several sinks. Errors from each sink are
// collected; one failing sink does not starve the others.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type tee []Sink

func (t tee) ApplyTheme(theme, expandIcon, collapseIcon string) {
	for _, s := range t {
		if th, ok := s.(Themed); ok {
			th.ApplyTheme(theme, expandIcon, collapseIcon)
		}
	}
}

func (t tee) EnsurePanel() error {
	var errs *multierror.Error
	for _, s := range t {
		if err := s.EnsurePanel(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func (t tee) AppendLine(text, class string) error {
	var errs *multierror.Error
	for _, s := range t {
		if err := s.AppendLine(text, class); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// Close closes every sink that implements io.Closer.
func (t tee) Close() error {
	var errs *multierror.Error
	for _, s := range t {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return errs.ErrorOrNil()
}
