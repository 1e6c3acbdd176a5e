package dappkitty

import (
	"fmt"

	"github.com/trickstertwo/xclock"
)

// Builder separates activation from configuration (Builder pattern).
type Builder struct {
	host      *Host
	defaults  *Defaults
	overrides Overrides
	config    *Config
	clock     xclock.Clock
	observers []Observer
}

func NewBuilder(h *Host) *Builder {
	return &Builder{host: h}
}

// WithDefaults replaces the standard schema.
func (b *Builder) WithDefaults(d Defaults) *Builder {
	b.defaults = &d
	return b
}

// WithOverrides layers o over the overrides collected so far.
func (b *Builder) WithOverrides(o Overrides) *Builder {
	b.overrides = b.overrides.Merge(o)
	return b
}

// WithLevel sets the top-level log level override.
func (b *Builder) WithLevel(l Level) *Builder {
	b.overrides.LogLevel = l
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.clock = c
	return b
}

func (b *Builder) AddObserver(o Observer) *Builder {
	b.observers = append(b.observers, o)
	return b
}

// Build resolves the configuration and, when the activation gate allows
// it, starts a session on the host: the panel is ensured, target payloads
// are applied, the console, fetch and error interceptors are installed and
// the intro banner is shown. A refused activation returns ErrInactive and
// leaves no session active on the host.
func (b *Builder) Build() (*Session, error) {
	h := b.host
	if h == nil {
		return nil, ErrNoHost
	}
	cfg := b.config
	if cfg == nil {
		d := StandardDefaults(h)
		if b.defaults != nil {
			d = *b.defaults
		}
		cfg = Resolve(d, b.overrides, h.Env())
	}
	if !ShouldActivate(cfg, h.Origin()) {
		h.swapActive(nil)
		return nil, ErrInactive
	}

	sink := h.sinkOrDefault()
	if sink == nil {
		return nil, ErrNoSink
	}
	if th, ok := sink.(Themed); ok {
		th.ApplyTheme(cfg.Theme(), cfg.ExpandIcon, cfg.CollapseIcon)
	}
	if err := sink.EnsurePanel(); err != nil {
		return nil, fmt.Errorf("dappkitty: ensure panel: %w", err)
	}

	s := newSession(h, cfg, sink, b.clock, b.observers)
	h.swapActive(s)

	cfg.ApplyTargets(func(msg string) { s.emit(msg, LevelDebug, Direct) })
	InstallConsoleIntercept(h)
	InstallFetchIntercept(h)
	InstallErrorListener(h)
	s.intro()

	SetGlobal(s)
	return s, nil
}
