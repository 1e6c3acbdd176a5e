package dappkitty

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Host is the capability object standing in for the page globals: its
// location, console, network transport, window objects, error signals and
// render sink. Interception mutates the bindings held here, exactly once
// per host, instead of touching process globals.
type Host struct {
	location *url.URL
	sink     Sink

	globals *Values
	theme   *Values
	app     *Values

	// mu guards the bindings and the interception state below.
	mu             sync.Mutex
	console        Console
	original       Console
	transport      http.RoundTripper
	consolePatched bool
	fetchPatched   bool
	listening      bool

	active atomic.Pointer[Session]

	sigMu              sync.Mutex
	errorListeners     []func(ErrorEvent)
	rejectionListeners []func(RejectionEvent)
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithConsole sets the console binding. Defaults to a console on stderr.
func WithConsole(c Console) HostOption {
	return func(h *Host) { h.console = c }
}

// WithTransport sets the network binding. Defaults to http.DefaultTransport.
func WithTransport(rt http.RoundTripper) HostOption {
	return func(h *Host) { h.transport = rt }
}

// WithSink sets the render sink.
func WithSink(s Sink) HostOption {
	return func(h *Host) { h.sink = s }
}

// WithGlobals seeds the window globals object.
func WithGlobals(v *Values) HostOption {
	return func(h *Host) { h.globals = v }
}

// WithTheme sets the theme object targeted by theme overrides.
func WithTheme(v *Values) HostOption {
	return func(h *Host) { h.theme = v }
}

// WithAppConfig sets the app config object targeted by dapp overrides.
func WithAppConfig(v *Values) HostOption {
	return func(h *Host) { h.app = v }
}

// NewHost builds a host for the page at rawURL. An unparseable URL gives a
// host without location, which resolves to the prod environment.
func NewHost(rawURL string, opts ...HostOption) *Host {
	u, err := url.Parse(rawURL)
	if err != nil {
		u = nil
	}
	return NewHostURL(u, opts...)
}

// NewHostURL is NewHost for an already parsed location.
func NewHostURL(u *url.URL, opts ...HostOption) *Host {
	h := &Host{location: u}
	for _, o := range opts {
		o(h)
	}
	if h.console == nil {
		h.console = NewWriterConsole(os.Stderr)
	}
	if h.transport == nil {
		h.transport = http.DefaultTransport
	}
	if h.globals == nil {
		h.globals = NewValues(nil)
	}
	if h.theme == nil {
		h.theme = NewValues(nil)
	}
	if h.app == nil {
		h.app = NewValues(nil)
	}
	return h
}

// Location returns a copy of the page URL, or nil.
func (h *Host) Location() *url.URL {
	if h.location == nil {
		return nil
	}
	u := *h.location
	return &u
}

// Origin is scheme://host of the page, or "" when the location has none.
func (h *Host) Origin() string {
	return originOf(h.location)
}

func originOf(u *url.URL) string {
	if u == nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme) + "://" + u.Host
}

// Env is the environment tag of the page.
func (h *Host) Env() Env { return EnvFromURL(h.location) }

func (h *Host) Globals() *Values   { return h.globals }
func (h *Host) Theme() *Values     { return h.theme }
func (h *Host) AppConfig() *Values { return h.app }

// Sink returns the host's render sink, which may be nil.
func (h *Host) Sink() Sink {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sink
}

// Console returns the current console binding. Call it per use: after
// activation the binding is the intercepting wrapper.
func (h *Host) Console() Console {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.console
}

// OriginalConsole returns the console as it was before interception.
func (h *Host) OriginalConsole() Console {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.original != nil {
		return h.original
	}
	return h.console
}

// Transport returns the current network binding.
func (h *Host) Transport() http.RoundTripper {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.transport
}

// Client returns an http.Client that resolves the host transport on every
// request, so clients created before activation are intercepted too.
func (h *Host) Client() *http.Client {
	return &http.Client{Transport: lateTransport{h}, CheckRedirect: h.checkRedirect}
}

type lateTransport struct{ h *Host }

func (t lateTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := t.h.Transport()
	if ft, ok := rt.(*fetchTransport); ok {
		return ft.roundTrip(req, true)
	}
	return rt.RoundTrip(req)
}

// FetchInit carries the options of the string calling convention.
type FetchInit struct {
	Method string
	Header http.Header
	Body   io.Reader
}

// Fetch issues a request in the string+options convention. Relative URLs
// resolve against the page location.
func (h *Host) Fetch(ctx context.Context, rawURL string, init *FetchInit) (*http.Response, error) {
	method := http.MethodGet
	var body io.Reader
	if init != nil {
		if init.Method != "" {
			method = strings.ToUpper(init.Method)
		}
		body = init.Body
	}
	req, err := http.NewRequestWithContext(ctx, method, h.resolve(rawURL), body)
	if err != nil {
		h.reportFetchFailure(method, rawURL, err)
		return nil, err
	}
	if init != nil {
		for k, vs := range init.Header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}
	return h.Do(req)
}

// Do issues a request in the request-object convention.
func (h *Host) Do(req *http.Request) (*http.Response, error) {
	return h.Client().Do(req)
}

func (h *Host) resolve(rawURL string) string {
	if h.location == nil {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return h.location.ResolveReference(u).String()
}

// session returns the active session, or nil.
func (h *Host) session() *Session {
	return h.active.Load()
}

// Session returns the active session, or nil.
func (h *Host) Session() *Session { return h.session() }

// swapActive makes s the active session and detaches the previous one.
func (h *Host) swapActive(s *Session) {
	if prev := h.active.Swap(s); prev != nil && prev != s {
		prev.closed.Store(true)
	}
}

// sinkOrDefault returns the host sink, adopting the registered default
// sink when the host has none.
func (h *Host) sinkOrDefault() Sink {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sink == nil {
		h.sink = defaultSink()
	}
	return h.sink
}
