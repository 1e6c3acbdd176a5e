package dappkitty

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// fetchTransport logs every round trip around the original transport.
// Request, response and error are handed through untouched.
type fetchTransport struct {
	host *Host
	next http.RoundTripper
}

func (t *fetchTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.roundTrip(req, false)
}

// roundTrip logs one request and one outcome line. With following set the
// caller chases redirects, so hops after the first request and responses
// it will follow are not logged.
func (t *fetchTransport) roundTrip(req *http.Request, following bool) (*http.Response, error) {
	s := t.host.session()
	if s == nil {
		return t.next.RoundTrip(req)
	}
	method, target := describeRequest(req)
	shown := displayURL(t.host.location, target)
	if !following || req.Response == nil {
		s.emitf(LevelInfo, Intercepted, "[fetch] %s %s", method, shown)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		s.emitf(LevelError, Intercepted, "[fetch] Error: %v for %s %s", err, method, shown)
		return resp, err
	}
	if resp != nil && !(following && followsRedirect(req, resp)) {
		s.emitf(LevelDebug, Intercepted, "[fetch] Response: %d %s for %s",
			resp.StatusCode, statusText(resp), displayURL(t.host.location, responseURL(resp, target)))
	}
	return resp, err
}

// followsRedirect reports whether http.Client would follow resp.
func followsRedirect(req *http.Request, resp *http.Response) bool {
	if resp.Header.Get("Location") == "" {
		return false
	}
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther:
		return true
	case http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return req.GetBody != nil || req.Body == nil || req.Body == http.NoBody
	}
	return false
}

// fetchSession returns the active session while the fetch intercept is
// installed, or nil.
func (h *Host) fetchSession() *Session {
	h.mu.Lock()
	patched := h.fetchPatched
	h.mu.Unlock()
	if !patched {
		return nil
	}
	return h.session()
}

// reportFetchFailure logs a request that never reached the transport.
func (h *Host) reportFetchFailure(method, raw string, err error) {
	s := h.fetchSession()
	if s == nil {
		return
	}
	shown := displayURL(h.location, raw)
	s.emitf(LevelInfo, Intercepted, "[fetch] %s %s", method, shown)
	s.emitf(LevelError, Intercepted, "[fetch] Error: %v for %s %s", err, method, shown)
}

// checkRedirect keeps the default limit of http.Client and logs the call
// it stops.
func (h *Host) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) < maxRedirects {
		return nil
	}
	err := fmt.Errorf("stopped after %d redirects", maxRedirects)
	if s := h.fetchSession(); s != nil {
		method, target := describeRequest(via[0])
		s.emitf(LevelError, Intercepted, "[fetch] Error: %v for %s %s", err, method, displayURL(h.location, target))
	}
	return err
}

const maxRedirects = 10

// describeRequest extracts the method (default GET) and target URL.
func describeRequest(req *http.Request) (method, target string) {
	if req == nil {
		return http.MethodGet, ""
	}
	method = strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	if req.URL != nil {
		target = req.URL.String()
	}
	return method, target
}

func responseURL(resp *http.Response, fallback string) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return fallback
}

func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if s := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

// displayURL reduces raw to origin+path, resolved against base. Anything
// it cannot parse is shown as given.
func displayURL(base *url.URL, raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	origin := originOf(u)
	if origin == "" && u.Opaque != "" {
		return u.Scheme + ":" + u.Opaque
	}
	return origin + path
}

// InstallFetchIntercept wraps the host transport. It reports whether this
// call installed the wrapper; later calls are no-ops.
func InstallFetchIntercept(h *Host) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fetchPatched {
		return false
	}
	h.fetchPatched = true
	if _, ok := h.transport.(*fetchTransport); ok {
		return false
	}
	h.transport = &fetchTransport{host: h, next: h.transport}
	return true
}
