package dappkitty

import (
	"sort"
	"sync"
)

// Payload is a set of key/value overrides destined for one target.
type Payload map[string]any

func (p Payload) clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Target is a mutable object that receives a payload on activation.
// Assign must only touch the keys present in p.
type Target interface {
	Assign(p Payload)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(Payload)

func (f TargetFunc) Assign(p Payload) { f(p) }

// Values is a concurrency-safe string-keyed object, the Go stand-in for the
// window-level objects the overlay writes into.
type Values struct {
	mu sync.RWMutex
	m  map[string]any
}

// NewValues returns a Values seeded with a copy of init.
func NewValues(init map[string]any) *Values {
	v := &Values{m: make(map[string]any, len(init))}
	for k, x := range init {
		v.m[k] = x
	}
	return v
}

func (v *Values) Assign(p Payload) {
	if len(p) == 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.m == nil {
		v.m = make(map[string]any, len(p))
	}
	for k, x := range p {
		v.m[k] = x
	}
}

// Get returns the value stored under k.
func (v *Values) Get(k string) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	x, ok := v.m[k]
	return x, ok
}

// Set stores x under k.
func (v *Values) Set(k string, x any) {
	v.Assign(Payload{k: x})
}

// Snapshot returns a copy of the stored keys.
func (v *Values) Snapshot() map[string]any {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string]any, len(v.m))
	for k, x := range v.m {
		out[k] = x
	}
	return out
}

// Keys lists stored keys in sorted order.
func (v *Values) Keys() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
