// Package state contains in-memory storage of switch power states.
package state

import (
	"sync"

	"github.com/go-home-io/cmdswitch/providers"
	"github.com/patrickmn/go-cache"
)

// State store implementation.
// Cache never expires, lock makes read-compare-write a single step.
type provider struct {
	sync.Mutex
	cache *cache.Cache
}

// NewStateStore constructs a new state store.
func NewStateStore() providers.IStateStoreProvider {
	return &provider{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns last known state and whether switch is known.
func (p *provider) Get(name string) (bool, bool) {
	v, ok := p.cache.Get(name)
	if !ok {
		return false, false
	}

	return v.(bool), true
}

// Set stores a new state and reports whether it differs from the previous one.
func (p *provider) Set(name string, state bool) bool {
	p.Lock()
	defer p.Unlock()

	prev, ok := p.Get(name)
	p.cache.Set(name, state, cache.NoExpiration)
	return !ok || prev != state
}

// Delete drops switch state.
func (p *provider) Delete(name string) {
	p.Lock()
	defer p.Unlock()
	p.cache.Delete(name)
}
