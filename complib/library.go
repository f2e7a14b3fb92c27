// Package complib implements the ComponentLibrary registry: a mapping
// from numeric component ids to factory functions, used both by
// hand-written component tables and by host bindings that create
// components on demand from a wire CreateComponent command.
package complib

import (
	"sync"

	microflo "github.com/jonnor/microflo-go"
)

// Factory constructs a new component instance and its embedded Base. The
// returned Base must not yet be adopted by a Network — Network.AddNode
// performs that step.
type Factory func() (microflo.Processor, *microflo.Base)

// Library is a process-wide registry of component factories keyed by a
// small numeric id. It is an explicit struct threaded through
// construction rather than a package-level singleton, so registration
// never depends on static init order.
type Library struct {
	mu        sync.RWMutex
	factories []Factory
	names     []string
}

// NewLibrary returns an empty Library.
func NewLibrary() *Library {
	return &Library{}
}

// Add reserves a new component id for factory and returns it. name is
// used only for diagnostics.
func (l *Library) Add(name string, factory Factory) uint8 {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := uint8(len(l.factories))
	l.factories = append(l.factories, factory)
	l.names = append(l.names, name)
	return id
}

// Create invokes the factory registered at id. It returns false if id is
// not registered.
func (l *Library) Create(id uint8) (microflo.Processor, *microflo.Base, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if int(id) >= len(l.factories) {
		return nil, nil, false
	}
	p, b := l.factories[id]()
	return p, b, true
}

// Name returns the diagnostic name registered at id, or "" if unregistered.
func (l *Library) Name(id uint8) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if int(id) >= len(l.names) {
		return ""
	}
	return l.names[id]
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns a lazily-initialized process-wide Library, for callers
// that want a zero-config registry without threading a *Library through
// every constructor (host.HostCommunication's CreateComponent handling,
// for instance). It starts empty; callers register components on it the
// same way as any other Library.
func Default() *Library {
	defaultOnce.Do(func() {
		defaultLib = NewLibrary()
	})
	return defaultLib
}
