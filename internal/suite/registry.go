package suite

import (
	"fmt"
	"sync"
)

// Factory instantiates a suite with no arguments
type Factory func() (Suite, error)

// Registry maps suite identifiers to factories, keeping registration order
type Registry struct {
	mu        sync.RWMutex
	names     []string
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("suite factory name is required")
	}
	if factory == nil {
		return fmt.Errorf("suite factory %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("suite factory %q already registered", name)
	}
	r.factories[name] = factory
	r.names = append(r.names, name)
	return nil
}

// MustRegister is like Register but panics on error
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}
