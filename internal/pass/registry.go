package pass

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrUnknownPass is returned when a pipeline names an unregistered pass.
	ErrUnknownPass = errors.New("unknown pass")

	// ErrDuplicatePass is returned when an identifier is registered twice.
	ErrDuplicatePass = errors.New("pass already registered")
)

// Factory constructs a pass instance that reports to rec.
type Factory func(rec Recorder) FunctionPass

// Plugin bundles pass registrations under a display name.
type Plugin struct {
	Name     string
	Version  string
	Register func(*Registry) error
}

// Registry maps pass identifiers to factories.
//
// Thread-safety: all methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	plugins   []Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds name to f. Registering the same name twice is an error.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return errors.New("register pass: empty name")
	}
	if f == nil {
		return fmt.Errorf("register pass %q: nil factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("register pass %q: %w", name, ErrDuplicatePass)
	}
	r.factories[name] = f
	return nil
}

// Load runs the plugin's registrations and records one EventPluginLoaded
// on success. Nothing is recorded when registration fails.
func (r *Registry) Load(p Plugin, rec Recorder) error {
	if p.Register == nil {
		return fmt.Errorf("load plugin %q: no register hook", p.Name)
	}
	if err := p.Register(r); err != nil {
		return fmt.Errorf("load plugin %q: %w", p.Name, err)
	}

	r.mu.Lock()
	r.plugins = append(r.plugins, p)
	r.mu.Unlock()

	if rec != nil {
		rec.Record(Event{Kind: EventPluginLoaded, Plugin: p.Name})
	}
	return nil
}

// New instantiates the pass registered under name.
func (r *Registry) New(name string, rec Recorder) (FunctionPass, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPass, name)
	}
	if rec == nil {
		rec = NopRecorder{}
	}
	return f(rec), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns registered identifiers in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Plugins returns loaded plugins in load order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.plugins)
}
