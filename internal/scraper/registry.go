package scraper

import (
	"errors"
	"sort"
)

// ErrUnknownSource is returned when no adapter is registered for a source.
var ErrUnknownSource = errors.New("unknown source adapter")

// AdapterFactory opens a fresh session-scoped adapter for one run. Each run
// gets its own adapter instance so no session is shared across runs.
type AdapterFactory func() (SourceAdapter, error)

// Registry maps source identifiers to adapter factories.
type Registry struct {
	factories map[string]AdapterFactory
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]AdapterFactory)}
}

// Register binds a source identifier to its adapter factory
func (r *Registry) Register(source string, factory AdapterFactory) {
	r.factories[source] = factory
}

// Resolve filters the requested sources down to registered ones. Unknown
// identifiers are silently excluded, not an error.
func (r *Registry) Resolve(sources []string) []string {
	resolved := make([]string, 0, len(sources))
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if seen[s] {
			continue
		}
		seen[s] = true
		if _, ok := r.factories[s]; ok {
			resolved = append(resolved, s)
		}
	}
	return resolved
}

// Open creates a session-scoped adapter for the given source
func (r *Registry) Open(source string) (SourceAdapter, error) {
	factory, ok := r.factories[source]
	if !ok {
		return nil, ErrUnknownSource
	}
	return factory()
}

// Sources returns the registered source identifiers, sorted
func (r *Registry) Sources() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
