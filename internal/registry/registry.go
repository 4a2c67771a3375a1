// Package registry holds the named task bodies available to pipeline
// definitions. Built-in task packages self-register through the Module
// interface; the engine itself never depends on the registry.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/taskpipe/taskpipe/internal/pipeline"
)

// Module is the interface task packages implement to contribute bodies.
type Module interface {
	Register(r *Registry)
}

// Registry maps body names to their implementations for one application
// instance.
type Registry struct {
	bodies map[string]pipeline.Body
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{bodies: make(map[string]pipeline.Body)}
}

// Register adds a body under name. Registering the same name twice is a
// programmer error and panics.
func (r *Registry) Register(name string, body pipeline.Body) {
	if _, exists := r.bodies[name]; exists {
		panic(fmt.Sprintf("registry: body %q already registered", name))
	}
	slog.Debug("Registering task body.", "name", name)
	r.bodies[name] = body
}

// Lookup returns the body registered under name.
func (r *Registry) Lookup(name string) (pipeline.Body, bool) {
	b, ok := r.bodies[name]
	return b, ok
}

// Names returns all registered body names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.bodies))
	for name := range r.bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
