package patch

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a module type has no registered factory.
var ErrUnknownType = errors.New("unknown module type")

var errDuplicateType = errors.New("duplicate module type")

// Factory builds one module instance for a patch.
type Factory func(ctx Context) (Module, error)

// Registry maps module type names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given module type.
func (r *Registry) Register(moduleType string, factory Factory) error {
	if moduleType == "" {
		return errors.New("empty module type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[moduleType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateType, moduleType)
	}

	r.factories[moduleType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(moduleType string, factory Factory) {
	err := r.Register(moduleType, factory)
	if err != nil {
		panic("patch registry: " + err.Error())
	}
}

// Lookup returns the factory for the given module type, or nil.
func (r *Registry) Lookup(moduleType string) Factory {
	return r.factories[moduleType]
}

// New builds a module of the given type, wrapping it in an Instance.
func (r *Registry) New(moduleType string, ctx Context) (Instance, error) {
	factory := r.Lookup(moduleType)
	if factory == nil {
		return Instance{}, fmt.Errorf("%w: %s", ErrUnknownType, moduleType)
	}

	mod, err := factory(ctx)
	if err != nil {
		return Instance{}, fmt.Errorf("patch: build %s: %w", moduleType, err)
	}

	return Instance{Module: mod, Type: moduleType}, nil
}
