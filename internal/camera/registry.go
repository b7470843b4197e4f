package camera

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownMode is returned for a mode type that was never registered.
var ErrUnknownMode = errors.New("unknown camera mode")

// Factory builds a fresh mode instance.
type Factory func() Mode

// Registry maps mode types to factories.
type Registry struct {
	factories map[ModeType]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[ModeType]Factory)}
}

// Register adds or replaces the factory for t.
func (r *Registry) Register(t ModeType, f Factory) {
	if t == "" || f == nil {
		panic("camera: Register needs a type and a factory")
	}
	r.factories[t] = f
}

// Has reports whether t is registered.
func (r *Registry) Has(t ModeType) bool {
	_, ok := r.factories[t]
	return ok
}

// New builds an instance of t.
func (r *Registry) New(t ModeType) (Mode, error) {
	f, ok := r.factories[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, t)
	}
	m := f()
	if m.Type() != t {
		return nil, fmt.Errorf("camera: factory for %q built a %q", t, m.Type())
	}
	return m, nil
}

// Types lists the registered types in name order.
func (r *Registry) Types() []ModeType {
	out := make([]ModeType, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
