package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

var errorType = reflect.TypeFor[error]()

// ErrInvalidTransform indicates a function that cannot serve as a transform.
var ErrInvalidTransform = errors.New("invalid transform function")

// Registry maps transform names used in mapping files to Go functions. A
// transform has the shape func(S) D or func(S) (D, error). It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]any
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]any)}
}

// Register adds fn under name, replacing any previous registration.
func (r *Registry) Register(name string, fn any) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTransform)
	}

	if err := CheckTransform(fn); err != nil {
		return fmt.Errorf("transform %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs == nil {
		r.funcs = make(map[string]any)
	}

	r.funcs[name] = fn

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, fn any) *Registry {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}

	return r
}

// Get returns the function registered under name.
func (r *Registry) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]

	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// CheckTransform verifies that fn has a transform shape.
func CheckTransform(fn any) error {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return fmt.Errorf("%w: %T is not a function", ErrInvalidTransform, fn)
	}

	if reflect.ValueOf(fn).IsNil() {
		return fmt.Errorf("%w: nil function", ErrInvalidTransform)
	}

	if t.NumIn() != 1 || t.IsVariadic() {
		return fmt.Errorf("%w: %s must take exactly one argument", ErrInvalidTransform, t)
	}

	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return fmt.Errorf("%w: %s must return D or (D, error)", ErrInvalidTransform, t)
	}

	return nil
}
