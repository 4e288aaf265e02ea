package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/arthur-debert/scaraplate/pkg/errors"
)

// Registry maps short names to items. Lookups also accept the name
// qualified with the registry's namespace, the dotted form templates use
// to point at built-ins.
type Registry[T any] interface {
	// Register adds an item under a short name that is not taken yet
	Register(name string, item T) error

	// Get retrieves an item by short or qualified name
	Get(name string) (T, error)

	// List returns all short names in sorted order
	List() []string

	Has(name string) bool
	Count() int
}

// Option configures a registry.
type Option func(*options)

type options struct {
	namespace string
}

// WithNamespace sets the dotted prefix accepted in front of names, e.g.
// "scaraplate.strategies". A trailing dot is optional.
func WithNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" && !strings.HasSuffix(ns, ".") {
			ns += "."
		}
		o.namespace = ns
	}
}

type registry[T any] struct {
	kind      string
	namespace string

	mu    sync.RWMutex
	items map[string]T
}

// New creates a Registry. kind names the registered things in error
// messages ("strategy", "git remote").
func New[T any](kind string, opts ...Option) Registry[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &registry[T]{
		kind:      kind,
		namespace: o.namespace,
		items:     make(map[string]T),
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", r.kind)
	}
	if strings.Contains(name, ".") {
		return errors.Newf(errors.ErrInvalidInput, "%s name %q must not be qualified", r.kind, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s '%s' is already registered", r.kind, name)
	}

	r.items[name] = item
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[r.shorten(name)]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "%s '%s' not found", r.kind, name).
			WithDetail("available", r.namesLocked())
	}

	return item, nil
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.namesLocked()
}

func (r *registry[T]) namesLocked() []string {
	names := lo.Keys(r.items)
	sort.Strings(names)
	return names
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[r.shorten(name)]
	return exists
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// shorten strips the namespace. Names from another namespace are left
// as they are and never match, since registered names carry no dots.
func (r *registry[T]) shorten(name string) string {
	if r.namespace == "" {
		return name
	}
	return strings.TrimPrefix(name, r.namespace)
}

// MustRegister registers an item and panics if registration fails.
// Used from init() functions, where a failure is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
