package memberset

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// Factory constructs an empty set of some kind.
type Factory func() Set

// Registry maps set kinds to their constructors.
type Registry struct {
	mut       sync.RWMutex
	factories map[Kind]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Kind]Factory),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the registry of the built-in kinds. Dependent sets
// need a base and therefore are not registered.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()

		for kind, f := range map[Kind]Factory{
			KindEmpty:  func() Set { return Empty() },
			KindSingle: func() Set { return NewSingle(nil) },
			KindLite:   func() Set { return NewLite(NoID) },
			KindActual: func() Set { return &ActualSet{} },
		} {
			if err := r.Register(kind, f); err != nil {
				panic(err)
			}
		}

		defaultRegistry = r
	})

	return defaultRegistry
}

// Register adds a constructor for the kind. Each kind can be registered
// only once.
func (r *Registry) Register(kind Kind, f Factory) error {
	r.mut.Lock()
	defer r.mut.Unlock()

	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, kind)
	}

	r.factories[kind] = f

	return nil
}

// New constructs a set of the given kind.
func (r *Registry) New(kind Kind) (Set, error) {
	r.mut.RLock()
	f, ok := r.factories[kind]
	r.mut.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	return f(), nil
}

// Kinds returns the registered kinds in ascending order.
func (r *Registry) Kinds() []Kind {
	r.mut.RLock()
	defer r.mut.RUnlock()

	kinds := make([]Kind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	return kinds
}
