package registry

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/ivlev/segplay/internal/scene"
	"github.com/ivlev/segplay/internal/unit"
)

// DefaultPrefix is the name prefix segments are registered under.
const DefaultPrefix = "segment"

// MaxSegments bounds the number of indices a composite may request.
const MaxSegments = 1 << 16

var (
	ErrNotRegistered  = errors.New("unit type not registered")
	ErrDuplicate      = errors.New("unit type already registered")
	ErrInvalidFactory = errors.New("invalid factory")
)

// NameFor builds the symbolic name of the i-th unit.
func NameFor(prefix string, i int) string {
	return prefix + strconv.Itoa(i)
}

// Factory knows how to construct one unit type. New builds the unit on a
// scene; NewBare builds it without one. At least one must be set.
type Factory struct {
	Name    string
	New     func(sc scene.Scene) (unit.Unit, error)
	NewBare func() (unit.Unit, error)
}

// Registry maps unit names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func (r *Registry) Register(f Factory) error {
	if f.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFactory)
	}
	if f.New == nil && f.NewBare == nil {
		return fmt.Errorf("%w: %s has no constructor", ErrInvalidFactory, f.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[f.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, f.Name)
	}
	r.factories[f.Name] = f
	return nil
}

// MustRegister is Register for init-time registration; it panics on error.
func (r *Registry) MustRegister(f Factory) {
	if err := r.Register(f); err != nil {
		panic("registry: " + err.Error())
	}
}

// Unregister removes name and reports whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.factories[name]
	delete(r.factories, name)
	return ok
}

// Resolve looks a factory up by name. Unknown names yield ErrNotRegistered.
func (r *Registry) Resolve(name string) (Factory, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return Factory{}, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return f, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
