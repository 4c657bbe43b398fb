package xarray

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Binder builds accessor namespaces for arrays. Data array classes implement it.
type Binder interface {
	// AccessorName is the public namespace name, or "" if the class declares none.
	AccessorName() string

	// AccessorID is a name unique to the class.
	AccessorID() string

	// BindAccessor returns the namespace bound to da.
	BindAccessor(da *DataArray) any
}

// accessorRegistry maps accessor names to binders, most recent first.
type accessorRegistry struct {
	mu      sync.RWMutex
	binders map[string][]Binder
	logger  zerolog.Logger
}

var registry = &accessorRegistry{
	binders: make(map[string][]Binder),
	logger:  zerolog.Nop(),
}

// SetLogger sets the logger used for accessor registration events.
func SetLogger(logger zerolog.Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.logger = logger
}

// RegisterAccessor makes b reachable through its accessor name and its
// unique id on every DataArray. When several binders share a name, the most
// recently registered one wins for arrays that were not built by any of them.
func RegisterAccessor(b Binder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for _, name := range []string{b.AccessorName(), b.AccessorID()} {
		if name == "" {
			continue
		}
		existing := registry.binders[name]
		registry.binders[name] = append([]Binder{b}, existing...)

		registry.logger.Debug().
			Str("accessor", name).
			Int("shared_by", len(existing)+1).
			Msg("registered accessor")
	}
}

// UnregisterAccessor removes b from every name it was registered under.
func UnregisterAccessor(b Binder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for _, name := range []string{b.AccessorName(), b.AccessorID()} {
		if name == "" {
			continue
		}
		remaining := slices.DeleteFunc(slices.Clone(registry.binders[name]), func(other Binder) bool { return other == b })
		if len(remaining) == 0 {
			delete(registry.binders, name)
		} else {
			registry.binders[name] = remaining
		}
	}
}

// Accessors lists the registered accessor names.
func Accessors() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.binders))
	for name := range registry.binders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Accessor returns the namespace called name bound to da.
//
// The class that built da is used when it answers to name; otherwise the most
// recently registered binder for name binds da.
//
// Example:
//
//	ns, err := image.Accessor("img")
func (da *DataArray) Accessor(name string) (any, error) {
	if da.owner != nil && name != "" && (da.owner.AccessorName() == name || da.owner.AccessorID() == name) {
		return da.owner.BindAccessor(da), nil
	}

	registry.mu.RLock()
	binders := registry.binders[name]
	registry.mu.RUnlock()

	if len(binders) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoAccessor, name)
	}
	return binders[0].BindAccessor(da), nil
}
