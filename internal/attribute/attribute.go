// Package attribute models numeric entity capabilities (health, speed, ...)
// and the per-entity containers that modifiers are installed into.
package attribute

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// ErrDuplicateAttribute is returned when a key is registered twice.
var ErrDuplicateAttribute = errors.New("attribute already registered")

// ErrInvalidBounds is returned for attributes whose default lies outside [Min, Max].
var ErrInvalidBounds = errors.New("attribute default outside bounds")

// Attribute is a registered, ranged numeric capability.
// Identity is the registered pointer: two lookups of the same key return the same *Attribute.
type Attribute struct {
	Key           string
	DescriptionID string
	Default       float64
	Min           float64
	Max           float64
}

// Sanitize clamps v into [Min, Max]. NaN collapses to Min.
func (a *Attribute) Sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return a.Min
	}
	return math.Max(a.Min, math.Min(a.Max, v))
}

func (a *Attribute) String() string { return a.Key }

// Registry maps resource keys to attributes.
// Thread-safe: lookups take a read lock so a loaded registry can be shared by parsers.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]*Attribute
}

// NewRegistry creates an empty attribute registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Attribute)}
}

// Register validates and stores a copy of a, returning the registered handle.
// Min/Max of zero on both sides mean "unbounded".
func (r *Registry) Register(a Attribute) (*Attribute, error) {
	key, err := ParseKey(a.Key)
	if err != nil {
		return nil, err
	}
	a.Key = key
	if a.DescriptionID == "" {
		a.DescriptionID = descriptionIDFor(key)
	}
	if a.Min == 0 && a.Max == 0 {
		a.Min, a.Max = math.Inf(-1), math.Inf(1)
	}
	if a.Min > a.Max || a.Default < a.Min || a.Default > a.Max {
		return nil, fmt.Errorf("%w: %s default=%v min=%v max=%v", ErrInvalidBounds, key, a.Default, a.Min, a.Max)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAttribute, key)
	}
	handle := &a
	r.byKey[key] = handle
	return handle, nil
}

// Lookup resolves a key (namespace optional) to its registered attribute.
func (r *Registry) Lookup(key string) (*Attribute, bool) {
	normalized, err := ParseKey(key)
	if err != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byKey[normalized]
	return a, ok
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered attributes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}
