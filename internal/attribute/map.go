package attribute

import (
	"sort"
	"sync"
)

// Map holds the attribute instances carried by a single entity.
// An entity only carries the attributes its Supplier (or explicit Add calls) gave it.
//
// Thread-safe: one RWMutex guards the map and every instance inside it,
// so a single install is atomic with respect to Value reads.
type Map struct {
	mu        sync.RWMutex
	instances map[*Attribute]*Instance
}

// NewMap creates an empty attribute map.
func NewMap() *Map {
	return &Map{instances: make(map[*Attribute]*Instance)}
}

// Add gives the entity attribute a with the given base value.
// If the attribute is already present, the existing instance is returned unchanged.
func (m *Map) Add(a *Attribute, base float64) *Instance {
	m.mu.Lock()
	defer m.mu.Unlock()

	if inst, ok := m.instances[a]; ok {
		return inst
	}
	inst := &Instance{owner: m, attribute: a, base: base}
	m.instances[a] = inst
	return inst
}

// Instance returns the instance for a, or nil if the entity does not carry it.
// Safe to call on a nil Map.
func (m *Map) Instance(a *Attribute) *Instance {
	if m == nil || a == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instances[a]
}

// Has reports whether the entity carries attribute a.
func (m *Map) Has(a *Attribute) bool {
	return m.Instance(a) != nil
}

// Value returns the computed value of a, or (0, false) if absent.
func (m *Map) Value(a *Attribute) (float64, bool) {
	inst := m.Instance(a)
	if inst == nil {
		return 0, false
	}
	return inst.Value(), true
}

// Instances returns all instances sorted by attribute key. A nil map has none.
func (m *Map) Instances() []*Instance {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	result := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		result = append(result, inst)
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].attribute.Key < result[j].attribute.Key
	})
	return result
}
