package attribute

// Supplier describes the default attribute set of an entity type.
// Built once at catalog load time, then used to create a Map per spawned entity.
type Supplier struct {
	entityType string
	entries    []supplierEntry
}

type supplierEntry struct {
	attribute *Attribute
	base      float64
}

// NewSupplier creates an empty supplier for entityType.
func NewSupplier(entityType string) *Supplier {
	return &Supplier{entityType: entityType}
}

// EntityType returns the entity type this supplier builds maps for.
func (s *Supplier) EntityType() string {
	return s.entityType
}

// Add includes a with its registered default as base value.
func (s *Supplier) Add(a *Attribute) *Supplier {
	return s.AddWithBase(a, a.Default)
}

// AddWithBase includes a with an explicit base value, overriding an earlier entry for a.
func (s *Supplier) AddWithBase(a *Attribute, base float64) *Supplier {
	for n := range s.entries {
		if s.entries[n].attribute == a {
			s.entries[n].base = base
			return s
		}
	}
	s.entries = append(s.entries, supplierEntry{attribute: a, base: base})
	return s
}

// Has reports whether entities of this type carry a.
func (s *Supplier) Has(a *Attribute) bool {
	for _, e := range s.entries {
		if e.attribute == a {
			return true
		}
	}
	return false
}

// CreateMap builds a fresh attribute map with all supplied instances.
func (s *Supplier) CreateMap() *Map {
	m := NewMap()
	for _, e := range s.entries {
		m.Add(e.attribute, e.base)
	}
	return m
}
