package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Excaliburns/Placebo/internal/attribute"
)

// ErrUnknownEntityType is returned when no supplier exists for an entity type.
var ErrUnknownEntityType = errors.New("unknown entity type")

// attributeCatalogFile is the on-disk YAML layout:
//
//	attributes:
//	  - key: example:health
//	    description_id: attribute.name.example.health
//	    default: 20
//	    min: 0
//	    max: 1024
//	entities:
//	  - type: example:zombie
//	    attributes:
//	      - key: example:health
//	        base: 35
//	      - key: example:speed
type attributeCatalogFile struct {
	Attributes []attributeDef `yaml:"attributes"`
	Entities   []entityDef    `yaml:"entities"`
}

type attributeDef struct {
	Key           string  `yaml:"key"`
	DescriptionID string  `yaml:"description_id"`
	Default       float64 `yaml:"default"`
	Min           float64 `yaml:"min"`
	Max           float64 `yaml:"max"`
}

type entityDef struct {
	Type       string               `yaml:"type"`
	Attributes []entityAttributeDef `yaml:"attributes"`
}

type entityAttributeDef struct {
	Key  string   `yaml:"key"`
	Base *float64 `yaml:"base"` // nil -> attribute default
}

// AttributeCatalog is the loaded attribute registry plus per-entity-type suppliers.
type AttributeCatalog struct {
	Attributes *attribute.Registry
	Operations *attribute.Operations
	suppliers  map[string]*attribute.Supplier
}

// Supplier returns the default attribute set for entityType.
func (c *AttributeCatalog) Supplier(entityType string) (*attribute.Supplier, error) {
	key, err := attribute.ParseKey(entityType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	s, ok := c.suppliers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	return s, nil
}

// EntityTypes returns all entity types with a supplier, sorted.
func (c *AttributeCatalog) EntityTypes() []string {
	types := make([]string, 0, len(c.suppliers))
	for t := range c.suppliers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// LoadAttributeCatalog reads and parses the attribute catalog at path.
func LoadAttributeCatalog(path string) (*AttributeCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attribute catalog %s: %w", path, err)
	}
	catalog, err := ParseAttributeCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing attribute catalog %s: %w", path, err)
	}

	slog.Info("loaded attribute catalog",
		"path", path,
		"attributes", catalog.Attributes.Len(),
		"entity_types", len(catalog.suppliers))
	return catalog, nil
}

// ParseAttributeCatalog builds a catalog from YAML. Entity attribute references
// must point at attributes declared in the same document.
func ParseAttributeCatalog(raw []byte) (*AttributeCatalog, error) {
	var file attributeCatalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	catalog := &AttributeCatalog{
		Attributes: attribute.NewRegistry(),
		Operations: attribute.NewOperations(),
		suppliers:  make(map[string]*attribute.Supplier, len(file.Entities)),
	}

	for _, def := range file.Attributes {
		_, err := catalog.Attributes.Register(attribute.Attribute{
			Key:           def.Key,
			DescriptionID: def.DescriptionID,
			Default:       def.Default,
			Min:           def.Min,
			Max:           def.Max,
		})
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", def.Key, err)
		}
	}

	for _, ent := range file.Entities {
		entityType, err := attribute.ParseKey(ent.Type)
		if err != nil {
			return nil, fmt.Errorf("entity type %q: %w", ent.Type, err)
		}
		if _, dup := catalog.suppliers[entityType]; dup {
			return nil, fmt.Errorf("entity type %q declared twice", entityType)
		}

		supplier := attribute.NewSupplier(entityType)
		for _, ea := range ent.Attributes {
			a, ok := catalog.Attributes.Lookup(ea.Key)
			if !ok {
				return nil, fmt.Errorf("entity type %q: unknown attribute %q", entityType, ea.Key)
			}
			if ea.Base != nil {
				supplier.AddWithBase(a, *ea.Base)
			} else {
				supplier.Add(a)
			}
		}
		catalog.suppliers[entityType] = supplier
	}

	return catalog, nil
}
