package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAttributeCatalog = `
attributes:
  - key: example:health
    default: 20
    min: 0
    max: 1024
  - key: example:speed
    description_id: attribute.name.example.movement_speed
    default: 0.1
    min: 0
    max: 1024
  - key: example:luck
entities:
  - type: example:zombie
    attributes:
      - key: example:health
        base: 35
      - key: example:speed
  - type: skeleton
    attributes:
      - key: example:luck
`

func TestParseAttributeCatalog(t *testing.T) {
	catalog, err := ParseAttributeCatalog([]byte(testAttributeCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"example:health", "example:luck", "example:speed"}, catalog.Attributes.Keys())
	assert.Equal(t, []string{"example:zombie", "minecraft:skeleton"}, catalog.EntityTypes())

	health, ok := catalog.Attributes.Lookup("example:health")
	require.True(t, ok)
	assert.Equal(t, "attribute.name.example.health", health.DescriptionID)

	speed, ok := catalog.Attributes.Lookup("example:speed")
	require.True(t, ok)
	assert.Equal(t, "attribute.name.example.movement_speed", speed.DescriptionID)

	zombie, err := catalog.Supplier("example:zombie")
	require.NoError(t, err)
	attrs := zombie.CreateMap()

	v, ok := attrs.Value(health)
	require.True(t, ok)
	assert.Equal(t, 35.0, v, "explicit base overrides attribute default")

	v, ok = attrs.Value(speed)
	require.True(t, ok)
	assert.Equal(t, 0.1, v)

	// Тип без namespace разрешается в minecraft:.
	_, err = catalog.Supplier("skeleton")
	assert.NoError(t, err)

	_, ok = catalog.Operations.Lookup("multiply_total")
	assert.True(t, ok)
}

func TestParseAttributeCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "attributes: [oops"},
		{"bad key", "attributes:\n  - key: \"Bad Key\"\n"},
		{"duplicate attribute", "attributes:\n  - key: a\n  - key: minecraft:a\n"},
		{"default outside bounds", "attributes:\n  - key: a\n    default: 50\n    min: 0\n    max: 10\n"},
		{"unknown entity attribute", "attributes:\n  - key: a\nentities:\n  - type: zombie\n    attributes:\n      - key: b\n"},
		{"duplicate entity", "entities:\n  - type: zombie\n  - type: minecraft:zombie\n"},
		{"bad entity type", "entities:\n  - type: \"!!\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAttributeCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestAttributeCatalog_UnknownEntityType(t *testing.T) {
	catalog, err := ParseAttributeCatalog([]byte(testAttributeCatalog))
	require.NoError(t, err)

	_, err = catalog.Supplier("example:creeper")
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	_, err = catalog.Supplier("Not A Key")
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestLoadAttributeCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attributes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testAttributeCatalog), 0o644))

	catalog, err := LoadAttributeCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Attributes.Len())

	_, err = LoadAttributeCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
