package modifier

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Excaliburns/Placebo/internal/attribute"
)

// testRegistry returns a registry with example:health, example:speed, example:armor.
func testRegistry(t testing.TB) *attribute.Registry {
	t.Helper()
	reg := attribute.NewRegistry()
	for _, a := range []attribute.Attribute{
		{Key: "example:health", DescriptionID: "attribute.name.example.health", Default: 20, Min: 0, Max: 1024},
		{Key: "example:speed", DescriptionID: "attribute.name.example.speed", Default: 0.1, Min: 0, Max: 1024},
		{Key: "example:armor", DescriptionID: "attribute.name.example.armor", Default: 0, Min: 0, Max: 30},
	} {
		_, err := reg.Register(a)
		require.NoError(t, err)
	}
	return reg
}

func lookup(t testing.TB, reg *attribute.Registry, key string) *attribute.Attribute {
	t.Helper()
	a, ok := reg.Lookup(key)
	require.True(t, ok, "attribute %s not registered", key)
	return a
}

func mustRange(t testing.TB, min, max float64) ValueRange {
	t.Helper()
	r, err := NewValueRange(min, max)
	require.NoError(t, err)
	return r
}

func newSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// fixedSource always returns the same Float64 and counts calls.
type fixedSource struct {
	value float64
	calls int
}

func (s *fixedSource) Float64() float64 {
	s.calls++
	return s.value
}

// testEntity is a minimal Entity.
type testEntity struct {
	entityType string
	attrs      *attribute.Map
}

func (e *testEntity) EntityType() string         { return e.entityType }
func (e *testEntity) Attributes() *attribute.Map { return e.attrs }

// newTestEntity carries health and speed but not armor.
func newTestEntity(t testing.TB, reg *attribute.Registry) *testEntity {
	t.Helper()
	s := attribute.NewSupplier("example:zombie").
		Add(lookup(t, reg, "example:health")).
		Add(lookup(t, reg, "example:speed"))
	return &testEntity{entityType: "example:zombie", attrs: s.CreateMap()}
}
