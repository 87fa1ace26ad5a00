package testutil

import (
	"testing"

	"github.com/Excaliburns/Placebo/internal/attribute"
)

// ZombieType: тип сущности из тестового каталога.
const ZombieType = "example:zombie"

// Fixture содержит тестовый каталог атрибутов: health, speed, armor и поставщик
// для зомби (health и speed, без armor).
type Fixture struct {
	Registry   *attribute.Registry
	Operations *attribute.Operations
	Health     *attribute.Attribute
	Speed      *attribute.Attribute
	Armor      *attribute.Attribute
	Zombie     *attribute.Supplier
}

// NewFixture регистрирует тестовые атрибуты в новом реестре.
func NewFixture(tb testing.TB) *Fixture {
	tb.Helper()

	reg := attribute.NewRegistry()
	register := func(a attribute.Attribute) *attribute.Attribute {
		registered, err := reg.Register(a)
		if err != nil {
			tb.Fatalf("registering %s: %v", a.Key, err)
		}
		return registered
	}

	f := &Fixture{
		Registry:   reg,
		Operations: attribute.NewOperations(),
		Health:     register(attribute.Attribute{Key: "example:health", Default: 20, Min: 0, Max: 1024}),
		Speed:      register(attribute.Attribute{Key: "example:speed", Default: 0.1, Min: 0, Max: 1024}),
		Armor:      register(attribute.Attribute{Key: "example:armor", Default: 0, Min: 0, Max: 30}),
	}
	f.Zombie = attribute.NewSupplier(ZombieType).Add(f.Health).AddWithBase(f.Speed, 0.23)
	return f
}
