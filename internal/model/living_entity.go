package model

import (
	"errors"
	"sync"

	"github.com/Excaliburns/Placebo/internal/attribute"
)

// ErrNilSupplier is returned when an entity is created without an attribute supplier.
var ErrNilSupplier = errors.New("attribute supplier is nil")

// LivingEntity описывает живое существо с набором атрибутов (health, speed, ...).
// Набор атрибутов задаётся Supplier'ом типа сущности и не меняется после создания;
// меняются только значения и установленные модификаторы.
type LivingEntity struct {
	objectID   uint32
	entityType string
	attributes *attribute.Map

	mu   sync.RWMutex // защищает name
	name string
}

// NewLivingEntity создаёт сущность с атрибутами по умолчанию для её типа.
func NewLivingEntity(objectID uint32, name string, supplier *attribute.Supplier) (*LivingEntity, error) {
	if supplier == nil {
		return nil, ErrNilSupplier
	}
	return &LivingEntity{
		objectID:   objectID,
		name:       name,
		entityType: supplier.EntityType(),
		attributes: supplier.CreateMap(),
	}, nil
}

// ObjectID возвращает идентификатор сущности; он же ключ в хранилище модификаторов.
func (e *LivingEntity) ObjectID() uint32 {
	return e.objectID
}

// Name возвращает отображаемое имя.
func (e *LivingEntity) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

// SetName меняет отображаемое имя.
func (e *LivingEntity) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.name = name
}

// EntityType возвращает тип сущности ("example:zombie").
// Безопасно для nil receiver.
func (e *LivingEntity) EntityType() string {
	if e == nil {
		return "<nil>"
	}
	return e.entityType
}

// Attributes возвращает контейнер атрибутов.
// Для nil receiver возвращает nil, и modifier.Apply трактует это как отсутствующую цель.
func (e *LivingEntity) Attributes() *attribute.Map {
	if e == nil {
		return nil
	}
	return e.attributes
}

// AttributeValue возвращает вычисленное значение атрибута (false если атрибута нет).
func (e *LivingEntity) AttributeValue(a *attribute.Attribute) (float64, bool) {
	return e.Attributes().Value(a)
}
