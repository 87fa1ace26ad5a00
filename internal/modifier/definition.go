// Package modifier implements data-driven randomized attribute modifiers.
//
// A Definition names an attribute, an operation and a value range. It is
// built once at load time (NewDefinition or Parser) and shared read-only;
// Apply draws a concrete amount and installs it on an entity. The definition
// ID is derived from its content, so re-applying an equal definition replaces
// the earlier modifier instead of stacking a second one.
package modifier

import (
	"fmt"
	"log/slog"

	"github.com/Excaliburns/Placebo/internal/attribute"
	"github.com/google/uuid"
)

// NamePrefix is prepended to the attribute description ID to name generated modifiers.
const NamePrefix = "placebo_random_modifier_"

// Entity is anything carrying an attribute map.
// A nil Attributes() result is treated like a nil entity.
type Entity interface {
	EntityType() string
	Attributes() *attribute.Map
}

// Definition is an immutable randomized modifier description.
type Definition struct {
	attribute *attribute.Attribute
	operation attribute.Operation
	value     ValueRange
	id        uuid.UUID
}

type options struct {
	scheme IDScheme
}

// Option configures NewDefinition and Parser.
type Option func(*options)

// WithIDScheme selects the identifier derivation scheme (default IDSchemeSeeded).
func WithIDScheme(s IDScheme) Option {
	return func(o *options) { o.scheme = s }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewDefinition validates the triple and derives its identifier.
func NewDefinition(attr *attribute.Attribute, op attribute.Operation, value ValueRange, opts ...Option) (*Definition, error) {
	if attr == nil {
		return nil, fmt.Errorf("%w: attribute is nil", ErrInvalidTarget)
	}
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, op)
	}

	o := buildOptions(opts)
	return &Definition{
		attribute: attr,
		operation: op,
		value:     value,
		id:        DeriveID(o.scheme, attr, op, value),
	}, nil
}

// ID returns the content-derived identifier shared by every generated modifier.
func (d *Definition) ID() uuid.UUID { return d.id }

// Attribute returns the targeted attribute.
func (d *Definition) Attribute() *attribute.Attribute { return d.attribute }

// Operation returns the combination operation.
func (d *Definition) Operation() attribute.Operation { return d.operation }

// Value returns the value range amounts are drawn from.
func (d *Definition) Value() ValueRange { return d.value }

// ModifierName returns the name given to generated modifiers.
func (d *Definition) ModifierName() string {
	return NamePrefix + d.attribute.DescriptionID
}

// GenInstance draws an amount from the range and returns a new modifier.
// The result is not installed anywhere.
func (d *Definition) GenInstance(src Source) attribute.Modifier {
	return attribute.Modifier{
		ID:        d.id,
		Name:      d.ModifierName(),
		Amount:    d.value.Draw(src),
		Operation: d.operation,
	}
}

// Apply generates a modifier and installs it permanently on entity.
//
// Fails with ErrInvalidTarget for a nil entity and ErrMissingAttribute if the
// entity does not carry the attribute; in both cases nothing is drawn from src
// and the entity is left untouched. An already installed modifier with the
// same ID is replaced.
func (d *Definition) Apply(src Source, entity Entity) (attribute.Modifier, error) {
	if entity == nil {
		return attribute.Modifier{}, fmt.Errorf("%w: cannot apply %s to a nil entity", ErrInvalidTarget, d.attribute.Key)
	}
	attrs := entity.Attributes()
	if attrs == nil {
		return attribute.Modifier{}, fmt.Errorf("%w: entity %s has no attribute map", ErrInvalidTarget, entity.EntityType())
	}
	inst := attrs.Instance(d.attribute)
	if inst == nil {
		return attribute.Modifier{}, fmt.Errorf("%w: entity %s, attribute %s", ErrMissingAttribute, entity.EntityType(), d.attribute.Key)
	}

	mod := d.GenInstance(src)
	replaced := inst.AddPermanentModifier(mod)

	slog.Debug("random modifier applied",
		"entity", entity.EntityType(),
		"attribute", d.attribute.Key,
		"operation", d.operation,
		"amount", mod.Amount,
		"id", mod.ID,
		"replaced", replaced)

	return mod, nil
}

func (d *Definition) String() string {
	return fmt.Sprintf("%s %s %s", d.attribute.Key, d.operation, d.value)
}
