package attribute

import (
	"github.com/google/uuid"
)

// Modifier is a concrete amount installed on an attribute instance.
// ID is the replacement key: installing a modifier with an ID already present replaces it.
type Modifier struct {
	ID        uuid.UUID
	Name      string
	Amount    float64
	Operation Operation
}

type installed struct {
	mod       Modifier
	permanent bool
}

// Instance is the live value of one attribute on one entity.
//
// Thread-safe: all methods are protected by the owning Map's lock.
type Instance struct {
	owner     *Map
	attribute *Attribute
	base      float64
	modifiers []installed // insertion order, keeps summation order stable
}

// Attribute returns the attribute this instance tracks.
func (i *Instance) Attribute() *Attribute {
	return i.attribute
}

// BaseValue returns the unmodified base value.
func (i *Instance) BaseValue() float64 {
	i.owner.mu.RLock()
	defer i.owner.mu.RUnlock()
	return i.base
}

// SetBaseValue changes the base value.
func (i *Instance) SetBaseValue(v float64) {
	i.owner.mu.Lock()
	defer i.owner.mu.Unlock()
	i.base = v
}

// AddPermanentModifier installs m as a permanent (persisted) modifier.
// Returns true if a modifier with the same ID was replaced.
func (i *Instance) AddPermanentModifier(m Modifier) bool {
	return i.add(m, true)
}

// AddTransientModifier installs m as a transient modifier (not persisted).
// Returns true if a modifier with the same ID was replaced.
func (i *Instance) AddTransientModifier(m Modifier) bool {
	return i.add(m, false)
}

func (i *Instance) add(m Modifier, permanent bool) bool {
	i.owner.mu.Lock()
	defer i.owner.mu.Unlock()

	for n, existing := range i.modifiers {
		if existing.mod.ID == m.ID {
			i.modifiers[n] = installed{mod: m, permanent: permanent}
			return true
		}
	}
	i.modifiers = append(i.modifiers, installed{mod: m, permanent: permanent})
	return false
}

// RemoveModifier removes the modifier with the given ID.
// Returns false if no such modifier was installed.
func (i *Instance) RemoveModifier(id uuid.UUID) bool {
	i.owner.mu.Lock()
	defer i.owner.mu.Unlock()

	for n, existing := range i.modifiers {
		if existing.mod.ID == id {
			i.modifiers = append(i.modifiers[:n], i.modifiers[n+1:]...)
			return true
		}
	}
	return false
}

// Modifier returns the installed modifier with the given ID.
func (i *Instance) Modifier(id uuid.UUID) (Modifier, bool) {
	i.owner.mu.RLock()
	defer i.owner.mu.RUnlock()

	for _, existing := range i.modifiers {
		if existing.mod.ID == id {
			return existing.mod, true
		}
	}
	return Modifier{}, false
}

// Modifiers returns a copy of all installed modifiers.
func (i *Instance) Modifiers() []Modifier {
	return i.collect(func(installed) bool { return true })
}

// PermanentModifiers returns a copy of the permanent modifiers only.
func (i *Instance) PermanentModifiers() []Modifier {
	return i.collect(func(in installed) bool { return in.permanent })
}

func (i *Instance) collect(keep func(installed) bool) []Modifier {
	i.owner.mu.RLock()
	defer i.owner.mu.RUnlock()

	result := make([]Modifier, 0, len(i.modifiers))
	for _, in := range i.modifiers {
		if keep(in) {
			result = append(result, in.mod)
		}
	}
	return result
}

// Value computes the modified value.
//
// Additions are summed onto the base first, multiply_base amounts are then
// scaled by that sum, and each multiply_total amount multiplies the result.
// The result is clamped to the attribute bounds.
func (i *Instance) Value() float64 {
	i.owner.mu.RLock()
	defer i.owner.mu.RUnlock()

	base := i.base
	for _, in := range i.modifiers {
		if in.mod.Operation == OpAddition {
			base += in.mod.Amount
		}
	}

	value := base
	for _, in := range i.modifiers {
		if in.mod.Operation == OpMultiplyBase {
			value += base * in.mod.Amount
		}
	}
	for _, in := range i.modifiers {
		if in.mod.Operation == OpMultiplyTotal {
			value *= 1 + in.mod.Amount
		}
	}

	return i.attribute.Sanitize(value)
}
