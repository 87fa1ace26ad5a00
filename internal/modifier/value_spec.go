package modifier

import (
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ValueKind tags which shape the "value" field had in the input.
type ValueKind int8

const (
	ValueAbsent      ValueKind = iota
	ValueScalar                // "value": 5
	ValueRangeObject           // "value": {"min": 1, "max": 2}
)

// ValueSpec is the decoded "value" field before range validation.
type ValueSpec struct {
	Kind ValueKind
	Min  float64
	Max  float64
}

// Range validates the spec and returns the effective range.
// A scalar v becomes [v, v].
func (s ValueSpec) Range() (ValueRange, error) {
	switch s.Kind {
	case ValueScalar:
		return Fixed(s.Min)
	case ValueRangeObject:
		return NewValueRange(s.Min, s.Max)
	default:
		return ValueRange{}, fmt.Errorf("%w: value", ErrMissingField)
	}
}

func valueSpecFromJSON(r gjson.Result) (ValueSpec, error) {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return ValueSpec{}, nil
	case r.Type == gjson.Number:
		return ValueSpec{Kind: ValueScalar, Min: r.Num, Max: r.Num}, nil
	case r.IsObject():
		min, max := r.Get("min"), r.Get("max")
		if min.Type != gjson.Number || max.Type != gjson.Number {
			return ValueSpec{}, fmt.Errorf("%w: object value needs numeric min and max, got %s", ErrMalformedValue, r.Raw)
		}
		return ValueSpec{Kind: ValueRangeObject, Min: min.Num, Max: max.Num}, nil
	default:
		return ValueSpec{}, fmt.Errorf("%w: expected number or {min,max} object, got %s", ErrMalformedValue, r.Raw)
	}
}

func valueSpecFromYAML(n *yaml.Node) (ValueSpec, error) {
	switch {
	case n == nil || n.ShortTag() == "!!null":
		return ValueSpec{}, nil
	case n.Kind == yaml.ScalarNode:
		v, ok := yamlNumber(n)
		if !ok {
			return ValueSpec{}, fmt.Errorf("%w: expected number or {min,max} mapping, got %q (line %d)", ErrMalformedValue, n.Value, n.Line)
		}
		return ValueSpec{Kind: ValueScalar, Min: v, Max: v}, nil
	case n.Kind == yaml.MappingNode:
		min, minOK := yamlNumber(mappingValue(n, "min"))
		max, maxOK := yamlNumber(mappingValue(n, "max"))
		if !minOK || !maxOK {
			return ValueSpec{}, fmt.Errorf("%w: mapping value needs numeric min and max (line %d)", ErrMalformedValue, n.Line)
		}
		return ValueSpec{Kind: ValueRangeObject, Min: min, Max: max}, nil
	default:
		return ValueSpec{}, fmt.Errorf("%w: expected number or {min,max} mapping (line %d)", ErrMalformedValue, n.Line)
	}
}

func yamlNumber(n *yaml.Node) (float64, bool) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return 0, false
	}
	if tag := n.ShortTag(); tag != "!!int" && tag != "!!float" {
		return 0, false
	}
	var v float64
	if err := n.Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
