package modifier

import (
	"fmt"

	"github.com/Excaliburns/Placebo/internal/attribute"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// AttributeRegistry resolves namespaced attribute keys. Must be safe for
// concurrent reads if the Parser is shared between goroutines.
type AttributeRegistry interface {
	Lookup(key string) (*attribute.Attribute, bool)
}

// OperationRegistry resolves operation tokens.
type OperationRegistry interface {
	Lookup(token string) (attribute.Operation, bool)
}

// Parser turns configuration documents into Definitions.
// It only reads its registries and is safe for concurrent use when they are.
//
// Accepted shape:
//
//	{ "attribute": "<namespaced-key>",
//	  "operation": "<operation-token>",
//	  "value": <number> | { "min": <number>, "max": <number> } }
type Parser struct {
	attributes AttributeRegistry
	operations OperationRegistry
	opts       []Option
}

// NewParser creates a parser over the given registries.
// attributes must be non-nil; a nil operations registry falls back to the standard tokens.
func NewParser(attributes AttributeRegistry, operations OperationRegistry, opts ...Option) *Parser {
	if operations == nil {
		operations = attribute.NewOperations()
	}
	return &Parser{attributes: attributes, operations: operations, opts: opts}
}

// rawDefinition is the shape-checked document before registry resolution.
type rawDefinition struct {
	attribute    string
	hasAttribute bool
	operation    string
	hasOperation bool
	value        ValueSpec
	valueErr     error
}

// Parse decodes a single JSON definition.
func (p *Parser) Parse(data []byte) (*Definition, error) {
	fragment := string(data)
	if !gjson.ValidBytes(data) {
		return nil, newParseError(fragment, fmt.Errorf("%w: not valid JSON", ErrMalformedDocument))
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, newParseError(fragment, fmt.Errorf("%w: expected a JSON object", ErrMalformedDocument))
	}

	var raw rawDefinition
	if f := root.Get("attribute"); f.Type == gjson.String {
		raw.attribute, raw.hasAttribute = f.Str, true
	}
	if f := root.Get("operation"); f.Type == gjson.String {
		raw.operation, raw.hasOperation = f.Str, true
	}
	raw.value, raw.valueErr = valueSpecFromJSON(root.Get("value"))

	return p.resolve(fragment, raw)
}

// ParseYAML decodes a single definition from a YAML mapping (or a document
// wrapping one), as used in catalog files.
func (p *Parser) ParseYAML(node *yaml.Node) (*Definition, error) {
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	fragment := yamlFragment(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, newParseError(fragment, fmt.Errorf("%w: expected a YAML mapping", ErrMalformedDocument))
	}

	var raw rawDefinition
	if f := mappingValue(node, "attribute"); f != nil && f.Kind == yaml.ScalarNode && f.ShortTag() == "!!str" {
		raw.attribute, raw.hasAttribute = f.Value, true
	}
	if f := mappingValue(node, "operation"); f != nil && f.Kind == yaml.ScalarNode && f.ShortTag() == "!!str" {
		raw.operation, raw.hasOperation = f.Value, true
	}
	raw.value, raw.valueErr = valueSpecFromYAML(mappingValue(node, "value"))

	return p.resolve(fragment, raw)
}

// resolve runs registry resolution in field order: attribute, operation, value.
// The first failure is reported.
func (p *Parser) resolve(fragment string, raw rawDefinition) (*Definition, error) {
	if !raw.hasAttribute {
		return nil, newParseError(fragment, fmt.Errorf("%w: attribute", ErrMissingField))
	}
	attr, ok := p.attributes.Lookup(raw.attribute)
	if !ok {
		return nil, newParseError(fragment, fmt.Errorf("%w: %q", ErrUnknownAttribute, raw.attribute))
	}

	if !raw.hasOperation {
		return nil, newParseError(fragment, fmt.Errorf("%w: operation", ErrMissingField))
	}
	op, ok := p.operations.Lookup(raw.operation)
	if !ok {
		return nil, newParseError(fragment, fmt.Errorf("%w: %q", ErrUnknownOperation, raw.operation))
	}

	if raw.valueErr != nil {
		return nil, newParseError(fragment, raw.valueErr)
	}
	value, err := raw.value.Range()
	if err != nil {
		return nil, newParseError(fragment, err)
	}

	def, err := NewDefinition(attr, op, value, p.opts...)
	if err != nil {
		return nil, newParseError(fragment, err)
	}
	return def, nil
}

func yamlFragment(node *yaml.Node) string {
	if node == nil {
		return "<empty>"
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Sprintf("<line %d>", node.Line)
	}
	return string(out)
}
