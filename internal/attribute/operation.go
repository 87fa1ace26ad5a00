package attribute

import (
	"strings"
	"sync"
)

// Operation defines how a modifier amount combines with an attribute value.
type Operation int8

const (
	OpAddition      Operation = iota // base += amount
	OpMultiplyBase                   // value += base * amount
	OpMultiplyTotal                  // value *= 1 + amount
)

var operationTokens = [...]string{
	OpAddition:      "addition",
	OpMultiplyBase:  "multiply_base",
	OpMultiplyTotal: "multiply_total",
}

// String returns the configuration token of the operation.
func (o Operation) String() string {
	if !o.Valid() {
		return "unknown"
	}
	return operationTokens[o]
}

// Valid reports whether o is one of the defined operations.
func (o Operation) Valid() bool {
	return o >= OpAddition && o <= OpMultiplyTotal
}

// Operations is a token -> Operation lookup table.
// Tokens are matched case-insensitively, so "ADDITION" and "addition" both resolve.
type Operations struct {
	mu     sync.RWMutex
	tokens map[string]Operation
}

// NewOperations returns a table preloaded with the three standard tokens.
func NewOperations() *Operations {
	ops := &Operations{tokens: make(map[string]Operation, len(operationTokens))}
	for op, token := range operationTokens {
		ops.tokens[token] = Operation(op)
	}
	return ops
}

// Alias registers an additional token for op (e.g. "add" for OpAddition).
func (o *Operations) Alias(token string, op Operation) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tokens[strings.ToLower(token)] = op
}

// Lookup resolves a configuration token.
func (o *Operations) Lookup(token string) (Operation, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	op, ok := o.tokens[strings.ToLower(strings.TrimSpace(token))]
	return op, ok
}
