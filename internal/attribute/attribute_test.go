package attribute

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"namespaced", "example:health", "example:health", false},
		{"default namespace", "health", "minecraft:health", false},
		{"empty namespace", ":health", "minecraft:health", false},
		{"path with slash", "example:move/speed", "example:move/speed", false},
		{"uppercase", "Example:Health", "", true},
		{"slash in namespace", "ex/ample:health", "", true},
		{"empty path", "example:", "", true},
		{"space", "example:max health", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKey(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()

	health, err := reg.Register(Attribute{Key: "example:health", Default: 20, Min: 0, Max: 1024})
	require.NoError(t, err)
	assert.Equal(t, "attribute.name.health", health.DescriptionID)

	got, ok := reg.Lookup("example:health")
	require.True(t, ok)
	assert.Same(t, health, got, "lookup must return the registered handle")

	_, ok = reg.Lookup("bogus:key")
	assert.False(t, ok)

	_, ok = reg.Lookup("Not A Key")
	assert.False(t, ok)

	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_RegisterErrors(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(Attribute{Key: "example:health", Default: 20, Min: 0, Max: 100})
	require.NoError(t, err)

	_, err = reg.Register(Attribute{Key: "example:health", Default: 1, Min: 0, Max: 100})
	assert.ErrorIs(t, err, ErrDuplicateAttribute)

	_, err = reg.Register(Attribute{Key: "example:armor", Default: 50, Min: 0, Max: 30})
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = reg.Register(Attribute{Key: "BAD KEY"})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestRegistry_UnboundedWhenNoBounds(t *testing.T) {
	reg := NewRegistry()
	luck, err := reg.Register(Attribute{Key: "example:luck", Default: 3})
	require.NoError(t, err)

	assert.True(t, math.IsInf(luck.Min, -1))
	assert.True(t, math.IsInf(luck.Max, 1))
	assert.Equal(t, 1e9, luck.Sanitize(1e9))
}

func TestRegistry_Keys(t *testing.T) {
	reg := NewRegistry()
	for _, key := range []string{"example:speed", "example:armor", "example:health"} {
		_, err := reg.Register(Attribute{Key: key})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"example:armor", "example:health", "example:speed"}, reg.Keys())
}

func TestAttribute_Sanitize(t *testing.T) {
	a := &Attribute{Key: "example:speed", Min: 0, Max: 1}

	assert.Equal(t, 0.0, a.Sanitize(-5))
	assert.Equal(t, 1.0, a.Sanitize(5))
	assert.Equal(t, 0.5, a.Sanitize(0.5))
	assert.Equal(t, 0.0, a.Sanitize(math.NaN()))
}

func TestOperations_Lookup(t *testing.T) {
	t.Parallel()

	ops := NewOperations()
	tests := []struct {
		token string
		want  Operation
		ok    bool
	}{
		{"addition", OpAddition, true},
		{"ADDITION", OpAddition, true},
		{"multiply_base", OpMultiplyBase, true},
		{"Multiply_Total", OpMultiplyTotal, true},
		{" addition ", OpAddition, true},
		{"add", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ops.Lookup(tt.token)
		assert.Equal(t, tt.ok, ok, "Lookup(%q)", tt.token)
		if tt.ok {
			assert.Equal(t, tt.want, got, "Lookup(%q)", tt.token)
		}
	}

	ops.Alias("ADD", OpAddition)
	got, ok := ops.Lookup("add")
	require.True(t, ok)
	assert.Equal(t, OpAddition, got)
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "addition", OpAddition.String())
	assert.Equal(t, "multiply_base", OpMultiplyBase.String())
	assert.Equal(t, "multiply_total", OpMultiplyTotal.String())
	assert.Equal(t, "unknown", Operation(7).String())
	assert.False(t, Operation(-1).Valid())
}
