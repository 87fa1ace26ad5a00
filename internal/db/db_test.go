package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Некорректный DSN отклоняется до подключения, контейнер не нужен.
func TestNew_InvalidDSN(t *testing.T) {
	d, err := New(context.Background(), "host=localhost port=notaport")
	require.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), "connecting to modifier store")
}
