package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7GeneratorFormat(t *testing.T) {
	g := UUIDv7Generator{}
	id := g.Generate()

	assert.Len(t, id, 36)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDv7GeneratorUnique(t *testing.T) {
	g := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.Generate()
		assert.False(t, seen[id], "duplicate run id %s", id)
		seen[id] = true
	}
}

func TestFixedGeneratorOrder(t *testing.T) {
	g := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", g.Generate())
	assert.Equal(t, "b", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}
