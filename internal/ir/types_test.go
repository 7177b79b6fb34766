package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionPredicates(t *testing.T) {
	fn := Function{Name: "f", Definition: true, Comdat: "f", Attributes: []string{AttrOptNone}}

	assert.False(t, fn.IsDeclaration())
	assert.True(t, fn.HasComdat())
	assert.True(t, fn.HasAttribute(AttrOptNone))
	assert.False(t, fn.HasAttribute(AttrNoInline))

	decl := Function{Name: "printf"}
	assert.True(t, decl.IsDeclaration())
	assert.False(t, decl.HasComdat())
}

func TestModuleCloneIsDeep(t *testing.T) {
	m := &Module{
		Name: "m",
		Functions: []Function{
			{Name: "a", Definition: true, Attributes: []string{AttrNoInline}},
		},
	}

	c := m.Clone()
	c.Functions[0].Name = "b"
	c.Functions[0].Attributes[0] = AttrOptNone

	assert.Equal(t, "a", m.Functions[0].Name)
	assert.Equal(t, AttrNoInline, m.Functions[0].Attributes[0])
}

func TestModuleLookupAndNames(t *testing.T) {
	m := &Module{Functions: []Function{{Name: "a"}, {Name: "b"}}}

	assert.Equal(t, []string{"a", "b"}, m.Names())

	fn := m.Lookup("b")
	require.NotNil(t, fn)
	fn.Name = "c"
	assert.Equal(t, []string{"a", "c"}, m.Names(), "Lookup returns a pointer into the table")

	assert.Nil(t, m.Lookup("missing"))
}
