package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/symhash/internal/ir"
)

func TestValidateValidModule(t *testing.T) {
	m := &ir.Module{
		Name: "hello",
		Functions: []ir.Function{
			{Name: "getHello", Definition: true},
			{Name: "main", Definition: true, Attributes: []string{ir.AttrOptNone}},
			{Name: "printf"},
		},
	}
	assert.Empty(t, Validate(m))
}

func TestValidateCodes(t *testing.T) {
	tests := []struct {
		name  string
		mod   *ir.Module
		code  string
		field string
	}{
		{
			name:  "empty module name",
			mod:   &ir.Module{Functions: []ir.Function{{Name: "f"}}},
			code:  ErrModuleNameEmpty,
			field: "name",
		},
		{
			name:  "empty function name",
			mod:   &ir.Module{Name: "m", Functions: []ir.Function{{Name: ""}}},
			code:  ErrFunctionNameEmpty,
			field: "functions[0].name",
		},
		{
			name: "duplicate function",
			mod: &ir.Module{Name: "m", Functions: []ir.Function{
				{Name: "f", Definition: true},
				{Name: "g"},
				{Name: "f"},
			}},
			code:  ErrDuplicateFunction,
			field: "functions[2].name",
		},
		{
			name: "unknown attribute",
			mod: &ir.Module{Name: "m", Functions: []ir.Function{
				{Name: "f", Attributes: []string{"noinline", "alwaysinline"}},
			}},
			code:  ErrUnknownAttribute,
			field: "functions[0].attributes[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.mod)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	m := &ir.Module{Functions: []ir.Function{
		{Name: ""},
		{Name: "a", Attributes: []string{"bogus"}},
		{Name: "a"},
	}}

	errs := Validate(m)
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Equal(t, []string{ErrModuleNameEmpty, ErrFunctionNameEmpty, ErrUnknownAttribute, ErrDuplicateFunction}, codes)
}

func TestValidationErrorFormat(t *testing.T) {
	e := ValidationError{Field: "name", Message: "required", Code: ErrModuleNameEmpty}
	assert.Equal(t, "[E101] name: required", e.Error())

	e.Line = 4
	assert.Equal(t, "[E101] line 4: name: required", e.Error())
}
