package compiler

import (
	"fmt"

	"github.com/roach88/symhash/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrModuleNameEmpty   = "E101" // module name is required
	ErrFunctionNameEmpty = "E102" // every function needs a name
	ErrDuplicateFunction = "E103" // names must be unique before a pass runs
	ErrUnknownAttribute  = "E104" // attribute not in ir.KnownAttributes
)

// ValidationError represents a module validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a module against the host's table rules.
// Returns all errors found (does not fail-fast).
//
// Digest collisions after renaming are not checked.
func Validate(m *ir.Module) []ValidationError {
	var errs []ValidationError

	if m.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "module name is required and must be non-empty",
			Code:    ErrModuleNameEmpty,
		})
	}

	seen := make(map[string]int, len(m.Functions))
	for i, fn := range m.Functions {
		field := fmt.Sprintf("functions[%d]", i)

		if fn.Name == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "function name is required and must be non-empty",
				Code:    ErrFunctionNameEmpty,
			})
		} else if first, ok := seen[fn.Name]; ok {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate function name %q (first at functions[%d])", fn.Name, first),
				Code:    ErrDuplicateFunction,
			})
		} else {
			seen[fn.Name] = i
		}

		for j, attr := range fn.Attributes {
			if !ir.KnownAttributes[attr] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.attributes[%d]", field, j),
					Message: fmt.Sprintf("unknown attribute %q", attr),
					Code:    ErrUnknownAttribute,
				})
			}
		}
	}

	return errs
}
