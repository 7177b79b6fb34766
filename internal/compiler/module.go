package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/symhash/internal/ir"
)

// CompileModule parses a CUE value into a Module.
//
// The value should be the module struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`module: { name: "hello", functions: [...] }`)
//	m, err := CompileModule(v.LookupPath(cue.ParsePath("module")))
//
// functions may be a list of records, each with a name field, or a struct
// keyed by function name. Struct fields keep declaration order.
func CompileModule(v cue.Value) (*ir.Module, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if !v.Exists() {
		return nil, &CompileError{Field: "module", Message: "module is required"}
	}

	m := &ir.Module{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "module name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	m.Name = name

	fnsVal := v.LookupPath(cue.ParsePath("functions"))
	if !fnsVal.Exists() {
		// An empty table is legal; the pipeline simply has nothing to visit.
		m.Functions = []ir.Function{}
		return m, nil
	}

	switch fnsVal.IncompleteKind() {
	case cue.ListKind:
		m.Functions, err = parseFunctionList(fnsVal)
	case cue.StructKind:
		m.Functions, err = parseFunctionStruct(fnsVal)
	default:
		return nil, &CompileError{
			Field:   "functions",
			Message: fmt.Sprintf("expected list or struct, got %v", fnsVal.IncompleteKind()),
			Pos:     fnsVal.Pos(),
		}
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func parseFunctionList(v cue.Value) ([]ir.Function, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	fns := []ir.Function{}
	for i := 0; iter.Next(); i++ {
		item := iter.Value()
		nameVal := item.LookupPath(cue.ParsePath("name"))
		if !nameVal.Exists() {
			return nil, &CompileError{
				Field:   fmt.Sprintf("functions[%d].name", i),
				Message: "function name is required",
				Pos:     item.Pos(),
			}
		}
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		fn, err := parseFunction(name, item, fmt.Sprintf("functions[%d]", i))
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func parseFunctionStruct(v cue.Value) ([]ir.Function, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	fns := []ir.Function{}
	for iter.Next() {
		label := iter.Label()
		item := iter.Value()

		// An explicit name overrides the label, which lets tables carry
		// names that are awkward as CUE identifiers.
		name := label
		if nameVal := item.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
			name, err = nameVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
		}
		fn, err := parseFunction(name, item, "functions."+label)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func parseFunction(name string, v cue.Value, field string) (ir.Function, error) {
	fn := ir.Function{Name: name}

	if defVal := v.LookupPath(cue.ParsePath("definition")); defVal.Exists() {
		def, err := defVal.Bool()
		if err != nil {
			return fn, &CompileError{
				Field:   field + ".definition",
				Message: "definition must be a bool",
				Pos:     defVal.Pos(),
			}
		}
		fn.Definition = def
	}

	if comdatVal := v.LookupPath(cue.ParsePath("comdat")); comdatVal.Exists() {
		comdat, err := comdatVal.String()
		if err != nil {
			return fn, &CompileError{
				Field:   field + ".comdat",
				Message: "comdat must be a string",
				Pos:     comdatVal.Pos(),
			}
		}
		fn.Comdat = comdat
	}

	if attrsVal := v.LookupPath(cue.ParsePath("attributes")); attrsVal.Exists() {
		var attrs []string
		if err := attrsVal.Decode(&attrs); err != nil {
			return fn, &CompileError{
				Field:   field + ".attributes",
				Message: "attributes must be a list of strings",
				Pos:     attrsVal.Pos(),
			}
		}
		fn.Attributes = attrs
	}

	return fn, nil
}
