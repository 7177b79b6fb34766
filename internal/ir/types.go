package ir

import "slices"

// Well-known function attributes understood by the host pipeline.
const (
	// AttrOptNone marks a function the host would normally leave untouched.
	// Passes that report Required() still run on it.
	AttrOptNone = "optnone"

	// AttrNoInline is carried through unchanged; no pass acts on it.
	AttrNoInline = "noinline"
)

// KnownAttributes lists the attributes accepted by module validation.
var KnownAttributes = map[string]bool{
	AttrOptNone:  true,
	AttrNoInline: true,
}

// Function is one symbol in a module under transformation.
//
// Name is the only field a pass may mutate. Definition and Comdat are
// read-only inputs to eligibility decisions.
type Function struct {
	Name       string   `json:"name" yaml:"name"`
	Definition bool     `json:"definition" yaml:"definition"`
	Comdat     string   `json:"comdat,omitempty" yaml:"comdat,omitempty"`         // linkage group; empty means none
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"` // host markers, e.g. "optnone"
}

// IsDeclaration reports whether the function has no body in this module.
func (f *Function) IsDeclaration() bool {
	return !f.Definition
}

// HasComdat reports whether the function belongs to a linkage group.
func (f *Function) HasComdat() bool {
	return f.Comdat != ""
}

// HasAttribute reports whether the function carries the given marker.
func (f *Function) HasAttribute(attr string) bool {
	return slices.Contains(f.Attributes, attr)
}

// Module is an ordered function table.
//
// The host owns record lifecycle: passes never add, remove or reorder
// entries in Functions.
type Module struct {
	Name      string     `json:"name" yaml:"name"`
	Source    string     `json:"source,omitempty" yaml:"source,omitempty"`
	Functions []Function `json:"functions" yaml:"functions"`
}

// Clone returns a deep copy so callers can keep the pre-pass module.
func (m *Module) Clone() *Module {
	out := &Module{
		Name:      m.Name,
		Source:    m.Source,
		Functions: make([]Function, len(m.Functions)),
	}
	for i, fn := range m.Functions {
		fn.Attributes = slices.Clone(fn.Attributes)
		out.Functions[i] = fn
	}
	return out
}

// Names returns function names in table order.
func (m *Module) Names() []string {
	names := make([]string, len(m.Functions))
	for i := range m.Functions {
		names[i] = m.Functions[i].Name
	}
	return names
}

// Lookup returns the function with the given name, or nil.
func (m *Module) Lookup(name string) *Function {
	for i := range m.Functions {
		if m.Functions[i].Name == name {
			return &m.Functions[i]
		}
	}
	return nil
}
