package compiler

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/symhash/internal/ir"
)

// DecodeModuleYAML parses a YAML (or JSON) module description.
//
// The document may be the module mapping itself or wrap it under a
// top-level "module" key, mirroring the CUE layout.
func DecodeModuleYAML(data []byte) (*ir.Module, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &CompileError{Field: "yaml", Message: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &CompileError{Field: "module", Message: "empty document"}
	}

	body := doc.Content[0]
	if body.Kind != yaml.MappingNode {
		return nil, &CompileError{
			Field:   "module",
			Message: fmt.Sprintf("line %d: expected a mapping", body.Line),
		}
	}
	for i := 0; i+1 < len(body.Content); i += 2 {
		if body.Content[i].Value == "module" {
			body = body.Content[i+1]
			break
		}
	}

	m := &ir.Module{}
	if err := body.Decode(m); err != nil {
		return nil, &CompileError{Field: "yaml", Message: err.Error()}
	}
	if m.Functions == nil {
		m.Functions = []ir.Function{}
	}
	return m, nil
}
