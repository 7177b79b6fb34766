package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/symhash/internal/ir"
)

// fieldExt is the CompileError field for unknown file types.
const fieldExt = "ext"

// LoadFile reads a single module description. The format is chosen by
// extension: .cue, or .yaml/.yml/.json. Source is set to path.
func LoadFile(path string) (*ir.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module file: %w", err)
	}

	var m *ir.Module
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		m, err = CompileModuleBytes(data, path)
	case ".yaml", ".yml", ".json":
		m, err = DecodeModuleYAML(data)
	default:
		return nil, &CompileError{
			Field:   fieldExt,
			Message: fmt.Sprintf("unsupported module file extension %q", ext),
		}
	}
	if err != nil {
		return nil, err
	}
	m.Source = path
	return m, nil
}

// CompileModuleBytes compiles CUE source and extracts its top-level
// module value.
func CompileModuleBytes(data []byte, filename string) (*ir.Module, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	mv := v.LookupPath(cue.ParsePath("module"))
	if !mv.Exists() {
		return nil, &CompileError{
			Field:   "module",
			Message: "no module value found",
			Pos:     v.Pos(),
		}
	}
	return CompileModule(mv)
}
