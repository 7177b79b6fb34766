package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/symhash/internal/compiler"
	"github.com/roach88/symhash/internal/ir"
)

// Error code constants, unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // Module load/parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeUnsupported = "E008" // Unsupported file extension
	ErrCodeStoreFailed = "E009" // Rename log error
	ErrCodeTestFailed  = "E010" // One or more scenarios failed
)

// LoadError represents an error that occurred during module loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadModule loads a module description from a file or a directory.
//
// A file is decoded by extension (.cue, .yaml, .yml, .json). A directory
// is loaded as one CUE instance built from all of its .cue files, which
// must together define a top-level module value.
func LoadModule(path string) (*ir.Module, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("module not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing module: %v", err)}
	}

	if !info.IsDir() {
		m, err := compiler.LoadFile(path)
		if err != nil {
			return nil, convertCompileError(err, path)
		}
		return m, nil
	}

	return loadModuleDir(path)
}

func loadModuleDir(dir string) (*ir.Module, error) {
	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	mv := value.LookupPath(cue.ParsePath("module"))
	if !mv.Exists() {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("no module value found in %s", dir)}
	}
	m, err := compiler.CompileModule(mv)
	if err != nil {
		return nil, convertCompileError(err, dir)
	}
	m.Source = dir
	return m, nil
}

// FindCUEFiles lists the .cue files directly in dir. CUE loads one
// package per directory, so subdirectories are not searched.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "ext":
		return ErrCodeUnsupported
	case field == "cue":
		return ErrCodeBuildFailed
	case field == "yaml":
		return ErrCodeLoadFailed
	case field == "name":
		return compiler.ErrModuleNameEmpty
	case strings.HasSuffix(field, ".name"):
		return compiler.ErrFunctionNameEmpty
	default:
		return ErrCodeGeneric
	}
}

// loadErrorParts extracts code and message for output.
func loadErrorParts(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		msg := loadErr.Message
		if loadErr.Pos.IsValid() {
			msg = fmt.Sprintf("%s:%d:%d: %s", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column(), msg)
		}
		return loadErr.Code, msg
	}
	return ErrCodeGeneric, err.Error()
}
