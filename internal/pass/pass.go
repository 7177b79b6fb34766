package pass

import "github.com/roach88/symhash/internal/ir"

// FunctionPass transforms one function record at a time.
type FunctionPass interface {
	// Name is the identifier pipelines use to reference the pass.
	Name() string

	// Required reports whether the host must run the pass on functions
	// marked optnone. Renaming is orthogonal to optimization, so renaming
	// passes return true.
	Required() bool

	// Apply inspects fn and may mutate fn.Name. It must not retain fn.
	Apply(fn *ir.Function) Result
}

// SkipReason explains why a function was left untouched.
type SkipReason string

const (
	// SkipNone means the function was not skipped.
	SkipNone SkipReason = ""

	// SkipDeclaration: the function has no body in this module.
	SkipDeclaration SkipReason = "external declaration"

	// SkipReserved: the name is a reserved library name such as printf.
	SkipReserved SkipReason = "reserved library name"

	// SkipComdat: the function is a linkage-group member; renaming could
	// break cross-unit symbol resolution the group depends on.
	SkipComdat SkipReason = "linkage-group member"

	// SkipEntryPoint: the function is the program entry point.
	SkipEntryPoint SkipReason = "entry point"

	// SkipOptNone is decided by the host, not a pass: the function is
	// marked optnone and the pass is not Required.
	SkipOptNone SkipReason = "optnone function"
)

// Result reports the outcome of one Apply call.
type Result struct {
	Changed  bool       `json:"changed"`
	Reason   SkipReason `json:"reason,omitempty"`
	Original string     `json:"original"`
	Renamed  string     `json:"renamed,omitempty"`
}

// Skipped reports whether the pass left the function untouched.
func (r Result) Skipped() bool {
	return !r.Changed
}

// Skip builds a no-mutation Result.
func Skip(name string, reason SkipReason) Result {
	return Result{Reason: reason, Original: name}
}

// Renamed builds a mutation Result.
func Renamed(original, renamed string) Result {
	return Result{Changed: true, Original: original, Renamed: renamed}
}
