// Package md5name implements the function renaming pass: every eligible
// function's name is replaced with the lowercase hex MD5 of its original
// name.
package md5name

import (
	"github.com/roach88/symhash/internal/ir"
	"github.com/roach88/symhash/internal/pass"
)

// Name is the identifier pipelines use to reference this pass.
const Name = "md5-function-name-pass"

// Config fixes the exclusion sets at construction time.
// Matching is exact and case-sensitive.
type Config struct {
	Reserved   []string `koanf:"reserved" yaml:"reserved"`
	EntryPoint string   `koanf:"entry_point" yaml:"entry_point"`
}

// DefaultConfig returns the conventional exclusions: the printf family
// and main.
func DefaultConfig() Config {
	return Config{
		Reserved:   []string{"printf", "sprintf", "vsprintf"},
		EntryPoint: "main",
	}
}

// Pass renames functions to the MD5 digest of their names.
//
// Pass is stateless between Apply calls and safe for concurrent use on
// distinct functions.
type Pass struct {
	reserved   map[string]struct{}
	entryPoint string
	rec        pass.Recorder
}

var _ pass.FunctionPass = (*Pass)(nil)

// New creates a pass with the given exclusions. A nil recorder discards
// diagnostics.
func New(cfg Config, rec pass.Recorder) *Pass {
	reserved := make(map[string]struct{}, len(cfg.Reserved))
	for _, name := range cfg.Reserved {
		reserved[name] = struct{}{}
	}
	if rec == nil {
		rec = pass.NopRecorder{}
	}
	return &Pass{
		reserved:   reserved,
		entryPoint: cfg.EntryPoint,
		rec:        rec,
	}
}

func (p *Pass) Name() string { return Name }

// Required is always true: the pass runs on optnone functions too.
func (p *Pass) Required() bool { return true }

// Apply renames fn in place when it is eligible.
//
// Applying twice to the same record hashes the already-hashed name; the
// host must apply the pass exactly once per record per run.
func (p *Pass) Apply(fn *ir.Function) pass.Result {
	original := fn.Name

	if reason := p.classify(fn); reason != pass.SkipNone {
		p.rec.Record(pass.Event{
			Kind:     pass.EventSkip,
			Pass:     Name,
			Function: original,
			Reason:   reason,
		})
		return pass.Skip(original, reason)
	}

	digest := ir.NameDigest(original)
	fn.Name = digest

	p.rec.Record(pass.Event{
		Kind:     pass.EventRename,
		Pass:     Name,
		Function: original,
		Digest:   digest,
	})
	return pass.Renamed(original, digest)
}

// classify evaluates the exclusion rules in order; the first match wins.
func (p *Pass) classify(fn *ir.Function) pass.SkipReason {
	if fn.IsDeclaration() {
		return pass.SkipDeclaration
	}
	if _, ok := p.reserved[fn.Name]; ok {
		return pass.SkipReserved
	}
	if fn.HasComdat() {
		return pass.SkipComdat
	}
	if fn.Name == p.entryPoint {
		return pass.SkipEntryPoint
	}
	return pass.SkipNone
}
