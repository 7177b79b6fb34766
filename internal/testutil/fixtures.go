package testutil

import "github.com/roach88/symhash/internal/ir"

// Digests of names used across fixtures. Computed once with md5sum; tests
// compare against these rather than recomputing.
const (
	DigestGetHello        = "9d55bba9469f8ffcfe1202d85490c913"
	DigestGetWorld        = "f612c236a8d854b3f6fa57efab4376d2"
	DigestMain            = "fad58de7366495db4650cfefac2fcd61"
	DigestPrintf          = "afa0ff8b27b87666a6bde87251c5fde7"
	DigestHelper          = "fde5d67bfb6dc4b598291cc2ce35ee4a"
	DigestComputeChecksum = "b13a48e50df9ad2ffbc96a6784c8166e"
	DigestEmpty           = "d41d8cd98f00b204e9800998ecf8427e"
)

// FixedRunID is the run id scenarios use unless they declare their own.
const FixedRunID = "test-run-default"

// HelloModule returns the function table of the hello demo program:
// two helpers, main, and the printf declaration they call.
func HelloModule() *ir.Module {
	return &ir.Module{
		Name:   "hello",
		Source: "hello.c",
		Functions: []ir.Function{
			{Name: "getHello", Definition: true},
			{Name: "getWorld", Definition: true},
			{Name: "main", Definition: true},
			{Name: "printf"},
		},
	}
}

// MixedModule covers every skip reason plus one rename.
func MixedModule() *ir.Module {
	return &ir.Module{
		Name: "mixed",
		Functions: []ir.Function{
			{Name: "computeChecksum", Definition: true},
			{Name: "printf", Definition: true},
			{Name: "helper", Definition: true, Comdat: "helper"},
			{Name: "main", Definition: true},
			{Name: "puts"},
		},
	}
}
