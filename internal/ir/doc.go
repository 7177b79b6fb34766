// Package ir provides the function-table model that symhash passes operate on.
//
// This package contains type definitions and hashing only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Passes mutate Function.Name only, never the table shape
//   - Name digests hash raw UTF-8 bytes, with no normalization
//   - Module hashes use canonical JSON so they are stable across runs
//   - All JSON and YAML tags use snake_case
package ir
