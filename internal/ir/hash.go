package ir

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainModule = "symhash/module/v1"
)

// NameDigest returns the lowercase hex MD5 of the raw UTF-8 bytes of name.
// The result is always 32 characters. No normalization is applied, so
// visually identical names with different encodings hash differently.
func NameDigest(name string) string {
	sum := md5.Sum([]byte(name))
	return hex.EncodeToString(sum[:])
}

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ModuleHash computes a content-addressed identity for a module's function
// table. Source is excluded: the same table loaded from two paths hashes
// identically.
func ModuleHash(m *Module) (string, error) {
	fns := make([]any, len(m.Functions))
	for i, fn := range m.Functions {
		obj := map[string]any{
			"name":       fn.Name,
			"definition": fn.Definition,
		}
		if fn.Comdat != "" {
			obj["comdat"] = fn.Comdat
		}
		if len(fn.Attributes) > 0 {
			obj["attributes"] = fn.Attributes
		}
		fns[i] = obj
	}

	canonical, err := MarshalCanonical(map[string]any{
		"name":      m.Name,
		"functions": fns,
	})
	if err != nil {
		return "", fmt.Errorf("ModuleHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainModule, canonical), nil
}

// MustModuleHash is like ModuleHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustModuleHash(m *Module) string {
	h, err := ModuleHash(m)
	if err != nil {
		panic(err)
	}
	return h
}
