// Package hash provides the SHAKE-256 seed-expansion and byte-comparison
// helpers used by deterministic key generation.
package hash

import (
	"crypto/subtle"

	"golang.org/x/crypto/sha3"
)

// H returns SHAKE-256 output of the requested length for msg.
func H(msg []byte, length int) []byte {
	h := sha3.NewShake256()
	h.Write(msg)
	out := make([]byte, length)
	h.Read(out)
	return out
}

// HWithDomain returns SHAKE-256 output for msg under a domain-separation
// prefix, so distinct uses of the same seed cannot collide. The domain is
// length-prefixed; it must be at most 255 bytes.
func HWithDomain(domain string, msg []byte, length int) []byte {
	if len(domain) > 255 {
		panic("hash: domain string must be at most 255 bytes")
	}
	h := sha3.NewShake256()
	h.Write([]byte{byte(len(domain))})
	h.Write([]byte(domain))
	h.Write(msg)
	out := make([]byte, length)
	h.Read(out)
	return out
}

// ConstantTimeEqual compares two byte slices in constant time, leaking only
// their lengths.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
