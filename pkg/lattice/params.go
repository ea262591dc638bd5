// Package lattice builds matrix/vector key material over polynomial rings.
package lattice

import (
	"fmt"

	"pqlattice/pkg/field"
)

// Profile selects the key-structure shape. The two variants are a tagged
// enum: an unknown tag is a typed failure, never a silent fallback.
type Profile uint8

const (
	// ProfileKEM uses a square k x k matrix A, a secret vector s of
	// length k and a noise vector e of length k; t = A*s + e.
	ProfileKEM Profile = iota + 1

	// ProfileSignature uses a rectangular k x l matrix A and secret
	// vectors s1 (length l) and s2 (length k); t = A*s1.
	ProfileSignature
)

func (p Profile) String() string {
	switch p {
	case ProfileKEM:
		return "kem"
	case ProfileSignature:
		return "signature"
	default:
		return fmt.Sprintf("profile(%d)", uint8(p))
	}
}

// Params is an immutable parameter set for key generation.
type Params struct {
	N   int    // polynomial degree, a power of two
	Q   uint32 // prime modulus with Q = 1 (mod N)
	K   int    // module rank: rows of A
	L   int    // module rank: columns of A (signature profile only)
	Eta uint32 // noise bound for secret coefficients
}

// KEMParams is the canonical KEM parameter set (Kyber-shaped).
var KEMParams = Params{N: 256, Q: 3329, K: 3, Eta: 2}

// SignatureParams is the canonical signature parameter set
// (Dilithium-shaped, security level 2 dimensions).
var SignatureParams = Params{N: 256, Q: 8380417, K: 4, L: 4, Eta: 2}

// Validate checks the parameter invariants for the given profile. All
// violations surface as wrapped field.ErrDomain values.
func (p Params) Validate(profile Profile) error {
	if profile != ProfileKEM && profile != ProfileSignature {
		return fmt.Errorf("params: unknown profile %s: %w", profile, field.ErrDomain)
	}
	if !field.IsPow2(p.N) || p.N < 2 {
		return fmt.Errorf("params: degree %d is not a power of two >= 2: %w", p.N, field.ErrDomain)
	}
	if !field.IsPrime(p.Q) {
		return fmt.Errorf("params: modulus %d is not prime: %w", p.Q, field.ErrDomain)
	}
	if (p.Q-1)%uint32(p.N) != 0 {
		return fmt.Errorf("params: %d != 1 (mod %d): %w", p.Q, p.N, field.ErrDomain)
	}
	if p.K < 1 {
		return fmt.Errorf("params: rank k = %d below 1: %w", p.K, field.ErrDomain)
	}
	if profile == ProfileSignature && p.L < 1 {
		return fmt.Errorf("params: rank l = %d below 1: %w", p.L, field.ErrDomain)
	}
	if uint64(p.Eta) >= uint64(p.Q) {
		return fmt.Errorf("params: noise bound %d not below modulus %d: %w", p.Eta, p.Q, field.ErrDomain)
	}
	return nil
}

// cols returns the number of matrix columns for the profile.
func (p Params) cols(profile Profile) int {
	if profile == ProfileSignature {
		return p.L
	}
	return p.K
}
