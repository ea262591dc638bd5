package lattice

import (
	"fmt"
	"sync"

	"pqlattice/pkg/field"
	"pqlattice/pkg/hash"
	"pqlattice/pkg/poly"
	"pqlattice/pkg/sampling"
)

const (
	// SeedSize is the master seed length for deterministic generation.
	SeedSize = 32

	// AuxSize is the length of the rho and key-seed identifiers.
	AuxSize = 32
)

// Domain-separation labels for deterministic seed expansion.
const (
	domainRho     = "pqlattice-rho-v1"
	domainKeySeed = "pqlattice-keyseed-v1"
	domainSampler = "pqlattice-sampler-v1"
)

// KeyMaterial bundles the structured key components for one party.
//
// S1, S2 and E are exclusively owned by the generating party and are
// excluded from PublicProjection; call Destroy when the material goes out
// of use so the secret coefficients are scrubbed.
type KeyMaterial struct {
	Params  Params
	Profile Profile

	// A is the public k x (k or l) matrix of uniform ring elements.
	A [][]poly.Poly

	// S1 is the secret vector: s (length k) for KEM, s1 (length l) for
	// the signature profile.
	S1 []poly.Poly

	// S2 is the second secret vector (length k), signature profile only.
	S2 []poly.Poly

	// E is the secret noise vector (length k), KEM profile only.
	E []poly.Poly

	// T is the derived public vector: A*s + e (KEM) or A*s1 (signature).
	T []poly.Poly

	// Rho and KeySeed are opaque 32-byte identifiers consumed by the
	// signing/encapsulation layers.
	Rho     []byte
	KeySeed []byte
}

// PublicKey is the projection of KeyMaterial a party may publish.
type PublicKey struct {
	Params  Params
	Profile Profile
	A       [][]poly.Poly
	T       []poly.Poly
	Rho     []byte
	KeySeed []byte
}

// Generate produces fresh key material for the profile using OS entropy.
// Two calls with identical parameters return different A, secrets and t.
func Generate(params Params, profile Profile) (*KeyMaterial, error) {
	if err := params.Validate(profile); err != nil {
		return nil, err
	}
	s := sampling.New()
	rho, err := s.Bytes(AuxSize)
	if err != nil {
		return nil, err
	}
	keySeed, err := s.Bytes(AuxSize)
	if err != nil {
		return nil, err
	}
	return generate(params, profile, s, rho, keySeed)
}

// GenerateFromSeed produces key material deterministically from a 32-byte
// master seed: the same seed, parameters and profile always reproduce the
// same KeyMaterial. Rho, the key seed and the sampler stream are derived
// under distinct domain-separation labels.
func GenerateFromSeed(params Params, profile Profile, seed []byte) (*KeyMaterial, error) {
	if err := params.Validate(profile); err != nil {
		return nil, err
	}
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("lattice: seed length %d, want %d: %w", len(seed), SeedSize, field.ErrDomain)
	}
	rho := hash.HWithDomain(domainRho, seed, AuxSize)
	keySeed := hash.HWithDomain(domainKeySeed, seed, AuxSize)
	s := sampling.NewSeeded(hash.HWithDomain(domainSampler, seed, SeedSize))
	return generate(params, profile, s, rho, keySeed)
}

// generate samples A and the secret vectors, then derives t row by row.
// Rows are independent and computed concurrently; the summation order
// within a row is fixed.
func generate(params Params, profile Profile, s *sampling.Sampler, rho, keySeed []byte) (*KeyMaterial, error) {
	n, q, k := params.N, params.Q, params.K
	cols := params.cols(profile)

	ring, err := poly.NewRing(n, q)
	if err != nil {
		return nil, err
	}

	A, err := s.UniformMatrix(k, cols, n, q)
	if err != nil {
		return nil, err
	}

	s1 := make([]poly.Poly, cols)
	for j := range s1 {
		if s1[j], err = s.NoisePoly(n, params.Eta, q); err != nil {
			return nil, err
		}
	}

	km := &KeyMaterial{
		Params:  params,
		Profile: profile,
		A:       A,
		S1:      s1,
		Rho:     rho,
		KeySeed: keySeed,
	}

	switch profile {
	case ProfileKEM:
		km.E = make([]poly.Poly, k)
		for i := range km.E {
			if km.E[i], err = s.NoisePoly(n, params.Eta, q); err != nil {
				return nil, err
			}
		}
	case ProfileSignature:
		km.S2 = make([]poly.Poly, k)
		for i := range km.S2 {
			if km.S2[i], err = s.NoisePoly(n, params.Eta, q); err != nil {
				return nil, err
			}
		}
	}

	km.T = make([]poly.Poly, k)
	rowErrs := make([]error, k)
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sum := poly.Zero(n)
			for j := 0; j < cols; j++ {
				prod, err := ring.Mul(A[i][j], s1[j])
				if err != nil {
					rowErrs[i] = err
					return
				}
				if sum, err = ring.Add(sum, prod); err != nil {
					rowErrs[i] = err
					return
				}
			}
			if profile == ProfileKEM {
				var err error
				if sum, err = ring.Add(sum, km.E[i]); err != nil {
					rowErrs[i] = err
					return
				}
			}
			km.T[i] = sum
		}(i)
	}
	wg.Wait()
	for _, err := range rowErrs {
		if err != nil {
			return nil, err
		}
	}

	return km, nil
}

// PublicProjection returns the public fields as independent copies; the
// secret vectors S1, S2 and E never appear in the result.
func (km *KeyMaterial) PublicProjection() PublicKey {
	pk := PublicKey{
		Params:  km.Params,
		Profile: km.Profile,
		A:       make([][]poly.Poly, len(km.A)),
		T:       make([]poly.Poly, len(km.T)),
		Rho:     append([]byte(nil), km.Rho...),
		KeySeed: append([]byte(nil), km.KeySeed...),
	}
	for i, row := range km.A {
		pk.A[i] = make([]poly.Poly, len(row))
		for j, p := range row {
			pk.A[i][j] = p.Clone()
		}
	}
	for i, p := range km.T {
		pk.T[i] = p.Clone()
	}
	return pk
}

// SameKeySeed reports in constant time whether the material's key seed
// matches the given identifier.
func (km *KeyMaterial) SameKeySeed(other []byte) bool {
	return hash.ConstantTimeEqual(km.KeySeed, other)
}
