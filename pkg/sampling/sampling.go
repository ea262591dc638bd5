// Package sampling draws uniform field elements, polynomials and matrices
// from a cryptographically secure byte source.
//
// A Sampler wraps either fresh OS entropy (New) or a SHAKE-256 stream seeded
// from a caller-supplied seed (NewSeeded) for deterministic expansion. All
// integer draws use reject-and-resample on masked bits, never a bare modulo,
// so the distribution carries no modulo bias.
package sampling

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"pqlattice/pkg/field"
	"pqlattice/pkg/poly"
)

// Sampler draws from an underlying byte source. A Sampler built with New is
// safe for concurrent use (crypto/rand.Reader is); a seeded Sampler owns a
// single SHAKE stream and must be confined to one goroutine.
type Sampler struct {
	src io.Reader
}

// New returns a Sampler over the operating system's CSPRNG.
func New() *Sampler {
	return &Sampler{src: rand.Reader}
}

// NewSeeded returns a deterministic Sampler over a SHAKE-256 stream keyed by
// seed. Identical seeds reproduce identical draw sequences.
func NewSeeded(seed []byte) *Sampler {
	h := sha3.NewShake256()
	h.Write(seed)
	return &Sampler{src: h}
}

// NewFromReader returns a Sampler over an arbitrary byte source. Intended
// for tests that need a scripted stream.
func NewFromReader(r io.Reader) *Sampler {
	return &Sampler{src: r}
}

// Bytes returns n bytes from the source.
func (s *Sampler) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.src, buf); err != nil {
		return nil, fmt.Errorf("sampling: read entropy: %w", err)
	}
	return buf, nil
}

// UniformInt returns a uniform integer in the closed interval [min, max].
// Rejection sampling on the smallest covering bit mask removes modulo bias.
func (s *Sampler) UniformInt(min, max int64) (int64, error) {
	if min > max {
		return 0, fmt.Errorf("sampling: empty interval [%d, %d]: %w", min, max, field.ErrDomain)
	}
	span := uint64(max) - uint64(min) // width-1; wrap-free in two's complement
	if span == 0 {
		return min, nil
	}

	bits := 0
	for m := span; m > 0; m >>= 1 {
		bits++
	}
	if bits > 63 {
		return 0, fmt.Errorf("sampling: interval wider than 63 bits: %w", field.ErrDomain)
	}
	nBytes := (bits + 7) / 8
	mask := uint64(1)<<bits - 1

	var buf [8]byte
	for {
		if _, err := io.ReadFull(s.src, buf[:nBytes]); err != nil {
			return 0, fmt.Errorf("sampling: read entropy: %w", err)
		}
		var v uint64
		for i := 0; i < nBytes; i++ {
			v = v<<8 | uint64(buf[i])
		}
		v &= mask
		if v <= span {
			return min + int64(v), nil
		}
	}
}

// UniformPoly returns a polynomial of n independent uniform draws from
// [0, q-1].
func (s *Sampler) UniformPoly(n int, q uint32) (poly.Poly, error) {
	if n <= 0 || q == 0 {
		return nil, fmt.Errorf("sampling: degree %d, modulus %d: %w", n, q, field.ErrDomain)
	}
	p := make(poly.Poly, n)
	for i := range p {
		v, err := s.UniformInt(0, int64(q)-1)
		if err != nil {
			return nil, err
		}
		p[i] = uint32(v)
	}
	return p, nil
}

// UniformMatrix returns a rows x cols grid of uniform polynomials of
// length n over [0, q), row-major.
func (s *Sampler) UniformMatrix(rows, cols, n int, q uint32) ([][]poly.Poly, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("sampling: matrix shape %dx%d: %w", rows, cols, field.ErrDomain)
	}
	m := make([][]poly.Poly, rows)
	for i := range m {
		m[i] = make([]poly.Poly, cols)
		for j := range m[i] {
			p, err := s.UniformPoly(n, q)
			if err != nil {
				return nil, err
			}
			m[i][j] = p
		}
	}
	return m, nil
}

// NoisePoly returns a polynomial of n independent uniform draws from the
// centered interval [-eta, eta], stored reduced into [0, q). Uniform small
// noise is the instantiated choice; a centered-binomial sampler would slot
// in behind the same signature.
func (s *Sampler) NoisePoly(n int, eta, q uint32) (poly.Poly, error) {
	if n <= 0 || q == 0 {
		return nil, fmt.Errorf("sampling: degree %d, modulus %d: %w", n, q, field.ErrDomain)
	}
	if uint64(eta) >= uint64(q) {
		return nil, fmt.Errorf("sampling: noise bound %d not below modulus %d: %w", eta, q, field.ErrDomain)
	}
	p := make(poly.Poly, n)
	for i := range p {
		v, err := s.UniformInt(-int64(eta), int64(eta))
		if err != nil {
			return nil, err
		}
		p[i] = field.Mod(v, q)
	}
	return p, nil
}
