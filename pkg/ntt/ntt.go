// Package ntt provides the Number Theoretic Transform over Z_q for
// power-of-two transform sizes.
//
// An Engine is built once per (n, q) pair and precomputes the bit-reversal
// permutation and the twiddle-factor tables; the transforms themselves are
// pure and allocate fresh output, leaving their input untouched.
package ntt

import (
	"fmt"

	"pqlattice/pkg/field"
)

// Engine holds the precomputed tables for transforms of length n over Z_q.
type Engine struct {
	n int
	q uint32

	omega uint32 // primitive n-th root of unity
	nInv  uint32 // n^-1 mod q

	rev     []uint32 // bit-reversal permutation indices
	omegas  []uint32 // omegas[i] = omega^i
	invOmgs []uint32 // invOmgs[i] = omega^-i
}

// NewEngine validates the (n, q) pair and precomputes the transform tables.
//
// Requirements: n is a power of two >= 2, q is prime, and q = 1 (mod n) so
// that omega = g^((q-1)/n) is an n-th root of unity for a generator g.
// Construction finishes with a roundtrip self-check on a probe vector; a
// failure there surfaces field.ErrInvariant and indicates a defect rather
// than caller misuse.
func NewEngine(n int, q uint32) (*Engine, error) {
	if !field.IsPow2(n) || n < 2 {
		return nil, fmt.Errorf("ntt: length %d is not a power of two >= 2: %w", n, field.ErrDomain)
	}
	if !field.IsPrime(q) {
		return nil, fmt.Errorf("ntt: modulus %d is not prime: %w", q, field.ErrDomain)
	}
	if (q-1)%uint32(n) != 0 {
		return nil, fmt.Errorf("ntt: %d != 1 (mod %d), no root of unity of order %d: %w", q, n, n, field.ErrDomain)
	}

	g, err := field.PrimitiveRoot(q)
	if err != nil {
		return nil, fmt.Errorf("ntt: %w", err)
	}
	omega, err := field.Exp(g, int64((q-1)/uint32(n)), q)
	if err != nil {
		return nil, fmt.Errorf("ntt: %w", err)
	}

	// omega must have order exactly n. A generator guarantees this; the
	// check also covers table entries like 17 mod 3329 whose order is a
	// power of two rather than q-1.
	if pow, _ := field.Exp(omega, int64(n), q); pow != 1 {
		return nil, fmt.Errorf("ntt: omega^n != 1 for n=%d q=%d: %w", n, q, field.ErrInvariant)
	}
	if pow, _ := field.Exp(omega, int64(n/2), q); pow == 1 {
		return nil, fmt.Errorf("ntt: omega has order below %d for q=%d: %w", n, q, field.ErrInvariant)
	}

	bits := 0
	for 1<<bits < n {
		bits++
	}

	e := &Engine{n: n, q: q, omega: omega}

	e.rev = make([]uint32, n)
	for i := 0; i < n; i++ {
		e.rev[i] = field.BitRev(uint32(i), bits)
	}

	e.omegas = make([]uint32, n)
	e.omegas[0] = 1
	for i := 1; i < n; i++ {
		e.omegas[i] = field.Mul(e.omegas[i-1], omega, q)
	}

	// Inverse twiddles via batch inversion of the forward table.
	e.invOmgs = append([]uint32(nil), e.omegas...)
	if err := field.BatchInv(e.invOmgs, q); err != nil {
		return nil, fmt.Errorf("ntt: %w", err)
	}

	e.nInv, err = field.Inv(uint32(n), q)
	if err != nil {
		return nil, fmt.Errorf("ntt: %w", err)
	}

	if err := e.selfCheck(); err != nil {
		return nil, err
	}
	return e, nil
}

// N returns the transform length.
func (e *Engine) N() int { return e.n }

// Q returns the modulus.
func (e *Engine) Q() uint32 { return e.q }

// Omega returns the n-th root of unity the engine transforms with.
func (e *Engine) Omega() uint32 { return e.omega }

// Forward computes the NTT of p and returns a new coefficient slice.
//
// The input is bit-reverse permuted, then log2(n) Cooley-Tukey
// decimation-in-time butterfly stages run with block size m = 2, 4, ..., n;
// positions (k+j) and (k+j+m/2) combine through the twiddle omega^(j*n/m).
func (e *Engine) Forward(p []uint32) ([]uint32, error) {
	if len(p) != e.n {
		return nil, fmt.Errorf("ntt: input length %d, engine length %d: %w", len(p), e.n, field.ErrDomain)
	}
	a := make([]uint32, e.n)
	for i := 0; i < e.n; i++ {
		a[i] = p[e.rev[i]]
	}
	q := e.q
	for m := 2; m <= e.n; m <<= 1 {
		half := m >> 1
		stride := e.n / m
		for k := 0; k < e.n; k += m {
			for j := 0; j < half; j++ {
				w := e.omegas[j*stride]
				u := a[k+j]
				v := field.Mul(a[k+j+half], w, q)
				a[k+j] = field.Add(u, v, q)
				a[k+j+half] = field.Sub(u, v, q)
			}
		}
	}
	return a, nil
}

// Inverse computes the inverse NTT of t and returns a new coefficient slice.
//
// It runs the mirrored Gentleman-Sande decimation-in-frequency network with
// omega^-1 twiddles (block size m = n, n/2, ..., 2), applies the closing
// bit-reversal, then scales every coefficient by n^-1 mod q.
func (e *Engine) Inverse(t []uint32) ([]uint32, error) {
	if len(t) != e.n {
		return nil, fmt.Errorf("ntt: input length %d, engine length %d: %w", len(t), e.n, field.ErrDomain)
	}
	q := e.q
	a := append([]uint32(nil), t...)
	for m := e.n; m >= 2; m >>= 1 {
		half := m >> 1
		stride := e.n / m
		for k := 0; k < e.n; k += m {
			for j := 0; j < half; j++ {
				w := e.invOmgs[j*stride]
				u := a[k+j]
				v := a[k+j+half]
				a[k+j] = field.Add(u, v, q)
				a[k+j+half] = field.Mul(field.Sub(u, v, q), w, q)
			}
		}
	}
	out := make([]uint32, e.n)
	for i := 0; i < e.n; i++ {
		out[i] = field.Mul(a[e.rev[i]], e.nInv, q)
	}
	return out, nil
}

// selfCheck runs Inverse(Forward(probe)) on a fixed probe vector and
// verifies the identity, catching inconsistent tables at construction time.
func (e *Engine) selfCheck() error {
	probe := make([]uint32, e.n)
	for i := range probe {
		probe[i] = uint32(i) % e.q
	}
	f, err := e.Forward(probe)
	if err != nil {
		return err
	}
	inv, err := e.Inverse(f)
	if err != nil {
		return err
	}
	for i := range probe {
		if inv[i] != probe[i] {
			return fmt.Errorf("ntt: roundtrip self-check failed at index %d for n=%d q=%d: %w",
				i, e.n, e.q, field.ErrInvariant)
		}
	}
	return nil
}
