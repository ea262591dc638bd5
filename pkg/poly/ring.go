package poly

import (
	"fmt"

	"pqlattice/pkg/field"
	"pqlattice/pkg/ntt"
)

// Ring performs arithmetic in Z_q[x]/(x^n + 1) with an NTT engine shared by
// all operations. Safe for concurrent use: the engine tables are read-only
// after construction.
type Ring struct {
	n      int
	q      uint32
	engine *ntt.Engine
}

// NewRing builds the ring for the given degree and modulus. The engine
// constructor enforces that n is a power of two, q is prime and
// q = 1 (mod n).
func NewRing(n int, q uint32) (*Ring, error) {
	e, err := ntt.NewEngine(n, q)
	if err != nil {
		return nil, fmt.Errorf("ring: %w", err)
	}
	return &Ring{n: n, q: q, engine: e}, nil
}

// N returns the polynomial degree.
func (r *Ring) N() int { return r.n }

// Q returns the coefficient modulus.
func (r *Ring) Q() uint32 { return r.q }

// Mul multiplies two ring elements through the transform: forward both
// operands, multiply coefficient-wise mod q, transform back. O(n log n)
// against the O(n^2) direct convolution.
func (r *Ring) Mul(a, b Poly) (Poly, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("ring: operand lengths %d and %d differ: %w", len(a), len(b), field.ErrDomain)
	}
	if len(a) != r.n {
		return nil, fmt.Errorf("ring: operand length %d, ring degree %d: %w", len(a), r.n, field.ErrDomain)
	}
	ta, err := r.engine.Forward(a)
	if err != nil {
		return nil, err
	}
	tb, err := r.engine.Forward(b)
	if err != nil {
		return nil, err
	}
	for i := range ta {
		ta[i] = field.Mul(ta[i], tb[i], r.q)
	}
	out, err := r.engine.Inverse(ta)
	if err != nil {
		return nil, err
	}
	return Poly(out), nil
}

// Add adds two ring elements coefficient-wise.
func (r *Ring) Add(a, b Poly) (Poly, error) {
	if len(a) != r.n || len(b) != r.n {
		return nil, fmt.Errorf("ring: operand lengths %d, %d, ring degree %d: %w", len(a), len(b), r.n, field.ErrDomain)
	}
	c := make(Poly, r.n)
	for i := range c {
		c[i] = field.Add(a[i], b[i], r.q)
	}
	return c, nil
}

// Forward exposes the engine's forward transform on a ring element.
func (r *Ring) Forward(p Poly) (Poly, error) {
	out, err := r.engine.Forward(p)
	return Poly(out), err
}

// Inverse exposes the engine's inverse transform on a ring element.
func (r *Ring) Inverse(p Poly) (Poly, error) {
	out, err := r.engine.Inverse(p)
	return Poly(out), err
}

// SchoolbookMul computes the negacyclic product of a and b directly: the
// full 2n-1 coefficient convolution reduced by x^n = -1, then mod q. O(n^2);
// this is the ground-truth oracle the transform route is tested against.
func SchoolbookMul(a, b Poly, q uint32) Poly {
	n := len(a)
	s := make([]int64, 2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s[i+j] += int64(a[i]) * int64(b[j]) % int64(q)
			s[i+j] %= int64(q)
		}
	}
	out := make(Poly, n)
	for i := 0; i < n; i++ {
		out[i] = field.Mod(s[i]-s[i+n], q)
	}
	return out
}
