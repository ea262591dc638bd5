// Package poly provides ring elements of Z_q[x]/(x^n + 1) and their
// transform-based multiplication.
package poly

// Poly is an ordered sequence of n coefficients in [0, q). Operations treat
// polynomials as immutable and return new values.
type Poly []uint32

// Zero returns the zero polynomial of length n.
func Zero(n int) Poly {
	return make(Poly, n)
}

// FromCoeffs builds a polynomial from a coefficient sequence. The slice is
// copied, so later writes to cs do not alias the polynomial.
func FromCoeffs(cs []uint32) Poly {
	p := make(Poly, len(cs))
	copy(p, cs)
	return p
}

// Coeffs returns a copy of the coefficient sequence.
// FromCoeffs(p.Coeffs()) reproduces p exactly.
func (p Poly) Coeffs() []uint32 {
	return append([]uint32(nil), p...)
}

// Clone returns an independent copy of p.
func (p Poly) Clone() Poly {
	return FromCoeffs(p)
}

// Equal reports whether a and b have identical length and coefficients.
func Equal(a, b Poly) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether every coefficient of p is zero.
func (p Poly) IsZero() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}
