package field

import "fmt"

// BatchInv replaces every element of xs with its modular inverse using
// Montgomery's trick: n inversions cost one extended-Euclid inversion plus
// 3(n-1) multiplications. Fails with ErrDomain if any element is zero or q
// is not coprime to an element; xs is left unchanged on failure.
func BatchInv(xs []uint32, q uint32) error {
	n := len(xs)
	if n == 0 {
		return nil
	}
	for i, x := range xs {
		if x == 0 {
			return fmt.Errorf("batch inv: zero element at index %d: %w", i, ErrDomain)
		}
	}

	// Prefix products: prods[i] = xs[0] * ... * xs[i].
	prods := make([]uint32, n)
	prods[0] = xs[0]
	for i := 1; i < n; i++ {
		prods[i] = Mul(prods[i-1], xs[i], q)
	}

	inv, err := Inv(prods[n-1], q)
	if err != nil {
		return err
	}

	// Walk backwards: xs[i]^(-1) = inv(prods[i]) * prods[i-1].
	for i := n - 1; i > 0; i-- {
		oldXi := xs[i]
		xs[i] = Mul(inv, prods[i-1], q)
		inv = Mul(inv, oldXi, q)
	}
	xs[0] = inv
	return nil
}
