package lattice

import (
	"runtime"

	"pqlattice/pkg/poly"
)

// Destroy overwrites the secret vectors S1, S2 and E with zeros and drops
// the references. The public fields A, T, Rho and KeySeed are left intact.
// The material must not be used for key operations afterwards.
func (km *KeyMaterial) Destroy() {
	zeroVector(km.S1)
	zeroVector(km.S2)
	zeroVector(km.E)
	km.S1, km.S2, km.E = nil, nil, nil
}

func zeroVector(v []poly.Poly) {
	for _, p := range v {
		zeroPoly(p)
	}
}

// zeroPoly scrubs the coefficient slice. KeepAlive stops the compiler from
// eliding the stores into a slice that is about to become unreachable.
func zeroPoly(p poly.Poly) {
	for i := range p {
		p[i] = 0
	}
	runtime.KeepAlive(p)
}
