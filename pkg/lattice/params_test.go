package lattice

import (
	"errors"
	"testing"

	"pqlattice/pkg/field"
)

func TestPresetsValidate(t *testing.T) {
	if err := KEMParams.Validate(ProfileKEM); err != nil {
		t.Errorf("KEMParams invalid: %v", err)
	}
	if err := SignatureParams.Validate(ProfileSignature); err != nil {
		t.Errorf("SignatureParams invalid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		params  Params
		profile Profile
	}{
		{"degree not power of two", Params{N: 12, Q: 13, K: 1}, ProfileKEM},
		{"degree below two", Params{N: 1, Q: 17, K: 1}, ProfileKEM},
		{"composite modulus", Params{N: 8, Q: 33, K: 1}, ProfileKEM},
		{"modulus not 1 mod n", Params{N: 8, Q: 19, K: 1}, ProfileKEM},
		{"zero rank k", Params{N: 8, Q: 17, K: 0}, ProfileKEM},
		{"zero rank l", Params{N: 8, Q: 17, K: 2, L: 0}, ProfileSignature},
		{"noise bound at modulus", Params{N: 8, Q: 17, K: 1, Eta: 17}, ProfileKEM},
		{"unknown profile", Params{N: 8, Q: 17, K: 1}, Profile(9)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.params.Validate(c.profile); !errors.Is(err, field.ErrDomain) {
				t.Errorf("Validate: got %v, want ErrDomain", err)
			}
		})
	}
}

func TestKEMProfileIgnoresL(t *testing.T) {
	// The KEM matrix is square; l plays no role and may be zero.
	p := Params{N: 8, Q: 17, K: 2, L: 0, Eta: 1}
	if err := p.Validate(ProfileKEM); err != nil {
		t.Errorf("KEM params with L=0 rejected: %v", err)
	}
}

func TestProfileString(t *testing.T) {
	if ProfileKEM.String() != "kem" {
		t.Errorf("ProfileKEM.String() = %q", ProfileKEM.String())
	}
	if ProfileSignature.String() != "signature" {
		t.Errorf("ProfileSignature.String() = %q", ProfileSignature.String())
	}
}
