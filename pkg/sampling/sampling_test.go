package sampling

import (
	"bytes"
	"errors"
	"testing"

	"pqlattice/pkg/field"
	"pqlattice/pkg/poly"
)

func TestBytesLength(t *testing.T) {
	s := New()
	b, err := s.Bytes(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 32 {
		t.Errorf("Bytes(32) returned %d bytes", len(b))
	}
}

func TestUniformIntRange(t *testing.T) {
	s := New()
	for i := 0; i < 2000; i++ {
		v, err := s.UniformInt(-2, 2)
		if err != nil {
			t.Fatal(err)
		}
		if v < -2 || v > 2 {
			t.Fatalf("UniformInt(-2,2) = %d out of range", v)
		}
	}
}

func TestUniformIntDegenerateInterval(t *testing.T) {
	s := New()
	v, err := s.UniformInt(7, 7)
	if err != nil {
		t.Fatal(err)
	}
	if v != 7 {
		t.Errorf("UniformInt(7,7) = %d, want 7", v)
	}
}

func TestUniformIntEmptyInterval(t *testing.T) {
	s := New()
	if _, err := s.UniformInt(3, 2); !errors.Is(err, field.ErrDomain) {
		t.Errorf("UniformInt(3,2): got %v, want ErrDomain", err)
	}
}

func TestUniformIntCoversInterval(t *testing.T) {
	// Over a tiny interval every value should appear within a few
	// thousand draws; a stuck or biased masked-rejection loop would fail.
	s := New()
	seen := make(map[int64]bool)
	for i := 0; i < 5000 && len(seen) < 5; i++ {
		v, err := s.UniformInt(0, 4)
		if err != nil {
			t.Fatal(err)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("UniformInt(0,4) produced only %d of 5 values", len(seen))
	}
}

func TestUniformIntRejection(t *testing.T) {
	// Scripted source: for interval [0, 4] the sampler reads one byte
	// masked to 3 bits. 0x07 (=7 > 4) must be rejected, then 0x03 taken.
	s := NewFromReader(bytes.NewReader([]byte{0x07, 0x03}))
	v, err := s.UniformInt(0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Errorf("UniformInt with scripted stream = %d, want 3", v)
	}
}

func TestUniformPolyRange(t *testing.T) {
	s := New()
	const q = 3329
	p, err := s.UniformPoly(256, q)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 256 {
		t.Fatalf("UniformPoly length %d, want 256", len(p))
	}
	for i, c := range p {
		if c >= q {
			t.Errorf("coefficient [%d] = %d out of range", i, c)
		}
	}
}

func TestUniformMatrixShapeAndRange(t *testing.T) {
	s := New()
	const q = 17
	m, err := s.UniformMatrix(3, 4, 8, q)
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 3 {
		t.Fatalf("rows = %d, want 3", len(m))
	}
	for _, row := range m {
		if len(row) != 4 {
			t.Fatalf("cols = %d, want 4", len(row))
		}
		for _, p := range row {
			if len(p) != 8 {
				t.Fatalf("poly length = %d, want 8", len(p))
			}
			for _, c := range p {
				if c >= q {
					t.Errorf("coefficient %d out of range", c)
				}
			}
		}
	}
}

func TestSuccessiveMatricesDiffer(t *testing.T) {
	s := New()
	a, err := s.UniformMatrix(2, 2, 64, 3329)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.UniformMatrix(2, 2, 64, 3329)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a {
		for j := range a[i] {
			if !poly.Equal(a[i][j], b[i][j]) {
				same = false
			}
		}
	}
	if same {
		t.Error("two successive uniform matrices are identical")
	}
}

func TestNoisePolyCentered(t *testing.T) {
	s := New()
	const q, eta = 3329, 2
	p, err := s.NoisePoly(256, eta, q)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range p {
		// Coefficients live in {0, 1, 2} union {q-2, q-1}.
		if c > eta && c < q-eta {
			t.Errorf("coefficient [%d] = %d outside [-eta, eta] mod q", i, c)
		}
	}
}

func TestNoisePolyZeroEta(t *testing.T) {
	s := New()
	p, err := s.NoisePoly(16, 0, 17)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsZero() {
		t.Errorf("eta=0 noise = %v, want zero", p)
	}
}

func TestSeededSamplerIsDeterministic(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")
	a, err := NewSeeded(seed).UniformPoly(64, 3329)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSeeded(seed).UniformPoly(64, 3329)
	if err != nil {
		t.Fatal(err)
	}
	if !poly.Equal(a, b) {
		t.Error("same seed produced different polynomials")
	}

	c, err := NewSeeded([]byte("another seed value, same length!")).UniformPoly(64, 3329)
	if err != nil {
		t.Fatal(err)
	}
	if poly.Equal(a, c) {
		t.Error("different seeds produced identical polynomials")
	}
}

func TestDomainErrors(t *testing.T) {
	s := New()
	if _, err := s.UniformPoly(0, 17); !errors.Is(err, field.ErrDomain) {
		t.Errorf("UniformPoly(0, 17): got %v, want ErrDomain", err)
	}
	if _, err := s.UniformMatrix(0, 2, 8, 17); !errors.Is(err, field.ErrDomain) {
		t.Errorf("UniformMatrix with zero rows: got %v, want ErrDomain", err)
	}
	if _, err := s.NoisePoly(8, 17, 17); !errors.Is(err, field.ErrDomain) {
		t.Errorf("NoisePoly with eta >= q: got %v, want ErrDomain", err)
	}
}
