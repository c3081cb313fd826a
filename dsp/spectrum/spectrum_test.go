package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-firfilter/internal/testutil"
	"gonum.org/v1/gonum/dsp/fourier"
)

func TestMagnitudeAndPower(t *testing.T) {
	in := []complex128{3 + 4i, -1, 0, 1i, complex(-2, -2)}

	mag := Magnitude(in)
	pow := Power(in)
	if len(mag) != len(in) || len(pow) != len(in) {
		t.Fatalf("lengths %d/%d, want %d", len(mag), len(pow), len(in))
	}

	for i, c := range in {
		if math.Abs(mag[i]-cmplx.Abs(c)) > 1e-12 {
			t.Errorf("Magnitude[%d] = %v, want %v", i, mag[i], cmplx.Abs(c))
		}
		want := real(c)*real(c) + imag(c)*imag(c)
		if math.Abs(pow[i]-want) > 1e-12 {
			t.Errorf("Power[%d] = %v, want %v", i, pow[i], want)
		}
	}

	if Magnitude(nil) != nil || Power(nil) != nil || Phase(nil) != nil {
		t.Fatal("empty input must give nil")
	}
}

func TestMagnitudeDBFloor(t *testing.T) {
	got := MagnitudeDB([]complex128{10, 1, 1e-9, 0}, -120)
	testutil.RequireSliceNearlyEqual(t, got, []float64{20, 0, -120, -120}, 1e-9)
}

func TestMagnitudeMatchesOracle(t *testing.T) {
	const n = 64
	x := testutil.SumOfSines([]float64{4, 9}, n, n)

	coeffs := fourier.NewFFT(n).Coefficients(nil, x)
	mag := Magnitude(coeffs)

	// Whole-period tones land on bins 4 and 9 with magnitude n/2.
	for k, m := range mag {
		want := 0.0
		if k == 4 || k == 9 {
			want = n / 2
		}
		if math.Abs(m-want) > 1e-9 {
			t.Fatalf("bin %d: |X| = %v, want %v", k, m, want)
		}
	}
}

func TestUnwrapAndGroupDelay(t *testing.T) {
	const (
		fftSize = 256
		delay   = 7.0
	)

	bins := make([]complex128, fftSize/2+1)
	for k := range bins {
		w := 2 * math.Pi * float64(k) / fftSize
		bins[k] = cmplx.Exp(complex(0, -w*delay))
	}

	unwrapped := UnwrapPhase(Phase(bins))
	for i := 1; i < len(unwrapped); i++ {
		if math.Abs(unwrapped[i]-unwrapped[i-1]) > math.Pi {
			t.Fatalf("jump left at bin %d", i)
		}
	}

	gd, err := GroupDelay(unwrapped, fftSize)
	if err != nil {
		t.Fatal(err)
	}
	for k, d := range gd {
		if math.Abs(d-delay) > 1e-9 {
			t.Fatalf("group delay at bin %d = %v, want %v", k, d, delay)
		}
	}
}

func TestGroupDelayErrors(t *testing.T) {
	if _, err := GroupDelay([]float64{1}, 8); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := GroupDelay([]float64{1, 2}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
