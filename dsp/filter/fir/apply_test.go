package fir

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-firfilter/internal/testutil"
)

var allModes = []EdgeMode{MirrorData, ZeroPad, NoEdgeEffectCompensation}

func mustLowpass(t testing.TB, order int, opts ...Option) *Descriptor {
	t.Helper()
	d, err := New("lp", Lowpass, order, 40, 0, 10, 250, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func TestApplyOutputLengths(t *testing.T) {
	d := mustLowpass(t, 16, WithTransformLength(64))
	block := testutil.DeterministicNoise(1, 1, 100)

	tests := []struct {
		mode EdgeMode
		keep bool
		want int
	}{
		{MirrorData, false, 100},
		{MirrorData, true, 132},
		{ZeroPad, false, 100},
		{ZeroPad, true, 132},
		{NoEdgeEffectCompensation, false, 100},
		{NoEdgeEffectCompensation, true, 100},
	}

	for _, tt := range tests {
		conv, err := d.ApplyConv(block, tt.keep, tt.mode)
		if err != nil {
			t.Fatalf("%v keep=%v ApplyConv: %v", tt.mode, tt.keep, err)
		}
		fft, err := d.ApplyFFT(block, tt.keep, tt.mode)
		if err != nil {
			t.Fatalf("%v keep=%v ApplyFFT: %v", tt.mode, tt.keep, err)
		}
		if len(conv) != tt.want || len(fft) != tt.want {
			t.Errorf("%v keep=%v: lengths %d/%d, want %d", tt.mode, tt.keep, len(conv), len(fft), tt.want)
		}
	}
}

func TestApplyConvMatchesApplyFFT(t *testing.T) {
	tests := []struct {
		name     string
		order    int
		length   int
		blockLen int
	}{
		{"single segment", 16, 64, 40},
		{"many segments", 32, 128, 1000},
		{"odd order", 33, 256, 777},
		{"minimum block", 64, 4096, 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustLowpass(t, tt.order, WithTransformLength(tt.length))
			block := testutil.DeterministicNoise(int64(tt.order), 1, tt.blockLen)

			for _, mode := range allModes {
				for _, keep := range []bool{false, true} {
					a, err := d.ApplyConv(block, keep, mode)
					if err != nil {
						t.Fatal(err)
					}
					b, err := d.ApplyFFT(block, keep, mode)
					if err != nil {
						t.Fatal(err)
					}
					if diff, _ := testutil.MaxAbsDiff(a, b); diff > 1e-9 {
						t.Fatalf("%v keep=%v: max diff %g", mode, keep, diff)
					}
				}
			}
		})
	}
}

func TestApplyInsufficientBlock(t *testing.T) {
	d := mustLowpass(t, 16, WithTransformLength(64))

	for _, mode := range allModes {
		out, err := d.ApplyConv(make([]float64, 16), false, mode)
		if !errors.Is(err, ErrInsufficientBlockLength) || out != nil {
			t.Fatalf("%v ApplyConv: out=%v err=%v", mode, out, err)
		}
		out, err = d.ApplyFFT(make([]float64, 16), true, mode)
		if !errors.Is(err, ErrInsufficientBlockLength) || out != nil {
			t.Fatalf("%v ApplyFFT: out=%v err=%v", mode, out, err)
		}

		if _, err := d.ApplyFFT(make([]float64, 17), false, mode); err != nil {
			t.Fatalf("%v: block of order+1 rejected: %v", mode, err)
		}
	}
}

func TestApplyRejectsUnknownEdgeMode(t *testing.T) {
	d := mustLowpass(t, 16)
	block := testutil.DeterministicNoise(1, 1, 40)

	for _, apply := range []func([]float64, bool, EdgeMode) ([]float64, error){d.ApplyConv, d.ApplyFFT} {
		for _, keep := range []bool{false, true} {
			out, err := apply(block, keep, EdgeMode(7))
			if !errors.Is(err, ErrInvalidParameter) || out != nil {
				t.Fatalf("keep=%v: out len %d, err %v", keep, len(out), err)
			}
		}
	}
}

func TestApplyDCGain(t *testing.T) {
	d := mustLowpass(t, 64)
	block := testutil.DC(2.5, 10*d.NumTaps())

	for _, apply := range []func([]float64, bool, EdgeMode) ([]float64, error){d.ApplyConv, d.ApplyFFT} {
		out, err := apply(block, false, MirrorData)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, out, block, 1e-9)
	}
}

func TestApplyNotchAttenuation(t *testing.T) {
	d, err := New("mains", Notch, 256, 50, 10, 5, 250)
	if err != nil {
		t.Fatal(err)
	}

	const margin = 256

	mains := testutil.DeterministicSine(50, 250, 1, 4096)
	out, err := d.ApplyFFT(mains, false, MirrorData)
	if err != nil {
		t.Fatal(err)
	}
	if db := testutil.GainDB(testutil.Interior(out, margin), testutil.Interior(mains, margin)); db > -20 {
		t.Fatalf("50 Hz attenuated by %.1f dB, want at least 20", -db)
	}

	alpha := testutil.DeterministicSine(10, 250, 1, 4096)
	out, err = d.ApplyFFT(alpha, false, MirrorData)
	if err != nil {
		t.Fatal(err)
	}
	if db := testutil.GainDB(testutil.Interior(out, margin), testutil.Interior(alpha, margin)); math.Abs(db) > 0.1 {
		t.Fatalf("10 Hz gain %.3f dB, want about 0", db)
	}
}

func TestApplyCompensatesGroupDelay(t *testing.T) {
	d := mustLowpass(t, 32, WithTransformLength(128))
	taps := d.TapsForward()

	impulse := testutil.Impulse(101, 50)
	for _, mode := range allModes {
		out, err := d.ApplyConv(impulse, false, mode)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, out[34:67], taps, 1e-12)
	}

	// A passband tone comes out in phase with the input.
	tone := testutil.DeterministicSine(5, 250, 1, 1000)
	out, err := d.ApplyFFT(tone, false, MirrorData)
	if err != nil {
		t.Fatal(err)
	}
	if diff, _ := testutil.MaxAbsDiff(testutil.Interior(out, 64), testutil.Interior(tone, 64)); diff > 0.01 {
		t.Fatalf("passband tone differs from input by %v", diff)
	}
}

func TestApplyConcurrentDeterministic(t *testing.T) {
	d := mustLowpass(t, 64, WithTransformLength(256))
	block := testutil.DeterministicNoise(8, 1, 3000)

	want, err := d.ApplyFFT(block, false, MirrorData)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([][]float64, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				results[i], _ = d.ApplyFFT(block, false, MirrorData)
			} else {
				results[i], _ = d.ApplyConv(block, false, MirrorData)
			}
		}()
	}
	wg.Wait()

	for _, got := range results {
		testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
	}
}

func TestPackageLevelApply(t *testing.T) {
	d := mustLowpass(t, 16, WithTransformLength(64))
	block := testutil.DeterministicNoise(5, 1, 300)

	want, err := d.ApplyFFT(block, true, ZeroPad)
	if err != nil {
		t.Fatal(err)
	}

	got, err := ApplyFFT(block, d.SpectrumForward(), d.TransformLength(), d.NumTaps(), true, ZeroPad)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	got, err = ApplyConv(block, d.TapsForward(), true, ZeroPad)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)

	if _, err := ApplyFFT(block, d.SpectrumForward(), 128, d.NumTaps(), false, ZeroPad); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("mismatched transform length: %v", err)
	}
	if _, err := ApplyFFT(block, d.SpectrumForward(), 64, 64, false, ZeroPad); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("taps filling the transform: %v", err)
	}
	if _, err := ApplyConv(block, nil, false, ZeroPad); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("empty taps: %v", err)
	}
}
