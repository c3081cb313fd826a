package core

import (
	"math"
	"testing"
	"time"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e9, 1e9+1, 1e-6) {
		t.Fatal("expected relative comparison for large values")
	}
}

func TestPowerOf2(t *testing.T) {
	tests := []struct {
		n    int
		is   bool
		next int
	}{
		{n: -4, is: false, next: 1},
		{n: 0, is: false, next: 1},
		{n: 1, is: true, next: 1},
		{n: 3, is: false, next: 4},
		{n: 100, is: false, next: 128},
		{n: 4096, is: true, next: 4096},
	}

	for _, tt := range tests {
		if got := IsPowerOf2(tt.n); got != tt.is {
			t.Errorf("IsPowerOf2(%d) = %v, want %v", tt.n, got, tt.is)
		}
		if got := NextPowerOf2(tt.n); got != tt.next {
			t.Errorf("NextPowerOf2(%d) = %d, want %d", tt.n, got, tt.next)
		}
	}
}

func TestFinite(t *testing.T) {
	if !AllFinite([]float64{0, -1, 1e300}) {
		t.Fatal("expected finite values")
	}
	if AllFinite([]float64{0, math.NaN()}) {
		t.Fatal("NaN must not be finite")
	}
	if IsFinite(math.Inf(-1)) {
		t.Fatal("-Inf must not be finite")
	}
}

func TestDBConversions(t *testing.T) {
	if db := LinearToDB(0.1); !NearlyEqual(db, -20, 1e-10) {
		t.Fatalf("LinearToDB(0.1) = %v, want -20", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestBufferHelpers(t *testing.T) {
	buf := make([]float64, 4, 8)
	out := EnsureLen(buf, 6)
	if len(out) != 6 || cap(out) != 8 {
		t.Fatalf("EnsureLen: len=%d cap=%d", len(out), cap(out))
	}

	Zero(out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}

	c := []complex128{1, 2i}
	ZeroComplex(c)
	if c[0] != 0 || c[1] != 0 {
		t.Fatalf("ZeroComplex left %v", c)
	}

	src := []float64{1, 2, 3}
	cl := Clone(src)
	cl[0] = 9
	if src[0] != 1 {
		t.Fatal("Clone did not copy")
	}
	if got := Clone(nil); got == nil || len(got) != 0 {
		t.Fatalf("Clone(nil) = %#v, want empty slice", got)
	}

	dst := make([]float64, 2)
	if n := ReverseInto(dst, src); n != 2 || dst[0] != 3 || dst[1] != 2 {
		t.Fatalf("ReverseInto = %d %v", n, dst)
	}
}

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(250), WithBlockSize(64))
	if cfg.SampleRate != 250 || cfg.BlockSize != 64 {
		t.Fatalf("cfg = %#v", cfg)
	}

	cfg = ApplyProcessorOptions(WithSampleRate(0), WithSampleRate(math.Inf(1)), WithBlockSize(-1), nil)
	if cfg != DefaultProcessorConfig() {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
}

func TestProcessorConfigTiming(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(250))
	if cfg.Nyquist() != 125 {
		t.Fatalf("Nyquist = %v, want 125", cfg.Nyquist())
	}
	if d := cfg.Duration(500); d != 2*time.Second {
		t.Fatalf("Duration(500) = %v, want 2s", d)
	}

	fast := ApplyProcessorOptions(WithSampleRate(1e12))
	if d := fast.Duration(1); d != 0 {
		t.Fatalf("Duration(1) at 1 THz = %v, want 0", d)
	}
}
