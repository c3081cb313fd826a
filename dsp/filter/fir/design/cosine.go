package design

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-firfilter/dsp/window"
)

// cosineEdge is the lowpass edge of the mask at Nyquist-normalized
// frequency f: 1 below fc-w/2, 0 above fc+w/2, a half cosine in between.
func cosineEdge(f, fc, w float64) float64 {
	switch {
	case f <= fc-w/2:
		return 1
	case f >= fc+w/2:
		return 0
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(f-fc+w/2)/w))
	}
}

// Mask returns the ideal magnitude of s at frequency freqHz.
func Mask(s Spec, freqHz float64) float64 {
	scale := 2 / s.SampleRate
	f := freqHz * scale
	fc := s.CenterFreq * scale
	w := s.TransitionWidth * scale
	low, high := s.Cutoffs()
	fl, fh := low*scale, high*scale

	switch s.Shape {
	case ShapeHighpass:
		return 1 - cosineEdge(f, fc, w)
	case ShapeBandpass:
		return cosineEdge(f, fh, w) * (1 - cosineEdge(f, fl, w))
	case ShapeNotch:
		return 1 - cosineEdge(f, fh, w)*(1-cosineEdge(f, fl, w))
	default:
		return cosineEdge(f, fc, w)
	}
}

func designCosine(s Spec) ([]float64, error) {
	n := s.transformLength()
	numTaps := s.NumTaps()
	delay := float64(s.Order) / 2

	// Hermitian spectrum of the mask delayed by order/2 samples.
	bins := make([]complex128, n)
	for k := 0; k <= n/2; k++ {
		mag := Mask(s, float64(k)*s.SampleRate/float64(n))
		phi := -2 * math.Pi * float64(k) * delay / float64(n)
		bins[k] = complex(mag*math.Cos(phi), mag*math.Sin(phi))
		if k > 0 && k < n/2 {
			bins[n-k] = complex(real(bins[k]), -imag(bins[k]))
		}
	}
	bins[n/2] = complex(real(bins[n/2]), 0)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("design: failed to create FFT plan: %w", err)
	}
	if err := plan.Inverse(bins, bins); err != nil {
		return nil, fmt.Errorf("design: inverse FFT failed: %w", err)
	}

	taps := make([]float64, numTaps)
	for i := range taps {
		taps[i] = real(bins[i])
	}

	window.Apply(s.Window, taps, window.WithAlpha(s.kaiserBeta()))

	if err := normalize(taps, s); err != nil {
		return nil, err
	}
	return taps, nil
}
