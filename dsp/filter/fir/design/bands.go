package design

import "fmt"

// remezBands translates s into Remez band edges (cycles per sample) and
// per-band desired gains. Each cutoff becomes a transition band of width
// TransitionWidth centered on it.
func remezBands(s Spec) (bands, desired []float64, err error) {
	scale := 1 / s.SampleRate
	half := s.TransitionWidth / 2 * scale
	low, high := s.Cutoffs()
	fc := s.CenterFreq * scale
	fl, fh := low*scale, high*scale

	switch s.Shape {
	case ShapeHighpass:
		bands = []float64{0, fc - half, fc + half, 0.5}
		desired = []float64{0, 1}
	case ShapeBandpass:
		bands = []float64{0, fl - half, fl + half, fh - half, fh + half, 0.5}
		desired = []float64{0, 1, 0}
	case ShapeNotch:
		bands = []float64{0, fl - half, fl + half, fh - half, fh + half, 0.5}
		desired = []float64{1, 0, 1}
	default:
		bands = []float64{0, fc - half, fc + half, 0.5}
		desired = []float64{1, 0}
	}

	for i := 0; i < len(bands); i += 2 {
		if !(bands[i] < bands[i+1]) {
			return nil, nil, fmt.Errorf("%w: transition width %v Hz collapses band %d of the %v filter",
				ErrInvalidParameter, s.TransitionWidth, i/2, s.Shape)
		}
	}
	return bands, desired, nil
}

func designEquiripple(s Spec) ([]float64, error) {
	bands, desired, err := remezBands(s)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, len(desired))
	for i := range weights {
		weights[i] = 1
	}

	return Remez(s.NumTaps(), bands, desired, weights)
}
