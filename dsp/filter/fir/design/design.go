package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-firfilter/dsp/core"
	"github.com/cwbudde/algo-firfilter/dsp/window"
)

// DefaultTransformLength is the grid size of the cosine method when a
// Spec leaves TransformLength zero.
const DefaultTransformLength = 4096

// Spec describes a filter in physical units. All frequencies are in Hz.
type Spec struct {
	Shape           Shape
	Order           int
	CenterFreq      float64
	Bandwidth       float64 // ignored for lowpass and highpass
	TransitionWidth float64
	SampleRate      float64
	Method          Method

	// TransformLength is the frequency grid of the cosine method. It must
	// be a power of two greater than Order+1; zero selects
	// DefaultTransformLength.
	TransformLength int

	// Window tapers the truncated cosine-method response. The zero value
	// truncates without tapering.
	Window window.Type

	// KaiserBeta shapes window.TypeKaiser; zero selects
	// window.DefaultKaiserBeta.
	KaiserBeta float64
}

// NumTaps returns Order+1.
func (s Spec) NumTaps() int {
	return s.Order + 1
}

// Cutoffs returns the lower and upper cutoff frequencies in Hz. Lowpass
// filters report a zero lower cutoff, highpass filters report Nyquist as
// the upper cutoff.
func (s Spec) Cutoffs() (low, high float64) {
	switch s.Shape {
	case ShapeHighpass:
		return s.CenterFreq, s.SampleRate / 2
	case ShapeBandpass, ShapeNotch:
		return s.CenterFreq - s.Bandwidth/2, s.CenterFreq + s.Bandwidth/2
	default:
		return 0, s.CenterFreq
	}
}

func (s Spec) kaiserBeta() float64 {
	if s.KaiserBeta == 0 {
		return window.DefaultKaiserBeta
	}
	return s.KaiserBeta
}

func (s Spec) transformLength() int {
	if s.TransformLength == 0 {
		return DefaultTransformLength
	}
	return s.TransformLength
}

// Validate checks s without designing anything.
func (s Spec) Validate() error {
	if !s.Shape.Valid() {
		return fmt.Errorf("%w: unknown shape %v", ErrInvalidParameter, s.Shape)
	}
	if !s.Window.Valid() {
		return fmt.Errorf("%w: unknown window %v", ErrInvalidParameter, s.Window)
	}
	if !(s.KaiserBeta >= 0) || math.IsInf(s.KaiserBeta, 0) {
		return fmt.Errorf("%w: kaiser beta must be >= 0, got %v", ErrInvalidParameter, s.KaiserBeta)
	}
	if s.Order < 1 {
		return fmt.Errorf("%w: order must be >= 1, got %d", ErrInvalidParameter, s.Order)
	}
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0, got %v", ErrInvalidParameter, s.SampleRate)
	}

	nyquist := s.SampleRate / 2
	if !(s.CenterFreq > 0 && s.CenterFreq < nyquist) {
		return fmt.Errorf("%w: center frequency %v outside (0, %v)", ErrInvalidParameter, s.CenterFreq, nyquist)
	}
	if !(s.TransitionWidth >= 0) || math.IsInf(s.TransitionWidth, 0) {
		return fmt.Errorf("%w: transition width must be >= 0, got %v", ErrInvalidParameter, s.TransitionWidth)
	}

	if s.Shape.HasBand() {
		if !(s.Bandwidth > 0) || math.IsInf(s.Bandwidth, 0) {
			return fmt.Errorf("%w: %v bandwidth must be > 0, got %v", ErrInvalidParameter, s.Shape, s.Bandwidth)
		}
		low, high := s.Cutoffs()
		if low <= 0 || high >= nyquist {
			return fmt.Errorf("%w: band [%v, %v] outside (0, %v)", ErrInvalidParameter, low, high, nyquist)
		}
	}

	if s.Order%2 != 0 && (s.Shape == ShapeHighpass || s.Shape == ShapeNotch) {
		return fmt.Errorf("%w: %v needs an even order, got %d", ErrInvalidParameter, s.Shape, s.Order)
	}

	switch s.Method {
	case MethodCosine:
		n := s.transformLength()
		if !core.IsPowerOf2(n) || n <= s.NumTaps() {
			return fmt.Errorf("%w: transform length must be a power of two > %d, got %d",
				ErrInvalidParameter, s.NumTaps(), n)
		}
	case MethodEquiripple:
		if s.TransitionWidth == 0 {
			return fmt.Errorf("%w: equiripple design needs a transition width > 0", ErrInvalidParameter)
		}
		if _, _, err := remezBands(s); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: method %v does not design coefficients", ErrInvalidParameter, s.Method)
	}

	return nil
}

// Design returns Order+1 symmetric taps for s.
func Design(s Spec) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		taps []float64
		err  error
	)
	switch s.Method {
	case MethodEquiripple:
		taps, err = designEquiripple(s)
	default:
		taps, err = designCosine(s)
	}
	if err != nil {
		return nil, err
	}

	if !core.AllFinite(taps) {
		return nil, fmt.Errorf("%w: non-finite taps", ErrNumericalDegeneracy)
	}
	return taps, nil
}

// referenceFrequency returns the Nyquist-normalized frequency at which the
// passband gain is measured.
func referenceFrequency(s Spec) float64 {
	switch s.Shape {
	case ShapeHighpass:
		return 1
	case ShapeBandpass:
		return 2 * s.CenterFreq / s.SampleRate
	default:
		return 0
	}
}

// gainAt returns |H| of taps at Nyquist-normalized frequency f.
func gainAt(taps []float64, f float64) float64 {
	var sum complex128
	w := math.Pi * f
	for n, h := range taps {
		sum += complex(h, 0) * cmplx.Exp(complex(0, -w*float64(n)))
	}
	return cmplx.Abs(sum)
}

// normalize scales taps to unity gain at the passband reference.
func normalize(taps []float64, s Spec) error {
	g := gainAt(taps, referenceFrequency(s))
	if !(g > 1e-12) || math.IsInf(g, 0) {
		return fmt.Errorf("%w: passband gain %v at reference", ErrNumericalDegeneracy, g)
	}
	inv := 1 / g
	for i := range taps {
		taps[i] *= inv
	}
	return nil
}
