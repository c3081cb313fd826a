package fir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-firfilter/dsp/conv"
	"github.com/cwbudde/algo-firfilter/dsp/core"
	"github.com/cwbudde/algo-firfilter/dsp/filter/fir/design"
	"github.com/cwbudde/algo-firfilter/dsp/spectrum"
	"github.com/cwbudde/algo-firfilter/dsp/window"
)

// Shape and Method are the design enumerations.
type (
	Shape  = design.Shape
	Method = design.Method
)

// Filter shapes.
const (
	Lowpass  = design.ShapeLowpass
	Highpass = design.ShapeHighpass
	Bandpass = design.ShapeBandpass
	Notch    = design.ShapeNotch
)

// Design methods.
const (
	CosineWindowDesign = design.MethodCosine
	EquirippleDesign   = design.MethodEquiripple
	ExternallySupplied = design.MethodExternal
)

// DefaultTransformLength is the FFT size used when none is configured.
const DefaultTransformLength = design.DefaultTransformLength

// DefaultWindow tapers cosine-method designs unless WithWindow overrides it.
const DefaultWindow = window.TypeHamming

type config struct {
	transformLength int
	method          Method
	window          window.Type
	kaiserBeta      float64
	shape           Shape
	centerFreq      float64
	bandwidth       float64
}

func defaultConfig() config {
	return config{
		transformLength: DefaultTransformLength,
		method:          CosineWindowDesign,
		window:          DefaultWindow,
		kaiserBeta:      window.DefaultKaiserBeta,
	}
}

// Option configures a Descriptor at construction.
type Option func(*config) error

// WithTransformLength sets the FFT size. It must be a power of two
// greater than the tap count.
func WithTransformLength(n int) Option {
	return func(cfg *config) error {
		if !core.IsPowerOf2(n) {
			return fmt.Errorf("%w: transform length must be a power of two, got %d", ErrInvalidParameter, n)
		}
		cfg.transformLength = n
		return nil
	}
}

// WithDesignMethod selects the design method used by New.
func WithDesignMethod(m Method) Option {
	return func(cfg *config) error {
		cfg.method = m
		return nil
	}
}

// WithWindow selects the truncation window of the cosine method.
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown window %v", ErrInvalidParameter, t)
		}
		cfg.window = t
		return nil
	}
}

// WithKaiserBeta sets the beta of a Kaiser truncation window. It must be
// positive.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) error {
		if !(beta > 0) || math.IsInf(beta, 0) {
			return fmt.Errorf("%w: kaiser beta must be > 0, got %v", ErrInvalidParameter, beta)
		}
		cfg.kaiserBeta = beta
		return nil
	}
}

// WithShape records the shape of supplied coefficients. New ignores it.
func WithShape(s Shape) Option {
	return func(cfg *config) error {
		if !s.Valid() {
			return fmt.Errorf("%w: unknown shape %v", ErrInvalidParameter, s)
		}
		cfg.shape = s
		return nil
	}
}

// WithBand records the center frequency and bandwidth in Hz of supplied
// coefficients. New ignores it.
func WithBand(centerFreq, bandwidth float64) Option {
	return func(cfg *config) error {
		if centerFreq < 0 || bandwidth < 0 {
			return fmt.Errorf("%w: band (%v, %v) must be non-negative", ErrInvalidParameter, centerFreq, bandwidth)
		}
		cfg.centerFreq = centerFreq
		cfg.bandwidth = bandwidth
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// Descriptor is an immutable FIR filter: its design parameters, forward
// taps and their zero-padded spectrum.
type Descriptor struct {
	name     string
	spec     design.Spec
	taps     []float64
	spectrum []complex128
	ola      *conv.OverlapAdd
}

// New designs a filter from physical parameters. Frequencies are in Hz;
// bandwidth is ignored for Lowpass and Highpass. The design method
// defaults to CosineWindowDesign and the transform length to
// DefaultTransformLength.
func New(name string, shape Shape, order int, centerFreq, bandwidth, transitionWidth, sampleRate float64,
	opts ...Option,
) (*Descriptor, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if cfg.method == ExternallySupplied {
		return nil, fmt.Errorf("%w: externally supplied filters are created with NewFromTaps", ErrInvalidParameter)
	}

	spec := design.Spec{
		Shape:           shape,
		Order:           order,
		CenterFreq:      centerFreq,
		Bandwidth:       bandwidth,
		TransitionWidth: transitionWidth,
		SampleRate:      sampleRate,
		Method:          cfg.method,
		TransformLength: cfg.transformLength,
		Window:          cfg.window,
		KaiserBeta:      cfg.kaiserBeta,
	}

	taps, err := design.Design(spec)
	if err != nil {
		return nil, err
	}

	return newDescriptor(name, spec, taps)
}

// NewFromTaps wraps supplied coefficients. At least two taps are
// required. Shape and band metadata come from WithShape and WithBand.
func NewFromTaps(name string, taps []float64, sampleRate float64, opts ...Option) (*Descriptor, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(taps) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 taps, got %d", ErrInvalidParameter, len(taps))
	}
	if !core.AllFinite(taps) {
		return nil, fmt.Errorf("%w: taps must be finite", ErrInvalidParameter)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0, got %v", ErrInvalidParameter, sampleRate)
	}

	spec := design.Spec{
		Shape:           cfg.shape,
		Order:           len(taps) - 1,
		CenterFreq:      cfg.centerFreq,
		Bandwidth:       cfg.bandwidth,
		SampleRate:      sampleRate,
		Method:          ExternallySupplied,
		TransformLength: cfg.transformLength,
		Window:          window.TypeRectangular,
	}

	return newDescriptor(name, spec, core.Clone(taps))
}

func newDescriptor(name string, spec design.Spec, taps []float64) (*Descriptor, error) {
	fwd, err := Transform(taps, spec.TransformLength)
	if err != nil {
		return nil, err
	}

	ola, err := conv.NewOverlapAddSpectrum(fwd, len(taps), spec.TransformLength-len(taps))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return &Descriptor{
		name:     name,
		spec:     spec,
		taps:     taps,
		spectrum: fwd,
		ola:      ola,
	}, nil
}

// Name returns the filter name.
func (d *Descriptor) Name() string { return d.name }

// Shape returns the filter shape.
func (d *Descriptor) Shape() Shape { return d.spec.Shape }

// Order returns the filter order; the filter has Order()+1 taps.
func (d *Descriptor) Order() int { return d.spec.Order }

// NumTaps returns Order()+1.
func (d *Descriptor) NumTaps() int { return len(d.taps) }

// CenterFreq returns the center (or cutoff) frequency in Hz.
func (d *Descriptor) CenterFreq() float64 { return d.spec.CenterFreq }

// Bandwidth returns the bandwidth in Hz.
func (d *Descriptor) Bandwidth() float64 { return d.spec.Bandwidth }

// TransitionWidth returns the transition width in Hz.
func (d *Descriptor) TransitionWidth() float64 { return d.spec.TransitionWidth }

// SampleRate returns the sampling frequency in Hz.
func (d *Descriptor) SampleRate() float64 { return d.spec.SampleRate }

// TransformLength returns the FFT size of the stored spectrum.
func (d *Descriptor) TransformLength() int { return d.spec.TransformLength }

// DesignMethod returns how the taps were obtained.
func (d *Descriptor) DesignMethod() Method { return d.spec.Method }

// Window returns the truncation window used by the design.
func (d *Descriptor) Window() window.Type { return d.spec.Window }

// KaiserBeta returns the beta applied when Window() is window.TypeKaiser.
func (d *Descriptor) KaiserBeta() float64 { return d.spec.KaiserBeta }

// LowCutoff returns the lower band edge in Hz.
func (d *Descriptor) LowCutoff() float64 {
	low, _ := d.spec.Cutoffs()
	return low
}

// HighCutoff returns the upper band edge in Hz.
func (d *Descriptor) HighCutoff() float64 {
	_, high := d.spec.Cutoffs()
	return high
}

// SegmentLength returns the overlap-add segment length,
// TransformLength() - NumTaps().
func (d *Descriptor) SegmentLength() int { return d.ola.SegmentLen() }

// TapsForward returns a copy of the forward taps.
func (d *Descriptor) TapsForward() []float64 { return core.Clone(d.taps) }

// TapsBackward returns the backward taps, which are always empty.
func (d *Descriptor) TapsBackward() []float64 { return []float64{} }

// SpectrumForward returns a copy of the zero-padded forward spectrum.
func (d *Descriptor) SpectrumForward() []complex128 {
	out := make([]complex128, len(d.spectrum))
	copy(out, d.spectrum)
	return out
}

// SpectrumBackward returns the spectrum of the empty backward taps: all
// zeros, TransformLength() bins.
func (d *Descriptor) SpectrumBackward() []complex128 {
	return make([]complex128, d.spec.TransformLength)
}

// Response returns the complex frequency response at freqHz.
func (d *Descriptor) Response(freqHz float64) complex128 {
	w := 2 * math.Pi * freqHz / d.spec.SampleRate
	var h complex128
	for k, c := range d.taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response at freqHz in dB.
func (d *Descriptor) MagnitudeDB(freqHz float64) float64 {
	return core.LinearToDB(cmplx.Abs(d.Response(freqHz)))
}

// Frequencies returns the frequency in Hz of each bin reported by
// MagnitudeResponse and PhaseResponse.
func (d *Descriptor) Frequencies() []float64 {
	n := d.spec.TransformLength
	out := make([]float64, n/2+1)
	for k := range out {
		out[k] = float64(k) * d.spec.SampleRate / float64(n)
	}
	return out
}

// MagnitudeResponse returns |H| for bins 0..TransformLength()/2.
func (d *Descriptor) MagnitudeResponse() []float64 {
	return spectrum.Magnitude(d.spectrum[:d.spec.TransformLength/2+1])
}

// PhaseResponse returns the unwrapped phase in radians for bins
// 0..TransformLength()/2.
func (d *Descriptor) PhaseResponse() []float64 {
	return spectrum.UnwrapPhase(spectrum.Phase(d.spectrum[:d.spec.TransformLength/2+1]))
}

// GroupDelay returns the group delay in samples. Designed filters are
// symmetric, so it is Order()/2 at every frequency.
func (d *Descriptor) GroupDelay() float64 {
	return float64(d.spec.Order) / 2
}

// ApplyConv filters block by direct convolution with the forward taps.
func (d *Descriptor) ApplyConv(block []float64, keepOverhead bool, mode EdgeMode) ([]float64, error) {
	return ApplyConv(block, d.taps, keepOverhead, mode)
}

// ApplyFFT filters block by overlap-add with the forward spectrum.
func (d *Descriptor) ApplyFFT(block []float64, keepOverhead bool, mode EdgeMode) ([]float64, error) {
	return apply(block, len(d.taps), keepOverhead, mode, d.ola.Process)
}

// String returns a one-line summary.
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s: %v order %d, %v-%v Hz @ %v Hz (%v)",
		d.name, d.spec.Shape, d.spec.Order, d.LowCutoff(), d.HighCutoff(), d.spec.SampleRate, d.spec.Method)
}
