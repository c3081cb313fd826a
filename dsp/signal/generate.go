// Package signal generates deterministic probe signals for exercising
// filters: sines, tone mixtures, white noise and constant offsets.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-firfilter/dsp/core"
)

// ErrInvalidSignal is returned for non-positive lengths, negative
// amplitudes and tones outside (0, sampleRate/2).
var ErrInvalidSignal = errors.New("signal: invalid parameter")

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed. Equal seeds produce equal noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator. Core options set the sample rate and
// default block size; signal options set generator-specific state.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 {
	return g.cfg.SampleRate
}

func (g *Generator) length(samples int) (int, error) {
	if samples == 0 {
		samples = g.cfg.BlockSize
	}
	if samples <= 0 {
		return 0, fmt.Errorf("%w: samples must be > 0, got %d", ErrInvalidSignal, samples)
	}
	return samples, nil
}

// Sine returns amplitude*sin(2*pi*freqHz*n/fs) for n in [0, samples).
// samples == 0 selects the configured block size.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	n, err := g.length(samples)
	if err != nil {
		return nil, err
	}
	if err := g.checkTone(freqHz); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Tones returns the sum of unit-amplitude sines at each frequency.
func (g *Generator) Tones(freqsHz []float64, samples int) ([]float64, error) {
	n, err := g.length(samples)
	if err != nil {
		return nil, err
	}
	if len(freqsHz) == 0 {
		return nil, fmt.Errorf("%w: no tone frequencies", ErrInvalidSignal)
	}

	out := make([]float64, n)
	for _, f := range freqsHz {
		if err := g.checkTone(f); err != nil {
			return nil, err
		}
		step := 2 * math.Pi * f / g.cfg.SampleRate
		for i := range out {
			out[i] += math.Sin(step * float64(i))
		}
	}
	return out, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude] drawn from
// the generator seed. Repeated calls return the same sequence.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	n, err := g.length(samples)
	if err != nil {
		return nil, err
	}
	if amplitude < 0 || !core.IsFinite(amplitude) {
		return nil, fmt.Errorf("%w: noise amplitude must be >= 0, got %v", ErrInvalidSignal, amplitude)
	}

	out := make([]float64, n)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// DC returns a constant signal.
func (g *Generator) DC(value float64, samples int) ([]float64, error) {
	n, err := g.length(samples)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out, nil
}

func (g *Generator) checkTone(freqHz float64) error {
	if !(freqHz >= 0 && freqHz <= g.cfg.Nyquist()) {
		return fmt.Errorf("%w: tone %v Hz outside [0, %v]", ErrInvalidSignal, freqHz, g.cfg.Nyquist())
	}
	return nil
}
