package spectrum

import (
	"fmt"
	"math"
)

// Goertzel measures one DFT term of a real signal without a full transform.
//
// The probe is stateful: every sample passed to Process accumulates into
// the current measurement until Reset.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates a probe for frequency in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: goertzel sample rate must be > 0, got %v", ErrInvalidInput, sampleRate)
	}
	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("%w: goertzel frequency %v outside [0, %v]", ErrInvalidInput, frequency, sampleRate/2)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// Process feeds a block of samples.
func (g *Goertzel) Process(input []float64) {
	s0, s1 := g.s0, g.s1
	for _, x := range input {
		s0, s1 = x+g.coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X|^2 for the samples processed so far.
func (g *Goertzel) Power() float64 {
	p := g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
	return max(p, 0)
}

// Amplitude returns the estimated peak amplitude of a sinusoid at the probe
// frequency, 2*|X|/N. It is exact when the block holds whole periods.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}
	return 2 * math.Sqrt(g.Power()) / float64(g.n)
}

// Frequency returns the probe frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitude measures the amplitude of a tone at frequency in one shot.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	g.Process(input)
	return g.Amplitude(), nil
}

// Attenuation returns 20*log10(amplitude(in)/amplitude(out)) at frequency:
// how many dB a filter removed from a tone. Both blocks should cover the
// same whole number of periods.
func Attenuation(in, out []float64, frequency, sampleRate float64) (float64, error) {
	a, err := ToneAmplitude(in, frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	b, err := ToneAmplitude(out, frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	if a == 0 {
		return 0, fmt.Errorf("%w: no tone at %v Hz in reference block", ErrInvalidInput, frequency)
	}
	if b == 0 {
		return math.Inf(1), nil
	}
	return 20 * math.Log10(a/b), nil
}
