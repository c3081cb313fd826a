package fir

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-firfilter/dsp/conv"
	"github.com/cwbudde/algo-firfilter/dsp/core"
)

// Transform zero-pads taps to transformLength and returns the forward FFT.
// transformLength must be a power of two greater than len(taps).
func Transform(taps []float64, transformLength int) ([]complex128, error) {
	spectrum, err := conv.KernelSpectrum(taps, transformLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return spectrum, nil
}

// InverseTransform returns the first n real samples of the inverse FFT of
// spectrum.
func InverseTransform(spectrum []complex128, n int) ([]float64, error) {
	size := len(spectrum)
	if !core.IsPowerOf2(size) {
		return nil, fmt.Errorf("%w: spectrum length must be a power of two, got %d", ErrInvalidParameter, size)
	}
	if n < 0 || n > size {
		return nil, fmt.Errorf("%w: cannot take %d samples from a %d-point transform", ErrInvalidParameter, n, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fir: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, size)
	copy(buf, spectrum)
	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("fir: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(buf[i])
	}
	return out, nil
}
