package fir

import (
	"fmt"

	"github.com/cwbudde/algo-firfilter/dsp/conv"
)

// convolveFunc returns the full linear convolution of an extended block
// with the filter taps.
type convolveFunc func(extended []float64) ([]float64, error)

func apply(block []float64, numTaps int, keepOverhead bool, mode EdgeMode, convolve convolveFunc) ([]float64, error) {
	if len(block) < numTaps {
		return nil, fmt.Errorf("%w: need at least %d samples, got %d",
			ErrInsufficientBlockLength, numTaps, len(block))
	}

	order := numTaps - 1
	extended, err := Extend(block, order, mode)
	if err != nil {
		return nil, err
	}

	filtered, err := convolve(extended)
	if err != nil {
		return nil, err
	}

	return Strip(filtered, len(block), order, mode, keepOverhead)
}

// ApplyConv filters block with taps by direct convolution. Each filtered
// sample depends only on the current and earlier samples of the extended
// block. The block must hold at least len(taps) samples.
func ApplyConv(block, taps []float64, keepOverhead bool, mode EdgeMode) ([]float64, error) {
	if len(taps) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, conv.ErrEmptyKernel)
	}

	return apply(block, len(taps), keepOverhead, mode, func(extended []float64) ([]float64, error) {
		return conv.Direct(extended, taps)
	})
}

// ApplyFFT filters block by overlap-add with a precomputed filter
// spectrum of transformLength bins. The extended block is cut into
// segments of exactly transformLength-numTaps samples so the circular
// products never wrap.
func ApplyFFT(block []float64, spectrum []complex128, transformLength, numTaps int,
	keepOverhead bool, mode EdgeMode,
) ([]float64, error) {
	if len(spectrum) != transformLength {
		return nil, fmt.Errorf("%w: spectrum has %d bins, transform length is %d",
			ErrInvalidParameter, len(spectrum), transformLength)
	}

	ola, err := conv.NewOverlapAddSpectrum(spectrum, numTaps, transformLength-numTaps)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return apply(block, numTaps, keepOverhead, mode, ola.Process)
}
