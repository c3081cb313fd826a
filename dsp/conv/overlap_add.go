package conv

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-firfilter/dsp/core"
)

// OverlapAdd implements FFT-based convolution using the overlap-add method.
// This is efficient for convolving long signals with long kernels.
//
// The algorithm:
// 1. Divide the input into segments of fftSize - kernelLen samples
// 2. Zero-pad each segment to fftSize
// 3. Multiply its spectrum with the kernel spectrum
// 4. Overlap-add the segmentLen + kernelLen - 1 result samples into the output
//
// The segment length leaves fftSize - (segmentLen + kernelLen - 1) >= 1
// spare bins, so the circular product never wraps into the linear result.
type OverlapAdd struct {
	kernelFFT []complex128

	kernelLen  int
	segmentLen int
	fftSize    int

	// Pool of *olaScratch; each caller takes its own plan and buffer.
	scratch sync.Pool
}

type olaScratch struct {
	plan *algofft.Plan[complex128]
	buf  []complex128
}

// NewOverlapAdd creates an overlap-add convolver for the given kernel.
// fftSize must be a power of two larger than len(kernel). If fftSize is 0,
// an automatic size of at least twice the kernel length is chosen.
func NewOverlapAdd(kernel []float64, fftSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if fftSize <= 0 {
		fftSize = max(core.NextPowerOf2(2*len(kernel)), 256)
	}

	spectrum, err := KernelSpectrum(kernel, fftSize)
	if err != nil {
		return nil, err
	}

	return newOverlapAdd(spectrum, len(kernel)), nil
}

// NewOverlapAddSpectrum creates an overlap-add convolver from a precomputed
// kernel spectrum of length fftSize. segmentLen must equal
// fftSize - kernelLen; any other value is rejected rather than adjusted.
// The spectrum is copied.
func NewOverlapAddSpectrum(spectrum []complex128, kernelLen, segmentLen int) (*OverlapAdd, error) {
	fftSize := len(spectrum)
	if fftSize == 0 || kernelLen <= 0 {
		return nil, ErrEmptyKernel
	}

	if !core.IsPowerOf2(fftSize) {
		return nil, fmt.Errorf("%w: fftSize must be power of 2, got %d", ErrInvalidBlockSize, fftSize)
	}

	if kernelLen >= fftSize {
		return nil, fmt.Errorf("%w: kernel length %d needs fftSize > %d, got %d",
			ErrInvalidBlockSize, kernelLen, kernelLen, fftSize)
	}

	if segmentLen != fftSize-kernelLen {
		return nil, fmt.Errorf("%w: segment length must be fftSize-kernelLen=%d, got %d",
			ErrInvalidBlockSize, fftSize-kernelLen, segmentLen)
	}

	spec := make([]complex128, fftSize)
	copy(spec, spectrum)

	return newOverlapAdd(spec, kernelLen), nil
}

func newOverlapAdd(spectrum []complex128, kernelLen int) *OverlapAdd {
	return &OverlapAdd{
		kernelFFT:  spectrum,
		kernelLen:  kernelLen,
		segmentLen: len(spectrum) - kernelLen,
		fftSize:    len(spectrum),
	}
}

// KernelSpectrum zero-pads kernel to fftSize and returns its forward FFT.
func KernelSpectrum(kernel []float64, fftSize int) ([]complex128, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if !core.IsPowerOf2(fftSize) {
		return nil, fmt.Errorf("%w: fftSize must be power of 2, got %d", ErrInvalidBlockSize, fftSize)
	}

	if len(kernel) >= fftSize {
		return nil, fmt.Errorf("%w: kernel length %d needs fftSize > %d, got %d",
			ErrInvalidBlockSize, len(kernel), len(kernel), fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return spectrum, nil
}

// SegmentLen returns the number of input samples consumed per FFT block.
func (oa *OverlapAdd) SegmentLen() int {
	return oa.segmentLen
}

// FFTSize returns the FFT size used internally.
func (oa *OverlapAdd) FFTSize() int {
	return oa.fftSize
}

// KernelLen returns the kernel length.
func (oa *OverlapAdd) KernelLen() int {
	return oa.kernelLen
}

// Process convolves the input signal with the kernel.
// Returns the full linear convolution result of length len(input)+KernelLen()-1.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	output := make([]float64, len(input)+oa.kernelLen-1)
	if err := oa.accumulate(output, input); err != nil {
		return nil, err
	}

	return output, nil
}

func (oa *OverlapAdd) accumulate(output, input []float64) error {
	s, err := oa.getScratch()
	if err != nil {
		return err
	}
	defer oa.scratch.Put(s)

	for start := 0; start < len(input); start += oa.segmentLen {
		end := min(start+oa.segmentLen, len(input))

		core.ZeroComplex(s.buf)
		for i, v := range input[start:end] {
			s.buf[i] = complex(v, 0)
		}

		if err := s.plan.Forward(s.buf, s.buf); err != nil {
			return fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		for i := range s.buf {
			s.buf[i] *= oa.kernelFFT[i]
		}

		if err := s.plan.Inverse(s.buf, s.buf); err != nil {
			return fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		resultLen := end - start + oa.kernelLen - 1
		for i := range resultLen {
			output[start+i] += real(s.buf[i])
		}
	}

	return nil
}

func (oa *OverlapAdd) getScratch() (*olaScratch, error) {
	if s, ok := oa.scratch.Get().(*olaScratch); ok && s != nil {
		return s, nil
	}

	plan, err := algofft.NewPlan64(oa.fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	return &olaScratch{plan: plan, buf: make([]complex128, oa.fftSize)}, nil
}
