package conv

import (
	"errors"

	"github.com/cwbudde/algo-firfilter/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
)

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels.
// For longer kernels, use FFT-based methods like OverlapAdd.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)

	return result, nil
}

// DirectTo writes the first len(dst) samples of the linear convolution of a
// and b into dst:
//
//	dst[i] = sum_k b[k] * a[i-k]
//
// Samples past len(a)+len(b)-1 are zero. Output i depends on a[0..i] only.
func DirectTo(dst, a, b []float64) {
	n := len(a)
	m := len(b)
	if n == 0 || m == 0 {
		core.Zero(dst)
		return
	}

	// Reversing the kernel turns every output into a contiguous dot product.
	rev := make([]float64, m)
	core.ReverseInto(rev, b)

	scratch := make([]float64, m)

	for i := range dst {
		lo := max(0, i-m+1)
		hi := min(i, n-1)
		if lo > hi {
			dst[i] = 0
			continue
		}

		cnt := hi - lo + 1
		r0 := m - 1 - i + lo
		prod := scratch[:cnt]
		vecmath.MulBlock(prod, a[lo:hi+1], rev[r0:r0+cnt])

		var sum float64
		for _, v := range prod {
			sum += v
		}

		dst[i] = sum
	}
}
