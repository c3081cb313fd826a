package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-firfilter/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidInput is returned for empty inputs or non-positive sizes.
var ErrInvalidInput = errors.New("spectrum: invalid input")

type splitBuf struct {
	data []float64
}

var splitPool = sync.Pool{
	New: func() any { return &splitBuf{} },
}

// split copies bins into pooled real and imaginary slices.
func split(in []complex128) (re, im []float64, buf *splitBuf) {
	buf = splitPool.Get().(*splitBuf)
	n := len(in)
	buf.data = core.EnsureLen(buf.data, 2*n)
	re, im = buf.data[:n], buf.data[n:]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Magnitude(out, re, im)
	splitPool.Put(buf)
	return out
}

// Power returns |X[k]|^2 for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Power(out, re, im)
	splitPool.Put(buf)
	return out
}

// MagnitudeDB returns 20*log10|X[k]|, floored at floorDB.
func MagnitudeDB(in []complex128, floorDB float64) []float64 {
	p := Power(in)
	floor := math.Pow(10, floorDB/10)
	for i, v := range p {
		if v <= floor {
			p[i] = floorDB
			continue
		}
		p[i] = 10 * math.Log10(v)
	}
	return p
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase removes +/-2*pi jumps between consecutive bins.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

// GroupDelay returns -d(phase)/d(omega) in samples for unwrapped phase
// sampled on the bins of an fftSize-point transform. Interior bins use a
// centered difference, the end bins one-sided differences.
func GroupDelay(unwrapped []float64, fftSize int) ([]float64, error) {
	if len(unwrapped) < 2 {
		return nil, fmt.Errorf("%w: group delay needs at least 2 phase points, got %d", ErrInvalidInput, len(unwrapped))
	}
	if fftSize <= 0 {
		return nil, fmt.Errorf("%w: fftSize must be > 0, got %d", ErrInvalidInput, fftSize)
	}

	dw := 2 * math.Pi / float64(fftSize)
	last := len(unwrapped) - 1
	out := make([]float64, len(unwrapped))
	for i := range unwrapped {
		var dphi float64
		switch i {
		case 0:
			dphi = unwrapped[1] - unwrapped[0]
		case last:
			dphi = unwrapped[last] - unwrapped[last-1]
		default:
			dphi = (unwrapped[i+1] - unwrapped[i-1]) / 2
		}
		out[i] = -dphi / dw
	}
	return out, nil
}
