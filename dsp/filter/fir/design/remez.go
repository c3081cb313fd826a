package design

import (
	"fmt"
	"math"
)

const (
	remezGridDensity   = 16
	remezMaxIterations = 40
	remezTolerance     = 1e-4
)

// Remez designs a symmetric (type I or II) linear-phase FIR filter with
// the Parks-McClellan exchange algorithm.
//
// bands holds band edge pairs in cycles per sample, ascending within
// [0, 0.5]. desired and weights hold one value per band. The result
// minimizes the maximum weighted error over all bands.
//
// Remez returns ErrNumericalDegeneracy when the extremal set loses
// alternation. This happens for very short multi-band filters (bandpass or
// notch of order 12 or less with wide transitions), which have too few
// extrema for the band layout, and for specifications whose optimal
// ripple lies below double precision (roughly 140 dB attenuation).
func Remez(numTaps int, bands, desired, weights []float64) ([]float64, error) {
	if err := checkRemezArgs(numTaps, bands, desired, weights); err != nil {
		return nil, err
	}

	even := numTaps%2 == 0
	r := numTaps / 2
	if !even {
		r++
	}

	grid, des, wt := denseGrid(r, even, bands, desired, weights)
	if len(grid) <= r {
		return nil, fmt.Errorf("%w: bands too narrow for %d taps", ErrInvalidParameter, numTaps)
	}

	// Type II filters are Q(f) = cos(pi*f) times a cosine sum.
	if even {
		for i, f := range grid {
			c := math.Cos(math.Pi * f)
			des[i] /= c
			wt[i] *= c
		}
	}

	ext := initialGuess(r, len(grid))
	st := newRemezState(r)
	errs := make([]float64, len(grid))

	for range remezMaxIterations {
		st.calcParms(ext, grid, des, wt)
		for i, f := range grid {
			errs[i] = wt[i] * (des[i] - st.computeA(f))
		}

		next, ok := search(r, ext, errs)
		if !ok {
			return nil, fmt.Errorf("%w: remez lost alternation", ErrNumericalDegeneracy)
		}
		ext = next

		if converged(ext, errs) {
			break
		}
	}

	st.calcParms(ext, grid, des, wt)

	amp := make([]float64, numTaps/2+1)
	for i := range amp {
		f := float64(i) / float64(numTaps)
		c := 1.0
		if even {
			c = math.Cos(math.Pi * f)
		}
		amp[i] = st.computeA(f) * c
	}

	return frequencySample(numTaps, amp), nil
}

func checkRemezArgs(numTaps int, bands, desired, weights []float64) error {
	if numTaps < 2 {
		return fmt.Errorf("%w: remez needs at least 2 taps, got %d", ErrInvalidParameter, numTaps)
	}
	nb := len(desired)
	if nb == 0 || len(bands) != 2*nb || len(weights) != nb {
		return fmt.Errorf("%w: remez needs 2 edges, 1 desired value and 1 weight per band", ErrInvalidParameter)
	}

	prev := 0.0
	for i := range nb {
		lo, hi := bands[2*i], bands[2*i+1]
		if !(lo >= prev && lo < hi && hi <= 0.5) {
			return fmt.Errorf("%w: band %d [%v, %v] not ascending within [0, 0.5]", ErrInvalidParameter, i, lo, hi)
		}
		if !(weights[i] > 0) || math.IsInf(weights[i], 0) {
			return fmt.Errorf("%w: band %d weight must be > 0, got %v", ErrInvalidParameter, i, weights[i])
		}
		if math.IsNaN(desired[i]) || math.IsInf(desired[i], 0) {
			return fmt.Errorf("%w: band %d desired value %v", ErrInvalidParameter, i, desired[i])
		}
		prev = hi
	}
	return nil
}

// denseGrid samples every band at spacing 0.5/(density*r). Each band
// ends exactly on its upper edge. Type II grids stop short of 0.5, where
// the cos(pi*f) factor vanishes.
func denseGrid(r int, even bool, bands, desired, weights []float64) (grid, des, wt []float64) {
	delf := 0.5 / float64(remezGridDensity*r)

	for b := range desired {
		lo, hi := bands[2*b], bands[2*b+1]
		k := max(int((hi-lo)/delf+0.5), 1)
		for i := range k {
			f := lo + float64(i)*delf
			if i == k-1 {
				f = hi
			}
			grid = append(grid, f)
			des = append(des, desired[b])
			wt = append(wt, weights[b])
		}
	}

	if last := len(grid) - 1; even && last >= 0 && grid[last] > 0.5-delf {
		grid[last] = 0.5 - delf
	}
	return grid, des, wt
}

// initialGuess spreads r+1 extremal indices evenly over the grid.
func initialGuess(r, gridSize int) []int {
	ext := make([]int, r+1)
	for i := range ext {
		ext[i] = i * (gridSize - 1) / r
	}
	return ext
}

// remezState holds the barycentric interpolation of the current
// alternation set.
type remezState struct {
	ad, x, y []float64
}

func newRemezState(r int) *remezState {
	return &remezState{
		ad: make([]float64, r+1),
		x:  make([]float64, r+1),
		y:  make([]float64, r+1),
	}
}

// calcParms computes the Lagrange weights, the alternating deviation and
// the interpolated values at the extremal frequencies.
func (st *remezState) calcParms(ext []int, grid, des, wt []float64) {
	r := len(ext) - 1

	for i, e := range ext {
		st.x[i] = math.Cos(2 * math.Pi * grid[e])
	}

	// Products are taken over interleaved subsets to keep them in range.
	ld := (r-1)/15 + 1
	for i := range ext {
		denom := 1.0
		xi := st.x[i]
		for j := range ld {
			for k := j; k <= r; k += ld {
				if k != i {
					denom *= 2 * (xi - st.x[k])
				}
			}
		}
		if math.Abs(denom) < 1e-5 {
			denom = 1e-5
		}
		st.ad[i] = 1 / denom
	}

	var num, den float64
	sign := 1.0
	for i, e := range ext {
		num += st.ad[i] * des[e]
		den += sign * st.ad[i] / wt[e]
		sign = -sign
	}
	delta := num / den

	sign = 1.0
	for i, e := range ext {
		st.y[i] = des[e] - sign*delta/wt[e]
		sign = -sign
	}
}

// computeA evaluates the interpolated cosine sum at frequency f.
func (st *remezState) computeA(f float64) float64 {
	xc := math.Cos(2 * math.Pi * f)

	var num, den float64
	for i := range st.ad {
		c := xc - st.x[i]
		if math.Abs(c) < 1e-7 {
			return st.y[i]
		}
		c = st.ad[i] / c
		den += c
		num += c * st.y[i]
	}
	return num / den
}

// search locates the local extrema of the weighted error and reduces them
// to r+1 alternating extrema. It reports false when fewer than r+1 remain.
func search(r int, ext []int, errs []float64) ([]int, bool) {
	n := len(errs)
	found := make([]int, 0, 2*r)

	// Endpoints count when they are not beaten by their neighbor.
	if (errs[0] > 0 && errs[0] > errs[1]) || (errs[0] < 0 && errs[0] < errs[1]) {
		found = append(found, 0)
	}
	for i := 1; i < n-1; i++ {
		if (errs[i] >= errs[i-1] && errs[i] > errs[i+1] && errs[i] > 0) ||
			(errs[i] <= errs[i-1] && errs[i] < errs[i+1] && errs[i] < 0) {
			found = append(found, i)
		}
	}
	j := n - 1
	if (errs[j] > 0 && errs[j] > errs[j-1]) || (errs[j] < 0 && errs[j] < errs[j-1]) {
		found = append(found, j)
	}

	if len(found) < r+1 {
		return ext, false
	}

	// Within runs of equal sign keep only the largest error.
	for len(found) > r+1 {
		extra := len(found) - (r + 1)

		up := errs[found[0]] > 0
		alt := true
		l := 0
		for i := 1; i < len(found); i++ {
			if math.Abs(errs[found[i]]) < math.Abs(errs[found[l]]) {
				l = i
			}
			if up && errs[found[i]] < 0 {
				up = false
			} else if !up && errs[found[i]] > 0 {
				up = true
			} else {
				alt = false
				break
			}
		}

		// Alternating already: trim the smaller end when one is left over.
		if alt && extra == 1 {
			if math.Abs(errs[found[len(found)-1]]) < math.Abs(errs[found[0]]) {
				l = len(found) - 1
			} else {
				l = 0
			}
		}

		found = append(found[:l], found[l+1:]...)
	}

	return found, true
}

// converged reports whether the extremal errors agree to within the
// relative tolerance.
func converged(ext []int, errs []float64) bool {
	minE, maxE := math.Inf(1), 0.0
	for _, e := range ext {
		v := math.Abs(errs[e])
		minE = min(minE, v)
		maxE = max(maxE, v)
	}
	if maxE == 0 {
		return true
	}
	return (maxE-minE)/maxE < remezTolerance
}

// frequencySample converts the amplitude response sampled at k/numTaps,
// k = 0..numTaps/2, to symmetric impulse response taps.
func frequencySample(numTaps int, amp []float64) []float64 {
	h := make([]float64, numTaps)
	center := float64(numTaps-1) / 2
	last := (numTaps - 1) / 2
	if numTaps%2 == 0 {
		last = numTaps/2 - 1
	}

	for n := range h {
		x := 2 * math.Pi * (float64(n) - center) / float64(numTaps)
		v := amp[0]
		for k := 1; k <= last; k++ {
			v += 2 * amp[k] * math.Cos(x*float64(k))
		}
		h[n] = v / float64(numTaps)
	}
	return h
}
