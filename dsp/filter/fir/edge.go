package fir

import (
	"fmt"

	"github.com/cwbudde/algo-firfilter/dsp/core"
)

// EdgeMode selects how a block is extended before filtering.
type EdgeMode int

const (
	// MirrorData extends the block with order samples mirrored at each
	// end. It is the default.
	MirrorData EdgeMode = iota
	// ZeroPad extends the block with order zeros at each end.
	ZeroPad
	// NoEdgeEffectCompensation filters the block as is.
	NoEdgeEffectCompensation
)

var edgeModeNames = [...]string{
	MirrorData:               "MirrorData",
	ZeroPad:                  "ZeroPad",
	NoEdgeEffectCompensation: "NoEdgeEffectCompensation",
}

// String returns the configuration name of the mode.
func (m EdgeMode) String() string {
	if m < 0 || int(m) >= len(edgeModeNames) {
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
	return edgeModeNames[m]
}

// ParseEdgeMode maps a configuration name to a mode. Unknown names map to
// [MirrorData].
func ParseEdgeMode(name string) EdgeMode {
	for m, n := range edgeModeNames {
		if n == name {
			return EdgeMode(m)
		}
	}
	return MirrorData
}

// MarshalText implements encoding.TextMarshaler.
func (m EdgeMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *EdgeMode) UnmarshalText(text []byte) error {
	*m = ParseEdgeMode(string(text))
	return nil
}

// Valid reports whether m is one of the defined modes.
func (m EdgeMode) Valid() bool {
	return m >= MirrorData && m <= NoEdgeEffectCompensation
}

// Padding returns the number of samples Extend adds at each end.
func (m EdgeMode) Padding(order int) int {
	if m == NoEdgeEffectCompensation {
		return 0
	}
	return order
}

// Extend returns a new slice holding block with Padding(order) samples
// added at each end.
func Extend(block []float64, order int, mode EdgeMode) ([]float64, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: order must be >= 0, got %d", ErrInvalidParameter, order)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown edge mode %v", ErrInvalidParameter, mode)
	}

	n := len(block)
	pad := mode.Padding(order)
	out := make([]float64, n+2*pad)
	copy(out[pad:], block)

	if mode == MirrorData {
		if n < order {
			return nil, fmt.Errorf("%w: mirroring %d samples needs a block of at least %d, got %d",
				ErrInsufficientBlockLength, order, order, n)
		}
		core.ReverseInto(out[:pad], block[:order])
		core.ReverseInto(out[pad+n:], block[n-order:])
	}

	return out, nil
}

// Strip cuts the part of a filtered extended block that corresponds to the
// original blockLen samples.
//
// filtered is the full causal convolution of the extended block with order+1
// taps. With keepOverhead the first blockLen+2*pad samples are returned
// unaligned. Otherwise blockLen samples starting at pad+order/2 are
// returned, which removes the extension and the group delay.
func Strip(filtered []float64, blockLen, order int, mode EdgeMode, keepOverhead bool) ([]float64, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown edge mode %v", ErrInvalidParameter, mode)
	}
	pad := mode.Padding(order)

	start, n := pad+order/2, blockLen
	if keepOverhead {
		start, n = 0, blockLen+2*pad
	}

	if blockLen < 0 || start+n > len(filtered) {
		return nil, fmt.Errorf("%w: %d filtered samples cannot hold %d from offset %d",
			ErrInsufficientBlockLength, len(filtered), n, start)
	}

	out := make([]float64, n)
	copy(out, filtered[start:start+n])
	return out, nil
}
