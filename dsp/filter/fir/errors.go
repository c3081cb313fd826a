package fir

import (
	"errors"

	"github.com/cwbudde/algo-firfilter/dsp/filter/fir/design"
)

var (
	// ErrInvalidParameter is returned for out-of-range or inconsistent
	// filter parameters.
	ErrInvalidParameter = design.ErrInvalidParameter

	// ErrNumericalDegeneracy is returned when a design produces unusable
	// coefficients.
	ErrNumericalDegeneracy = design.ErrNumericalDegeneracy

	// ErrInsufficientBlockLength is returned when a block has fewer
	// samples than the filter has taps.
	ErrInsufficientBlockLength = errors.New("fir: block shorter than filter")
)
