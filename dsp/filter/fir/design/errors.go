package design

import "errors"

var (
	// ErrInvalidParameter is returned when design parameters are out of
	// range or mutually inconsistent.
	ErrInvalidParameter = errors.New("design: invalid parameter")

	// ErrNumericalDegeneracy is returned when a design produces
	// non-finite taps or a filter with no passband gain.
	ErrNumericalDegeneracy = errors.New("design: numerical degeneracy")
)
