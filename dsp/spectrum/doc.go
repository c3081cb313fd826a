// Package spectrum evaluates complex spectra and single tones.
//
// It does not compute transforms itself. Bin helpers operate on spectra
// produced elsewhere (for example a filter's forward spectrum) and the
// Goertzel probe measures one frequency of a real block directly.
package spectrum
