// Package fir designs, describes and applies linear-phase FIR filters to
// blocks of multichannel time-series data.
//
// A [Descriptor] is created once, either by designing coefficients from
// physical parameters ([New]) or by wrapping supplied coefficients
// ([NewFromTaps]). It holds the taps together with their zero-padded
// spectrum and is immutable afterwards, so any number of goroutines may
// filter with it concurrently.
//
// Blocks are filtered by direct convolution ([ApplyConv]) or by FFT
// overlap-add ([ApplyFFT]). Both paths extend the block according to an
// [EdgeMode] before filtering and strip the result afterwards, removing
// the extension and the order/2 sample group delay so the output lines up
// with the input. For sample-continuous processing across block
// boundaries use a [Stream].
package fir
