// Package conv provides the convolution engines behind FIR filter application.
//
// Two strategies are offered:
//
//   - Direct convolution: O(N*M) time-domain convolution. Any prefix of the
//     result can be computed with [DirectTo]; sample i only ever reads inputs
//     at or before i, so the engine is usable for causal processing.
//   - Overlap-add (OLA): FFT-based block convolution, efficient for long
//     signals and long kernels.
//
// # Usage
//
// One-shot convolution:
//
//	result, err := conv.Direct(signal, kernel)
//
// For repeated convolution with the same kernel, create a reusable convolver:
//
//	c, err := conv.NewOverlapAdd(kernel, 4096)
//	result, err := c.Process(signal)
//
// A convolver can also be built from a kernel spectrum that was computed
// elsewhere. The segment length must then equal fftSize - kernelLen exactly;
// this margin keeps circular wrap-around out of the linear result:
//
//	c, err := conv.NewOverlapAddSpectrum(spectrum, kernelLen, fftSize-kernelLen)
//
// An [OverlapAdd] holds no per-call state. Scratch buffers and FFT plans are
// pooled, so one convolver may be shared by concurrent goroutines.
package conv
