package fir

import "github.com/cwbudde/algo-firfilter/dsp/core"

// Stream filters a continuous signal sample by sample, carrying the
// delay line across calls. Its output is the causal convolution with the
// taps, delayed by Latency() samples and without edge handling.
//
// A Stream is not safe for concurrent use; create one per channel.
type Stream struct {
	rev  []float64 // taps, newest-sample coefficient last
	line []float64 // each sample is stored twice, len(rev) apart
	pos  int
}

// NewStream returns a Stream over a copy of taps.
func NewStream(taps []float64) *Stream {
	rev := make([]float64, len(taps))
	core.ReverseInto(rev, taps)
	return &Stream{
		rev:  rev,
		line: make([]float64, 2*len(taps)),
	}
}

// NewStream returns a Stream over the descriptor's forward taps.
func (d *Descriptor) NewStream() *Stream {
	return NewStream(d.taps)
}

// ProcessSample filters one sample:
//
//	y[n] = sum_k h[k] * x[n-k]
func (s *Stream) ProcessSample(x float64) float64 {
	n := len(s.rev)
	if n == 0 {
		return 0
	}

	s.line[s.pos] = x
	s.line[s.pos+n] = x

	// Oldest to newest sample, contiguous.
	win := s.line[s.pos+1 : s.pos+1+n]
	var y float64
	for j, h := range s.rev {
		y += h * win[j]
	}

	s.pos++
	if s.pos == n {
		s.pos = 0
	}
	return y
}

// ProcessBlock filters buf in place.
func (s *Stream) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst, which must be at least as long.
func (s *Stream) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i, x := range src {
		dst[i] = s.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (s *Stream) Reset() {
	core.Zero(s.line)
	s.pos = 0
}

// Latency returns the delay in whole samples between input and the
// centered filter response, (len(taps)-1)/2.
func (s *Stream) Latency() int {
	return max(len(s.rev)-1, 0) / 2
}
