package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ZeroComplex sets all values in buf to 0.
func ZeroComplex(buf []complex128) {
	for i := range buf {
		buf[i] = 0
	}
}

// Clone returns a copy of src. A nil or empty input yields an empty, non-nil slice.
func Clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// ReverseInto writes src in reverse order into dst and returns the number of
// written elements (the shorter of both lengths).
func ReverseInto(dst, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = src[len(src)-1-i]
	}
	return n
}
