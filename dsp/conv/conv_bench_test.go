package conv

import (
	"fmt"
	"math"
	"testing"
)

func BenchmarkDirect(b *testing.B) {
	sizes := []struct {
		signal int
		kernel int
	}{
		{1024, 33},
		{1024, 129},
		{4096, 33},
		{4096, 129},
		{4096, 513},
	}

	for _, size := range sizes {
		signal := makeTestSignal(size.signal)
		kernel := makeTestKernel(size.kernel)

		b.Run(fmt.Sprintf("signal=%d_kernel=%d", size.signal, size.kernel), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = Direct(signal, kernel)
			}
		})
	}
}

func BenchmarkOverlapAdd(b *testing.B) {
	sizes := []struct {
		signal  int
		kernel  int
		fftSize int
	}{
		{1024, 129, 1024},
		{4096, 129, 4096},
		{4096, 513, 4096},
		{16384, 1025, 4096},
	}

	for _, size := range sizes {
		signal := makeTestSignal(size.signal)
		kernel := makeTestKernel(size.kernel)

		oa, err := NewOverlapAdd(kernel, size.fftSize)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("signal=%d_kernel=%d_fft=%d", size.signal, size.kernel, size.fftSize), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = oa.Process(signal)
			}
		})
	}
}

func makeTestSignal(n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2*math.Pi*float64(i)/100) + 0.5*math.Cos(2*math.Pi*float64(i)/30)
	}
	return signal
}

func makeTestKernel(n int) []float64 {
	kernel := make([]float64, n)
	center := float64(n-1) / 2
	for i := range kernel {
		x := float64(i) - center
		if x == 0 {
			kernel[i] = 1.0
		} else {
			kernel[i] = math.Sin(math.Pi*x/4) / (math.Pi * x / 4)
		}
		kernel[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return kernel
}
