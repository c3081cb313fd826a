package fir

import (
	"fmt"
	"runtime"
	"sync"
)

// ApplyConvMatrix filters every row (channel) of data with ApplyConv.
func (d *Descriptor) ApplyConvMatrix(data [][]float64, keepOverhead bool, mode EdgeMode) ([][]float64, error) {
	return applyRows(data, func(row []float64) ([]float64, error) {
		return d.ApplyConv(row, keepOverhead, mode)
	})
}

// ApplyFFTMatrix filters every row (channel) of data with ApplyFFT.
func (d *Descriptor) ApplyFFTMatrix(data [][]float64, keepOverhead bool, mode EdgeMode) ([][]float64, error) {
	return applyRows(data, func(row []float64) ([]float64, error) {
		return d.ApplyFFT(row, keepOverhead, mode)
	})
}

// applyRows runs fn over the rows on up to GOMAXPROCS goroutines. If any
// row fails, the error of the lowest failing row is returned and no rows
// are.
func applyRows(data [][]float64, fn func([]float64) ([]float64, error)) ([][]float64, error) {
	out := make([][]float64, len(data))
	errs := make([]error, len(data))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, row := range data {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer func() {
				<-sem
				wg.Done()
			}()
			out[i], errs[i] = fn(row)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("fir: channel %d: %w", i, err)
		}
	}
	return out, nil
}
