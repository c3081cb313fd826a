package core

import (
	"math"
	"time"
)

// ProcessorConfig holds the acquisition settings shared by signal sources
// and block feeders: the sampling frequency in Hz and the number of samples
// delivered per block.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults suited to biosignal recordings:
// 1 kHz sampling and one-second blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 1000,
		BlockSize:  1000,
	}
}

// Nyquist returns half the sample rate.
func (c ProcessorConfig) Nyquist() float64 {
	return c.SampleRate / 2
}

// Duration returns the time n samples span at the sample rate. The result
// truncates to whole nanoseconds.
func (c ProcessorConfig) Duration(n int) time.Duration {
	return time.Duration(float64(n) / c.SampleRate * float64(time.Second))
}

// WithSampleRate sets the sample rate in Hz. Non-positive and infinite
// values are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 1) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the samples per block. Non-positive values are ignored.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies opts in order over DefaultProcessorConfig.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
