// Package rtfeed replays a recorded channel matrix as a paced stream of
// blocks, optionally filtering and averaging each block on the way.
//
// It stands in for an acquisition device when testing consumers of
// filtered data: a [Feeder] emits one [Block] per interval on a channel
// until its context is cancelled or the data runs out.
package rtfeed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-firfilter/dsp/core"
	"github.com/cwbudde/algo-firfilter/dsp/filter/fir"
)

// ErrInvalidConfig is returned for empty or ragged data and inconsistent
// feeder settings.
var ErrInvalidConfig = errors.New("rtfeed: invalid configuration")

// Path selects the filter implementation applied to each block.
type Path int

const (
	// PathFFT filters by overlap-add.
	PathFFT Path = iota
	// PathConv filters by direct convolution.
	PathConv
)

// Block is one delivery: Data holds one row per channel.
type Block struct {
	Seq    int // 0 for the first block
	Offset int // index of the first source sample consumed
	Data   [][]float64
}

type config struct {
	interval time.Duration
	average  int
	loop     bool
	filter   *fir.Descriptor
	path     Path
	mode     fir.EdgeMode
}

// Option configures a Feeder.
type Option func(*config)

// WithInterval sets the delivery period. The default is the real-time
// duration of the source samples one block consumes.
func WithInterval(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.interval = d
		}
	}
}

// WithAverage makes every output sample the mean of n consecutive source
// samples. Values below 1 are ignored.
func WithAverage(n int) Option {
	return func(cfg *config) {
		if n >= 1 {
			cfg.average = n
		}
	}
}

// WithLoop restarts at the first sample when the data is exhausted.
func WithLoop(loop bool) Option {
	return func(cfg *config) {
		cfg.loop = loop
	}
}

// WithFilter filters every consumed chunk with d before averaging.
func WithFilter(d *fir.Descriptor, path Path, mode fir.EdgeMode) Option {
	return func(cfg *config) {
		cfg.filter = d
		cfg.path = path
		cfg.mode = mode
	}
}

// Feeder delivers blocks of a channel × sample matrix. It is driven by a
// single goroutine.
type Feeder struct {
	data   [][]float64
	proc   core.ProcessorConfig
	cfg    config
	cursor int
	seq    int
}

// New creates a feeder over data, which is not copied and must not be
// modified while the feeder runs. The processor config supplies the block
// size (output samples per block) and the sample rate.
func New(data [][]float64, procOpts []core.ProcessorOption, opts ...Option) (*Feeder, error) {
	f := &Feeder{
		data: data,
		proc: core.ApplyProcessorOptions(procOpts...),
		cfg:  config{average: 1},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&f.cfg)
		}
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidConfig)
	}
	for i, row := range data {
		if len(row) != len(data[0]) {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrInvalidConfig, i, len(row), len(data[0]))
		}
	}

	chunk := f.ChunkLen()
	if len(data[0]) < chunk {
		return nil, fmt.Errorf("%w: %d samples per channel, one block consumes %d",
			ErrInvalidConfig, len(data[0]), chunk)
	}
	if f.cfg.filter != nil {
		if chunk < f.cfg.filter.NumTaps() {
			return nil, fmt.Errorf("%w: block of %d samples is shorter than the %d-tap filter",
				ErrInvalidConfig, chunk, f.cfg.filter.NumTaps())
		}
		if !f.cfg.mode.Valid() {
			return nil, fmt.Errorf("%w: unknown edge mode %v", ErrInvalidConfig, f.cfg.mode)
		}
	}

	if f.cfg.interval == 0 {
		f.cfg.interval = f.proc.Duration(chunk)
		if f.cfg.interval <= 0 {
			return nil, fmt.Errorf("%w: %d samples at %v Hz last less than a nanosecond",
				ErrInvalidConfig, chunk, f.proc.SampleRate)
		}
	}

	return f, nil
}

// ChunkLen returns the number of source samples per channel one block
// consumes.
func (f *Feeder) ChunkLen() int {
	return f.proc.BlockSize * f.cfg.average
}

// Interval returns the delivery period.
func (f *Feeder) Interval() time.Duration {
	return f.cfg.interval
}

// Rewind restarts delivery at the first sample.
func (f *Feeder) Rewind() {
	f.cursor = 0
	f.seq = 0
}

// Next produces the next block immediately. It reports false when the
// data is exhausted and looping is off; a partial trailing chunk is not
// delivered.
func (f *Feeder) Next() (Block, bool, error) {
	chunk := f.ChunkLen()
	total := len(f.data[0])

	if f.cursor+chunk > total && !f.cfg.loop {
		return Block{}, false, nil
	}

	offset := f.cursor
	rows := make([][]float64, len(f.data))
	for ch, src := range f.data {
		row := make([]float64, chunk)
		for i := range row {
			row[i] = src[(offset+i)%total]
		}
		rows[ch] = row
	}
	f.cursor = offset + chunk
	if f.cfg.loop {
		f.cursor %= total
	}

	if f.cfg.filter != nil {
		var err error
		switch f.cfg.path {
		case PathConv:
			rows, err = f.cfg.filter.ApplyConvMatrix(rows, false, f.cfg.mode)
		default:
			rows, err = f.cfg.filter.ApplyFFTMatrix(rows, false, f.cfg.mode)
		}
		if err != nil {
			return Block{}, false, err
		}
	}

	if f.cfg.average > 1 {
		for ch, row := range rows {
			rows[ch] = average(row, f.cfg.average)
		}
	}

	b := Block{Seq: f.seq, Offset: offset, Data: rows}
	f.seq++
	return b, true, nil
}

// average returns the means of consecutive groups of n samples.
func average(row []float64, n int) []float64 {
	out := make([]float64, len(row)/n)
	inv := 1 / float64(n)
	for i := range out {
		var sum float64
		for _, v := range row[i*n : (i+1)*n] {
			sum += v
		}
		out[i] = sum * inv
	}
	return out
}

// Run delivers one block per interval on out until ctx is cancelled, the
// data is exhausted or filtering fails. It closes out before returning.
// Exhaustion returns nil, cancellation returns ctx.Err().
func (f *Feeder) Run(ctx context.Context, out chan<- Block) error {
	defer close(out)

	ticker := time.NewTicker(f.cfg.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		b, ok, err := f.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		select {
		case out <- b:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
