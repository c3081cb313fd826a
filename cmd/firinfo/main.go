// Command firinfo designs a FIR filter and prints its properties.
//
// Usage:
//
//	firinfo [flags]
//
// It prints the design summary, a magnitude response table and the
// attenuation measured by filtering probe tones. With -taps the
// coefficients are printed as well.
//
// Examples:
//
//	firinfo -shape LPF -fc 40 -tw 10 -fs 250 -order 64
//	firinfo -shape NOTCH -fc 50 -bw 10 -tw 5 -fs 250 -order 256 -probe 10,50
//	firinfo -shape BPF -fc 20 -bw 16 -tw 6 -method Tschebyscheff -order 128
//	firinfo -shape LPF -fc 30 -tw 8 -window Kaiser -beta 10
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-firfilter/dsp/filter/fir"
	"github.com/cwbudde/algo-firfilter/dsp/filter/fir/design"
	"github.com/cwbudde/algo-firfilter/dsp/window"
)

type options struct {
	name   string
	shape  fir.Shape
	order  int
	fc     float64
	bw     float64
	tw     float64
	fs     float64
	method fir.Method
	window window.Type
	beta   float64
	nfft   int
	points int
	probes []float64
	mode   fir.EdgeMode
	taps   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	d, err := fir.New(opts.name, opts.shape, opts.order, opts.fc, opts.bw, opts.tw, opts.fs,
		fir.WithDesignMethod(opts.method),
		fir.WithWindow(opts.window),
		fir.WithKaiserBeta(opts.beta),
		fir.WithTransformLength(opts.nfft),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	printSummary(stdout, d)
	printResponse(stdout, d, opts.points)

	if len(opts.probes) > 0 {
		if err := printProbes(stdout, d, opts.probes, opts.mode); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	if opts.taps {
		printTaps(stdout, d)
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("firinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "filter", "filter name")
	shape := fs.String("shape", "LPF", "filter shape: LPF, HPF, BPF or NOTCH")
	order := fs.Int("order", 128, "filter order (taps = order+1)")
	fc := fs.Float64("fc", 40, "cutoff or center frequency in Hz")
	bw := fs.Float64("bw", 0, "bandwidth in Hz (BPF, NOTCH)")
	tw := fs.Float64("tw", 5, "transition width in Hz")
	rate := fs.Float64("fs", 250, "sampling frequency in Hz")
	method := fs.String("method", "Cosine", "design method: Cosine or Tschebyscheff")
	win := fs.String("window", fir.DefaultWindow.String(), "truncation window for the Cosine method")
	beta := fs.Float64("beta", window.DefaultKaiserBeta, "beta of the Kaiser window")
	nfft := fs.Int("nfft", fir.DefaultTransformLength, "transform length (power of two)")
	points := fs.Int("points", 16, "rows in the response table")
	probes := fs.String("probe", "", "comma-separated probe tone frequencies in Hz")
	mode := fs.String("edge", fir.MirrorData.String(), "edge mode: MirrorData, ZeroPad or NoEdgeEffectCompensation")
	taps := fs.Bool("taps", false, "print the coefficients")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: firinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Designs a FIR filter and prints its response.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  firinfo -shape NOTCH -fc 50 -bw 10 -order 256 -probe 10,50\n")
		fmt.Fprintf(stderr, "  firinfo -shape HPF -fc 1 -tw 1 -order 512 -method Tschebyscheff\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{
		name:   *name,
		order:  *order,
		fc:     *fc,
		bw:     *bw,
		tw:     *tw,
		fs:     *rate,
		beta:   *beta,
		nfft:   *nfft,
		points: *points,
		taps:   *taps,
	}

	opts.shape = design.ParseShape(strings.ToUpper(*shape))
	if opts.shape.String() != strings.ToUpper(*shape) {
		return options{}, fmt.Errorf("unknown shape %q", *shape)
	}

	opts.method = design.ParseMethod(*method)
	if opts.method == fir.ExternallySupplied {
		return options{}, fmt.Errorf("unknown design method %q", *method)
	}

	wt, err := window.ParseType(*win)
	if err != nil {
		return options{}, err
	}
	opts.window = wt

	opts.mode = fir.ParseEdgeMode(*mode)
	if opts.mode.String() != *mode {
		return options{}, fmt.Errorf("unknown edge mode %q", *mode)
	}

	if *probes != "" {
		for _, field := range strings.Split(*probes, ",") {
			f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return options{}, fmt.Errorf("probe %q: %w", field, err)
			}
			opts.probes = append(opts.probes, f)
		}
	}

	if opts.points < 2 {
		return options{}, fmt.Errorf("-points must be >= 2, got %d", opts.points)
	}

	return opts, nil
}
