package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-firfilter/dsp/core"
	"github.com/cwbudde/algo-firfilter/dsp/filter/fir"
	"github.com/cwbudde/algo-firfilter/dsp/signal"
	"github.com/cwbudde/algo-firfilter/dsp/spectrum"
	"github.com/cwbudde/algo-firfilter/dsp/window"
)

func printSummary(w io.Writer, d *fir.Descriptor) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", d.Name())
	fmt.Fprintf(tw, "Shape\t%v\n", d.Shape())
	fmt.Fprintf(tw, "Method\t%v\n", d.DesignMethod())
	if d.DesignMethod() == fir.CosineWindowDesign {
		var opts []window.Option
		name := d.Window().String()
		if d.Window() == window.TypeKaiser {
			opts = append(opts, window.WithAlpha(d.KaiserBeta()))
			name = fmt.Sprintf("%s (beta %.2f)", name, d.KaiserBeta())
		}
		if gain, err := window.CoherentGain(window.Generate(d.Window(), d.NumTaps(), opts...)); err == nil {
			fmt.Fprintf(tw, "Window\t%s, coherent gain %.4f\n", name, gain)
		}
	}
	fmt.Fprintf(tw, "Order\t%d (%d taps)\n", d.Order(), d.NumTaps())
	fmt.Fprintf(tw, "Band\t%.3f - %.3f Hz\n", d.LowCutoff(), d.HighCutoff())
	fmt.Fprintf(tw, "Transition\t%.3f Hz\n", d.TransitionWidth())
	fmt.Fprintf(tw, "Sample rate\t%.3f Hz\n", d.SampleRate())
	fmt.Fprintf(tw, "Transform\t%d (segment %d)\n", d.TransformLength(), d.SegmentLength())
	fmt.Fprintf(tw, "Group delay\t%.1f samples (%.3f ms)\n", d.GroupDelay(), 1000*d.GroupDelay()/d.SampleRate())
	tw.Flush()
	fmt.Fprintln(w)
}

func printResponse(w io.Writer, d *fir.Descriptor, points int) {
	freqs := d.Frequencies()
	mag := d.MagnitudeResponse()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Freq (Hz)\tGain\tdB\t\n")
	for i := range points {
		k := i * (len(freqs) - 1) / (points - 1)
		db := core.LinearToDB(mag[k])
		if db < -200 {
			db = -200
		}
		fmt.Fprintf(tw, "%.3f\t%.6f\t%.2f\t\n", freqs[k], mag[k], db)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// printProbes filters a tone at each probe frequency and reports the
// attenuation measured on the output, away from the block edges.
func printProbes(w io.Writer, d *fir.Descriptor, probes []float64, mode fir.EdgeMode) error {
	n := max(8*d.NumTaps(), int(4*d.SampleRate()))
	gen := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(d.SampleRate()), core.WithBlockSize(n)})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Probe (Hz)\tDesign dB\tMeasured dB\t\n")
	for _, f := range probes {
		in, err := gen.Sine(f, 1, 0)
		if err != nil {
			return err
		}
		out, err := d.ApplyFFT(in, false, mode)
		if err != nil {
			return err
		}

		m := d.Order()
		att, err := spectrum.Attenuation(in[m:n-m], out[m:n-m], f, d.SampleRate())
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%.3f\t%.2f\t%.2f\t\n", f, d.MagnitudeDB(f), -att)
	}
	tw.Flush()
	fmt.Fprintln(w)
	return nil
}

func printTaps(w io.Writer, d *fir.Descriptor) {
	for i, h := range d.TapsForward() {
		fmt.Fprintf(w, "h[%d] = %.12g\n", i, h)
	}
}
