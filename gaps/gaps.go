package gaps

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrNoSamples is returned when exporting a recorder that never
// received a sample.
var ErrNoSamples = errors.New("gaps: no samples recorded")

// Sample is one convergence observation: the wall-clock time since the
// solve started and the relative gap at the end of that iteration.
type Sample struct {
	Elapsed time.Duration
	Gap     float64
}

// Recorder accumulates convergence samples across a solve.
// The zero value is not usable; construct with NewRecorder.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{samples: []Sample{}}
}

// Record appends one sample. Its signature matches assign.GapRecorder,
// so a Recorder wires into a solve as
// assign.WithGapRecorder(rec.Record).
func (r *Recorder) Record(elapsed time.Duration, gap float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples = append(r.samples, Sample{Elapsed: elapsed, Gap: gap})
}

// Len reports the number of recorded samples.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.samples)
}

// Samples returns a copy of the recorded samples in arrival order.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Sample, len(r.samples))
	copy(out, r.samples)

	return out
}

// WriteCSV writes the samples as a two-column CSV with an
// "elapsed_seconds,gap" header. Both columns carry nine decimals, the
// same precision the solver uses when rounding reported totals.
func (r *Recorder) WriteCSV(w io.Writer) error {
	samples := r.Samples()
	if len(samples) == 0 {
		return ErrNoSamples
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"elapsed_seconds", "gap"}); err != nil {
		return fmt.Errorf("gaps: write header: %w", err)
	}
	for _, s := range samples {
		record := []string{
			strconv.FormatFloat(s.Elapsed.Seconds(), 'f', 9, 64),
			strconv.FormatFloat(s.Gap, 'f', 9, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("gaps: write sample: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// RenderHTML renders the convergence trajectory as a self-contained
// go-echarts line chart: iteration number on the x-axis, relative gap
// on the y-axis.
func (r *Recorder) RenderHTML(w io.Writer, title string) error {
	samples := r.Samples()
	if len(samples) == 0 {
		return ErrNoSamples
	}

	page := components.NewPage()
	page.AddCharts(lineBase(samples, title))

	return page.Render(w)
}

// RenderToFile renders the chart to filename, appending ".html".
func (r *Recorder) RenderToFile(filename string) error {
	f, err := os.Create(filename + ".html")
	if err != nil {
		return fmt.Errorf("gaps: create chart file: %w", err)
	}
	defer f.Close()

	return r.RenderHTML(f, filename)
}

func lineBase(samples []Sample, title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "iteration",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "relative gap",
			Type: "log",
		}),
	)

	xs := make([]string, len(samples))
	ys := make([]opts.LineData, len(samples))
	for i, s := range samples {
		xs[i] = strconv.Itoa(i + 1)
		ys[i] = opts.LineData{Value: s.Gap}
	}

	line.SetXAxis(xs).AddSeries("gap", ys,
		charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(true),
		}),
	)

	return line
}
