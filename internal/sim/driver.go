package sim

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/yeewave/internal/config"
	"github.com/san-kum/yeewave/internal/dynamo"
	"github.com/san-kum/yeewave/internal/logging"
	"github.com/san-kum/yeewave/internal/physics"
	"github.com/san-kum/yeewave/internal/viz"
)

// Driver owns the time-stepping loop. It runs entirely on the calling
// goroutine; only the Stepper may fan out.
type Driver struct {
	fs        *physics.FieldState
	stepper   Stepper
	surface   viz.Surface
	out       io.Writer
	opts      Options
	logger    logging.Logger
	now       func() time.Time
	observers []Observer
	metrics   []Metric
	phase     Phase
	tick      int
}

func New(fs *physics.FieldState, stepper Stepper, surface viz.Surface, out io.Writer, opts Options) (*Driver, error) {
	if opts.FPS < 1 {
		return nil, fmt.Errorf("%w: fps %d", dynamo.ErrParameterBounds, opts.FPS)
	}
	if opts.ProgressInterval < 1 {
		return nil, fmt.Errorf("%w: progress interval %d", dynamo.ErrParameterBounds, opts.ProgressInterval)
	}
	if !opts.Bench && (opts.Width < 1 || opts.Height < 1) {
		return nil, fmt.Errorf("%w: plot %dx%d", dynamo.ErrParameterBounds, opts.Width, opts.Height)
	}
	if opts.TotalTicks <= 0 {
		opts.TotalTicks = config.TicksPerCell * fs.N()
	}

	return &Driver{
		fs:      fs,
		stepper: stepper,
		surface: surface,
		out:     out,
		opts:    opts,
		logger:  logging.NewNopLogger(),
		now:     time.Now,
	}, nil
}

func (d *Driver) SetLogger(l logging.Logger)      { d.logger = l }
func (d *Driver) SetClock(now func() time.Time)   { d.now = now }
func (d *Driver) AddObserver(o Observer)          { d.observers = append(d.observers, o) }
func (d *Driver) AddMetric(m Metric)              { d.metrics = append(d.metrics, m) }
func (d *Driver) Phase() Phase                    { return d.phase }
func (d *Driver) Tick() int                       { return d.tick }
func (d *Driver) FieldState() *physics.FieldState { return d.fs }

// Run performs all TotalTicks ticks and prints the elapsed wall-clock time.
// There is no early exit: a killed process never reaches finalizing and
// leaves the cursor hidden.
func (d *Driver) Run() (*Report, error) {
	d.phase = PhaseInitializing
	total := d.opts.TotalTicks
	interval := time.Duration(1000/d.opts.FPS) * time.Millisecond
	report := &Report{
		TotalTicks: total,
		Strategy:   d.stepper.Strategy(),
		Metrics:    make(map[string]float64),
	}

	coeff := d.fs.Coefficients()
	d.logger.Debug("simulation configured",
		logging.Int("n", d.fs.N()),
		logging.Int("ticks", total),
		logging.String("strategy", report.Strategy),
		logging.Bool("bench", d.opts.Bench),
		logging.Float64("dt", coeff.Dt),
		logging.Float64("ce", coeff.CE),
		logging.Float64("ch", coeff.CH),
	)

	for _, m := range d.metrics {
		m.Reset()
	}

	d.surface.Clear()
	d.surface.Home()
	d.surface.HideCursor()
	if err := d.surface.Flush(); err != nil {
		return nil, err
	}
	d.notify(0)

	start := d.now()
	lastDraw := start
	d.phase = PhaseRunning

	for t := 1; t <= total; t++ {
		d.stepper.Step(d.fs)
		d.tick = t

		due := t%d.opts.ProgressInterval == 0
		if due {
			d.notify(t)
		}

		if d.opts.Bench {
			if due {
				if _, err := fmt.Fprintf(d.out, "%d/%d\n", t, total); err != nil {
					return report, d.abort(err)
				}
				report.ProgressLines++
			}
			continue
		}

		if d.now().Sub(lastDraw) >= interval {
			if err := d.draw(); err != nil {
				return report, d.abort(err)
			}
			report.Frames++
			lastDraw = d.now()
		}
	}

	d.phase = PhaseFinalizing
	report.Ticks = d.tick
	report.Elapsed = d.now().Sub(start)

	if _, err := fmt.Fprintf(d.out, "\nSimulation time: %.4f seconds\n", report.Elapsed.Seconds()); err != nil {
		return report, d.abort(err)
	}
	d.surface.ShowCursor()
	if err := d.surface.Flush(); err != nil {
		return report, err
	}

	for _, m := range d.metrics {
		report.Metrics[m.Name()] = m.Value()
	}

	d.logger.Debug("simulation finished",
		logging.Int("ticks", report.Ticks),
		logging.Int("frames", report.Frames),
		logging.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

func (d *Driver) notify(tick int) {
	for _, o := range d.observers {
		o.OnTick(tick, d.fs)
	}
	for _, m := range d.metrics {
		m.OnTick(tick, d.fs)
	}
}

func (d *Driver) draw() error {
	var b strings.Builder
	fields := []struct {
		data  []float64
		label string
		color string
	}{
		{d.fs.Ex(), "Ex", viz.ColorBlue},
		{d.fs.Hy(), "Hy", viz.ColorRed},
	}
	for _, f := range fields {
		opts := viz.WaveformOptions{Width: d.opts.Width, Height: d.opts.Height, Label: f.label, Color: f.color}
		if err := viz.RenderWaveform(&b, f.data, opts); err != nil {
			return err
		}
	}

	d.surface.Home()
	d.surface.WriteFrame(b.String())
	return d.surface.Flush()
}

// abort restores the cursor after a write failure and returns err.
func (d *Driver) abort(err error) error {
	d.logger.Error("simulation aborted", err, logging.Int("tick", d.tick))
	d.surface.ShowCursor()
	_ = d.surface.Flush()
	return err
}
