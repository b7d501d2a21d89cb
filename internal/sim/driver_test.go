package sim_test

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/yeewave/internal/dynamo"
	"github.com/san-kum/yeewave/internal/metrics"
	"github.com/san-kum/yeewave/internal/physics"
	"github.com/san-kum/yeewave/internal/sim"
)

type recordingSurface struct {
	calls    []string
	frames   []string
	flushErr error
}

func (s *recordingSurface) Clear()      { s.calls = append(s.calls, "clear") }
func (s *recordingSurface) Home()       { s.calls = append(s.calls, "home") }
func (s *recordingSurface) HideCursor() { s.calls = append(s.calls, "hide") }
func (s *recordingSurface) ShowCursor() { s.calls = append(s.calls, "show") }
func (s *recordingSurface) Flush() error {
	s.calls = append(s.calls, "flush")
	return s.flushErr
}
func (s *recordingSurface) WriteFrame(text string) {
	s.calls = append(s.calls, "frame")
	s.frames = append(s.frames, text)
}

func (s *recordingSurface) count(call string) int {
	n := 0
	for _, c := range s.calls {
		if c == call {
			n++
		}
	}
	return n
}

// manualClock only moves when a tickingStepper steps.
type manualClock struct{ t time.Time }

func (c *manualClock) Now() time.Time { return c.t }

type tickingStepper struct {
	inner *physics.Engine
	clock *manualClock
	per   time.Duration
	steps int
}

func (s *tickingStepper) Step(fs *physics.FieldState) {
	s.inner.Step(fs)
	s.steps++
	s.clock.t = s.clock.t.Add(s.per)
}

func (s *tickingStepper) Strategy() string { return s.inner.Strategy() }

type phaseRecorder struct {
	driver *sim.Driver
	ticks  []int
	phases []sim.Phase
}

func (p *phaseRecorder) OnTick(tick int, fs *physics.FieldState) {
	p.ticks = append(p.ticks, tick)
	p.phases = append(p.phases, p.driver.Phase())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

var _ = Describe("Driver", func() {
	var (
		fs      *physics.FieldState
		surface *recordingSurface
		out     *bytes.Buffer
	)

	BeforeEach(func() {
		fs = physics.NewFieldState(100, 0.5)
		surface = &recordingSurface{}
		out = &bytes.Buffer{}
	})

	Context("in benchmark mode", func() {
		var (
			driver *sim.Driver
			report *sim.Report
		)

		BeforeEach(func() {
			var err error
			driver, err = sim.New(fs, physics.NewEngine(dynamo.Sequential{}), surface, out, sim.Options{
				Bench:            true,
				FPS:              60,
				ProgressInterval: 100,
			})
			Expect(err).NotTo(HaveOccurred())
			report, err = driver.Run()
			Expect(err).NotTo(HaveOccurred())
		})

		It("runs exactly 8N ticks", func() {
			Expect(report.Ticks).To(Equal(800))
			Expect(report.TotalTicks).To(Equal(800))
			Expect(driver.Tick()).To(Equal(800))
		})

		It("prints a progress line at every multiple of 100", func() {
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			Expect(report.ProgressLines).To(Equal(8))
			for i := 0; i < 8; i++ {
				Expect(lines[i]).To(Equal(fmt.Sprintf("%d/800", (i+1)*100)))
			}
		})

		It("ends with the simulation time line", func() {
			Expect(out.String()).To(MatchRegexp(`\nSimulation time: \d+\.\d{4} seconds\n$`))
		})

		It("never renders", func() {
			Expect(surface.frames).To(BeEmpty())
			Expect(report.Frames).To(BeZero())
		})

		It("hides the cursor first and restores it last", func() {
			Expect(surface.calls[:3]).To(Equal([]string{"clear", "home", "hide"}))
			Expect(surface.calls[len(surface.calls)-2:]).To(Equal([]string{"show", "flush"}))
		})

		It("finishes in the finalizing phase", func() {
			Expect(driver.Phase()).To(Equal(sim.PhaseFinalizing))
		})

		It("leaves the boundary samples untouched", func() {
			fresh := physics.NewFieldState(100, 0.5)
			Expect(fs.Ex()[0]).To(Equal(fresh.Ex()[0]))
			Expect(fs.Ex()[99]).To(Equal(fresh.Ex()[99]))
			Expect(fs.Hy()).To(HaveLen(99))
		})
	})

	Context("in render mode", func() {
		var (
			clock   *manualClock
			stepper *tickingStepper
			driver  *sim.Driver
		)

		BeforeEach(func() {
			fs = physics.NewFieldState(10, 0.5)
			clock = &manualClock{t: time.Unix(0, 0)}
			stepper = &tickingStepper{
				inner: physics.NewEngine(dynamo.Sequential{}),
				clock: clock,
				per:   5 * time.Millisecond,
			}
			var err error
			driver, err = sim.New(fs, stepper, surface, out, sim.Options{
				FPS:              100,
				ProgressInterval: 100,
				Width:            20,
				Height:           3,
			})
			Expect(err).NotTo(HaveOccurred())
			driver.SetClock(clock.Now)
		})

		It("throttles frames to the frame interval", func() {
			report, err := driver.Run()
			Expect(err).NotTo(HaveOccurred())

			// 5ms per tick against a 10ms interval: every second tick.
			Expect(stepper.steps).To(Equal(80))
			Expect(report.Frames).To(Equal(40))
			Expect(surface.frames).To(HaveLen(40))
		})

		It("draws both fields with their labels and colours", func() {
			_, err := driver.Run()
			Expect(err).NotTo(HaveOccurred())

			frame := surface.frames[0]
			Expect(strings.Count(frame, "\n")).To(Equal(2 * (3 + 2)))
			Expect(frame).To(ContainSubstring("Ex"))
			Expect(frame).To(ContainSubstring("Hy"))
			Expect(frame).To(ContainSubstring("\x1b[34m"))
			Expect(frame).To(ContainSubstring("\x1b[31m"))
		})

		It("homes the cursor before each frame", func() {
			_, err := driver.Run()
			Expect(err).NotTo(HaveOccurred())

			for i, c := range surface.calls {
				if c == "frame" {
					Expect(surface.calls[i-1]).To(Equal("home"))
				}
			}
		})

		It("prints no progress lines", func() {
			_, err := driver.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).NotTo(MatchRegexp(`\d+/80`))
			Expect(regexp.MustCompile(`Simulation time: 0\.4000 seconds`).MatchString(out.String())).To(BeTrue())
		})

		It("shows the cursor again after the last frame", func() {
			_, err := driver.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(surface.count("hide")).To(Equal(1))
			Expect(surface.count("show")).To(Equal(1))
		})
	})

	Context("with observers", func() {
		It("samples before the first tick and at every interval while running", func() {
			driver, err := sim.New(fs, physics.NewEngine(dynamo.Sequential{}), surface, out, sim.Options{
				Bench:            true,
				FPS:              60,
				ProgressInterval: 200,
			})
			Expect(err).NotTo(HaveOccurred())

			rec := &phaseRecorder{driver: driver}
			driver.AddObserver(rec)
			drift := metrics.NewEnergyDrift()
			driver.AddMetric(drift)

			report, err := driver.Run()
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.ticks).To(Equal([]int{0, 200, 400, 600, 800}))
			Expect(rec.phases[0]).To(Equal(sim.PhaseInitializing))
			for _, p := range rec.phases[1:] {
				Expect(p).To(Equal(sim.PhaseRunning))
			}
			Expect(drift.Samples()).To(Equal(5))
			Expect(report.Metrics).To(HaveKeyWithValue("energy_drift", drift.Value()))
			Expect(report.ProgressLines).To(Equal(4))
		})
	})

	Context("with the parallel strategy", func() {
		It("matches a sequential run", func() {
			seqFS := physics.NewFieldState(300, 0.5)
			parFS := physics.NewFieldState(300, 0.5)
			opts := sim.Options{Bench: true, FPS: 60, ProgressInterval: 100, TotalTicks: 600}

			seq, err := sim.New(seqFS, physics.NewEngine(dynamo.Sequential{}), &recordingSurface{}, &bytes.Buffer{}, opts)
			Expect(err).NotTo(HaveOccurred())
			par, err := sim.New(parFS, physics.NewEngine(dynamo.NewParallel(4, 16)), &recordingSurface{}, &bytes.Buffer{}, opts)
			Expect(err).NotTo(HaveOccurred())

			_, err = seq.Run()
			Expect(err).NotTo(HaveOccurred())
			report, err := par.Run()
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Strategy).To(Equal("parallel"))
			for i := range seqFS.Ex() {
				Expect(parFS.Ex()[i]).To(BeNumerically("~", seqFS.Ex()[i], 1e-12))
			}
			for i := range seqFS.Hy() {
				Expect(parFS.Hy()[i]).To(BeNumerically("~", seqFS.Hy()[i], 1e-15))
			}
		})
	})

	Context("with invalid options", func() {
		DescribeTable("New rejects",
			func(opts sim.Options) {
				_, err := sim.New(fs, physics.NewEngine(nil), surface, out, opts)
				Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
			},
			Entry("zero fps", sim.Options{Bench: true, FPS: 0, ProgressInterval: 100}),
			Entry("zero progress interval", sim.Options{Bench: true, FPS: 60}),
			Entry("zero plot width", sim.Options{FPS: 60, ProgressInterval: 100, Height: 4}),
			Entry("zero plot height", sim.Options{FPS: 60, ProgressInterval: 100, Width: 4}),
		)
	})

	Context("when output fails", func() {
		It("returns the error and restores the cursor", func() {
			driver, err := sim.New(fs, physics.NewEngine(nil), surface, failingWriter{}, sim.Options{
				Bench:            true,
				FPS:              60,
				ProgressInterval: 100,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = driver.Run()
			Expect(err).To(MatchError("closed"))
			Expect(surface.count("show")).To(Equal(1))
			Expect(driver.Tick()).To(Equal(100))
		})

		It("stops when the surface cannot flush", func() {
			surface.flushErr = errors.New("gone")
			driver, err := sim.New(fs, physics.NewEngine(nil), surface, out, sim.Options{
				Bench:            true,
				FPS:              60,
				ProgressInterval: 100,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = driver.Run()
			Expect(err).To(MatchError("gone"))
			Expect(driver.Tick()).To(BeZero())
		})
	})
})
